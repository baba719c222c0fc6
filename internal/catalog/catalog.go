package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/gruppopolinex/polinex-backend/internal/cart"
)

// Product is a read-only catalog entry. Entries without a Stripe price id are
// browse-only: they render on the site but cannot be bought online.
type Product struct {
	Slug          string               `json:"slug"`
	Title         string               `json:"title"`
	Price         decimal.Decimal      `json:"price"`
	Type          cart.FulfillmentType `json:"type"`
	StripePriceID string               `json:"stripe_price_id,omitempty"`
	Href          string               `json:"href,omitempty"`
	Image         string               `json:"image,omitempty"`
}

// CartItem converts the product into a cart line with the given quantity.
func (p Product) CartItem(quantity int) cart.Item {
	return cart.Item{
		ID:            p.Slug,
		Title:         p.Title,
		Price:         p.Price,
		Quantity:      cart.ClampQuantity(float64(quantity)),
		Type:          p.Type,
		StripePriceID: p.StripePriceID,
		Href:          p.Href,
		Image:         p.Image,
		Metadata:      map[string]string{"slug": p.Slug},
	}
}

// Catalog holds the site's product lists, keyed for slug lookup.
type Catalog struct {
	books     []Product
	courses   []Product
	locations []Product
	software  []Product
	bySlug    map[string]Product
}

// New seeds the catalog with the site's product data.
func New() *Catalog {
	c := &Catalog{
		books: []Product{
			{
				Slug:          "manuale-controllo-gestione",
				Title:         "Manuale di Controllo di Gestione",
				Price:         decimal.NewFromFloat(39.00),
				Type:          cart.TypeShipped,
				StripePriceID: "price_1NbooKsCtrlGest01",
				Href:          "/libri/manuale-controllo-gestione",
				Image:         "/img/libri/controllo-gestione.jpg",
			},
			{
				Slug:          "bilancio-per-non-addetti",
				Title:         "Il Bilancio per Non Addetti",
				Price:         decimal.NewFromFloat(24.50),
				Type:          cart.TypeShipped,
				StripePriceID: "price_1NbooKsBilancio02",
				Href:          "/libri/bilancio-per-non-addetti",
				Image:         "/img/libri/bilancio.jpg",
			},
			{
				Slug:  "storia-impresa-lucana",
				Title: "Storia dell'Impresa Lucana",
				Price: decimal.NewFromFloat(18.00),
				Type:  cart.TypeShipped,
				Href:  "/libri/storia-impresa-lucana",
				Image: "/img/libri/storia-impresa.jpg",
			},
		},
		courses: []Product{
			{
				Slug:          "corso-business-plan",
				Title:         "Corso Online: Costruire un Business Plan",
				Price:         decimal.NewFromFloat(149.00),
				Type:          cart.TypeDownloadable,
				StripePriceID: "price_1CorsoBusPlan01",
				Href:          "/corsi/corso-business-plan",
				Image:         "/img/corsi/business-plan.jpg",
			},
			{
				Slug:          "corso-finanza-agevolata",
				Title:         "Corso Online: Finanza Agevolata per PMI",
				Price:         decimal.NewFromFloat(199.00),
				Type:          cart.TypeDownloadable,
				StripePriceID: "price_1CorsoFinAgev02",
				Href:          "/corsi/corso-finanza-agevolata",
				Image:         "/img/corsi/finanza-agevolata.jpg",
			},
		},
		locations: []Product{
			{
				Slug:  "coworking-potenza-scrivania",
				Title: "Coworking Potenza: Scrivania Dedicata",
				Price: decimal.NewFromFloat(180.00),
				Type:  cart.TypeOther,
				Href:  "/coworking/potenza",
				Image: "/img/coworking/potenza.jpg",
			},
			{
				Slug:  "coworking-matera-sala-riunioni",
				Title: "Coworking Matera: Sala Riunioni",
				Price: decimal.NewFromFloat(45.00),
				Type:  cart.TypeOther,
				Href:  "/coworking/matera",
				Image: "/img/coworking/matera.jpg",
			},
		},
		software: []Product{
			{
				Slug:          "gestionale-commesse",
				Title:         "Software Gestione Commesse (licenza annuale)",
				Price:         decimal.NewFromFloat(490.00),
				Type:          cart.TypeDownloadable,
				StripePriceID: "price_1SwCommesse01",
				Href:          "/software/gestionale-commesse",
				Image:         "/img/software/commesse.jpg",
			},
			{
				Slug:  "gestionale-magazzino",
				Title: "Software Gestione Magazzino (su preventivo)",
				Price: decimal.NewFromFloat(0),
				Type:  cart.TypeOther,
				Href:  "/software/gestionale-magazzino",
				Image: "/img/software/magazzino.jpg",
			},
		},
	}

	c.bySlug = map[string]Product{}
	for _, list := range [][]Product{c.books, c.courses, c.locations, c.software} {
		for _, p := range list {
			c.bySlug[p.Slug] = p
		}
	}
	return c
}

// Books returns the book catalog in display order.
func (c *Catalog) Books() []Product { return c.books }

// Courses returns the course catalog in display order.
func (c *Catalog) Courses() []Product { return c.courses }

// Locations returns the coworking catalog in display order.
func (c *Catalog) Locations() []Product { return c.locations }

// Software returns the management-software catalog in display order.
func (c *Catalog) Software() []Product { return c.software }

// Lookup resolves a product by slug. A miss is not an error; callers decide
// how to degrade.
func (c *Catalog) Lookup(slug string) (Product, bool) {
	p, ok := c.bySlug[slug]
	return p, ok
}
