package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/gruppopolinex/polinex-backend/pkg/errors"
	"github.com/gruppopolinex/polinex-backend/pkg/metrics"
)

// SnapshotStore persists the full ordered cart snapshot under the cart's key.
// Load must treat an absent or malformed value as an empty cart.
type SnapshotStore interface {
	Load(ctx context.Context, token string) ([]Item, error)
	Save(ctx context.Context, token string, items []Item) error
}

// Notifier broadcasts a payload-free change trigger for the given cart.
// Observers are expected to re-read the snapshot, never to trust a payload.
type Notifier interface {
	Notify(ctx context.Context, token string)
}

// Store is the single source of truth for cart contents. Every mutation
// persists the full snapshot before notifying observers.
type Store struct {
	snapshots SnapshotStore
	notifier  Notifier

	mu sync.Mutex
}

// NewStore builds a cart store backed by the provided ports.
func NewStore(snapshots SnapshotStore, notifier Notifier) (*Store, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &Store{snapshots: snapshots, notifier: notifier}, nil
}

// Items returns the current snapshot in insertion order. Reading never mutates.
func (s *Store) Items(ctx context.Context, token string) ([]Item, error) {
	if err := validToken(token); err != nil {
		return nil, err
	}
	return s.snapshots.Load(ctx, token)
}

// AddItem appends the item, or merges into the existing line with the same ID
// by adding the incoming quantity.
func (s *Store) AddItem(ctx context.Context, token string, item Item) error {
	if err := validToken(token); err != nil {
		return err
	}
	if strings.TrimSpace(item.ID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if strings.TrimSpace(item.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "item title is required")
	}
	if item.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "item price must be non-negative")
	}
	item.Quantity = ClampQuantity(float64(item.Quantity))

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.snapshots.Load(ctx, token)
	if err != nil {
		return err
	}

	merged := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity = ClampQuantity(float64(items[i].Quantity + item.Quantity))
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	if err := s.snapshots.Save(ctx, token, items); err != nil {
		return err
	}
	metrics.ObserveCartMutation("add_item")
	s.notifier.Notify(ctx, token)
	return nil
}

// SetQuantity overwrites the matching line's quantity with max(1, floor(quantity)).
// A missing ID is a silent no-op: nothing is persisted and nothing is broadcast.
func (s *Store) SetQuantity(ctx context.Context, token, id string, quantity float64) error {
	if err := validToken(token); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.snapshots.Load(ctx, token)
	if err != nil {
		return err
	}

	found := false
	for i := range items {
		if items[i].ID == id {
			items[i].Quantity = ClampQuantity(quantity)
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	if err := s.snapshots.Save(ctx, token, items); err != nil {
		return err
	}
	metrics.ObserveCartMutation("set_quantity")
	s.notifier.Notify(ctx, token)
	return nil
}

// RemoveItem drops the matching line. A missing ID is a silent no-op.
func (s *Store) RemoveItem(ctx context.Context, token, id string) error {
	if err := validToken(token); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.snapshots.Load(ctx, token)
	if err != nil {
		return err
	}

	kept := items[:0]
	found := false
	for _, item := range items {
		if item.ID == id {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return nil
	}

	if err := s.snapshots.Save(ctx, token, kept); err != nil {
		return err
	}
	metrics.ObserveCartMutation("remove_item")
	s.notifier.Notify(ctx, token)
	return nil
}

// Clear empties the whole collection.
func (s *Store) Clear(ctx context.Context, token string) error {
	if err := validToken(token); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.snapshots.Save(ctx, token, []Item{}); err != nil {
		return err
	}
	metrics.ObserveCartMutation("clear")
	s.notifier.Notify(ctx, token)
	return nil
}

// Count returns the sum of all line quantities, not the number of lines.
func (s *Store) Count(ctx context.Context, token string) (int, error) {
	items, err := s.Items(ctx, token)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count, nil
}

// Total returns the sum of price multiplied by quantity across all lines,
// regardless of payability.
func (s *Store) Total(ctx context.Context, token string) (decimal.Decimal, error) {
	items, err := s.Items(ctx, token)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total, nil
}

func validToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	return nil
}
