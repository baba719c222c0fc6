package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	Checkout     CheckoutConfig
	Stripe       StripeConfig
	FeatureFlags FeatureFlagsConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"POLINEX_APP_ENV" required:"true"`
	Port         string `envconfig:"POLINEX_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"POLINEX_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"POLINEX_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"POLINEX_DB_DSN"`
	Driver string `envconfig:"POLINEX_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"POLINEX_DB_HOST"`
	Port     int    `envconfig:"POLINEX_DB_PORT" default:"5432"`
	User     string `envconfig:"POLINEX_DB_USER"`
	Password string `envconfig:"POLINEX_DB_PASSWORD"`
	Name     string `envconfig:"POLINEX_DB_NAME"`
	SSLMode  string `envconfig:"POLINEX_DB_SSLMODE" default:"disable"`
}

// RedisConfig accepts either a full URL or address parts; pkg/redis rejects
// a config carrying neither.
type RedisConfig struct {
	URL          string        `envconfig:"POLINEX_REDIS_URL"`
	Address      string        `envconfig:"POLINEX_REDIS_ADDR"`
	Password     string        `envconfig:"POLINEX_REDIS_PASSWORD"`
	DB           int           `envconfig:"POLINEX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"POLINEX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"POLINEX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"POLINEX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"POLINEX_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"POLINEX_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CartConfig struct {
	SnapshotTTL time.Duration `envconfig:"POLINEX_CART_SNAPSHOT_TTL" default:"720h"`
}

type CheckoutConfig struct {
	SuccessURL string `envconfig:"POLINEX_CHECKOUT_SUCCESS_URL" default:"https://www.polinex.it/grazie"`
	CancelURL  string `envconfig:"POLINEX_CHECKOUT_CANCEL_URL" default:"https://www.polinex.it/carrello"`
}

type StripeConfig struct {
	APIKey string `envconfig:"POLINEX_STRIPE_API_KEY"`
	Env    string `envconfig:"POLINEX_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"POLINEX_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"POLINEX_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"POLINEX_CORS_ALLOWED_ORIGINS" default:"https://www.polinex.it"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	required := map[string]string{
		"POLINEX_DB_HOST": db.Host,
		"POLINEX_DB_USER": db.User,
		"POLINEX_DB_NAME": db.Name,
	}
	for _, key := range []string{"POLINEX_DB_HOST", "POLINEX_DB_USER", "POLINEX_DB_NAME"} {
		if required[key] == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either POLINEX_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
