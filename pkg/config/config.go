package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "RUKKIE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App       AppConfig
	API       APIConfig
	Redis     RedisConfig
	Checkout  CheckoutConfig
	Reconcile ReconcileConfig
	Auth      AuthConfig
	Wishlist  WishlistConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RUKKIE_APP_ENV" required:"true"`
	Port         string `envconfig:"RUKKIE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"RUKKIE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RUKKIE_LOG_WARN_STACK" default:"false"`
	// PublicOrigin is the origin encoded into provider redirect URLs.
	PublicOrigin string `envconfig:"RUKKIE_PUBLIC_ORIGIN" default:"http://localhost:8080"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// APIConfig points at the commerce backend consumed by the gateway.
type APIConfig struct {
	BaseURL        string        `envconfig:"RUKKIE_API_BASE_URL" required:"true"`
	Timeout        time.Duration `envconfig:"RUKKIE_API_TIMEOUT" default:"15s"`
	CSRFCookieName string        `envconfig:"RUKKIE_API_CSRF_COOKIE" default:"csrftoken"`
}

func (a APIConfig) validate() error {
	if !strings.HasPrefix(a.BaseURL, "http://") && !strings.HasPrefix(a.BaseURL, "https://") {
		return fmt.Errorf("api base url must be absolute, got %q", a.BaseURL)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"RUKKIE_REDIS_URL"`
	Address      string        `envconfig:"RUKKIE_REDIS_ADDR"`
	Password     string        `envconfig:"RUKKIE_REDIS_PASSWORD"`
	DB           int           `envconfig:"RUKKIE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RUKKIE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RUKKIE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RUKKIE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RUKKIE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RUKKIE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CheckoutConfig carries the storefront pricing policy applied to the order
// summary. Values mirror the backend's own computation; the backend stays
// authoritative for the amounts actually charged.
type CheckoutConfig struct {
	FreeShippingOver string `envconfig:"RUKKIE_CHECKOUT_FREE_SHIPPING_OVER" default:"100"`
	StandardShipping string `envconfig:"RUKKIE_CHECKOUT_STANDARD_SHIPPING" default:"9.99"`
	TaxRate          string `envconfig:"RUKKIE_CHECKOUT_TAX_RATE" default:"0.08"`
}

// ReconcileConfig bounds the payment status poll after a provider redirect.
type ReconcileConfig struct {
	PollAttempts int           `envconfig:"RUKKIE_RECONCILE_POLL_ATTEMPTS" default:"6"`
	PollInterval time.Duration `envconfig:"RUKKIE_RECONCILE_POLL_INTERVAL" default:"1500ms"`
}

type AuthConfig struct {
	RecheckInterval time.Duration `envconfig:"RUKKIE_AUTH_RECHECK_INTERVAL" default:"10m"`
}

type WishlistConfig struct {
	GuestTTL time.Duration `envconfig:"RUKKIE_WISHLIST_GUEST_TTL" default:"720h"`
}
