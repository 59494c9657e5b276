package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config carries everything the storefront needs from the environment.
// StripeSecretKey is a secret: it is handed to the checkout package only and
// must never appear in a response or a log line.
type Config struct {
	Addr string `envconfig:"ADDR" default:":8080"`

	MongoURI          string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase     string `envconfig:"MONGO_DATABASE" default:"pottery-shop"`
	CatalogCollection string `envconfig:"CATALOG_COLLECTION" default:"pottery-image"`

	// RedisAddr empty means the in-memory cart store is used instead.
	RedisAddr     string `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	StripeSecretKey      string `envconfig:"STRIPE_SECRET_KEY" default:""`
	StripePublishableKey string `envconfig:"STRIPE_PUBLISHABLE_KEY" default:""`

	// DefaultOrigin is used for redirect URLs when a checkout request
	// carries no Origin header; only relevant for local development.
	DefaultOrigin string `envconfig:"DEFAULT_ORIGIN" default:"http://localhost:3000"`

	// CheckoutEndpoint is where the initiator POSTs cart items; by default
	// the session endpoint this process serves itself.
	CheckoutEndpoint string `envconfig:"CHECKOUT_ENDPOINT" default:"http://localhost:8080/api/v1/checkout/session"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
