package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port string `envconfig:"PORT" default:"5000"`

	AccessSecret string `envconfig:"ACCESS_SECRET_TOKEN" required:"true"`

	// Mongo: either MONGO_URI, or the Atlas credentials triple.
	MongoURI string `envconfig:"MONGO_URI"`
	MongoDB  string `envconfig:"MONGO_DB" default:"languageClub"`
	DBUser   string `envconfig:"DB_USER"`
	DBSecret string `envconfig:"DB_SECRET"`
	DBHost   string `envconfig:"DB_HOST"`

	RedisAddr string        `envconfig:"REDIS_ADDR"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"60s"`

	PaymentProvider    string `envconfig:"PAYMENT_PROVIDER" default:"stripe"`
	PaymentCurrency    string `envconfig:"PAYMENT_CURRENCY" default:"usd"`
	StripeSecretKey    string `envconfig:"STRIPE_SECRET_KEY"`
	MidtransServerKey  string `envconfig:"MIDTRANS_SERVER_KEY"`
	MidtransProduction bool   `envconfig:"MIDTRANS_PRODUCTION" default:"false"`

	TokenRateLimit float64 `envconfig:"TOKEN_RATE_LIMIT" default:"5"`
	TokenRateBurst int     `envconfig:"TOKEN_RATE_BURST" default:"10"`

	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	GinMode         string        `envconfig:"GIN_MODE" default:"release"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads an optional .env file and then the process environment. Mongo
// settings are checked when the client is built, so --in-memory runs without them.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// MongoConnectionURI returns MONGO_URI when set, otherwise builds the Atlas SRV
// URI from DB_USER, DB_SECRET and DB_HOST.
func (c *Config) MongoConnectionURI() (string, error) {
	if c.MongoURI != "" {
		return c.MongoURI, nil
	}
	if c.DBUser == "" || c.DBSecret == "" || c.DBHost == "" {
		return "", errors.New("MONGO_URI or DB_USER/DB_SECRET/DB_HOST must be set")
	}
	host := strings.TrimSpace(c.DBHost)
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
		url.QueryEscape(c.DBUser), url.QueryEscape(c.DBSecret), host), nil
}
