package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrInvalidMongoURI marks configuration mistakes that retrying cannot fix.
var ErrInvalidMongoURI = errors.New("invalid mongo uri")

// ValidateMongoURI checks the URI shape without touching the network, so an
// SRV record that does not resolve yet is not reported here.
func ValidateMongoURI(uri string) error {
	u, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMongoURI, err)
	}
	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return fmt.Errorf("%w: scheme %q", ErrInvalidMongoURI, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidMongoURI)
	}
	return nil
}

// NewMongo builds the process-wide Mongo client.
// Errors wrapping ErrInvalidMongoURI are permanent. Any other error (SRV lookup,
// connect) is worth retrying. A non-nil client is returned together with a
// ping error when the server is unreachable; the driver keeps reconnecting.
func NewMongo(ctx context.Context, c *Config) (*mongo.Client, error) {
	uri, err := c.MongoConnectionURI()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMongoURI, err)
	}
	if err := ValidateMongoURI(uri); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1).
			SetStrict(true).
			SetDeprecationErrors(true)).
		SetServerSelectionTimeout(20 * time.Second).
		SetConnectTimeout(15 * time.Second).
		SetMaxPoolSize(10).
		SetMinPoolSize(1)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return client, err
	}
	return client, nil
}
