// Package mongo holds the MongoDB connection and error mapping shared by
// the document-store repositories.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/heartmarshall/pollution-reporter/internal/config"
)

// Collection names.
const (
	ReportsCollection  = "reports"
	AccountsCollection = "accounts"
)

// Connect dials MongoDB, pings the primary and ensures indexes. The caller
// owns the returned client and must Disconnect it.
func Connect(ctx context.Context, cfg config.MongoConfig, log *slog.Logger) (*mongo.Client, *mongo.Database, error) {
	start := time.Now()

	dctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(dctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	if err := EnsureIndexes(dctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	log.InfoContext(ctx, "mongo connected",
		slog.String("uri", RedactURI(cfg.URI)),
		slog.String("database", cfg.Database),
		slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	return client, db, nil
}

// EnsureIndexes creates the indexes the repositories rely on. It is
// idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	var errs []error

	_, err := db.Collection(ReportsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "pollution_type", Value: 1}}},
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("reports indexes: %w", err))
	}

	_, err = db.Collection(AccountsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("accounts indexes: %w", err))
	}

	return errors.Join(errs...)
}

// RedactURI masks credentials in a connection string for logging.
func RedactURI(raw string) string {
	if raw == "" || !strings.Contains(raw, "://") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	u.User = url.UserPassword("****", "****")
	return u.String()
}
