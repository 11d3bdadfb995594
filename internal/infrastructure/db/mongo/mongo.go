package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultTimeout = 10 * time.Second

// Collection names match the ones the existing dataset uses.
const (
	collectionUsers      = "users"
	collectionCategories = "categories"
	collectionExpenses   = "expenses"
	collectionAuditLogs  = "auditlogs"
)

// Config holds the connection settings read from MONGO_*.
type Config struct {
	URI      string
	Database string
	// Timeout bounds connect plus the initial ping. Zero means defaultTimeout.
	Timeout time.Duration
}

const appName = "expense-tracker"

// Connect dials MongoDB, pings the primary and returns the client together
// with the configured database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(cfg.Timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping %s: %w", cfg.Database, err)
	}
	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the unique indexes every repository relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, r := range []interface {
		EnsureIndexes(context.Context) error
	}{
		NewUserRepository(db),
		NewCategoryRepository(db),
		NewExpenseRepository(db),
		NewAuditRepository(db),
	} {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}

// parseID converts a hex id. Malformed ids cannot match any document, so
// they are reported as notFound.
func parseID(id string, notFound error) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return oid, nil
}

// optionalID converts id when it is a valid hex id and returns nil otherwise.
func optionalID(id *string) *primitive.ObjectID {
	if id == nil {
		return nil
	}
	oid, err := primitive.ObjectIDFromHex(*id)
	if err != nil {
		return nil
	}
	return &oid
}

func hexOrEmpty(oid primitive.ObjectID) string {
	if oid.IsZero() {
		return ""
	}
	return oid.Hex()
}
