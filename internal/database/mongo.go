package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RubachokBoss/student-registry/internal/config"
)

const StudentsCollection = "students"

// Connect establishes the MongoDB connection and verifies it with a ping.
// A failure here is fatal for the caller: the service must not start
// without a working store.
func Connect(cfg config.MongoConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(cfg.Database), nil
}

// EnsureIndexes creates the unique email index. The index is the
// authoritative uniqueness guarantee; the service-level email pre-check
// is advisory and racy under concurrent writers.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(StudentsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}

	return nil
}
