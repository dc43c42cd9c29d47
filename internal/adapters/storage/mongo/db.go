package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const collectionName = "pets"

// Connect abre el cliente y verifica conectividad. El caller hace Disconnect.
func Connect(ctx context.Context, uri string) (*mongod.Client, error) {
	client, err := mongod.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes crea los índices de species y owner_name (idempotente).
func EnsureIndexes(ctx context.Context, db *mongod.Database) error {
	models := []mongod.IndexModel{
		{Keys: bson.D{{Key: "species", Value: 1}}},
		{Keys: bson.D{{Key: "owner_name", Value: 1}}},
	}
	if _, err := db.Collection(collectionName).Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("mongo: create indexes: %w", err)
	}
	return nil
}
