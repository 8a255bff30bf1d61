package cache

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCache is a MongoDB-backed cache for deployments where a document
// store is already provisioned. Entries live in a single collection keyed
// by the cache key, with a TTL index handling expiration server-side.
type MongoCache struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoConfig holds connection settings for a MongoDB cache backend.
type MongoConfig struct {
	URI        string // connection string (e.g., "mongodb://localhost:27017")
	Database   string // database name
	Collection string // collection name (default "cache")
}

// mongoEntry is the stored document shape.
type mongoEntry struct {
	Key       string     `bson:"_id"`
	Data      []byte     `bson:"data"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// NewMongoCache creates a MongoDB-backed cache and verifies connectivity.
// It also ensures a TTL index on expires_at so the server prunes expired
// entries; reads still check expiration to cover the index's sweep lag.
func NewMongoCache(ctx context.Context, cfg MongoConfig) (Cache, error) {
	if cfg.Collection == "" {
		cfg.Collection = "cache"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &MongoCache{client: client, collection: coll}, nil
}

// Get retrieves a value from the cache.
func (c *MongoCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry mongoEntry
	err := c.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if entry.ExpiresAt != nil && time.Now().After(*entry.ExpiresAt) {
		_, _ = c.collection.DeleteOne(ctx, bson.M{"_id": key})
		return nil, false, nil
	}

	return entry.Data, true, nil
}

// Set stores a value in the cache.
func (c *MongoCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := mongoEntry{Key: key, Data: data}
	if ttl > 0 {
		expires := time.Now().Add(ttl)
		entry.ExpiresAt = &expires
	}

	_, err := c.collection.ReplaceOne(ctx, bson.M{"_id": key}, entry,
		options.Replace().SetUpsert(true))
	return err
}

// Delete removes a value from the cache.
func (c *MongoCache) Delete(ctx context.Context, key string) error {
	_, err := c.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

// Close disconnects from MongoDB.
func (c *MongoCache) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

// Ensure MongoCache implements Cache.
var _ Cache = (*MongoCache)(nil)
