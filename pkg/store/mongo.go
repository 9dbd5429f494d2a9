package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store backed by MongoDB.
// Intended for server deployments where multiple instances share snapshots;
// the CLI defaults to FileStore.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	// URI is the MongoDB connection string (mongodb://...).
	URI string

	// Database is the database name. Defaults to "coachtree".
	Database string

	// Collection is the collection name. Defaults to "snapshots".
	Collection string
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "coachtree"
	}
	if cfg.Collection == "" {
		cfg.Collection = "snapshots"
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Get retrieves a snapshot by name.
func (s *MongoStore) Get(ctx context.Context, name string) (*Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Put stores a snapshot, upserting on name.
// CreatedAt of an existing record is preserved via $setOnInsert.
func (s *MongoStore) Put(ctx context.Context, rec *Record) error {
	update := bson.M{
		"$set": bson.M{
			"kind":       rec.Kind,
			"hash":       rec.Hash,
			"size":       len(rec.Data),
			"data":       rec.Data,
			"updated_at": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"name":       rec.Name,
			"created_at": rec.CreatedAt,
		},
	}
	_, err := s.coll.UpdateOne(ctx, bson.M{"name": rec.Name}, update,
		options.Update().SetUpsert(true))
	return err
}

// List returns metadata for all snapshots, sorted by name.
// Payloads are excluded from the query via projection.
func (s *MongoStore) List(ctx context.Context) ([]Metadata, error) {
	opts := options.Find().
		SetProjection(bson.M{"data": 0}).
		SetSort(bson.M{"name": 1})

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var metas []Metadata
	for cursor.Next(ctx) {
		var rec struct {
			Name      string    `bson:"name"`
			Kind      Kind      `bson:"kind"`
			Hash      string    `bson:"hash"`
			Size      int       `bson:"size"`
			CreatedAt time.Time `bson:"created_at"`
			UpdatedAt time.Time `bson:"updated_at"`
		}
		if err := cursor.Decode(&rec); err != nil {
			return nil, err
		}
		metas = append(metas, Metadata(rec))
	}
	return metas, cursor.Err()
}

// Delete removes a snapshot by name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
