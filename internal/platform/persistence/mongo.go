package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/MINGSHENG1998/ryt-bank-payment/internal/config"
)

const blobCollectionName = "ledger_blobs"

// MongoKV implements KVStore on a MongoDB collection. Each key maps to a
// single document {_id: key, blob: <bytes>} which is upserted on Set.
type MongoKV struct {
	logger *slog.Logger
	client *mongo.Client
	coll   *mongo.Collection
}

type blobDocument struct {
	ID   string `bson:"_id"`
	Blob []byte `bson:"blob"`
}

// NewMongoKV connects to MongoDB and verifies the connection with a ping.
func NewMongoKV(ctx context.Context, logger *slog.Logger, cfg *config.MongoDBConfig) (*MongoKV, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoKV{
		logger: logger,
		client: client,
		coll:   client.Database(cfg.Database).Collection(blobCollectionName),
	}, nil
}

func (m *MongoKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc blobDocument
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return doc.Blob, true, nil
}

func (m *MongoKV) Set(ctx context.Context, key string, blob []byte) error {
	_, err := m.coll.ReplaceOne(ctx,
		bson.M{"_id": key},
		blobDocument{ID: key, Blob: blob},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (m *MongoKV) Close(ctx context.Context) error {
	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	m.logger.Info("Closed MongoDB connection")
	return nil
}
