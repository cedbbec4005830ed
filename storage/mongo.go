package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoStore keeps each key as one document in a "blobs" collection, with the
// JSON value stored as raw bytes. Mongo acts purely as a blob store here; the
// document shape is never queried beyond its _id.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *zap.Logger
}

type blobDoc struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"value"`
}

// NewMongoStore connects to MongoDB and returns a store over db's "blobs"
// collection.
func NewMongoStore(ctx context.Context, uri, db string, logger *zap.Logger) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(db).Collection("blobs"),
		logger:     logger,
	}, nil
}

// Load reads the value under key into dst. A missing document or unparsable
// value leaves dst untouched.
func (ms *MongoStore) Load(ctx context.Context, key string, into interface{}) error {
	var doc blobDoc
	err := ms.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(doc.Value) == 0 {
		return nil
	}
	decodeValue(doc.Value, into, ms.logger, key)
	return nil
}

// Save replaces the value under key.
func (ms *MongoStore) Save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = ms.collection.ReplaceOne(ctx, bson.M{"_id": key},
		blobDoc{Key: key, Value: data}, options.Replace().SetUpsert(true))
	return err
}

// Close disconnects the underlying client.
func (ms *MongoStore) Close(ctx context.Context) error {
	return ms.client.Disconnect(ctx)
}
