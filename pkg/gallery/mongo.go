package gallery

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/moodcanvas/moodcanvas/pkg/cache"
	"github.com/moodcanvas/moodcanvas/pkg/errors"
)

// connectTimeout bounds the initial connection and ping.
const connectTimeout = 10 * time.Second

// MongoConfig configures the MongoDB gallery store.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore persists gallery records in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a
// ping before returning.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreConnect, err, "connect to %s", cfg.URI)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStoreConnect, err, "ping %s", cfg.URI)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Put inserts a record. Transient write failures are retried with
// backoff before giving up.
func (s *MongoStore) Put(ctx context.Context, rec Record) error {
	err := cache.RetryWithBackoff(ctx, func() error {
		_, err := s.coll.InsertOne(ctx, rec)
		if err == nil {
			return nil
		}
		if mongo.IsDuplicateKeyError(err) {
			return errors.Wrap(errors.ErrCodeStoreWrite, err, "record %s already exists", rec.ID)
		}
		if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
			return cache.Retryable(err)
		}
		return err
	})
	if err != nil && errors.GetCode(err) == "" {
		return errors.Wrap(errors.ErrCodeStoreWrite, err, "insert record %s", rec.ID)
	}
	return err
}

// Get retrieves a record by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return Record{}, errors.New(errors.ErrCodeRenderNotFound, "render %s not found", id)
	}
	if err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeStoreRead, err, "find record %s", id)
	}
	return rec, nil
}

// List returns the most recent records, newest first.
func (s *MongoStore) List(ctx context.Context, limit int) ([]Record, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(clampLimit(limit)))

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreRead, err, "list records")
	}
	defer cur.Close(ctx)

	records := make([]Record, 0)
	if err := cur.All(ctx, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreRead, err, "decode records")
	}
	return records, nil
}

// Delete removes a record by ID.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, err, "delete record %s", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeRenderNotFound, "render %s not found", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
