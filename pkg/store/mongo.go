package store

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "github.com/matzehuels/mosaic/pkg/errors"
)

// MongoStore keeps one collection document per record. The layout JSON is
// stored as a string so it survives unchanged.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoRecord struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name,omitempty"`
	Data      string    `bson:"data"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (m mongoRecord) record() *Record {
	return &Record{
		ID:        m.ID,
		Name:      m.Name,
		Data:      []byte(m.Data),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig, logger *log.Logger) (*MongoStore, error) {
	if logger == nil {
		logger = log.Default()
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, storeError(err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, storeError(err, "ping mongo")
	}
	logger.Debug("connected to mongo", "database", cfg.Database, "collection", cfg.Collection)
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := errs.ValidateDocumentID(id); err != nil {
		return nil, err
	}
	var m mongoRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, storeError(err, "get document %s", id)
	}
	return m.record(), nil
}

func (s *MongoStore) Put(ctx context.Context, rec *Record) error {
	if err := prepare(rec, time.Now()); err != nil {
		return err
	}
	if old, err := s.Get(ctx, rec.ID); err == nil {
		rec.CreatedAt = old.CreatedAt
	}
	update := bson.M{
		"$set": bson.M{
			"name":       rec.Name,
			"data":       string(rec.Data),
			"updated_at": rec.UpdatedAt,
		},
		"$setOnInsert": bson.M{"created_at": rec.CreatedAt},
	}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": rec.ID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return storeError(err, "put document %s", rec.ID)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := errs.ValidateDocumentID(id); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeError(err, "delete document %s", id)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]*Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, storeError(err, "list documents")
	}
	var docs []mongoRecord
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeError(err, "list documents")
	}
	out := make([]*Record, len(docs))
	for i, m := range docs {
		out[i] = m.record()
	}
	return out, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
