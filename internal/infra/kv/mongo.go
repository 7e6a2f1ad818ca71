package kv

import (
	"context"
	"time"

	"prize-wheel/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Namespace  string
}

// MongoStore keeps a namespace in a single document, so a SetMany is one
// atomic document update.
//
//	{_id: <namespace>, values: {<key>: <value>}, updated_at: <time>}
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	namespace  string
}

func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errs.Wrap(err, "failed to connect to mongodb")
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errs.Wrap(err, "failed to ping mongodb")
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		namespace:  cfg.Namespace,
	}, nil
}

type stateDocument struct {
	ID        string            `bson:"_id"`
	Values    map[string]string `bson:"values"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

func (s *MongoStore) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	out := make(map[string]string, len(keys))

	var doc stateDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": s.namespace}).Decode(&doc)
	if err != nil {
		if errs.Is(err, mongo.ErrNoDocuments) {
			return out, nil
		}
		return nil, errs.Wrap(err, "find promotion state")
	}

	for _, k := range keys {
		if v, ok := doc.Values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (s *MongoStore) SetMany(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range entries {
		set["values."+k] = v
	}

	_, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": s.namespace},
		bson.M{"$set": set},
		options.Update().SetUpsert(true))
	if err != nil {
		return errs.Wrap(err, "update promotion state")
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	unset := bson.M{}
	for _, k := range keys {
		unset["values."+k] = ""
	}

	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": s.namespace}, bson.M{"$unset": unset})
	if err != nil {
		return errs.Wrap(err, "unset promotion state keys")
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
