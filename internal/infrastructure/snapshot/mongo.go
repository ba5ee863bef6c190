package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mannager/pos-system/internal/store"
)

const (
	snapshotCollection = "snapshots"
	snapshotDocID      = "store"
	mongoTimeout       = 10 * time.Second
)

// MongoConfig captures the settings for establishing a MongoDB connection.
type MongoConfig struct {
	URI      string
	Database string
}

// ConnectMongo establishes a MongoDB client and verifies connectivity with
// a ping before handing back the selected database.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// MongoGateway persists the store as a single document in a single
// collection. ReplaceOne with upsert is the atomic replace here: readers
// see the previous document or the new one, never a mix.
type MongoGateway struct {
	coll *mongo.Collection
	log  zerolog.Logger
}

// NewMongo returns a MongoGateway writing to the snapshots collection.
func NewMongo(db *mongo.Database, log zerolog.Logger) *MongoGateway {
	return &MongoGateway{coll: db.Collection(snapshotCollection), log: log}
}

type snapshotDoc struct {
	ID      string     `bson:"_id"`
	SavedAt time.Time  `bson:"saved_at"`
	Data    store.Data `bson:"data"`
}

// Load fetches the snapshot document.
func (g *MongoGateway) Load() (*store.Data, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	var doc snapshotDoc
	if err := g.coll.FindOne(ctx, bson.M{"_id": snapshotDocID}).Decode(&doc); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return &doc.Data, nil
}

// Save replaces the snapshot document, creating it when absent.
func (g *MongoGateway) Save(data *store.Data) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	doc := snapshotDoc{ID: snapshotDocID, SavedAt: time.Now().UTC(), Data: *data}
	_, err := g.coll.ReplaceOne(ctx, bson.M{"_id": snapshotDocID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Ping verifies MongoDB connectivity.
func (g *MongoGateway) Ping(ctx context.Context) error {
	return g.coll.Database().Client().Ping(ctx, nil)
}
