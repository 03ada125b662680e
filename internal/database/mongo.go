package database

import (
	"context"
	"fmt"
	"time"

	"github.com/brandhub/core/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the mongo repositories.
const (
	ProfilesCollection  = "business_profiles"
	CampaignsCollection = "campaigns"
)

// ConnectMongo dials the document store and ensures the id indexes exist.
// Documents are encoded through their json tags so both stores share one schema.
func ConnectMongo(ctx context.Context, cfg *config.AppConfig) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.DSN).
		SetBSONOptions(&options.BSONOptions{
			UseJSONStructTags: true,
			NilSliceAsEmpty:   true,
		})

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	db := client.Database(cfg.Database.MongoDatabase())
	if err := ensureMongoIndexes(connectCtx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, db, nil
}

func ensureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	if _, err := db.Collection(ProfilesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("create profile index: %w", err)
	}
	campaigns := db.Collection(CampaignsCollection)
	if _, err := campaigns.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "profile_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("create campaign indexes: %w", err)
	}
	return nil
}
