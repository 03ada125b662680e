package app

import (
	"context"
	"fmt"

	"github.com/brandhub/core/internal/config"
	"github.com/brandhub/core/internal/database"
	"github.com/brandhub/core/internal/modules/brand/profile"
	"github.com/brandhub/core/internal/modules/campaign/campaign"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Stores are the profile and campaign repositories for the configured
// database driver: gorm for mysql, postgres and sqlite, the mongo driver for
// mongo.
type Stores struct {
	Profiles  profile.Repository
	Campaigns campaign.Repository

	sql   *gorm.DB
	mongo *mongo.Client
}

// OpenStores connects the configured database. SQL schemas are migrated on
// connect; mongo indexes are ensured by ConnectMongo.
func OpenStores(ctx context.Context, cfg *config.AppConfig) (*Stores, error) {
	if cfg.Database.Driver == config.DriverMongo {
		client, db, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		return &Stores{
			Profiles:  profile.NewMongoRepository(db),
			Campaigns: campaign.NewMongoRepository(db),
			mongo:     client,
		}, nil
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	return &Stores{
		Profiles:  profile.NewGormRepository(db),
		Campaigns: campaign.NewGormRepository(db),
		sql:       db,
	}, nil
}

// Ping checks the underlying connection.
func (s *Stores) Ping(ctx context.Context) error {
	if s.mongo != nil {
		return s.mongo.Ping(ctx, nil)
	}
	sqlDB, err := s.sql.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Stores) Close(ctx context.Context) {
	if s.mongo != nil {
		_ = s.mongo.Disconnect(ctx)
		return
	}
	if sqlDB, err := s.sql.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
