package main

import (
	"alcyxob/fitness-planner/internal/config"
	"alcyxob/fitness-planner/internal/logger"
	"alcyxob/fitness-planner/internal/repository"
	"alcyxob/fitness-planner/internal/repository/gormdb"
	"alcyxob/fitness-planner/internal/repository/mongo"
	"context"
	"fmt"
	"time"
)

type repositories struct {
	users       repository.UserRepository
	profiles    repository.ProfileRepository
	preferences repository.PreferenceRepository
	plans       repository.PlanRepository
	close       func()
}

// openRepositories connects the configured backend and prepares its schema.
func openRepositories(cfg config.DatabaseConfig, log *logger.Logger) (*repositories, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := mongo.ConnectDB(cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		db := client.Database(cfg.Name)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = mongo.DisconnectDB(client)
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
		log.Info("MongoDB ready", "database", cfg.Name)

		return &repositories{
			users:       mongo.NewMongoUserRepository(db),
			profiles:    mongo.NewMongoProfileRepository(db),
			preferences: mongo.NewMongoPreferenceRepository(db),
			plans:       mongo.NewMongoPlanRepository(db),
			close: func() {
				if err := mongo.DisconnectDB(client); err != nil {
					log.Error("Failed to disconnect MongoDB", "error", err)
				}
			},
		}, nil

	case config.DriverPostgres, config.DriverSQLite:
		db, err := gormdb.Open(cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
		}
		if err := gormdb.AutoMigrate(db); err != nil {
			_ = gormdb.Close(db)
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("SQL database ready", "driver", cfg.Driver)

		return &repositories{
			users:       gormdb.NewUserRepository(db),
			profiles:    gormdb.NewProfileRepository(db),
			preferences: gormdb.NewPreferenceRepository(db),
			plans:       gormdb.NewPlanRepository(db),
			close: func() {
				if err := gormdb.Close(db); err != nil {
					log.Error("Failed to close database", "error", err)
				}
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}
