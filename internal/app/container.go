package app

import (
	"context"
	"log"
	"os"
	"time"

	"skill-ready/internal/config"
	"skill-ready/internal/database"
	"skill-ready/internal/database/migration"
	dbpostgres "skill-ready/internal/database/postgres"
	"skill-ready/internal/database/seeder"
	"skill-ready/internal/infrastructure/cache"
	"skill-ready/internal/ws"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.MigrationsDir != "" {
		runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
		if err := runner.Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)
	hub := ws.NewHub(logger)

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  redisCache,
		Hub:    hub,
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
