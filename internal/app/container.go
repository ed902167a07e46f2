package app

import (
	"context"
	"fmt"
	"time"

	"skill-passport/internal/config"
	"skill-passport/internal/database"
	"skill-passport/internal/database/migration"
	dbpostgres "skill-passport/internal/database/postgres"
	"skill-passport/internal/infrastructure/cache"
	"skill-passport/internal/infrastructure/embedding"
	"skill-passport/internal/logger"
	"skill-passport/internal/repository"
	"skill-passport/migrations"

	"go.uber.org/zap"
)

// Container owns the process-wide dependencies shared by the server and the
// CLI.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	// DB is nil unless the postgres backend is selected.
	DB    database.DB
	Store repository.Store
	// Cache is nil when redis is not configured.
	Cache    *cache.Redis
	Embedder embedding.Provider

	Sources  repository.ProfileSourceRepository
	Merged   repository.MergedProfileRepository
	Jobs     repository.JobRepository
	Progress repository.RoadmapProgressRepository
}

func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	log = logger.OrNop(log)
	c := &Container{Config: cfg, Logger: log}

	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		db, err := dbpostgres.Connect(connectCtx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		c.DB = db

		runner := migration.Runner{FS: migrations.FS, Dir: cfg.Store.MigrationsDir, Logger: log}
		if err := runner.Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		c.Store = repository.NewPostgresStore(db)
		log.Info("collection store ready", zap.String("backend", cfg.Store.Backend), zap.String("db", cfg.Database.DBName))
	default:
		c.Store = repository.NewFileStore(cfg.Store.DataDir)
		log.Info("collection store ready", zap.String("backend", cfg.Store.Backend), zap.String("dir", cfg.Store.DataDir))
	}

	var embedCache embedding.JSONCache
	if cfg.RedisEnabled() {
		c.Cache = cache.NewRedis(ctx, cfg.Redis, log)
		embedCache = c.Cache
	}

	embedder, err := embedding.New(cfg.Embedding, embedCache, cfg.Redis.TTL, log)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Embedder = embedder

	c.Sources = repository.NewStoreProfileSourceRepository(c.Store)
	c.Merged = repository.NewStoreMergedProfileRepository(c.Store)
	c.Jobs = repository.NewStoreJobRepository(c.Store)
	c.Progress = repository.NewStoreRoadmapProgressRepository(c.Store)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
