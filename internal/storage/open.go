package storage

import (
	"context"
	"fmt"

	"github.com/devfolio/portfolio-api/config"
	"github.com/devfolio/portfolio-api/internal/projects/repository"
	"github.com/devfolio/portfolio-api/internal/storage/postgres"
	"github.com/devfolio/portfolio-api/internal/storage/redis"
)

// OpenProjectStore builds the store selected by STORE_BACKEND. The returned close func
// releases backend connections and is never nil.
func OpenProjectStore(ctx context.Context, cfg *config.Config) (repository.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Backend {
	case config.BackendFile:
		doc := repository.NewFileDocument(cfg.Store.ProjectsFile)
		if err := doc.Init(ctx); err != nil {
			return nil, noop, err
		}
		return repository.NewDocumentStore(doc), noop, nil

	case config.BackendRedis:
		client, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		return repository.NewRedisStore(client, cfg.Redis.Key), client.Close, nil

	case config.BackendPostgres:
		db, err := postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		store := repository.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return store, db.Close, nil
	}

	return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
