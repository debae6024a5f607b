package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/devfolio/portfolio-api/internal/projects/domain"
)

// DefaultRedisKey holds the project document when no key is configured.
const DefaultRedisKey = "portfolio:projects"

// RedisDocument keeps the project document as a single Redis string value.
// A missing key reads as an empty document.
type RedisDocument struct {
	client *redis.Client
	key    string
}

// NewRedisDocument returns a document stored under key.
func NewRedisDocument(client *redis.Client, key string) *RedisDocument {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisDocument{client: client, key: key}
}

// NewRedisStore is a DocumentStore over Redis.
func NewRedisStore(client *redis.Client, key string) *DocumentStore {
	return NewDocumentStore(NewRedisDocument(client, key))
}

func (d *RedisDocument) Load(ctx context.Context) ([]domain.Project, error) {
	data, err := d.client.Get(ctx, d.key).Bytes()
	if err == redis.Nil {
		return []domain.Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project document: %w", err)
	}
	return DecodeDocument(data)
}

func (d *RedisDocument) Save(ctx context.Context, projects []domain.Project) error {
	data, err := EncodeDocument(projects)
	if err != nil {
		return err
	}
	if err := d.client.Set(ctx, d.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set project document: %w", err)
	}
	return nil
}

func (d *RedisDocument) Ping(ctx context.Context) error {
	return d.client.Ping(ctx).Err()
}
