package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfolio/portfolio-api/internal/projects/domain"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Ping(context.Background()).Err())
	return client, mr
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, "")

	t.Run("missing key reads as empty", func(t *testing.T) {
		projects, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, projects)
	})

	t.Run("create writes the whole document under the default key", func(t *testing.T) {
		_, err := store.Create(ctx, testProject("a"))
		require.NoError(t, err)
		_, err = store.Create(ctx, testProject("b"))
		require.NoError(t, err)

		raw, err := mr.Get(DefaultRedisKey)
		require.NoError(t, err)
		projects, err := DecodeDocument([]byte(raw))
		require.NoError(t, err)
		assert.Len(t, projects, 2)

		assert.Zero(t, mr.TTL(DefaultRedisKey), "document must not expire")
	})

	t.Run("update and delete", func(t *testing.T) {
		p, err := store.Update(ctx, "a", func(p *domain.Project) error {
			p.Featured = true
			return nil
		})
		require.NoError(t, err)
		assert.True(t, p.Featured)

		require.NoError(t, store.Delete(ctx, "b"))
		assert.ErrorIs(t, store.Delete(ctx, "b"), domain.ErrNotFound)

		projects, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.True(t, projects[0].Featured)
	})

	t.Run("corrupt value", func(t *testing.T) {
		require.NoError(t, mr.Set(DefaultRedisKey, "{}"))
		_, err := store.List(ctx)
		assert.ErrorIs(t, err, domain.ErrStoreCorrupt)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(ctx))
	})
}

func TestRedisDocument_CustomKey(t *testing.T) {
	ctx := context.Background()
	client, mr := setupTestRedis(t)

	doc := NewRedisDocument(client, "site:projects")
	require.NoError(t, doc.Save(ctx, []domain.Project{testProject("x")}))

	assert.True(t, mr.Exists("site:projects"))
	assert.False(t, mr.Exists(DefaultRedisKey))
}
