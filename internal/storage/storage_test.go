package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "ausente")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.MultiSet(ctx, map[string]string{
		"thermoguard_data_token":        "abc",
		"thermoguard_data_user":         `{"id":1}`,
		"thermoguard_data_token_expiry": "1700000000000",
	}))
	require.NoError(t, s.Set(ctx, "thermoguard_data_refresh_token", "r1", 0))

	val, err := s.Get(ctx, "thermoguard_data_token")
	require.NoError(t, err)
	assert.Equal(t, "abc", val)

	require.NoError(t, s.Remove(ctx,
		"thermoguard_data_token",
		"thermoguard_data_user",
		"thermoguard_data_token_expiry",
		"thermoguard_data_refresh_token",
		"nunca_existiu",
	))
	for _, k := range []string{"thermoguard_data_token", "thermoguard_data_user", "thermoguard_data_token_expiry", "thermoguard_data_refresh_token"} {
		_, err := s.Get(ctx, k)
		assert.ErrorIs(t, err, ErrNotFound, k)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStoreTTL(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	require.NoError(t, s.Set(context.Background(), "k", "v", time.Minute))

	now = now.Add(2 * time.Minute)
	_, err := s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(context.Background(), "k", "v", 0))

	second, err := NewFileStore(path)
	require.NoError(t, err)
	val, err := second.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreCorrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{quebrado"), 0o600))
	s, err := NewFileStore(path)
	require.NoError(t, err)
	_, err = s.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = s.Close() })
	exerciseStore(t, s)
}

func TestRedisStoreTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := NewRedisStore("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Set(context.Background(), "refresh:x", "1", time.Minute))
	mr.FastForward(2 * time.Minute)
	_, err = s.Get(context.Background(), "refresh:x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpen(t *testing.T) {
	s, err := Open("memory", "", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = Open("s3", "", "")
	assert.Error(t, err)
}
