package kv_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/bookmap/pkg/errors"
	"github.com/agentstation/bookmap/pkg/kv"
)

// exerciseStore checks the behaviour every backend must share.
func exerciseStore(t *testing.T, s kv.Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "search")
	require.NoError(t, err)
	assert.False(t, ok, "unset key must report absent")

	require.NoError(t, s.Set(ctx, "search", "alice"))
	require.NoError(t, s.Set(ctx, "genre", ""))

	v, ok, err := s.Get(ctx, "search")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice", v)

	v, ok, err = s.Get(ctx, "genre")
	require.NoError(t, err)
	assert.True(t, ok, "empty string is a stored value")
	assert.Equal(t, "", v)

	require.NoError(t, s.Set(ctx, "search", "frankenstein"))
	v, _, err = s.Get(ctx, "search")
	require.NoError(t, err)
	assert.Equal(t, "frankenstein", v)

	require.NoError(t, s.Delete(ctx, "search"))
	require.NoError(t, s.Delete(ctx, "never-set"))
	_, ok, err = s.Get(ctx, "search")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory(t *testing.T) {
	s := kv.NewMemory()
	exerciseStore(t, s)
	assert.NoError(t, s.Close())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := s.Get(ctx, "search")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "bookmap.json")
	s, err := kv.NewFile(path)
	require.NoError(t, err)
	exerciseStore(t, s)

	require.NoError(t, s.Set(context.Background(), "favorites", "[11,84]"))

	reopened, err := kv.NewFile(path)
	require.NoError(t, err)
	v, ok, err := reopened.Get(context.Background(), "favorites")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[11,84]", v)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must be renamed away")
}

func TestFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmap.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := kv.NewFile(path)
	assert.True(t, pkgerrors.IsParse(err))
}

func TestFileEmptyIsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmap.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s, err := kv.NewFile(path)
	require.NoError(t, err)
	_, ok, err := s.Get(context.Background(), "genre")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmap.db")
	s, err := kv.NewSQLite(context.Background(), path)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Set(context.Background(), "genre", "fantasy"))
	require.NoError(t, s.Close())

	reopened, err := kv.NewSQLite(context.Background(), path)
	require.NoError(t, err)
	defer reopened.Close()
	v, ok, err := reopened.Get(context.Background(), "genre")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "fantasy", v)
}

func TestRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	s := kv.NewRedis(client, "bookmap:")
	exerciseStore(t, s)

	require.NoError(t, s.Set(context.Background(), "favorites", "[1]"))
	raw, err := mr.Get("bookmap:favorites")
	require.NoError(t, err)
	assert.Equal(t, "[1]", raw)
	assert.NoError(t, s.Close())
}

func TestRedisFromURL(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := kv.NewRedisFromURL(context.Background(), "redis://"+mr.Addr()+"/0", "test:")
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)

	_, err = kv.NewRedisFromURL(context.Background(), "", "")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := kv.Open(ctx, kv.Config{})
	require.NoError(t, err)
	assert.IsType(t, &kv.Memory{}, s)

	s, err = kv.Open(ctx, kv.Config{Backend: "FILE", Path: filepath.Join(t.TempDir(), "s.json")})
	require.NoError(t, err)
	assert.IsType(t, &kv.File{}, s)

	s, err = kv.Open(ctx, kv.Config{Backend: kv.BackendSQLite, Path: ":memory:"})
	require.NoError(t, err)
	assert.IsType(t, &kv.SQLite{}, s)
	require.NoError(t, s.Close())

	_, err = kv.Open(ctx, kv.Config{Backend: "mongo"})
	var cfgErr *pkgerrors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = kv.Open(ctx, kv.Config{Backend: kv.BackendFile})
	assert.Error(t, err)
}
