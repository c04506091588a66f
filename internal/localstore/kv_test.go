package localstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseKV runs the contract every backend must satisfy.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "products")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "products", `[{"id":1}]`))
	v, ok, err := kv.Get(ctx, "products")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, v)

	require.NoError(t, kv.Set(ctx, "products", `[]`))
	v, _, err = kv.Get(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)

	require.NoError(t, kv.Remove(ctx, "products"))
	_, ok, err = kv.Get(ctx, "products")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Remove(ctx, "products"), "removing a missing key is not an error")
}

func TestMemStore(t *testing.T) {
	exerciseKV(t, NewMemStore())
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	exerciseKV(t, s)

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "a/b key", "x"))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, "a/b key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	matches, err := filepath.Glob(filepath.Join(dir, ".tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temp files are cleaned up")
}

func TestFileStore_CanceledContext(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Set(ctx, "k", "v"), context.Canceled)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	kv, closeFn, err := Open(ctx, Config{})
	require.NoError(t, err)
	assert.IsType(t, &MemStore{}, kv)
	assert.NoError(t, closeFn())

	kv, closeFn, err = Open(ctx, Config{Driver: DriverFile, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, kv)
	assert.NoError(t, closeFn())

	_, _, err = Open(ctx, Config{Driver: DriverFile})
	assert.Error(t, err)

	_, closeFn, err = Open(ctx, Config{Driver: "etcd"})
	assert.True(t, errors.Is(err, ErrUnknownDriver))
	assert.NotNil(t, closeFn)
}
