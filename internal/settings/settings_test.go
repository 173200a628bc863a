package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-terminal/internal/kv"
)

func newSettings(t *testing.T) (*Settings, kv.KV) {
	t.Helper()
	kvs, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return New(kvs, "http://localhost:3000"), kvs
}

func TestBaseURLDefault(t *testing.T) {
	s, _ := newSettings(t)
	assert.Equal(t, "http://localhost:3000", s.BaseURL(context.Background()))
}

func TestBaseURLPersistedWins(t *testing.T) {
	ctx := context.Background()
	s, _ := newSettings(t)

	require.NoError(t, s.SetBaseURL(ctx, "http://10.0.0.5:3000/"))
	assert.Equal(t, "http://10.0.0.5:3000", s.BaseURL(ctx))
}

func TestOfflineModePersists(t *testing.T) {
	ctx := context.Background()
	s, kvs := newSettings(t)

	assert.False(t, s.IsOfflineMode())
	require.NoError(t, s.SetOfflineMode(ctx, true))
	assert.True(t, s.IsOfflineMode())

	// A fresh Settings over the same kv sees the persisted flag after Load.
	again := New(kvs, "http://localhost:3000")
	require.NoError(t, again.Load(ctx))
	assert.True(t, again.IsOfflineMode())

	require.NoError(t, s.SetOfflineMode(ctx, false))
	assert.False(t, s.IsOfflineMode())
}
