package kvstore

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SetGetDelete(t *testing.T) {
	s := openInMemory(t)

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set("k", "v1"))
	require.NoError(t, s.Set("k", "v2"))

	v, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v2", v)

	require.NoError(t, s.Delete("k"))
	_, ok, err = s.Get("k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Delete("never-set"))
}

func TestStore_EmptyValueIsPresent(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.Set("k", ""))
	v, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, v)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prefs")

	s, err := Open(DefaultConfig(dir))
	require.NoError(t, err)
	require.NoError(t, s.Set("lastSelectedProjectId", "P1"))
	require.NoError(t, s.Close())

	reopened, err := Open(DefaultConfig(dir))
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get("lastSelectedProjectId")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "P1", v)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(Config{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "path is required")
}

func TestOpen_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig(t.TempDir())
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestConfigDefaults(t *testing.T) {
	cfg := DefaultConfig("/tmp/x")
	require.True(t, cfg.SyncWrites)
	require.False(t, cfg.InMemory)
	require.Equal(t, "/tmp/x", cfg.Path)

	mem := InMemoryConfig()
	require.True(t, mem.InMemory)
	require.False(t, mem.SyncWrites)
}
