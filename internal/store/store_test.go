package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()
	dir := t.TempDir()
	lite, err := OpenSQLite(filepath.Join(dir, "nested", "komorebi.db"))
	require.NoError(t, err)
	bdg, err := OpenBadger(filepath.Join(dir, "badger"), zap.NewNop())
	require.NoError(t, err)
	kvs := map[string]KV{
		"sqlite": lite,
		"badger": bdg,
		"memory": NewMemory(),
	}
	t.Cleanup(func() {
		for _, kv := range kvs {
			_ = kv.Close()
		}
	})
	return kvs
}

func TestKVContract(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set(ctx, "komorebi_b", `{"x":1}`))
			require.NoError(t, kv.Set(ctx, "komorebi_a", "plain"))
			require.NoError(t, kv.Set(ctx, "komorebi_a", "replaced"))

			v, ok, err := kv.Get(ctx, "komorebi_a")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "replaced", v)

			keys, err := kv.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"komorebi_a", "komorebi_b"}, keys)

			require.NoError(t, kv.Delete(ctx, "komorebi_a"))
			require.NoError(t, kv.Delete(ctx, "komorebi_a"))
			_, ok, err = kv.Get(ctx, "komorebi_a")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSetAllAndPrefix(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, SetAll(ctx, kv, map[string]string{
				"komorebi_day_2024-01-02": "{}",
				"komorebi_day_2024-01-01": "{}",
				"other_thing":             "x",
			}))
			keys, err := KeysWithPrefix(ctx, kv, "komorebi_day_")
			require.NoError(t, err)
			assert.Equal(t, []string{"komorebi_day_2024-01-01", "komorebi_day_2024-01-02"}, keys)
		})
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "komorebi.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestOpenBackends(t *testing.T) {
	kv, err := Open(BackendMemory, "", nil)
	require.NoError(t, err)
	require.NoError(t, kv.Close())

	_, err = Open(Backend("postgres"), "", nil)
	assert.True(t, errors.Is(err, ErrUnknownBackend))

	b, err := ParseBackend("")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, b)
	b, err = ParseBackend("Badger")
	require.NoError(t, err)
	assert.Equal(t, BackendBadger, b)
}

func TestNamespaceKeys(t *testing.T) {
	ns := NS("")
	assert.Equal(t, "komorebi_config_v1", ns.Config())
	assert.Equal(t, "komorebi_gemini_key", ns.APIKey())
	assert.Equal(t, "komorebi_day_2024-05-01", ns.Day("2024-05-01"))
	assert.Equal(t, "komorebi_", ns.Prefix())

	date, ok := ns.DateFromKey("komorebi_day_2024-05-01")
	assert.True(t, ok)
	assert.Equal(t, "2024-05-01", date)
	_, ok = ns.DateFromKey("komorebi_config_v1")
	assert.False(t, ok)

	assert.Equal(t, "test_day_x", NS("test").Day("x"))
}
