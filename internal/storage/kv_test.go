package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mototransporte/internal/db"
)

func backends(t *testing.T) map[string]KeyValueStore {
	t.Helper()
	dir := t.TempDir()

	bolt, err := OpenBolt(filepath.Join(dir, "kv.bolt"))
	require.NoError(t, err)

	sqlDB, err := db.OpenSQLite(filepath.Join(dir, "kv.sqlite"))
	require.NoError(t, err)

	stores := map[string]KeyValueStore{
		"memory": NewMemoryStore(),
		"bolt":   bolt,
		"sqlite": NewSQLStore(sqlDB),
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestKeyValueStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := store.GetItem(ctx, "students")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, store.SetItem(ctx, "students", []byte(`[{"id":"a"}]`)))
			require.NoError(t, store.SetItem(ctx, "drivers", []byte(`[]`)))
			require.NoError(t, store.SetItem(ctx, "students", []byte(`[{"id":"b"}]`)))

			value, found, err := store.GetItem(ctx, "students")
			require.NoError(t, err)
			assert.True(t, found)
			assert.JSONEq(t, `[{"id":"b"}]`, string(value))

			keys, err := store.Keys(ctx)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"drivers", "students"}, keys)

			require.NoError(t, store.RemoveItem(ctx, "students"))
			require.NoError(t, store.RemoveItem(ctx, "students"))

			_, found, err = store.GetItem(ctx, "students")
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestBoltStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.bolt")

	store, err := OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, store.SetItem(ctx, "routes", []byte(`[{"id":"r1"}]`)))
	require.NoError(t, store.Close())

	store, err = OpenBolt(path)
	require.NoError(t, err)
	defer store.Close()

	value, found, err := store.GetItem(ctx, "routes")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"r1"}]`, string(value))
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	buf := []byte(`[]`)
	require.NoError(t, store.SetItem(ctx, "k", buf))
	buf[0] = 'x'

	value, _, err := store.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(value))
}

func TestQuotaStore(t *testing.T) {
	ctx := context.Background()
	store := WithQuota(NewMemoryStore(), 20)

	require.NoError(t, store.SetItem(ctx, "a", []byte("0123456789")))

	err := store.SetItem(ctx, "b", []byte("0123456789"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// overwriting a key only counts the new value
	require.NoError(t, store.SetItem(ctx, "a", []byte("0123456789abcdefgh")))

	usage, err := store.(*QuotaStore).Usage(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(19), usage)
}

func TestWithQuotaDisabled(t *testing.T) {
	mem := NewMemoryStore()
	assert.Same(t, mem, WithQuota(mem, 0))
}

func TestPostgresQueries(t *testing.T) {
	store := NewPostgresStore(nil)

	sql, args, err := store.q.upsert("students", []byte(`[]`), "now")
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO kv_items (item_key,item_value,updated_at) VALUES ($1,$2,$3) "+
			"ON CONFLICT (item_key) DO UPDATE SET item_value = excluded.item_value, updated_at = excluded.updated_at",
		sql)
	assert.Len(t, args, 3)

	sql, args, err = store.q.get("students")
	require.NoError(t, err)
	assert.Equal(t, "SELECT item_value FROM kv_items WHERE item_key = $1 LIMIT 1", sql)
	assert.Equal(t, []interface{}{"students"}, args)

	sql, _, err = store.q.remove("students")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM kv_items WHERE item_key = $1", sql)
}
