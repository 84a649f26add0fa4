package recordstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowbeam/el/pkg/el/recordstore"
)

// storeFactory creates a store instance for testing.
type storeFactory func(t *testing.T) recordstore.Store

// storeContractTest runs contract tests against any Store implementation.
func storeContractTest(t *testing.T, name string, factory storeFactory) {
	t.Run(name+"/Put_and_Load", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		attrs := map[string]string{"key": "value"}
		require.NoError(t, store.PutRecord("set-1", 0, attrs))

		records, err := store.LoadRecordSet("set-1")
		require.NoError(t, err)
		require.Len(t, records, 1)
		v, ok := records[0].Attribute("key")
		require.True(t, ok)
		assert.Equal(t, "value", v)
	})

	t.Run(name+"/Load_NotFound", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		_, err := store.LoadRecordSet("nonexistent")
		assert.ErrorIs(t, err, recordstore.ErrNotFound)
	})

	t.Run(name+"/Put_Overwrite", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.PutRecord("set-1", 0, map[string]string{"v": "first"}))
		require.NoError(t, store.PutRecord("set-1", 0, map[string]string{"v": "second"}))

		records, err := store.LoadRecordSet("set-1")
		require.NoError(t, err)
		v, _ := records[0].Attribute("v")
		assert.Equal(t, "second", v)
	})

	t.Run(name+"/List_Empty", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		infos, err := store.ListRecords("nonexistent")
		require.NoError(t, err)
		assert.Empty(t, infos)
	})

	t.Run(name+"/List_Ordered", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.PutRecord("set-1", 2, map[string]string{"v": "ccc"}))
		require.NoError(t, store.PutRecord("set-1", 0, map[string]string{"v": "a"}))
		require.NoError(t, store.PutRecord("set-1", 1, map[string]string{"v": "bb"}))

		infos, err := store.ListRecords("set-1")
		require.NoError(t, err)
		require.Len(t, infos, 3)

		assert.Equal(t, 0, infos[0].Index)
		assert.Equal(t, 1, infos[1].Index)
		assert.Equal(t, 2, infos[2].Index)
	})

	t.Run(name+"/Delete", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.PutRecord("set-1", 0, map[string]string{"v": "data"}))
		require.NoError(t, store.DeleteRecord("set-1", 0))

		_, err := store.LoadRecordSet("set-1")
		assert.ErrorIs(t, err, recordstore.ErrNotFound)
	})

	t.Run(name+"/Delete_Nonexistent", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		err := store.DeleteRecord("nonexistent", 0)
		assert.NoError(t, err)
	})

	t.Run(name+"/DeleteRecordSet", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.PutRecord("set-1", 0, map[string]string{"v": "a"}))
		require.NoError(t, store.PutRecord("set-1", 1, map[string]string{"v": "b"}))
		require.NoError(t, store.PutRecord("set-2", 0, map[string]string{"v": "other"}))

		require.NoError(t, store.DeleteRecordSet("set-1"))

		infos, err := store.ListRecords("set-1")
		require.NoError(t, err)
		assert.Empty(t, infos)

		infos, err = store.ListRecords("set-2")
		require.NoError(t, err)
		assert.Len(t, infos, 1)
	})

	t.Run(name+"/DeleteRecordSet_Nonexistent", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		err := store.DeleteRecordSet("nonexistent")
		assert.NoError(t, err)
	})

	t.Run(name+"/MultipleRecordSets", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.PutRecord("set-1", 0, map[string]string{"v": "set1-a"}))
		require.NoError(t, store.PutRecord("set-1", 1, map[string]string{"v": "set1-b"}))
		require.NoError(t, store.PutRecord("set-2", 0, map[string]string{"v": "set2-a"}))

		records1, err := store.LoadRecordSet("set-1")
		require.NoError(t, err)
		assert.Len(t, records1, 2)

		records2, err := store.LoadRecordSet("set-2")
		require.NoError(t, err)
		assert.Len(t, records2, 1)
	})

	t.Run(name+"/Close_ThenError", func(t *testing.T) {
		store := factory(t)
		require.NoError(t, store.Close())

		err := store.PutRecord("set-1", 0, map[string]string{"v": "data"})
		assert.ErrorIs(t, err, recordstore.ErrStoreClosed)

		_, err = store.LoadRecordSet("set-1")
		assert.ErrorIs(t, err, recordstore.ErrStoreClosed)

		_, err = store.ListRecords("set-1")
		assert.ErrorIs(t, err, recordstore.ErrStoreClosed)
	})
}

// TestMemoryStore runs contract tests against MemoryStore.
func TestMemoryStore(t *testing.T) {
	factory := func(t *testing.T) recordstore.Store {
		return recordstore.NewMemoryStore()
	}
	storeContractTest(t, "MemoryStore", factory)
}

// TestSQLiteStore runs contract tests against SQLiteStore.
func TestSQLiteStore(t *testing.T) {
	factory := func(t *testing.T) recordstore.Store {
		store, err := recordstore.NewSQLiteStore(":memory:")
		require.NoError(t, err)
		return store
	}
	storeContractTest(t, "SQLiteStore", factory)
}
