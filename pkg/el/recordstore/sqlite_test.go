package recordstore_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowbeam/el/pkg/el/recordstore"
)

func TestSQLiteStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store1, err := recordstore.NewSQLiteStore(dbPath)
	require.NoError(t, err)

	require.NoError(t, store1.PutRecord("set-1", 0, map[string]string{"name": "persistent"}))
	require.NoError(t, store1.Close())

	store2, err := recordstore.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store2.Close()

	records, err := store2.LoadRecordSet("set-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	v, ok := records[0].Attribute("name")
	require.True(t, ok)
	assert.Equal(t, "persistent", v)
}

func TestSQLiteStore_InvalidPath(t *testing.T) {
	_, err := recordstore.NewSQLiteStore("/nonexistent/path/db.sqlite")
	assert.Error(t, err)
}

func TestSQLiteStore_CloseIdempotent(t *testing.T) {
	store, err := recordstore.NewSQLiteStore(":memory:")
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_Concurrent(t *testing.T) {
	store, err := recordstore.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	const numGoroutines = 50
	const numOps = 20

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()

			setID := "set-" + string(rune('a'+id%26))
			for j := 0; j < numOps; j++ {
				attrs := map[string]string{"k": "v"}

				switch j % 4 {
				case 0, 1:
					_ = store.PutRecord(setID, j%10, attrs)
				case 2:
					_, _ = store.LoadRecordSet(setID)
				case 3:
					_, _ = store.ListRecords(setID)
				}
			}
		}(i)
	}

	wg.Wait()
}

func TestSQLiteStore_ManyAttributes(t *testing.T) {
	store, err := recordstore.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	attrs := make(map[string]string, 1000)
	for i := 0; i < 1000; i++ {
		attrs["attr"+string(rune(i))] = "value"
	}

	require.NoError(t, store.PutRecord("set-1", 0, attrs))

	records, err := store.LoadRecordSet("set-1")
	require.NoError(t, err)
	require.Len(t, records, 1)

	infos, err := store.ListRecords("set-1")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, 1000, infos[0].AttrCount)
}

func TestSQLiteStore_FileSizeGrowth(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "growth.db")

	store, err := recordstore.NewSQLiteStore(dbPath)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		attrs := map[string]string{"data": string(make([]byte, 10000))}
		require.NoError(t, store.PutRecord("set-1", i, attrs))
	}

	require.NoError(t, store.Close())

	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(50000))
}

func TestSQLiteStore_OverwriteUpdatesAttributes(t *testing.T) {
	store, err := recordstore.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.PutRecord("set-1", 0, map[string]string{"name": "first"}))
	require.NoError(t, store.PutRecord("set-1", 1, map[string]string{"name": "second"}))
	require.NoError(t, store.PutRecord("set-1", 0, map[string]string{"name": "updated"}))

	infos, err := store.ListRecords("set-1")
	require.NoError(t, err)
	require.Len(t, infos, 2)

	records, err := store.LoadRecordSet("set-1")
	require.NoError(t, err)
	v, ok := records[0].Attribute("name")
	require.True(t, ok)
	assert.Equal(t, "updated", v)
}
