package recordstore

import (
	"sort"
	"sync"
	"time"

	"github.com/flowbeam/el/pkg/el"
)

// MemoryStore is an in-memory record store for testing. Data is lost when
// the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]map[int]storedRecord // setID -> index -> record
	closed bool
}

type storedRecord struct {
	attrs     map[string]string
	timestamp time.Time
}

// NewMemoryStore creates a new in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[int]storedRecord),
	}
}

// PutRecord implements Store.
func (m *MemoryStore) PutRecord(setID string, index int, attrs map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if m.data[setID] == nil {
		m.data[setID] = make(map[int]storedRecord)
	}

	copied := make(map[string]string, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}

	m.data[setID][index] = storedRecord{
		attrs:     copied,
		timestamp: time.Now().UTC(),
	}

	return nil
}

// LoadRecordSet implements Store.
func (m *MemoryStore) LoadRecordSet(setID string) (el.RecordSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	set, ok := m.data[setID]
	if !ok || len(set) == 0 {
		return nil, ErrNotFound
	}

	indices := make([]int, 0, len(set))
	for idx := range set {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	records := make(el.RecordSet, 0, len(indices))
	for _, idx := range indices {
		records = append(records, attrRecord(set[idx].attrs))
	}
	return records, nil
}

// ListRecords implements Store.
func (m *MemoryStore) ListRecords(setID string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	set, ok := m.data[setID]
	if !ok {
		return nil, nil
	}

	infos := make([]Info, 0, len(set))
	for idx, rec := range set {
		infos = append(infos, Info{
			SetID:     setID,
			Index:     idx,
			Timestamp: rec.timestamp,
			AttrCount: len(rec.attrs),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Index < infos[j].Index
	})

	return infos, nil
}

// DeleteRecord implements Store.
func (m *MemoryStore) DeleteRecord(setID string, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if set, ok := m.data[setID]; ok {
		delete(set, index)
	}
	return nil
}

// DeleteRecordSet implements Store.
func (m *MemoryStore) DeleteRecordSet(setID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, setID)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the total number of records across all sets. Useful for
// testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, set := range m.data {
		count += len(set)
	}
	return count
}
