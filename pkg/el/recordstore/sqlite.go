package recordstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/flowbeam/el/pkg/el"
)

// SQLiteStore persists record sets to SQLite. It is suitable for
// single-process use in demos and integration test fixtures.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite record store. path is a file path
// (e.g. "./records.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			set_id TEXT NOT NULL,
			idx INTEGER NOT NULL,
			timestamp TEXT NOT NULL,
			attributes TEXT NOT NULL,
			PRIMARY KEY (set_id, idx)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_records_set_id
		ON records(set_id)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// PutRecord implements Store.
func (s *SQLiteStore) PutRecord(setID string, index int, attrs map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	encoded, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("encode attributes: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO records (set_id, idx, timestamp, attributes)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(set_id, idx) DO UPDATE SET
			timestamp = excluded.timestamp,
			attributes = excluded.attributes
	`, setID, index, time.Now().UTC().Format(time.RFC3339Nano), string(encoded))
	if err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

// LoadRecordSet implements Store.
func (s *SQLiteStore) LoadRecordSet(setID string) (el.RecordSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT attributes FROM records
		WHERE set_id = ?
		ORDER BY idx
	`, setID)
	if err != nil {
		return nil, fmt.Errorf("load record set: %w", err)
	}
	defer rows.Close()

	var records el.RecordSet
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		var attrs map[string]string
		if err := json.Unmarshal([]byte(encoded), &attrs); err != nil {
			return nil, fmt.Errorf("decode attributes: %w", err)
		}
		records = append(records, attrRecord(attrs))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records, nil
}

// ListRecords implements Store.
func (s *SQLiteStore) ListRecords(setID string) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT idx, timestamp, attributes FROM records
		WHERE set_id = ?
		ORDER BY idx
	`, setID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var info Info
		var timestamp, encoded string
		if err := rows.Scan(&info.Index, &timestamp, &encoded); err != nil {
			return nil, fmt.Errorf("scan record info: %w", err)
		}
		info.SetID = setID
		info.Timestamp, _ = time.Parse(time.RFC3339Nano, timestamp)
		var attrs map[string]string
		if err := json.Unmarshal([]byte(encoded), &attrs); err == nil {
			info.AttrCount = len(attrs)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return infos, nil
}

// DeleteRecord implements Store.
func (s *SQLiteStore) DeleteRecord(setID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		DELETE FROM records WHERE set_id = ? AND idx = ?
	`, setID, index)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// DeleteRecordSet implements Store.
func (s *SQLiteStore) DeleteRecordSet(setID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		DELETE FROM records WHERE set_id = ?
	`, setID)
	if err != nil {
		return fmt.Errorf("delete record set: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
