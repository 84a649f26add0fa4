// Package recordstore provides a concrete, optional Record/RecordSet
// implementation backed by SQLite (or memory, for tests), for callers who
// want to persist and query attribute sets outside of EL itself — a demo
// harness or integration-test fixture, not part of the EL core. EL's own
// code never imports this package.
package recordstore

import (
	"errors"
	"time"

	"github.com/flowbeam/el/pkg/el"
)

// Store persists named record sets: ordered sequences of attribute maps
// keyed by set ID and record index. Implementations must be safe for
// concurrent use.
type Store interface {
	// PutRecord stores (or overwrites) one record's attributes at index
	// within the named record set.
	PutRecord(setID string, index int, attrs map[string]string) error

	// LoadRecordSet retrieves every record of setID, in index order, as an
	// el.RecordSet ready to pass to Expression.Evaluate. Returns
	// ErrNotFound if the set has no records.
	LoadRecordSet(setID string) (el.RecordSet, error)

	// ListRecords returns metadata for every record in setID, ordered by
	// index. Returns an empty slice (not an error) if the set is empty.
	ListRecords(setID string) ([]Info, error)

	// DeleteRecord removes a single record. Returns nil if it doesn't exist.
	DeleteRecord(setID string, index int) error

	// DeleteRecordSet removes every record in setID. Returns nil if the
	// set has no records.
	DeleteRecordSet(setID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides metadata about one stored record without loading its
// attributes.
type Info struct {
	SetID     string
	Index     int
	Timestamp time.Time
	AttrCount int
}

// Sentinel errors for record store operations.
var (
	// ErrNotFound indicates a record set has no stored records.
	ErrNotFound = errors.New("recordstore: record set not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("recordstore: store closed")
)
