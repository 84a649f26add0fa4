package recordstore

import (
	"encoding/json"
	"time"
)

// Version is the current snapshot format version. Increment when making
// breaking changes to the snapshot structure.
const Version = 1

// Snapshot is the persisted form of one record: its attribute map plus
// enough metadata to place it back into its record set in order.
type Snapshot struct {
	Version    int               `json:"version"`
	SetID      string            `json:"set_id"`
	Index      int               `json:"index"`
	Timestamp  time.Time         `json:"timestamp"`
	Attributes map[string]string `json:"attributes"`
}

// Marshal serializes a snapshot to JSON.
func (s *Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalSnapshot deserializes a snapshot from JSON.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// NewSnapshot creates a new snapshot with the given parameters.
func NewSnapshot(setID string, index int, attrs map[string]string) *Snapshot {
	return &Snapshot{
		Version:    Version,
		SetID:      setID,
		Index:      index,
		Timestamp:  time.Now().UTC(),
		Attributes: attrs,
	}
}

// Record adapts a Snapshot into an el.Record.
func (s *Snapshot) Record() attrRecord {
	return attrRecord(s.Attributes)
}

type attrRecord map[string]string

func (r attrRecord) Attribute(name string) (string, bool) {
	v, ok := r[name]
	return v, ok
}
