package el

// Record is the opaque per-record attribute source EL consumes but never
// owns: a string-keyed, string-valued lookup. Any type satisfying this (a
// flow-file's attribute map, a database row, a struct-backed adapter) can
// be evaluated against without EL depending on its concrete shape.
type Record interface {
	// Attribute returns the named attribute's value and whether it was
	// present at all — a present-but-empty string is distinct from absent.
	Attribute(name string) (value string, ok bool)
}

// RecordSet is an ordered sequence of Records. Attribute resolution
// consults them in order and uses the first Record that defines the
// attribute; if none does, the null-marker Value results.
type RecordSet []Record

// Lookup implements the "first match wins" rule across the set.
func (rs RecordSet) Lookup(name string) (string, bool) {
	for _, r := range rs {
		if r == nil {
			continue
		}
		if v, ok := r.Attribute(name); ok {
			return v, true
		}
	}
	return "", false
}

// MapRecord is a convenience Record backed by a plain map, useful for tests
// and simple callers that don't need recordstore's persisted storage.
type MapRecord map[string]string

// Attribute implements Record.
func (m MapRecord) Attribute(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}
