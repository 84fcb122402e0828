/*
Package fatnode implements the bounded modification log shared by
every concrete container's node type (§4.5): a fixed-capacity sequence
of (field, version, value) records, with get-latest-at-or-before-v
lookup and overflow handling left to the caller (splitting a node
needs container-specific knowledge — its key, its baseline fields, how
to reparent neighbors — that this package deliberately does not know
about).

The log stores values as interface{} rather than a single concrete
type because a fat node's mutable fields are not homogeneous: an
ordered-map node versions both a value (value_type) and three node
pointers (left/right/back-pointer), all through the one shared,
capacity-bounded log the reference design uses. Field identity is an
int the caller defines (its own small enum), not something this
package interprets.
*/
package fatnode

import "github.com/bbengfort/persist/version"

// Entry is one record in a mod log: field changed, the version the
// change takes effect at, and the new value.
type Entry struct {
	Field int
	At    version.Version
	Value interface{}
}

// Log is a fixed-capacity, append-only sequence of Entry records.
// Entries are stored unordered; lookups scan for the matching field
// with the maximum version at-or-before the query version, which is
// well-defined because reads are always along a single ancestor chain
// (§4.5, "Ordering in the log").
type Log struct {
	entries  []Entry
	capacity int
}

// NewLog returns an empty log with room for capacity entries.
func NewLog(capacity int) *Log {
	return &Log{entries: make([]Entry, 0, capacity), capacity: capacity}
}

// newLogWithEntries returns a log preloaded with entries (used when a
// split seeds the successor node's log with the transferred half).
func newLogWithEntries(capacity int, entries []Entry) *Log {
	l := &Log{entries: make([]Entry, len(entries), capacity), capacity: capacity}
	copy(l.entries, entries)
	return l
}

// Full reports whether the log has no room for another entry.
func (l *Log) Full() bool {
	return len(l.entries) >= l.capacity
}

// Add appends a new record. The caller must check Full first — Add
// panics on overflow because every caller is expected to route through
// split-on-overflow before ever calling Add on a full log.
func (l *Log) Add(field int, at version.Version, value interface{}) {
	if l.Full() {
		panic("fatnode: Add called on a full mod log")
	}
	l.entries = append(l.entries, Entry{Field: field, At: at, Value: value})
}

// Get returns the payload of the entry for field with the maximum
// version at-or-before at, and true — or false if no such entry
// exists (the caller should fall back to the node's baseline value).
func (l *Log) Get(field int, at version.Version) (interface{}, bool) {
	var best *Entry
	for i := range l.entries {
		e := &l.entries[i]
		if e.Field != field || !e.At.LessEqual(at) {
			continue
		}
		if best == nil || best.At.Less(e.At) {
			best = e
		}
	}
	if best == nil {
		return nil, false
	}
	return best.Value, true
}

// Split implements the overflow half of §4.5: it truncates the
// receiver in place to its first half (the entries the original node
// keeps) and returns a fresh log, of the same capacity, preloaded with
// the second half (the entries the successor node inherits). Callers
// compute the successor's baseline field values from the receiver
// *after* calling Split, so that the baseline reflects only the kept
// first half; the transferred entries live on in the returned log.
func (l *Log) Split() *Log {
	half := l.capacity / 2
	transferred := append([]Entry(nil), l.entries[half:]...)
	l.entries = l.entries[:half:half]
	return newLogWithEntries(l.capacity, transferred)
}

// Len returns the number of occupied entries (for introspection/tests).
func (l *Log) Len() int {
	return len(l.entries)
}
