package persist

import "github.com/bbengfort/persist/version"

// Nested is the capability a value stored inside a fat-node slot must
// advertise for the nested-structure propagation protocol (§4.7) to
// kick in. It is the runtime analogue of the reference design's SFINAE
// trait: rather than selecting an overload at compile time on whether
// value_type has a nested ::persistent_type, fat nodes type-assert a
// slot's value against this interface at the point they materialize
// it, and take the no-op path for any value that doesn't implement it
// (an int, a string, anything without its own version history).
//
// A container satisfies Nested by embedding Base[T] (which supplies
// Version/SetVersion/AddParent/SetParentVersion/ParentVersion) and
// adding a Snapshot method that returns an independent handle over the
// same history pinned at a given version — the container-specific
// half of "materialize a fresh copy of myself at version v" that Base
// cannot implement generically because it doesn't know the container's
// other fields (its key/value types, its node representation, ...).
type Nested interface {
	Version() version.Version
	SetVersion(version.Version)
	AddParent(parent version.Owner, notify Notifier)
	SetParentVersion(version.Version)
	ParentVersion() version.Version
	Snapshot(v version.Version) Nested
}

// AsNested type-asserts val against the Nested capability interface.
// Containers call this every time a slot's value is written, and on
// the reads listed under RegisterCallback; ok is false for any value that isn't itself a persistent structure,
// which is the common case (most containers hold plain values) and the
// fast, no-op path.
func AsNested(val interface{}) (Nested, bool) {
	n, ok := val.(Nested)
	return n, ok
}

// RegisterCallback implements the per-access half of §4.7 step 1-2: it
// pins val's parent-version to at and installs notify as val's
// parent notifier. Containers call this on every slot write, and on
// reads through bst's Tree.Find and the sequences' Get, so the installed
// closure is bound to the most recent of those accesses' version
// context rather than registered once at construction. Reads through
// list.List (its Find and iterator) and through bst's Iterator.Value do
// not re-register.
func RegisterCallback(val interface{}, owner version.Owner, at version.Version, notify Notifier) {
	n, ok := AsNested(val)
	if !ok {
		return
	}
	n.SetParentVersion(at)
	n.AddParent(owner, notify)
}
