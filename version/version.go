/*
Package version implements the order-maintenance substrate every
persistent container is built on: a totally ordered universe of
version handles supporting O(1) comparison and amortized O(1)
insert-after, plus the version tree that maps each handle to the
container root-value recorded at that moment.

Two label schemes exist in the wild (a flat scalar counter, and an
interval scheme where a child's label range nests inside its parent's).
This package implements the interval scheme only: a version's label is
a half-open-feeling range [begin, end], and one version is "less than"
another iff its range strictly contains the other's — the ancestor's
wider range contains the descendant's narrower one. That gives branch-
aware ordering for free: a child version compares greater than its
parent without needing to walk the tree.

This is the same shape of problem bbengfort/x/cfrv solves for Lamport
scalars (a Version type with Equals/Greater/Lesser plus a Factory that
mints new versions); this package generalizes that to interval labels
and a branching history instead of a flat counter.
*/
package version

import "fmt"

// label is the unsigned integer range backing one version. It is
// deliberately unexported: label_type values are not stable across a
// redistribute, so callers must always indirect through a Version
// rather than caching begin/end directly.
type label struct {
	begin, end, freeRange uint64
}

// holder is the non-generic face of a version entry. A Version wraps a
// holder rather than a label directly so that comparisons never need
// to know the payload type T carried by the owning Tree[T] — mirrors
// the abstract version_impl / templated version_internal<T> split in
// the reference design.
type holder interface {
	beginLabel() uint64
	endLabel() uint64
}

// Version is an immutable handle identifying one moment in a
// container's history. The zero Version is "empty": it has no backing
// entry and acts as the bottom sentinel (less than every real version,
// used as a default value). Container iterators mark their end with a
// nil node, not with the empty version.
type Version struct {
	h holder
}

// IsEmpty reports whether v is the zero/default/sentinel version.
func (v Version) IsEmpty() bool {
	return v.h == nil
}

// Less reports whether v is a strict ancestor of o: v's label range
// strictly contains o's. The empty version compares less than every
// non-empty version, and no version compares less than the empty one.
func (v Version) Less(o Version) bool {
	if v.h == nil || o.h == nil {
		return v.h == nil && o.h != nil
	}
	return v.h.beginLabel() < o.h.beginLabel() && o.h.endLabel() < v.h.endLabel()
}

// LessEqual reports whether v equals o or is a strict ancestor of o.
func (v Version) LessEqual(o Version) bool {
	return v == o || v.Less(o)
}

// Equal reports whether v and o name the same version entry. Two
// versions from different trees are never equal even if (by
// coincidence of internal labels) their ranges matched, because
// holders are compared by identity, not by label value.
func (v Version) Equal(o Version) bool {
	return v == o
}

// String renders v the way the reference design's version::str() does:
// "(begin,end)" for a real version, "(empty)" for the sentinel.
func (v Version) String() string {
	if v.h == nil {
		return "(empty)"
	}
	return fmt.Sprintf("(%d,%d)", v.h.beginLabel(), v.h.endLabel())
}
