/*
Package seq implements two persistent random-access sequences, both
grounded on original_source/persistent/vector:

Sequence is the whole-slice copy-on-write flavor (vector.h): every
mutation copies the entire backing slice into a fresh version, which
is cheap for small sequences and wasteful for large ones.

FatSequence (fatsequence.go) is the fat-node flavor (fat_vector.h):
each slot is its own small fat node with a bounded mod log, so a value
write mints a new version but only copies the backing slice when that
one slot's log overflows — the backing slice itself is still copied on
push/erase, since those change the slice's length rather than a single
slot's value. FatSequence has no Resize.
*/
package seq

import (
	"github.com/bbengfort/persist/persist"
	"github.com/bbengfort/persist/version"
)

func materialize[V any](val V) V {
	nested, ok := persist.AsNested(val)
	if !ok {
		return val
	}
	if snap, ok := nested.Snapshot(nested.Version()).(V); ok {
		return snap
	}
	return val
}

// Sequence is a persistent, random-access sequence of V, copy-on-write
// at the whole-slice granularity.
type Sequence[V any] struct {
	persist.Base[[]V]
}

// New returns an empty persistent sequence.
func New[V any]() *Sequence[V] {
	s := &Sequence[V]{}
	s.Init(version.NewTree[[]V](nil))
	return s
}

func (s *Sequence[V]) cur() []V {
	return s.VTree.GetValue(s.Version())
}

func (s *Sequence[V]) registerNestedValue(val V, index int, at version.Version) {
	persist.RegisterCallback(val, s, at, func() version.Version {
		root := s.VTree.GetValue(at)
		nv := s.VTree.Insert(at, root)
		nested, _ := persist.AsNested(val)
		snap := nested.Snapshot(nested.Version()).(V)
		next := append([]V(nil), s.VTree.GetValue(nv)...)
		next[index] = snap
		s.VTree.Update(nv, next)
		return nv
	})
}

// Get returns the element at index as of the current version.
func (s *Sequence[V]) Get(index int) V {
	at := s.Version()
	val := s.cur()[index]
	s.registerNestedValue(val, index, at)
	return val
}

// Set overwrites the element at index, producing a new version.
func (s *Sequence[V]) Set(index int, val V) {
	defer s.MutationGuard()()
	at := s.SwitchNewVersion()
	next := append([]V(nil), s.cur()...)
	next[index] = materialize(val)
	s.VTree.Update(at, next)
	s.registerNestedValue(val, index, at)
}

// PushBack appends val to the end of the sequence.
func (s *Sequence[V]) PushBack(val V) {
	defer s.MutationGuard()()
	at := s.SwitchNewVersion()
	next := append(append([]V(nil), s.cur()...), materialize(val))
	s.VTree.Update(at, next)
	s.registerNestedValue(val, len(next)-1, at)
}

// Erase removes the element at index.
func (s *Sequence[V]) Erase(index int) {
	defer s.MutationGuard()()
	at := s.SwitchNewVersion()
	cur := s.cur()
	next := make([]V, 0, len(cur)-1)
	next = append(next, cur[:index]...)
	next = append(next, cur[index+1:]...)
	s.VTree.Update(at, next)
}

// Resize grows or shrinks the sequence to n elements, padding new
// elements with val.
func (s *Sequence[V]) Resize(n int, val V) {
	defer s.MutationGuard()()
	at := s.SwitchNewVersion()
	cur := s.cur()
	next := make([]V, n)
	copy(next, cur)
	for i := len(cur); i < n; i++ {
		next[i] = materialize(val)
	}
	s.VTree.Update(at, next)
}

// Size returns the number of elements at the current version.
func (s *Sequence[V]) Size() int {
	return len(s.cur())
}

// Snapshot returns an independent navigator over the same history,
// pinned at v, satisfying persist.Nested.
func (s *Sequence[V]) Snapshot(v version.Version) persist.Nested {
	snap := &Sequence[V]{}
	snap.InitAt(s.VTree, v)
	return snap
}
