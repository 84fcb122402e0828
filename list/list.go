/*
Package list implements a fully persistent doubly linked list, sharing
its fat-node/mod-log mechanics with bst via fatnode, and its version
bookkeeping via persist and version.

It is grounded on original_source/persistent/linked_list — the node
layout and the set of operations (push_front, pop_front, erase, find)
come directly from linked_list.h. As with bst, the tree-level
operations here thread a setter's returned (possibly split) node
identity through every following step rather than assuming the
identity a caller is holding stays valid, which linked_list.h's
pop_front/erase do not do.
*/
package list

import (
	"github.com/bbengfort/persist/persist"
	"github.com/bbengfort/persist/version"
)

// List is a fully persistent doubly linked list of V.
type List[V any] struct {
	persist.Base[*node[V]]
}

// New returns an empty persistent list.
func New[V any]() *List[V] {
	l := &List[V]{}
	l.Init(version.NewTree[*node[V]](nil))
	return l
}

func (l *List[V]) head() *node[V] {
	return l.VTree.GetValue(l.Version())
}

// ctx bundles l and at into the version.Context every node-level call
// takes (§4.3).
func (l *List[V]) ctx(at version.Version) version.Context[*node[V]] {
	return version.NewContext[*node[V]](l, at, l.VTree)
}

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

func (l *List[V]) registerNestedValue(val V, owner *node[V], at version.Version) {
	persist.RegisterCallback(val, l, at, func() version.Version {
		root := l.VTree.GetValue(at)
		nv := l.VTree.Insert(at, root)
		nested, _ := persist.AsNested(val)
		snap := nested.Snapshot(nested.Version()).(V)
		owner.SetValue(snap, l.ctx(nv))
		return nv
	})
}

// PushFront adds value to the front of the list.
func (l *List[V]) PushFront(value V) {
	defer l.MutationGuard()()
	at := l.SwitchNewVersion()
	ctx := l.ctx(at)

	old := l.head()
	n := newNode[V](materialize(value), nil, old)
	l.VTree.Update(at, n)
	l.registerNestedValue(value, n, at)

	if old != nil {
		if newOld := old.SetPrev(n, ctx); newOld != old {
			n.SetNext(newOld, ctx)
		}
	}
}

// PopFront removes the first element of the list, if any.
func (l *List[V]) PopFront() {
	defer l.MutationGuard()()
	at := l.SwitchNewVersion()
	ctx := l.ctx(at)

	old := l.head()
	if old == nil {
		return
	}
	next := old.Next(at)
	l.VTree.Update(at, next)
	if next != nil {
		next.SetPrev(nil, ctx)
	}
}

// Find returns an iterator positioned at the first element equal to
// value per eq, or a done iterator if none matches.
func (l *List[V]) Find(value V, eq func(a, b V) bool) *Iterator[V] {
	at := l.Version()
	for n := l.head(); n != nil; n = n.Next(at) {
		if eq(n.Value(at), value) {
			return &Iterator[V]{at: at, n: n}
		}
	}
	return &Iterator[V]{at: at}
}

// Erase removes the element it points at, if it isn't already done,
// and returns an iterator positioned at the following element.
func (l *List[V]) Erase(it *Iterator[V]) *Iterator[V] {
	if it.Done() {
		return it
	}
	defer l.MutationGuard()()
	at := l.SwitchNewVersion()
	ctx := l.ctx(at)

	n := it.n
	prev := n.Prev(at)
	next := n.Next(at)

	effectivePrev := prev
	if prev == nil {
		l.VTree.Update(at, next)
	} else if newPrev := prev.SetNext(next, ctx); newPrev != prev {
		effectivePrev = newPrev
	}
	if next != nil {
		next.SetPrev(effectivePrev, ctx)
	}

	return &Iterator[V]{at: at, n: next}
}

// Size returns the number of elements in the list at the current
// version.
func (l *List[V]) Size() int {
	at := l.Version()
	count := 0
	for n := l.head(); n != nil; n = n.Next(at) {
		count++
	}
	return count
}

// Snapshot returns an independent navigator over the same history,
// pinned at v, satisfying persist.Nested.
func (l *List[V]) Snapshot(v version.Version) persist.Nested {
	snap := &List[V]{}
	snap.InitAt(l.VTree, v)
	return snap
}

// Iterator walks a list's elements front-to-back as of the version it
// was created with.
type Iterator[V any] struct {
	at version.Version
	n  *node[V]
}

// Begin returns an iterator positioned at the front of the list.
func (l *List[V]) Begin() *Iterator[V] {
	return &Iterator[V]{at: l.Version(), n: l.head()}
}

// Done reports whether the iterator has run past the last element.
func (it *Iterator[V]) Done() bool {
	return it.n == nil
}

// Value returns the current element.
func (it *Iterator[V]) Value() V {
	return it.n.Value(it.at)
}

// Next advances the iterator to the following element.
func (it *Iterator[V]) Next() {
	it.n = it.n.Next(it.at)
}
