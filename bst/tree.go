/*
Package bst implements a fully persistent ordered map: every mutation
produces a new, independently addressable version of the whole
structure while past versions remain exactly as they were, built on
the fat-node/mod-log scheme in fatnode and the version bookkeeping in
persist and version.

It is grounded on original_source/persistent/binary_tree — its
node-level split-and-reparent mechanics are followed closely
(binary_tree_node.h), while the tree-level insert/find/erase logic
here is a clean reimplementation rather than a port of
binary_tree.h's operator[]/insert/erase, which mixes two incompatible
node-method signatures and never promotes a split successor back into
its caller's local variable — both of which would reintroduce bugs
standard in-order-successor deletion doesn't have. See DESIGN.md for
the erase strategy this package uses instead.
*/
package bst

import (
	"reflect"

	"github.com/bbengfort/persist/persist"
	"github.com/bbengfort/persist/version"
)

// Tree is a persistent ordered map from K to V. The zero value is not
// usable; construct one with New.
type Tree[K any, V any] struct {
	persist.Base[*node[K, V]]
	less func(a, b K) bool
}

// New returns an empty persistent ordered map, ordered by less.
func New[K any, V any](less func(a, b K) bool) *Tree[K, V] {
	t := &Tree[K, V]{less: less}
	t.Init(version.NewTree[*node[K, V]](nil))
	return t
}

func (t *Tree[K, V]) root() *node[K, V] {
	return t.VTree.GetValue(t.Version())
}

// ctx bundles t and at into the version.Context every node-level call
// takes, so node.go never has to carry an (at, t) pair of its own
// alongside the Context type that already exists to unify them (§4.3).
func (t *Tree[K, V]) ctx(at version.Version) version.Context[*node[K, V]] {
	return version.NewContext[*node[K, V]](t, at, t.VTree)
}

// findParent walks from n toward where key belongs, returning the
// last node visited: either the node holding key, or the node that
// would become key's parent if key were inserted now.
func (t *Tree[K, V]) findParent(key K, n *node[K, V], at version.Version) *node[K, V] {
	for {
		switch {
		case t.less(key, n.key):
			left := n.Left(at)
			if left == nil {
				return n
			}
			n = left
		case t.less(n.key, key):
			right := n.Right(at)
			if right == nil {
				return n
			}
			n = right
		default:
			return n
		}
	}
}

// Find returns the value stored at key and true, or the zero value
// and false if key is absent at the current version.
func (t *Tree[K, V]) Find(key K) (V, bool) {
	var zero V
	at := t.Version()
	root := t.root()
	if root == nil {
		return zero, false
	}
	parent := t.findParent(key, root, at)
	if t.less(key, parent.key) || t.less(parent.key, key) {
		return zero, false
	}
	val := parent.Value(at)
	// A read re-registers the nested-propagation callback on whatever
	// is currently in the slot, just as a write does (§4.7): the
	// closure installed here always reflects the most recent version
	// this slot was touched at, so a value read out, mutated, and
	// bubbled back up never does so against a stale outer version.
	t.registerNestedValue(val, parent, at)
	return val, true
}

// materialize returns val unchanged unless it is itself a persistent
// structure, in which case it returns an immutable snapshot pinned at
// val's current version. Every value written into a node's slot goes
// through this first, so that a slot set at version v keeps reading
// back exactly what was stored at v even after the caller goes on to
// mutate the live structure further (§4.7).
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

// registerNestedValue installs the nested-structure propagation
// callback (§4.7) on val if it is itself a persistent structure: any
// future mutation of val will branch the owning node's outer tree
// forward and splice in a fresh immutable snapshot of val at the new
// outer version.
func (t *Tree[K, V]) registerNestedValue(val V, owner *node[K, V], at version.Version) {
	persist.RegisterCallback(val, t, at, func() version.Version {
		root := t.VTree.GetValue(at)
		nv := t.VTree.Insert(at, root)
		nested, _ := persist.AsNested(val)
		snap := nested.Snapshot(nested.Version()).(V)
		owner.SetValue(snap, t.ctx(nv))
		return nv
	})
}

// Set inserts key with value, or overwrites the value already stored
// at key, producing a new version of the tree. If key is already
// present with a value equal to value (per reflect.DeepEqual — V
// carries no comparable constraint, so this is the same fallback
// google-deps.dev/util/resolve/maven/resolve.go reaches for when
// comparing arbitrary structures; see DESIGN.md), Set is a no-op: no
// new version is minted, matching the "equal key, equal value" case
// having no effect on history.
func (t *Tree[K, V]) Set(key K, value V) {
	before := t.Version()
	if root := t.VTree.GetValue(before); root != nil {
		existing := t.findParent(key, root, before)
		if !t.less(key, existing.key) && !t.less(existing.key, key) {
			if reflect.DeepEqual(existing.Value(before), value) {
				return
			}
		}
	}

	defer t.MutationGuard()()
	at := t.SwitchNewVersion()
	ctx := t.ctx(at)

	root := t.root()
	if root == nil {
		n := newNode[K, V](key, materialize(value), nil, nil, nil)
		t.VTree.Update(at, n)
		t.registerNestedValue(value, n, at)
		return
	}

	parent := t.findParent(key, root, at)
	switch {
	case t.less(key, parent.key):
		child := newNode[K, V](key, materialize(value), nil, nil, parent)
		if newParent := parent.SetLeft(child, ctx); newParent != parent {
			child.SetBack(newParent, ctx)
			t.reparentIfRoot(parent, newParent, at)
		}
		t.registerNestedValue(value, child, at)
	case t.less(parent.key, key):
		child := newNode[K, V](key, materialize(value), nil, nil, parent)
		if newParent := parent.SetRight(child, ctx); newParent != parent {
			child.SetBack(newParent, ctx)
			t.reparentIfRoot(parent, newParent, at)
		}
		t.registerNestedValue(value, child, at)
	default:
		parent.SetValue(value, ctx)
	}
}

// reparentIfRoot updates the tree's stored root payload when a split
// promoted old to new and old had no parent of its own (i.e. old was
// the root). Splits below the root are already published by
// splitAndUpdate; this only handles the case where Set's own caller
// (not a cascading split) is holding the stale root identity.
func (t *Tree[K, V]) reparentIfRoot(old, new *node[K, V], at version.Version) {
	if old.Back(at) == nil && t.root() == old {
		t.VTree.Update(at, new)
	}
}

// replaceChild rewrites parent's child slot that used to hold old so
// that it holds new instead (or updates the tree's root payload if
// parent is nil, meaning old was the root), then sets new's back
// pointer to match. It returns new's identity after that back-pointer
// write, which may differ from new if the write overflowed new's log
// and triggered its own split.
func (t *Tree[K, V]) replaceChild(parent, old, new *node[K, V], at version.Version) *node[K, V] {
	ctx := t.ctx(at)
	if parent == nil {
		t.VTree.Update(at, new)
	} else {
		var newParent *node[K, V]
		if parent.Left(at) == old {
			newParent = parent.SetLeft(new, ctx)
		} else {
			newParent = parent.SetRight(new, ctx)
		}
		t.reparentIfRoot(parent, newParent, at)
		parent = newParent
	}
	if new == nil {
		return nil
	}
	return new.SetBack(parent, ctx)
}

// Value returns the value at key, inserting the zero value first if
// key is absent — the operator[] equivalent from the reference design.
func (t *Tree[K, V]) Value(key K) V {
	if v, ok := t.Find(key); ok {
		return v
	}
	var zero V
	t.Set(key, zero)
	v, _ := t.Find(key)
	return v
}

// Erase removes key from the tree, if present, via standard two-child
// BST deletion: a leaf or one-child node is spliced out directly, and
// a two-child node has its in-order successor spliced out of its own
// position and re-linked into the deleted node's place — rather than
// the original source's "copy the successor's key into the deleted
// node" shortcut, which doesn't typecheck against an immutable node
// key (see DESIGN.md).
func (t *Tree[K, V]) Erase(key K) {
	defer t.MutationGuard()()
	at := t.SwitchNewVersion()
	ctx := t.ctx(at)

	root := t.root()
	if root == nil {
		return
	}
	target := t.findParent(key, root, at)
	if t.less(key, target.key) || t.less(target.key, key) {
		return
	}

	left := target.Left(at)
	right := target.Right(at)

	if left != nil && right != nil {
		succ := right.leftmostChild(at)
		succParent := succ.Back(at)
		succRight := succ.Right(at)

		rightForSucc := right
		if succParent == target {
			rightForSucc = succRight
		} else {
			t.replaceChild(succParent, succ, succRight, at)
		}

		succ = succ.SetLeft(left, ctx)
		succ = succ.SetRight(rightForSucc, ctx)
		if newLeft := left.SetBack(succ, ctx); newLeft != left {
			succ = succ.SetLeft(newLeft, ctx)
		}
		if rightForSucc != nil {
			if newRight := rightForSucc.SetBack(succ, ctx); newRight != rightForSucc {
				succ = succ.SetRight(newRight, ctx)
			}
		}
		t.replaceChild(target.Back(at), target, succ, at)
		return
	}

	child := left
	if child == nil {
		child = right
	}
	t.replaceChild(target.Back(at), target, child, at)
}

// Size returns the number of entries in the tree at the current
// version.
func (t *Tree[K, V]) Size() int {
	root := t.root()
	if root == nil {
		return 0
	}
	return root.size(t.Version())
}

// Snapshot returns an independent navigator over the same history,
// pinned at v, satisfying persist.Nested so a Tree can itself be
// stored as a value inside another persistent container.
func (t *Tree[K, V]) Snapshot(v version.Version) persist.Nested {
	snap := &Tree[K, V]{less: t.less}
	snap.InitAt(t.VTree, v)
	return snap
}

// Iterator walks a tree's entries in ascending key order as of the
// version it was created with.
type Iterator[K any, V any] struct {
	at version.Version
	n  *node[K, V]
}

// Begin returns an iterator positioned at the smallest key, or a
// done iterator if the tree is empty at the current version.
func (t *Tree[K, V]) Begin() *Iterator[K, V] {
	at := t.Version()
	root := t.root()
	if root == nil {
		return &Iterator[K, V]{at: at}
	}
	return &Iterator[K, V]{at: at, n: root.leftmostChild(at)}
}

// Done reports whether the iterator has run past the last entry.
func (it *Iterator[K, V]) Done() bool {
	return it.n == nil
}

// Key returns the current entry's key.
func (it *Iterator[K, V]) Key() K {
	return it.n.key
}

// Value returns the current entry's value.
func (it *Iterator[K, V]) Value() V {
	return it.n.Value(it.at)
}

// Next advances the iterator to the next key in ascending order.
func (it *Iterator[K, V]) Next() {
	it.n = it.n.nextNode(it.at)
}
