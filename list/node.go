package list

import (
	"github.com/bbengfort/persist/fatnode"
	"github.com/bbengfort/persist/version"
)

// A list node has three mutable fields: value, prev and next, tracked
// through the same bounded mod log as bst's four-field node
// (grounded on original_source's linked_list_node, generalized the
// same way binary_tree_node was).
const (
	fieldValue int = iota
	fieldPrev
	fieldNext
)

// nodeLogCapacity is 2*(number of mutable fields): value, prev, next,
// so 6 — distinct from the tree node's 8 because a list node has one
// fewer versioned pointer field (no back-pointer; prev already plays
// that role for list traversal).
const nodeLogCapacity = 6

type node[V any] struct {
	baseValue V
	basePrev  *node[V]
	baseNext  *node[V]

	log *fatnode.Log
}

func newNode[V any](value V, prev, next *node[V]) *node[V] {
	return &node[V]{
		baseValue: value,
		basePrev:  prev,
		baseNext:  next,
		log:       fatnode.NewLog(nodeLogCapacity),
	}
}

func (n *node[V]) Value(at version.Version) V {
	if v, ok := n.log.Get(fieldValue, at); ok {
		return v.(V)
	}
	return n.baseValue
}

func (n *node[V]) Prev(at version.Version) *node[V] {
	if v, ok := n.log.Get(fieldPrev, at); ok {
		return v.(*node[V])
	}
	return n.basePrev
}

func (n *node[V]) Next(at version.Version) *node[V] {
	if v, ok := n.log.Get(fieldNext, at); ok {
		return v.(*node[V])
	}
	return n.baseNext
}

// setter, like bst's, takes a version.Context rather than a separate
// (at, t) pair — the version this write takes effect at, plus the
// owning list, threaded through every node-level call instead of
// cached (§4.3).
func (n *node[V]) setter(field int, val interface{}, ctx version.Context[*node[V]]) *node[V] {
	if !n.log.Full() {
		n.log.Add(field, ctx.V, val)
		return n
	}
	successor := n.splitAndUpdate(ctx)
	return successor.setter(field, val, ctx)
}

func (n *node[V]) SetValue(val V, ctx version.Context[*node[V]]) *node[V] {
	out := n.setter(fieldValue, materialize(val), ctx)
	l := ctx.Owner.(*List[V])
	l.registerNestedValue(val, out, ctx.V)
	return out
}

func (n *node[V]) SetPrev(p *node[V], ctx version.Context[*node[V]]) *node[V] {
	return n.setter(fieldPrev, p, ctx)
}

func (n *node[V]) SetNext(nx *node[V], ctx version.Context[*node[V]]) *node[V] {
	return n.setter(fieldNext, nx, ctx)
}

// split mirrors bst's node.split: truncate the log to its first half
// in place, computing the successor's baseline fields from what
// remains.
func (n *node[V]) split(ctx version.Context[*node[V]]) *node[V] {
	successorLog := n.log.Split()
	return &node[V]{
		baseValue: n.Value(ctx.V),
		basePrev:  n.Prev(ctx.V),
		baseNext:  n.Next(ctx.V),
		log:       successorLog,
	}
}

// splitAndUpdate publishes the successor in the list in place of n:
// as the list's head if n had no predecessor, and retargets n's
// neighbors' prev/next pointers at the successor — symmetric to bst's
// splitAndUpdate but over a doubly linked chain instead of a tree.
func (n *node[V]) splitAndUpdate(ctx version.Context[*node[V]]) *node[V] {
	successor := n.split(ctx)

	if p := successor.basePrev; p == nil {
		ctx.VTree.Update(ctx.V, successor)
	} else {
		if newP := p.SetNext(successor, ctx); newP != p {
			successor = successor.SetPrev(newP, ctx)
		}
	}

	if nx := successor.Next(ctx.V); nx != nil {
		if newNx := nx.SetPrev(successor, ctx); newNx != nx {
			successor = successor.SetNext(newNx, ctx)
		}
	}

	return successor
}
