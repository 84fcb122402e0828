package bst

import (
	"github.com/bbengfort/persist/fatnode"
	"github.com/bbengfort/persist/version"
)

// The four mutable fields of a tree node, each tracked through the
// same bounded mod log (§4.5): a node's key never changes once
// allocated, so it lives as a plain struct field instead.
const (
	fieldValue int = iota
	fieldLeft
	fieldRight
	fieldBack
)

// nodeLogCapacity is 2*(number of mutable fields): value, left, right
// and back-pointer, so 8.
const nodeLogCapacity = 8

// node is a fat node in a persistent ordered map: a key (immutable),
// four baseline field values (the node's state as of its own
// allocation or most recent split), and a bounded mod log layering
// later versions on top of that baseline. It is grounded directly on
// original_source's binary_tree_node, generalized from a single
// shared_ptr-based mod_box entry type into fatnode.Log's (field,
// version, value) records.
type node[K any, V any] struct {
	key K

	baseValue V
	baseLeft  *node[K, V]
	baseRight *node[K, V]
	baseBack  *node[K, V]

	log *fatnode.Log
}

func newNode[K any, V any](key K, value V, left, right, back *node[K, V]) *node[K, V] {
	return &node[K, V]{
		key:       key,
		baseValue: value,
		baseLeft:  left,
		baseRight: right,
		baseBack:  back,
		log:       fatnode.NewLog(nodeLogCapacity),
	}
}

func (n *node[K, V]) Value(at version.Version) V {
	if v, ok := n.log.Get(fieldValue, at); ok {
		return v.(V)
	}
	return n.baseValue
}

func (n *node[K, V]) Left(at version.Version) *node[K, V] {
	if v, ok := n.log.Get(fieldLeft, at); ok {
		return v.(*node[K, V])
	}
	return n.baseLeft
}

func (n *node[K, V]) Right(at version.Version) *node[K, V] {
	if v, ok := n.log.Get(fieldRight, at); ok {
		return v.(*node[K, V])
	}
	return n.baseRight
}

func (n *node[K, V]) Back(at version.Version) *node[K, V] {
	if v, ok := n.log.Get(fieldBack, at); ok {
		return v.(*node[K, V])
	}
	return n.baseBack
}

// setter is the shape shared by SetValue/SetLeft/SetRight/SetBack: add
// to the log if there's room, otherwise split and retry on the
// successor. Each concrete setter below is a thin wrapper binding
// setter to one field id, mirroring the four near-identical
// set_value/set_left/set_right/set_back_pointer methods on
// binary_tree_node. ctx carries the version this write takes effect at
// plus the owning tree, threaded through rather than cached so a
// cascading split several calls deep always sees the same pair.
func (n *node[K, V]) setter(field int, val interface{}, ctx version.Context[*node[K, V]]) *node[K, V] {
	if !n.log.Full() {
		n.log.Add(field, ctx.V, val)
		return n
	}
	successor := n.splitAndUpdate(ctx)
	return successor.setter(field, val, ctx)
}

func (n *node[K, V]) SetValue(val V, ctx version.Context[*node[K, V]]) *node[K, V] {
	out := n.setter(fieldValue, materialize(val), ctx)
	t := ctx.Owner.(*Tree[K, V])
	t.registerNestedValue(val, out, ctx.V)
	return out
}

func (n *node[K, V]) SetLeft(child *node[K, V], ctx version.Context[*node[K, V]]) *node[K, V] {
	return n.setter(fieldLeft, child, ctx)
}

func (n *node[K, V]) SetRight(child *node[K, V], ctx version.Context[*node[K, V]]) *node[K, V] {
	return n.setter(fieldRight, child, ctx)
}

func (n *node[K, V]) SetBack(parent *node[K, V], ctx version.Context[*node[K, V]]) *node[K, V] {
	return n.setter(fieldBack, parent, ctx)
}

// split implements binary_tree_node::split: it computes the
// successor's baseline fields from the receiver's log truncated to
// its first half, which Log.Split performs in place, then seeds the
// successor's own log with the transferred second half. The receiver
// keeps serving reads for every version at or before the split
// boundary; the successor takes over from there forward.
func (n *node[K, V]) split(ctx version.Context[*node[K, V]]) *node[K, V] {
	successorLog := n.log.Split()
	successor := &node[K, V]{
		key:       n.key,
		baseValue: n.Value(ctx.V),
		baseLeft:  n.Left(ctx.V),
		baseRight: n.Right(ctx.V),
		baseBack:  n.Back(ctx.V),
		log:       successorLog,
	}
	return successor
}

// splitAndUpdate is binary_tree_node::split_and_update: after
// splitting off a successor, it publishes the successor in place of n
// — as the tree's root if n had no parent, or as the appropriate
// child of n's parent otherwise — and retargets n's children's back
// pointers at the successor.
//
// Unlike the reference update_node, it threads the (possibly new)
// identity returned by each of those retargeting calls back into the
// successor, so a cascading split of the parent or a child can never
// leave the successor holding a stale pointer into a node no longer
// reachable from the tree.
func (n *node[K, V]) splitAndUpdate(ctx version.Context[*node[K, V]]) *node[K, V] {
	successor := n.split(ctx)

	bp := successor.baseBack
	if bp == nil {
		ctx.VTree.Update(ctx.V, successor)
	} else {
		var newBp *node[K, V]
		if bp.Left(ctx.V) == n {
			newBp = bp.SetLeft(successor, ctx)
		} else {
			newBp = bp.SetRight(successor, ctx)
		}
		if newBp != bp {
			successor = successor.SetBack(newBp, ctx)
		}
	}

	if left := successor.Left(ctx.V); left != nil {
		if newLeft := left.SetBack(successor, ctx); newLeft != left {
			successor = successor.SetLeft(newLeft, ctx)
		}
	}
	if right := successor.Right(ctx.V); right != nil {
		if newRight := right.SetBack(successor, ctx); newRight != right {
			successor = successor.SetRight(newRight, ctx)
		}
	}

	return successor
}

// leftmostChild walks left pointers to the smallest key in n's subtree.
func (n *node[K, V]) leftmostChild(at version.Version) *node[K, V] {
	cur := n
	for {
		left := cur.Left(at)
		if left == nil {
			return cur
		}
		cur = left
	}
}

// nextParent climbs back pointers to find the nearest ancestor whose
// left child is the node we climbed up from, used to find the next
// key in sorted order once a subtree is exhausted.
func (n *node[K, V]) nextParent(at version.Version) *node[K, V] {
	cur := n
	for {
		parent := cur.Back(at)
		if parent == nil {
			return nil
		}
		if parent.Left(at) == cur {
			return parent
		}
		cur = parent
	}
}

// nextNode returns the in-order successor of n.
func (n *node[K, V]) nextNode(at version.Version) *node[K, V] {
	if right := n.Right(at); right != nil {
		return right.leftmostChild(at)
	}
	return n.nextParent(at)
}

// size counts the entries in n's subtree at version at.
func (n *node[K, V]) size(at version.Version) int {
	total := 1
	if left := n.Left(at); left != nil {
		total += left.size(at)
	}
	if right := n.Right(at); right != nil {
		total += right.size(at)
	}
	return total
}
