package seq

import (
	"github.com/bbengfort/persist/fatnode"
	"github.com/bbengfort/persist/version"
)

// A slot has exactly one mutable field (its value), so its log's
// capacity is 2*(1) = 2 — smaller than either bst's or list's node,
// since an array slot has no neighbor pointers to version: position
// in the sequence is implicit in the backing slice's index, not a
// versioned field of the slot itself.
const slotLogCapacity = 2

const fieldValue int = 0

type slot[V any] struct {
	baseValue V
	log       *fatnode.Log
}

func newSlot[V any](value V) *slot[V] {
	return &slot[V]{baseValue: value, log: fatnode.NewLog(slotLogCapacity)}
}

func (s *slot[V]) Value(at version.Version) V {
	if v, ok := s.log.Get(fieldValue, at); ok {
		return v.(V)
	}
	return s.baseValue
}

// SetValue adds val to the log, or — on overflow — allocates a
// successor slot seeded from the truncated log and adds it there
// instead. Unlike bst/list nodes, a slot has no neighbors to reparent
// on split: the caller (FatSequence) is responsible for swapping the
// returned identity into its backing slice at the right index.
func (s *slot[V]) SetValue(val V, at version.Version) *slot[V] {
	if !s.log.Full() {
		s.log.Add(fieldValue, at, val)
		return s
	}
	successorLog := s.log.Split()
	successor := &slot[V]{baseValue: s.Value(at), log: successorLog}
	successor.log.Add(fieldValue, at, val)
	return successor
}
