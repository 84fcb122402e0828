/*
Package persist implements the contract every persistent container
shares: current-version bookkeeping, an undo/redo history, and the
nested-structure propagation protocol that lets a persistent value
stored inside another persistent container surface its own mutations
as a fresh version of the enclosing container.

The protocol mirrors bbengfort/x/events: a Dispatcher there lets many
listeners register Callback funcs for an event Type and fires them on
Dispatch; here a persistent structure has exactly one listener (its
parent slot, if any) and fires it on every version change instead of
on an explicit event. The narrowing from "many callbacks keyed by
type" to "one callback, unconditionally" reflects that a persistent
value has at most one enclosing container at a time.
*/
package persist

import "github.com/bbengfort/persist/version"

// Notifier is the callback a container installs on a persistent value
// it stores in one of its slots. It closes over everything the
// container needs to rewrite that slot (the node, the field, the
// outer version context) and returns the new outer version it
// produced. Base invokes it with no arguments — by the time it fires,
// every piece of state the closure needs was already captured at
// registration time, exactly as the reference design's per-node
// register_callbacks lambdas capture their version_context by value.
type Notifier func() version.Version

// Base implements the persistent-structure contract (§4.4) shared by
// every container: current-version tracking, undo/redo history, and
// the parent back-link used for nested-structure propagation (§4.7).
// T is the container's fat-node payload type (its version tree's root
// value, e.g. bst's *node[K,V] for the ordered map) — Base needs it only
// to hold the *version.Tree[T] the container branches new versions
// from.
//
// Containers embed Base by value and are themselves used via pointer
// (*Tree[K,V], *List[V], ...): the embedding gives every container the
// same mutation-prologue/epilogue machinery without duplicating it per
// container kind, the way bbengfort/x's events.Dispatcher is embedded
// (by value, via Init) rather than reimplemented per event source.
type Base[T any] struct {
	VTree *version.Tree[T]

	current version.Version

	parentVersion version.Version
	parent        version.Owner
	notify        Notifier

	undoStack []version.Version
	redoStack []version.Version
}

// Init sets up b to navigate vtree starting at its root version. It is
// a method rather than a constructor so that containers can embed Base
// as a plain (non-pointer) field and initialize it inline.
func (b *Base[T]) Init(vtree *version.Tree[T]) {
	b.VTree = vtree
	b.current = vtree.RootVersion()
}

// InitAt sets up b to navigate the same vtree as an existing handle,
// but pinned at v rather than the tree's root. This is the building
// block every container's Snapshot method uses to hand out an
// independent navigator over shared history (§4.2's container handle
// vs. version tree split): the new handle gets its own undo/redo
// stacks and parent bookkeeping, sharing only the underlying tree.
func (b *Base[T]) InitAt(vtree *version.Tree[T], v version.Version) {
	b.VTree = vtree
	b.current = v
}

// Version returns the current version of this handle.
func (b *Base[T]) Version() version.Version {
	return b.current
}

// SetVersion pins this handle to v and runs the version-changed
// epilogue (recordHistory, then notifyParent), matching §4.4: "set
// current version; trigger version_changed". Jumping to an
// empty version or a version from a different tree is undefined per
// §7; Base does not guard against it beyond what Tree.GetValue asserts
// the next time the payload is read.
func (b *Base[T]) SetVersion(v version.Version) {
	b.current = v
	b.recordHistory()
	b.notifyParent()
}

// SwitchNewVersion is the internal half of the mutation prologue
// (§4.4 step 2): it branches a fresh child of the current version,
// carrying the current root payload forward, and adopts it as current
// — without running recordHistory or notifyParent. Exactly one call to
// SwitchNewVersion should occur per top-level mutation; the
// MutationGuard epilogue is what turns that branch into a visible
// version change.
func (b *Base[T]) SwitchNewVersion() version.Version {
	root := b.VTree.GetValue(b.current)
	nv := b.VTree.Insert(b.current, root)
	b.current = nv
	return nv
}

// MutationGuard implements the scoped-change-notifier from §4.4: call
// it at the top of every externally visible mutating method and defer
// its result. It captures the version in effect when the mutation
// began; when the deferred call runs (on any exit path, including a
// panic during an assertion), it runs recordHistory and notifyParent
// exactly once if
// — and only if — the version actually moved, guaranteeing at most one
// new version per top-level mutation even if a helper tried to branch
// internally more than once.
func (b *Base[T]) MutationGuard() func() {
	v0 := b.current
	return func() {
		if !b.current.Equal(v0) {
			b.recordHistory()
			b.notifyParent()
		}
	}
}

// recordHistory pushes the current version onto the undo stack and
// clears the redo stack, per §4.4 — except when called from Undo/Redo
// themselves, which manage the stacks directly and call notifyParent
// alone.
func (b *Base[T]) recordHistory() {
	b.undoStack = append(b.undoStack, b.current)
	b.redoStack = b.redoStack[:0]
}

// notifyParent fires the installed parent notifier, if any, and
// bubbles the resulting version up to the parent structure if it
// hasn't diverged since this value was last exposed to it — the
// nested-structure propagation protocol of §4.7.
func (b *Base[T]) notifyParent() {
	if b.notify == nil {
		return
	}
	fixedParentVersion := b.parentVersion
	newParentVersion := b.notify()
	b.parentVersion = newParentVersion
	if b.parent != nil && b.parent.Version().Equal(fixedParentVersion) {
		b.parent.SetVersion(newParentVersion)
	}
}

// Undo pops the undo stack, pushes the popped version onto the redo
// stack, and adopts the new top of the undo stack as current (a no-op
// if the stack is already empty, or if the new top equals the current
// version). Nested propagation still fires: undoing a deeply nested
// value must still surface as a new version of every enclosing
// container.
func (b *Base[T]) Undo() {
	if len(b.undoStack) == 0 {
		return
	}
	popped := b.undoStack[len(b.undoStack)-1]
	b.undoStack = b.undoStack[:len(b.undoStack)-1]
	b.redoStack = append(b.redoStack, popped)

	if len(b.undoStack) == 0 {
		return
	}
	top := b.undoStack[len(b.undoStack)-1]
	if top.Equal(b.current) {
		return
	}
	b.current = top
	b.notifyParent()
}

// Redo is the symmetric counterpart of Undo.
func (b *Base[T]) Redo() {
	if len(b.redoStack) == 0 {
		return
	}
	popped := b.redoStack[len(b.redoStack)-1]
	b.redoStack = b.redoStack[:len(b.redoStack)-1]
	b.undoStack = append(b.undoStack, popped)

	if popped.Equal(b.current) {
		return
	}
	b.current = popped
	b.notifyParent()
}

// AddParent installs the notifier a container fires whenever this
// value's version changes, and the parent structure it should bubble
// adopted versions up to (§4.7 step 2). Re-registering (containers do
// this on every slot write and on some reads, not just the first) simply
// replaces the
// previous notifier/parent with a fresh one bound to the current
// access's version context.
func (b *Base[T]) AddParent(parent version.Owner, notify Notifier) {
	b.parent = parent
	b.notify = notify
}

// SetParentVersion records the enclosing container's version at the
// moment this value was last materialized into one of its slots.
func (b *Base[T]) SetParentVersion(v version.Version) {
	b.parentVersion = v
}

// ParentVersion returns the version recorded by SetParentVersion.
func (b *Base[T]) ParentVersion() version.Version {
	return b.parentVersion
}
