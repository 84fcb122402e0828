// Package persist hosts a small library of fully persistent in-memory
// data structures: once you have a handle on some version of a
// container, that version never changes under you no matter what
// mutations happen afterward, including mutations made through an
// older handle. This is the "version trees + fat nodes" approach
// rather than the cheaper-but-weaker partially-persistent (old
// versions readable but not writable) or the simple-but-memory-hungry
// path-copying alternatives.
//
// The package layout mirrors how I split up most of my code: one
// directory per concern at the module root, each package independently
// implemented and tested.
//
// Current packages include:
//
// - version: the order-maintenance substrate, a branching tree of
//            interval-labeled version handles with O(1) comparison
// - persist: the contract every container embeds — current-version
//            tracking, undo/redo, and nested-structure propagation
// - fatnode: the bounded modification log shared by every container's
//            node type, with split-on-overflow
// - bst:     a persistent ordered map (binary search tree)
// - list:    a persistent doubly linked list
// - seq:     two flavors of persistent random-access sequence, whole-
//            slice copy-on-write and fat-node-per-slot
//
// Unlike some of my other repos, nothing here is a generic utility
// grab-bag — every package exists because one of the containers needs
// it.
package persist
