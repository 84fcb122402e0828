/*
Package assert implements the library's single invariant-checking
primitive.

Per the error handling design, misuse of the public API is either total
(returns a zero value / end-iterator) or is a programmer error reported
as a fatal, process-local assertion. There is no recoverable error path
for a corrupted mod log or a dangling back-pointer: continuing to run
would silently corrupt history, so we panic instead.
*/
package assert

import "fmt"

// True panics with msg (formatted with args) if cond is false.
func True(cond bool, msg string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(msg, args...))
	}
}

// Never panics unconditionally; use it for switch/case branches that
// the type system cannot prove are unreachable.
func Never(msg string, args ...interface{}) {
	panic(fmt.Sprintf(msg, args...))
}
