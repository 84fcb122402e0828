package version

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Report is a plain-data snapshot of a Tree's current size, useful for
// diagnosing version-history growth in long-running programs (the
// library does not prune history — see the design notes on garbage
// collection — so watching this number is the only way to notice a
// version tree that is growing without bound).
type Report struct {
	Versions int
}

// Report summarizes t's current footprint. Non-goals explicitly
// exclude memory bounds independent of history size; this is
// diagnostic tooling over that fact, not a guarantee about it.
func (t *Tree[T]) Report() Report {
	return Report{Versions: t.n}
}

// String renders a Report the way a developer would want to read it in
// a log line: a humanized version count rather than a bare integer.
func (r Report) String() string {
	return fmt.Sprintf("%s versions tracked", humanize.Comma(int64(r.Versions)))
}
