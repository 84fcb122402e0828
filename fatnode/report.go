package fatnode

import (
	"fmt"
	"unsafe"

	"github.com/dustin/go-humanize"
)

// entrySize is the in-memory footprint of one Entry, used only to give
// Report a byte estimate — computed via unsafe.Sizeof rather than a
// hardcoded constant so it tracks Entry's fields if they ever change.
var entrySize = unsafe.Sizeof(Entry{})

// Report summarizes a single log's occupancy: how many of its capacity
// slots are in use, and a rough estimate of the bytes its entries
// occupy.
type Report struct {
	Entries  int
	Capacity int
	Bytes    uint64
}

// Report returns a snapshot of l's current occupancy.
func (l *Log) Report() Report {
	return Report{
		Entries:  len(l.entries),
		Capacity: l.capacity,
		Bytes:    uint64(len(l.entries)) * uint64(entrySize),
	}
}

func (r Report) String() string {
	return fmt.Sprintf("%s/%s entries (%s)",
		humanize.Comma(int64(r.Entries)),
		humanize.Comma(int64(r.Capacity)),
		humanize.Bytes(r.Bytes))
}
