package sched

import "sync/atomic"

// Latest implements last-write-wins for overlapping fetches. Each issued
// request takes a ticket from Next; when its response arrives, IsLatest
// tells the caller whether to render it or drop it as stale. In-flight
// requests are never cancelled, only ignored.
type Latest struct {
	seq atomic.Uint64
}

// Next issues a new request ticket, superseding all earlier ones.
func (l *Latest) Next() uint64 {
	return l.seq.Add(1)
}

// IsLatest reports whether ticket is still the most recently issued.
func (l *Latest) IsLatest(ticket uint64) bool {
	return l.seq.Load() == ticket
}
