package raidstream

import "time"

// Stats is a snapshot of a Raid5Stream's in-process counters. It is
// passive bookkeeping updated inline during Read/Write/FailDisk/
// RecoverDisk - no extra I/O, no background goroutine, no scrubbing or
// checksumming.
type Stats struct {
	ReadsServed        int64
	WritesServed       int64
	ReconstructedReads int64
	RebuildsCompleted  int64

	// DegradedSeconds is the cumulative wall-clock time the array has
	// spent with at least one disk failed, including any failure still
	// open at the moment of the snapshot.
	DegradedSeconds float64
}

// Stats returns a snapshot of the stream's current counters.
func (s *Raid5Stream) Stats() Stats {
	snap := s.stats
	degraded := s.degradedNanos
	if s.failures.count() > 0 {
		degraded += time.Now().UnixNano() - s.degradedSince
	}
	snap.DegradedSeconds = time.Duration(degraded).Seconds()
	return snap
}
