package timeline

import (
	"sync"
	"sync/atomic"
)

// Store owns the segment and click history.
//
// Two contexts touch it: the ingest context appends and closes entries on
// every raw input event, and the render context reads a snapshot and prunes
// the head once per frame. Event rates are human-scale, so a single mutex
// guards everything; the last-press memo is additionally kept in atomics so
// diagnostic readers never need the lock.
type Store struct {
	mu       sync.Mutex
	segments []Segment
	clicks   []Click

	// open[row] is the index into segments of the row's open segment,
	// or -1. At most one segment per row is ever open.
	open [RowCount]int

	// evictFloor makes eviction cutoffs monotonic: a clock regression on
	// the render side must never re-admit already-evicted history.
	evictFloor int64

	fallback Row

	// Last-press memo, read by click attribution and by diagnostics.
	memoRow   atomic.Int32
	memoDown  atomic.Int64
	memoValid atomic.Bool
}

// NewStore creates an empty store. Clicks recorded before any monitored key
// has been pressed are attributed to fallback with a zero delta.
func NewStore(fallback Row) *Store {
	s := &Store{fallback: fallback}
	if !s.fallback.Valid() {
		s.fallback = RowCount - 1
	}
	for i := range s.open {
		s.open[i] = -1
	}
	s.memoRow.Store(int32(s.fallback))
	return s
}

// OpenSegment starts a segment for row at time t. If the row already has an
// open segment (device auto-repeat, duplicate down events) this is a no-op:
// segment starts are idempotent while a press is outstanding, and the
// last-press memo is only refreshed when a segment actually opens.
// It reports whether a new segment was opened.
func (s *Store) OpenSegment(row Row, t int64) bool {
	if !row.Valid() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open[row] >= 0 {
		return false
	}
	s.segments = append(s.segments, Segment{Row: row, Start: t, End: OpenEnd})
	s.open[row] = len(s.segments) - 1

	s.memoRow.Store(int32(row))
	s.memoDown.Store(t)
	s.memoValid.Store(true)
	return true
}

// CloseSegment closes the row's open segment at time t. An up event with no
// matching open segment (missed down, device hot-unplug, focus change) is
// silently ignored.
func (s *Store) CloseSegment(row Row, t int64) {
	if !row.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.open[row]
	if idx < 0 {
		return
	}
	s.segments[idx].End = t
	s.open[row] = -1
}

// RecordClick appends a click at time t, attributed to the most recently
// pressed monitored key. The attribution deliberately uses the last press,
// not the last release, and survives the key being released. Before any
// press this session, the configured fallback row is used with delta 0.
// A click timestamped before its attributed press clamps to delta 0.
func (s *Store) RecordClick(t int64) Click {
	c := Click{Row: s.fallback, Time: t}
	if s.memoValid.Load() {
		c.Row = Row(s.memoRow.Load())
		if d := t - s.memoDown.Load(); d > 0 {
			c.Delta = d
		}
	}

	s.mu.Lock()
	s.clicks = append(s.clicks, c)
	s.mu.Unlock()
	return c
}

// LastKey returns the last-press memo: the row and press time of the most
// recent genuine key-down, and whether any press has happened yet.
func (s *Store) LastKey() (Row, int64, bool) {
	return Row(s.memoRow.Load()), s.memoDown.Load(), s.memoValid.Load()
}

// EvictOlderThan drops clicks with Time < cutoff and segments whose
// effective end (cutoff stands in for an open end) is < cutoff, from the
// head only. Cutoffs are clamped to be non-decreasing across calls.
func (s *Store) EvictOlderThan(cutoff int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cutoff < s.evictFloor {
		cutoff = s.evictFloor
	}
	s.evictFloor = cutoff

	n := 0
	for n < len(s.clicks) && s.clicks[n].Time < cutoff {
		n++
	}
	if n > 0 {
		s.clicks = append(s.clicks[:0], s.clicks[n:]...)
	}

	n = 0
	for n < len(s.segments) {
		seg := s.segments[n]
		// An open segment's effective end is "now", which is always
		// inside the retention window, so it blocks further eviction.
		if seg.Open() || seg.End >= cutoff {
			break
		}
		n++
	}
	if n > 0 {
		s.segments = append(s.segments[:0], s.segments[n:]...)
		for r := range s.open {
			if s.open[r] >= 0 {
				s.open[r] -= n
			}
		}
	}
}

// Snapshot copies the current history for the render context. The copies
// keep the frame's read out of the ingest path's way.
func (s *Store) Snapshot() ([]Segment, []Click) {
	s.mu.Lock()
	defer s.mu.Unlock()

	segs := make([]Segment, len(s.segments))
	copy(segs, s.segments)
	clicks := make([]Click, len(s.clicks))
	copy(clicks, s.clicks)
	return segs, clicks
}

// CloseRow force-closes the row's open segment at time t, if any. Used when
// a row is rebound at runtime so press state from the old key binding does
// not leak into the new one.
func (s *Store) CloseRow(row Row, t int64) {
	s.CloseSegment(row, t)
}

// Len returns the current segment and click counts.
func (s *Store) Len() (segments, clicks int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.segments), len(s.clicks)
}
