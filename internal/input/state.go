package input

import (
	"sync/atomic"

	"keyline/internal/timeline"
)

// State holds the auxiliary diagnostic scalars shared between the ingest
// and render contexts. Every field is independently atomic; no multi-field
// snapshot consistency is guaranteed or needed — these are diagnostics, the
// timeline algorithm never reads them.
type State struct {
	keyDown [timeline.RowCount]atomic.Bool
	m1      atomic.Bool
	m2      atomic.Bool
	m3      atomic.Bool

	lastDX atomic.Int32
	lastDY atomic.Int32

	totalDX atomic.Int64
	totalDY atomic.Int64

	mouseEvents atomic.Uint32
	keyEvents   atomic.Uint32
	frames      atomic.Uint64
}

// NewState creates zeroed diagnostic state.
func NewState() *State {
	return &State{}
}

// KeyDown reports the raw pressed flag for a row.
func (s *State) KeyDown(row timeline.Row) bool {
	if !row.Valid() {
		return false
	}
	return s.keyDown[row].Load()
}

// setKeyDown records the raw pressed flag for a row and returns the
// previous value.
func (s *State) setKeyDown(row timeline.Row, down bool) bool {
	return s.keyDown[row].Swap(down)
}

// ResetKeyDown clears a row's raw pressed flag. Called when the row is
// rebound so press state from the old key does not leak into the new one.
func (s *State) ResetKeyDown(row timeline.Row) {
	if row.Valid() {
		s.keyDown[row].Store(false)
	}
}

// ResetAllKeys clears every raw pressed flag.
func (s *State) ResetAllKeys() {
	for i := range s.keyDown {
		s.keyDown[i].Store(false)
	}
}

// CountFrame increments the rendered-frame counter.
func (s *State) CountFrame() {
	s.frames.Add(1)
}

// Snapshot is a point-in-time copy of the diagnostics. Fields are read
// one atomic at a time; values may straddle concurrent updates.
type Snapshot struct {
	KeyDown     [timeline.RowCount]bool
	M1, M2, M3  bool
	LastDX      int32
	LastDY      int32
	TotalDX     int64
	TotalDY     int64
	MouseEvents uint32
	KeyEvents   uint32
	Frames      uint64
}

// Snapshot reads all diagnostic scalars.
func (s *State) Snapshot() Snapshot {
	var snap Snapshot
	for i := range s.keyDown {
		snap.KeyDown[i] = s.keyDown[i].Load()
	}
	snap.M1 = s.m1.Load()
	snap.M2 = s.m2.Load()
	snap.M3 = s.m3.Load()
	snap.LastDX = s.lastDX.Load()
	snap.LastDY = s.lastDY.Load()
	snap.TotalDX = s.totalDX.Load()
	snap.TotalDY = s.totalDY.Load()
	snap.MouseEvents = s.mouseEvents.Load()
	snap.KeyEvents = s.keyEvents.Load()
	snap.Frames = s.frames.Load()
	return snap
}
