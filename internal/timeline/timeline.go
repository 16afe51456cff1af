// Package timeline maintains the rolling input history behind the overlay.
//
// The model is small on purpose:
//   - a Segment is one press-to-release interval on a monitored row
//   - a Click marks a primary mouse button press, attributed to the most
//     recently pressed monitored key and stamped with the elapsed time
//     since that press
//   - the Store keeps a bounded, time-ordered history of both and evicts
//     anything older than the retention window
//
// Timestamps are monotonic milliseconds supplied by the caller. The package
// never reads the clock itself, which keeps every operation deterministic
// under test.
package timeline

// RowCount is the number of independently monitored rows.
const RowCount = 4

// Row identifies one of the monitored rows, top to bottom.
type Row int

// RowNone marks a key code that no row is monitoring.
const RowNone Row = -1

// Valid reports whether r addresses one of the monitored rows.
func (r Row) Valid() bool {
	return r >= 0 && r < RowCount
}

// OpenEnd is the End value of a segment whose key is still held.
const OpenEnd int64 = -1

// RetentionMS is how much trailing history the store keeps, in milliseconds.
// History older than this is discarded regardless of what is visible.
const RetentionMS int64 = 30000

// Segment is one continuous press-to-release interval for a row.
type Segment struct {
	Row   Row
	Start int64
	End   int64 // OpenEnd while the key is held
}

// Open reports whether the segment's key is still held.
func (s Segment) Open() bool {
	return s.End == OpenEnd
}

// EffectiveEnd returns the segment end, substituting now for an open segment.
func (s Segment) EffectiveEnd(now int64) int64 {
	if s.Open() {
		return now
	}
	return s.End
}

// Click records a primary mouse button press. Delta is the time since the
// most recent monitored key press, clamped to zero.
type Click struct {
	Row   Row
	Time  int64
	Delta int64
}
