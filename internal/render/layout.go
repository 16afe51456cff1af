package render

import (
	"math"

	"keyline/internal/timeline"
)

// Fixed layout paddings, in pixels. All pixel geometry in the overlay is
// derived from these plus the configured canvas size; nothing outside this
// package computes coordinates.
const (
	TopPad    float32 = 18
	BottomPad float32 = 55
	RowGap    float32 = 20
	LeftPad   float32 = 70 * 1.3
	RightPad  float32 = 20
)

// WindowMS is the width of the moving render window in milliseconds.
const WindowMS int64 = 5000

// Layout computes frame geometry for a canvas size and row enablement.
type Layout struct {
	Width  float32
	Height float32
}

// visibleRows counts enabled rows.
func visibleRows(enabled [timeline.RowCount]bool) int {
	n := 0
	for _, e := range enabled {
		if e {
			n++
		}
	}
	return n
}

// RowHeight returns the per-row height when n rows are enabled. The rows
// area (height minus pads) is divided evenly among the enabled rows and
// the gaps between them, so disabling a row grows the others instead of
// leaving a hole.
func (l Layout) RowHeight(n int) float32 {
	if n <= 0 {
		return 0
	}
	area := l.Height - TopPad - BottomPad
	h := (area - RowGap*float32(n-1)) / float32(n)
	h = float32(math.Floor(float64(h)))
	if h < 0 {
		return 0
	}
	return h
}

// RowTops returns the top Y of each row, or -1 for disabled rows. Enabled
// rows pack downward from the top pad in row order.
func (l Layout) RowTops(enabled [timeline.RowCount]bool) [timeline.RowCount]float32 {
	var tops [timeline.RowCount]float32
	for i := range tops {
		tops[i] = -1
	}
	rowH := l.RowHeight(visibleRows(enabled))
	idx := 0
	for i, e := range enabled {
		if !e {
			continue
		}
		tops[i] = TopPad + float32(idx)*(rowH+RowGap)
		idx++
	}
	return tops
}

// VisibleHeight is the canvas height the frame actually occupies: the full
// configured height while any row is enabled, just the pads otherwise.
func (l Layout) VisibleHeight(enabled [timeline.RowCount]bool) float32 {
	if visibleRows(enabled) == 0 {
		return TopPad + BottomPad
	}
	return l.Height
}

// AxisY returns the Y of the time-axis baseline for a frame height.
func AxisY(frameH float32) float32 {
	return frameH - BottomPad + 22
}

// window maps the moving time window [t0,t1] onto [x0,x1].
type window struct {
	t0, t1 int64
	x0, x1 float32
}

// X maps an absolute time to a horizontal pixel coordinate. A degenerate
// window saturates to the left edge instead of dividing by zero.
func (w window) X(t int64) float32 {
	denom := float64(w.t1 - w.t0)
	if denom <= 0 {
		return w.x0
	}
	u := float64(t-w.t0) / denom
	return w.x0 + float32(u*float64(w.x1-w.x0))
}

func clampX(v, lo, hi float32) float32 {
	return clamp(v, lo, hi)
}
