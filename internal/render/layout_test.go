package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"keyline/internal/timeline"
)

func TestWindowMapsEndpoints(t *testing.T) {
	w := window{t0: 1000, t1: 6000, x0: 91, x1: 1480}

	assert.Equal(t, float32(91), w.X(1000))
	assert.Equal(t, float32(1480), w.X(6000))
}

func TestWindowMonotonic(t *testing.T) {
	w := window{t0: 0, t1: 5000, x0: 0, x1: 500}

	prev := w.X(0)
	for ts := int64(0); ts <= 5000; ts += 137 {
		x := w.X(ts)
		assert.GreaterOrEqual(t, x, prev, "x(t) must not decrease at t=%d", ts)
		prev = x
	}
}

func TestWindowDegenerateSaturates(t *testing.T) {
	w := window{t0: 500, t1: 500, x0: 91, x1: 1480}

	// Zero-width window: saturate to the left edge, never divide by zero.
	assert.Equal(t, float32(91), w.X(400))
	assert.Equal(t, float32(91), w.X(500))
	assert.Equal(t, float32(91), w.X(600))

	w = window{t0: 600, t1: 500, x0: 91, x1: 1480}
	assert.Equal(t, float32(91), w.X(550))
}

func TestRowHeightsFillRowsArea(t *testing.T) {
	l := Layout{Width: 1500, Height: 520}
	area := l.Height - TopPad - BottomPad

	for n := 1; n <= timeline.RowCount; n++ {
		rowH := l.RowHeight(n)
		total := rowH*float32(n) + RowGap*float32(n-1)
		// Heights are floored to whole pixels; allow one pixel of slack
		// per row.
		assert.InDelta(t, area, total, float64(n), "n=%d", n)
		assert.Greater(t, rowH, float32(0))
	}
}

func TestDisabledRowReclaimsSpace(t *testing.T) {
	l := Layout{Width: 1500, Height: 520}

	all := l.RowHeight(4)
	three := l.RowHeight(3)
	assert.Greater(t, three, all)
}

func TestRowTopsPackEnabledRows(t *testing.T) {
	l := Layout{Width: 1500, Height: 520}

	tops := l.RowTops([timeline.RowCount]bool{true, false, true, true})
	rowH := l.RowHeight(3)

	assert.Equal(t, TopPad, tops[0])
	assert.Equal(t, float32(-1), tops[1])
	assert.Equal(t, TopPad+rowH+RowGap, tops[2])
	assert.Equal(t, TopPad+2*(rowH+RowGap), tops[3])
}

func TestRowHeightZeroRows(t *testing.T) {
	l := Layout{Width: 100, Height: 100}
	assert.Equal(t, float32(0), l.RowHeight(0))
}

func TestRowHeightNeverNegative(t *testing.T) {
	// Canvas smaller than the pads: geometry clamps instead of going
	// negative.
	l := Layout{Width: 50, Height: 40}
	for n := 1; n <= timeline.RowCount; n++ {
		assert.GreaterOrEqual(t, l.RowHeight(n), float32(0))
	}
}

func TestVisibleHeightCollapsesWithNoRows(t *testing.T) {
	l := Layout{Width: 1500, Height: 520}

	assert.Equal(t, float32(520), l.VisibleHeight([timeline.RowCount]bool{true, true, true, true}))
	assert.Equal(t, TopPad+BottomPad, l.VisibleHeight([timeline.RowCount]bool{}))
}
