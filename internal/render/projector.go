// Package render projects the timeline history onto a display list of
// colored rectangles and glyph runs, once per video frame.
package render

import (
	"math"
	"strconv"

	"keyline/internal/timeline"
)

// RowStyle is the visual configuration of one row as the projector needs
// it: resolved color, enablement, and the short gutter label.
type RowStyle struct {
	Color   RGBA
	Enabled bool
	Label   string
}

// Config is the declarative frame configuration.
type Config struct {
	Width      float32
	Height     float32
	Background RGBA
	Rows       [timeline.RowCount]RowStyle
}

// Fixed decoration colors from the reference look: a dark neutral for the
// grid, axis, and tick labels, near-white for row labels.
var (
	gridColor  = MustHex("#292929", 1.0)
	labelColor = RGBA{R: 1, G: 1, B: 1, A: 0.92}
)

// Bar and marker styling.
const (
	barHeightFraction = 0.2975625
	minThickness      = 2.0
	segmentAlpha      = 0.95
	clickAlpha        = 0.90
	deltaTextScale    = 3.0
	tickTextScale     = 2.28
	rowLabelScale     = 4.0 * 0.85
)

// Project computes the display list for one frame and then evicts history
// older than the retention window. Eviction rides the render call on
// purpose: a frame that never renders never prunes.
//
// The function reads a snapshot of the store and is otherwise pure in
// (now, cfg).
func Project(store *timeline.Store, now int64, cfg Config) DisplayList {
	var dl DisplayList

	var enabled [timeline.RowCount]bool
	for i, r := range cfg.Rows {
		enabled[i] = r.Enabled
	}

	l := Layout{Width: cfg.Width, Height: cfg.Height}
	frameH := l.VisibleHeight(enabled)
	n := visibleRows(enabled)
	rowH := l.RowHeight(n)
	rowTops := l.RowTops(enabled)

	// Background tint over the whole occupied canvas.
	dl.PushRect(0, 0, cfg.Width, frameH, cfg.Background)

	x0 := LeftPad
	x1 := cfg.Width - RightPad
	if x1 < x0 {
		x1 = x0
	}
	w := window{t0: now - WindowMS, t1: now, x0: x0, x1: x1}

	axisY := AxisY(frameH)
	axisBottom := axisY + minThickness

	// Vertical gridlines at each whole second of the window.
	for i := int64(0); i <= WindowMS/1000; i++ {
		x := w.X(w.t0 + i*1000)
		y0 := TopPad - 6
		h := axisBottom - y0
		if h < minThickness {
			h = minThickness
		}
		dl.PushRect(x, y0, minThickness, h, gridColor)
	}

	// Row labels in the left gutter, shrinking for long labels.
	if n > 0 {
		for i, row := range cfg.Rows {
			if !row.Enabled || row.Label == "" {
				continue
			}
			scale := float32(rowLabelScale)
			if len(row.Label) > 10 {
				scale = 3.0 * 0.85
			}
			if len(row.Label) > 16 {
				scale = 2.0 * 0.85
			}
			yMid := rowTops[i] + rowH*0.5
			dl.PushText(22, yMid-GlyphHeight(scale)*0.5, row.Label, scale, labelColor)
		}
	}

	segments, clicks := store.Snapshot()

	// Key-press bars, vertically centered in their row.
	if n > 0 {
		for _, seg := range segments {
			if !seg.Row.Valid() || !cfg.Rows[seg.Row].Enabled {
				continue
			}
			end := seg.EffectiveEnd(now)
			if end < w.t0 || seg.Start > w.t1 {
				continue
			}

			xs := clampX(w.X(seg.Start), x0, x1)
			xe := clampX(w.X(end), x0, x1)

			bw := xe - xs
			if bw < minThickness {
				bw = minThickness
			}
			bh := float32(math.Round(float64(rowH) * barHeightFraction))
			if bh < minThickness {
				bh = minThickness
			}
			y := rowTops[seg.Row] + float32(math.Round(float64(rowH-bh)*0.5))
			dl.PushRect(xs, y, bw, bh, cfg.Rows[seg.Row].Color.WithAlpha(segmentAlpha))
		}
	}

	// Click markers: a vertical line from the attributed row's top down to
	// the axis, with the delta printed beside it in the row's color.
	if n > 0 {
		for _, c := range clicks {
			if !c.Row.Valid() || !cfg.Rows[c.Row].Enabled {
				continue
			}
			if c.Time < w.t0 || c.Time > w.t1 {
				continue
			}

			x := w.X(c.Time)
			col := cfg.Rows[c.Row].Color.WithAlpha(clickAlpha)

			y0 := rowTops[c.Row]
			h := axisBottom - y0
			if h < minThickness {
				h = minThickness
			}
			dl.PushRect(x, y0, minThickness, h, col)

			dl.PushText(x+6, y0-6, strconv.FormatInt(c.Delta, 10), deltaTextScale, col)
		}
	}

	// Time axis: baseline, ticks, and second labels.
	dl.PushRect(x0, axisY, x1-x0, minThickness, gridColor)
	for i := int64(0); i <= WindowMS/1000; i++ {
		x := w.X(w.t0 + i*1000)
		dl.PushRect(x, axisY, minThickness, 12, gridColor)
		dl.PushText(x-10, axisY+10, strconv.FormatInt(i, 10)+"S", tickTextScale, gridColor)
	}

	store.EvictOlderThan(now - timeline.RetentionMS)
	return dl
}
