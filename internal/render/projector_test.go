package render

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyline/internal/timeline"
)

func testConfig() Config {
	return Config{
		Width:      1500,
		Height:     520,
		Background: MustHex("#000000", 0.55),
		Rows: [timeline.RowCount]RowStyle{
			{Color: MustHex("#f3c85d", 1), Enabled: true, Label: "W"},
			{Color: MustHex("#9cff9c", 1), Enabled: true, Label: "S"},
			{Color: MustHex("#cf3f3f", 1), Enabled: true, Label: "A"},
			{Color: MustHex("#0aa0c8", 1), Enabled: true, Label: "D"},
		},
	}
}

// rectsWithColor filters rects by color, ignoring alpha.
func rectsWithColor(dl DisplayList, c RGBA) []DrawRect {
	var out []DrawRect
	for _, r := range dl.Rects {
		if r.Color.R == c.R && r.Color.G == c.G && r.Color.B == c.B {
			out = append(out, r)
		}
	}
	return out
}

func TestProjectBackgroundFirst(t *testing.T) {
	store := timeline.NewStore(3)
	cfg := testConfig()

	dl := Project(store, 10000, cfg)

	require.NotEmpty(t, dl.Rects)
	bg := dl.Rects[0]
	assert.Equal(t, float32(0), bg.X)
	assert.Equal(t, float32(0), bg.Y)
	assert.Equal(t, cfg.Width, bg.W)
	assert.Equal(t, cfg.Height, bg.H)
	assert.InDelta(t, 0.55, float64(bg.Color.A), 0.001)
}

func TestProjectSegmentBar(t *testing.T) {
	store := timeline.NewStore(3)
	cfg := testConfig()

	now := int64(10000)
	store.OpenSegment(0, now-2000)
	store.CloseSegment(0, now-1000)

	dl := Project(store, now, cfg)

	bars := rectsWithColor(dl, cfg.Rows[0].Color)
	require.Len(t, bars, 1)
	bar := bars[0]

	l := Layout{Width: cfg.Width, Height: cfg.Height}
	w := window{t0: now - WindowMS, t1: now, x0: LeftPad, x1: cfg.Width - RightPad}
	assert.InDelta(t, float64(w.X(now-2000)), float64(bar.X), 0.5)
	assert.InDelta(t, float64(w.X(now-1000)-w.X(now-2000)), float64(bar.W), 0.5)
	assert.InDelta(t, segmentAlpha, float64(bar.Color.A), 0.001)

	// Centered at the configured fraction of the row height.
	rowH := l.RowHeight(4)
	assert.InDelta(t, float64(rowH)*barHeightFraction, float64(bar.H), 1)
}

func TestProjectOpenSegmentExtendsToNow(t *testing.T) {
	store := timeline.NewStore(3)
	cfg := testConfig()

	now := int64(10000)
	store.OpenSegment(1, now-500)

	dl := Project(store, now, cfg)

	bars := rectsWithColor(dl, cfg.Rows[1].Color)
	require.Len(t, bars, 1)

	w := window{t0: now - WindowMS, t1: now, x0: LeftPad, x1: cfg.Width - RightPad}
	right := bars[0].X + bars[0].W
	assert.InDelta(t, float64(w.X(now)), float64(right), 0.5)
}

func TestProjectSegmentClampedToWindow(t *testing.T) {
	store := timeline.NewStore(3)
	cfg := testConfig()

	now := int64(20000)
	// Starts before the window, still open: bar spans the whole track.
	store.OpenSegment(2, now-8000)

	dl := Project(store, now, cfg)
	bars := rectsWithColor(dl, cfg.Rows[2].Color)
	require.Len(t, bars, 1)

	assert.InDelta(t, float64(LeftPad), float64(bars[0].X), 0.5)
	assert.InDelta(t, float64(cfg.Width-RightPad-LeftPad), float64(bars[0].W), 0.5)
}

func TestProjectSegmentOutsideWindowSkipped(t *testing.T) {
	store := timeline.NewStore(3)
	cfg := testConfig()

	now := int64(20000)
	store.OpenSegment(0, 1000)
	store.CloseSegment(0, 2000) // well before the 5s window

	dl := Project(store, now, cfg)
	assert.Empty(t, rectsWithColor(dl, cfg.Rows[0].Color))
}

func TestProjectMinimumBarThickness(t *testing.T) {
	store := timeline.NewStore(3)
	cfg := testConfig()

	now := int64(10000)
	// A 1ms tap maps to well under a pixel; it still gets a visible bar.
	store.OpenSegment(0, now-100)
	store.CloseSegment(0, now-99)

	dl := Project(store, now, cfg)
	bars := rectsWithColor(dl, cfg.Rows[0].Color)
	require.Len(t, bars, 1)
	assert.GreaterOrEqual(t, bars[0].W, float32(minThickness))
}

func TestProjectClickMarkerAndDelta(t *testing.T) {
	store := timeline.NewStore(3)
	cfg := testConfig()

	now := int64(10000)
	store.OpenSegment(0, now-1000)
	c := store.RecordClick(now - 500)
	require.Equal(t, int64(500), c.Delta)

	dl := Project(store, now, cfg)

	// Marker line plus the glyph cells of "500", all in the row color.
	marked := rectsWithColor(dl, cfg.Rows[0].Color)
	require.NotEmpty(t, marked)

	var marker *DrawRect
	for i := range marked {
		if marked[i].H > 100 && marked[i].W == float32(minThickness) {
			marker = &marked[i]
			break
		}
	}
	require.NotNil(t, marker, "expected a tall click marker line")
	assert.InDelta(t, clickAlpha, float64(marker.Color.A), 0.001)

	// The delta label is recorded as a glyph run next to the marker.
	var run *DrawGlyphRun
	for i := range dl.Runs {
		if dl.Runs[i].Text == strconv.FormatInt(c.Delta, 10) {
			run = &dl.Runs[i]
			break
		}
	}
	require.NotNil(t, run)
	assert.InDelta(t, float64(marker.X+6), float64(run.X), 0.5)
}

func TestProjectDisabledRowHidesItsHistory(t *testing.T) {
	store := timeline.NewStore(3)
	cfg := testConfig()
	cfg.Rows[0].Enabled = false

	now := int64(10000)
	store.OpenSegment(0, now-1000)
	store.RecordClick(now - 500) // attributed to row 0

	dl := Project(store, now, cfg)
	assert.Empty(t, rectsWithColor(dl, cfg.Rows[0].Color))
}

func TestProjectNoRowsEnabled(t *testing.T) {
	store := timeline.NewStore(3)
	cfg := testConfig()
	for i := range cfg.Rows {
		cfg.Rows[i].Enabled = false
	}
	store.OpenSegment(0, 9000)

	dl := Project(store, 10000, cfg)

	// Background collapses to the pads; no bars, markers, or labels.
	require.NotEmpty(t, dl.Rects)
	assert.Equal(t, TopPad+BottomPad, dl.Rects[0].H)
	assert.Empty(t, rectsWithColor(dl, cfg.Rows[0].Color))
}

func TestProjectGridAndTicks(t *testing.T) {
	store := timeline.NewStore(3)
	dl := Project(store, 10000, testConfig())

	grid := rectsWithColor(dl, gridColor)
	// 6 gridlines + baseline + 6 ticks, plus tick label glyph cells.
	assert.GreaterOrEqual(t, len(grid), 13)

	labels := map[string]bool{}
	for _, run := range dl.Runs {
		labels[run.Text] = true
	}
	for i := 0; i <= 5; i++ {
		assert.True(t, labels[strconv.Itoa(i)+"S"], "missing tick label %dS", i)
	}
}

func TestProjectEvictsRetiredHistory(t *testing.T) {
	store := timeline.NewStore(3)
	cfg := testConfig()

	store.OpenSegment(0, 5000)
	store.CloseSegment(0, 9000)
	store.RecordClick(9500)
	store.OpenSegment(1, 15000)

	Project(store, 40000, cfg)

	segs, clicks := store.Snapshot()
	require.Len(t, segs, 1)
	assert.Equal(t, int64(15000), segs[0].Start)
	assert.Empty(t, clicks)
}

func TestProjectDegenerateCanvas(t *testing.T) {
	store := timeline.NewStore(3)
	cfg := testConfig()
	cfg.Width = 16
	cfg.Height = 16 // smaller than the pads

	store.OpenSegment(0, 9000)

	// Must not panic or emit negative-size rects.
	dl := Project(store, 10000, cfg)
	for _, r := range dl.Rects {
		assert.Greater(t, r.W, float32(0))
		assert.Greater(t, r.H, float32(0))
	}
}
