package render

// DrawRect is one solid-color quad for the draw-primitive boundary.
type DrawRect struct {
	X, Y, W, H float32
	Color      RGBA
}

// DrawGlyphRun is a positioned text run. The projector decomposes every run
// into DrawRect cells before the list leaves the core, so sinks that only
// know how to fill rectangles never see it; it is kept on the list for
// sinks (like the terminal preview) that can render text natively.
type DrawGlyphRun struct {
	X, Y  float32
	Text  string
	Scale float32
	Color RGBA
}

// DisplayList is the ordered output of one projected frame. Rects are
// emitted in paint order: background first, decorations, bars, markers.
type DisplayList struct {
	Rects []DrawRect
	Runs  []DrawGlyphRun
}

// PushRect appends a rectangle. Non-positive sizes are dropped here so the
// sink never sees a degenerate quad.
func (dl *DisplayList) PushRect(x, y, w, h float32, c RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	dl.Rects = append(dl.Rects, DrawRect{X: x, Y: y, W: w, H: h, Color: c})
}

// PushText records a glyph run and decomposes it into one rect per lit
// font cell. Spaces advance the pen; characters outside the font are
// skipped (advance still applies, matching the gap a glyph would leave).
func (dl *DisplayList) PushText(x, y float32, text string, scale float32, c RGBA) {
	if text == "" {
		return
	}
	dl.Runs = append(dl.Runs, DrawGlyphRun{X: x, Y: y, Text: text, Scale: scale, Color: c})

	cell := glyphCell(scale)
	penX := x
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch == ' ' {
			penX += 6 * cell
			continue
		}
		for r := 0; r < 7; r++ {
			bits := glyphRow(ch, r)
			for col := 0; col < 5; col++ {
				if bits&(1<<(4-col)) != 0 {
					dl.PushRect(penX+float32(col)*cell, y+float32(r)*cell, cell, cell, c)
				}
			}
		}
		penX += 6 * cell
	}
}
