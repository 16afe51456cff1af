// keyline-tty previews the input timeline in a terminal. Rectangles are
// downsampled onto the character grid as colored cells and glyph runs are
// drawn as real text, so the layout can be checked over SSH without a
// display server.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"keyline/internal/config"
	"keyline/internal/input"
	"keyline/internal/overlay"
	"keyline/internal/render"
)

func main() {
	demo := flag.Bool("demo", false, "Feed scripted demo input instead of live capture")
	configPath := flag.String("config", "", "Config file path")
	flag.Parse()

	path := *configPath
	if path == "" {
		path = config.ConfigPath()
	}
	cfg, _, err := config.LoadOrCreate(path)
	if err != nil {
		log.Fatal(err)
	}

	ov, err := overlay.New(cfg, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer ov.Dispose()

	if *demo {
		sim := input.NewSimulated()
		if err := ov.StartCapture(context.Background(), sim); err != nil {
			log.Fatal(err)
		}
		go runDemo(sim)
	} else {
		src := input.New()
		if ok, reason := src.Available(); !ok {
			log.Fatalf("capture unavailable: %s (try -demo)", reason)
		}
		if err := ov.StartCapture(context.Background(), src); err != nil {
			log.Fatal(err)
		}
	}

	s, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := s.Init(); err != nil {
		log.Fatal(err)
	}
	defer s.Fini()
	s.SetStyle(tcell.StyleDefault)

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			events <- s.PollEvent()
		}
	}()

	frame := time.NewTicker(50 * time.Millisecond)
	defer frame.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				s.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
					return
				}
			}
		case <-frame.C:
			dl := ov.Tick(input.NowMS())
			draw(s, dl, ov.Width(), ov.Height())
		}
	}
}

// runDemo feeds a repeating movement-and-click pattern through the
// simulated source.
func runDemo(sim *input.Simulated) {
	keys := []uint16{input.CodeW, input.CodeA, input.CodeS, input.CodeD}
	for i := 0; ; i++ {
		code := keys[i%len(keys)]
		sim.EmitKey(code, true)
		time.Sleep(time.Duration(150+50*(i%3)) * time.Millisecond)
		sim.EmitKey(code, false)
		if i%4 == 3 {
			sim.EmitButton(input.ButtonPrimary, true)
			sim.EmitButton(input.ButtonPrimary, false)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

func draw(s tcell.Screen, dl render.DisplayList, cw, ch int) {
	s.Clear()
	tw, th := s.Size()
	if tw == 0 || th == 0 || cw <= 0 || ch <= 0 {
		return
	}
	sx := float32(tw) / float32(cw)
	sy := float32(th) / float32(ch)

	for _, r := range dl.Rects {
		style := tcell.StyleDefault.Background(cellColor(r.Color))
		x0, y0 := int(r.X*sx), int(r.Y*sy)
		x1, y1 := int((r.X+r.W)*sx+0.5), int((r.Y+r.H)*sy+0.5)
		if x1 <= x0 {
			x1 = x0 + 1
		}
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for y := y0; y < y1 && y < th; y++ {
			for x := x0; x < x1 && x < tw; x++ {
				s.SetContent(x, y, ' ', nil, style)
			}
		}
	}

	// Text drawn after rects so labels stay readable over the blocks the
	// decomposed glyph cells left behind.
	for _, run := range dl.Runs {
		style := tcell.StyleDefault.Foreground(cellColor(run.Color))
		x, y := int(run.X*sx), int(run.Y*sy)
		for i := 0; i < len(run.Text) && x+i < tw; i++ {
			if y >= 0 && y < th {
				s.SetContent(x+i, y, rune(run.Text[i]), nil, style)
			}
		}
	}
	s.Show()
}

func cellColor(c render.RGBA) tcell.Color {
	n := c.NRGBA()
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}
