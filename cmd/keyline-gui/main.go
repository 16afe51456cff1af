// keyline-gui renders the input timeline overlay in its own window.
package main

import (
	"context"
	"image"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"

	"keyline/internal/config"
	"keyline/internal/input"
	"keyline/internal/logging"
	"keyline/internal/overlay"
	"keyline/internal/render"
)

func main() {
	cfg, _, err := config.LoadOrCreate(config.ConfigPath())
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(&logging.Config{
		Level:     logging.ParseLevel(cfg.Logging.Level),
		Format:    cfg.Logging.Format,
		Output:    cfg.Logging.Output,
		Component: "keyline-gui",
	})
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Close()

	ov, err := overlay.New(cfg, logger.Logger)
	if err != nil {
		log.Fatal(err)
	}

	src := input.New()
	if ok, reason := src.Available(); ok {
		if err := ov.StartCapture(context.Background(), src); err != nil {
			logger.Warn("capture failed to start", "err", err)
		}
	} else {
		logger.Warn("running without capture", "reason", reason)
	}

	// Reconfigure live when the config file changes.
	loader := config.NewLoader(config.ConfigPath())
	if _, err := loader.Load(); err == nil {
		loader.OnChange(func(c *config.Config) {
			if err := ov.Configure(c); err != nil {
				logger.Warn("config reload rejected", "err", err)
			}
		})
		if err := loader.Watch(); err != nil {
			logger.Warn("config watch unavailable", "err", err)
		}
		defer loader.Close()
	}

	go func() {
		w := new(app.Window)
		w.Option(app.Title("Keyline"))
		w.Option(app.Size(unit.Dp(cfg.Width), unit.Dp(cfg.Height)))

		if err := loop(w, ov); err != nil {
			log.Fatal(err)
		}
		ov.Dispose()
		os.Exit(0)
	}()
	app.Main()
}

func loop(w *app.Window, ov *overlay.Overlay) error {
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			dl := ov.Tick(input.NowMS())
			paintFrame(gtx.Ops, dl, ov.Width(), ov.Height(), e.Size)

			e.Frame(gtx.Ops)
			// The timeline scrolls continuously; redraw every frame.
			w.Invalidate()
		}
	}
}

// paintFrame fills the display list's rectangles, scaled from canvas
// coordinates to the window size. Glyph runs are already decomposed into
// rects, so rect fills are all a window sink needs.
func paintFrame(ops *op.Ops, dl render.DisplayList, cw, ch int, size image.Point) {
	if cw <= 0 || ch <= 0 {
		return
	}
	sx := float32(size.X) / float32(cw)
	sy := float32(size.Y) / float32(ch)

	for _, r := range dl.Rects {
		rect := clip.Rect{
			Min: image.Pt(int(r.X*sx), int(r.Y*sy)),
			Max: image.Pt(int((r.X+r.W)*sx+0.5), int((r.Y+r.H)*sy+0.5)),
		}
		paint.FillShape(ops, r.Color.NRGBA(), rect.Op())
	}
}
