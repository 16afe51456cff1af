// Package overlay wires capture, timeline, and projection behind the
// lifecycle surface a host embeds: Configure, HandleInput, Tick, Dispose.
//
// A video-compositing host would adapt its plugin callbacks onto this
// interface; the bundled gioui and terminal binaries drive it the same way.
package overlay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"keyline/internal/config"
	"keyline/internal/input"
	"keyline/internal/render"
	"keyline/internal/timeline"
)

// FallbackRow receives clicks recorded before any monitored key has been
// pressed, matching the reference overlay's bottom row.
const FallbackRow = timeline.Row(timeline.RowCount - 1)

// Overlay is one overlay instance. Safe for a capture goroutine calling
// HandleInput concurrently with a render loop calling Tick.
type Overlay struct {
	store  *timeline.Store
	state  *input.State
	ingest *input.Ingest
	log    *slog.Logger

	mu        sync.RWMutex
	renderCfg render.Config

	captureMu sync.Mutex
	capture   input.Capture
	cancel    context.CancelFunc
}

// New creates an overlay from a validated configuration.
func New(cfg *config.Config, log *slog.Logger) (*Overlay, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	rc, keys, err := buildRenderConfig(cfg)
	if err != nil {
		return nil, err
	}

	store := timeline.NewStore(FallbackRow)
	state := input.NewState()

	o := &Overlay{
		store:     store,
		state:     state,
		ingest:    input.NewIngest(store, state, keys, nil, log),
		log:       log,
		renderCfg: rc,
	}
	log.Info("overlay created", "width", cfg.Width, "height", cfg.Height)
	return o, nil
}

// buildRenderConfig resolves the declarative config into projector form:
// parsed colors, resolved key codes, short gutter labels.
func buildRenderConfig(cfg *config.Config) (render.Config, [timeline.RowCount]uint16, error) {
	var keys [timeline.RowCount]uint16

	if err := cfg.Validate(); err != nil {
		return render.Config{}, keys, fmt.Errorf("configure overlay: %w", err)
	}

	bg, err := render.ParseHex(cfg.BgColor, float32(cfg.BgAlpha))
	if err != nil {
		return render.Config{}, keys, err
	}

	rc := render.Config{
		Width:      float32(cfg.Width),
		Height:     float32(cfg.Height),
		Background: bg,
	}
	for i, row := range cfg.RowArray() {
		if row.Key == "" {
			continue
		}
		code := input.KeyCodeByName(row.Key)
		keys[i] = code
		color, err := render.ParseHex(row.Color, 1)
		if err != nil {
			return render.Config{}, keys, err
		}
		rc.Rows[i] = render.RowStyle{
			Color:   color,
			Enabled: row.Enabled,
			Label:   input.KeyLabel(code),
		}
	}
	return rc, keys, nil
}

// Configure applies a new configuration at runtime. Rebound rows get their
// stale press state cleared; history and diagnostics otherwise persist
// across reconfiguration, as they do across a host's update callback.
func (o *Overlay) Configure(cfg *config.Config) error {
	rc, keys, err := buildRenderConfig(cfg)
	if err != nil {
		return err
	}

	o.mu.Lock()
	o.renderCfg = rc
	o.mu.Unlock()

	o.ingest.Rebind(keys)
	// The reference overlay clears every raw pressed flag on update.
	o.state.ResetAllKeys()

	o.log.Info("overlay updated",
		"width", cfg.Width, "height", cfg.Height, "bg_alpha", cfg.BgAlpha)
	return nil
}

// HandleInput ingests one raw input event. Called from the capture context.
func (o *Overlay) HandleInput(ev input.Event) {
	o.ingest.Handle(ev)
}

// Tick projects one frame at the given monotonic-millisecond time and
// prunes retired history. Called from the render context.
func (o *Overlay) Tick(now int64) render.DisplayList {
	o.state.CountFrame()

	o.mu.RLock()
	rc := o.renderCfg
	o.mu.RUnlock()

	return render.Project(o.store, now, rc)
}

// Width returns the configured canvas width in pixels.
func (o *Overlay) Width() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return int(o.renderCfg.Width)
}

// Height returns the occupied canvas height in pixels: the configured
// height, collapsing to the pads when no row is enabled.
func (o *Overlay) Height() int {
	o.mu.RLock()
	defer o.mu.RUnlock()

	var enabled [timeline.RowCount]bool
	for i, r := range o.renderCfg.Rows {
		enabled[i] = r.Enabled
	}
	l := render.Layout{Width: o.renderCfg.Width, Height: o.renderCfg.Height}
	return int(l.VisibleHeight(enabled))
}

// StartCapture attaches a capture source and begins feeding HandleInput.
func (o *Overlay) StartCapture(ctx context.Context, src input.Capture) error {
	o.captureMu.Lock()
	defer o.captureMu.Unlock()
	if o.capture != nil {
		return input.ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	if err := src.Start(ctx, o.HandleInput); err != nil {
		cancel()
		return err
	}
	o.capture = src
	o.cancel = cancel

	_, reason := src.Available()
	o.log.Info("capture started", "source", reason)
	return nil
}

// Diagnostics returns the auxiliary atomic state and the last-press memo.
func (o *Overlay) Diagnostics() (input.Snapshot, timeline.Row, int64, bool) {
	row, down, valid := o.store.LastKey()
	return o.state.Snapshot(), row, down, valid
}

// Dispose stops capture and detaches it. The overlay must not be used
// afterwards.
func (o *Overlay) Dispose() {
	o.captureMu.Lock()
	src := o.capture
	cancel := o.cancel
	o.capture = nil
	o.cancel = nil
	o.captureMu.Unlock()

	if cancel != nil {
		cancel()
	}
	if src != nil {
		if err := src.Stop(); err != nil {
			o.log.Warn("capture stop", "err", err)
		}
	}
	o.log.Info("overlay disposed")
}
