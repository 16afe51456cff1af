package input

import (
	"log/slog"
	"sync"

	"keyline/internal/timeline"
)

// Clock returns the current time in monotonic milliseconds.
type Clock func() int64

// Ingest is the single producer feeding the timeline store. The capture
// goroutine calls Handle for every raw event; a config apply may call
// Rebind concurrently from another goroutine.
type Ingest struct {
	store *timeline.Store
	state *State
	clock Clock
	log   *slog.Logger

	mu   sync.RWMutex
	keys [timeline.RowCount]uint16
}

// NewIngest creates an ingest writing to store, with the given row key
// bindings. A nil clock uses NowMS; a nil logger discards.
func NewIngest(store *timeline.Store, state *State, keys [timeline.RowCount]uint16, clock Clock, log *slog.Logger) *Ingest {
	if clock == nil {
		clock = NowMS
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Ingest{
		store: store,
		state: state,
		clock: clock,
		log:   log,
		keys:  keys,
	}
}

// Keys returns the current row key bindings.
func (g *Ingest) Keys() [timeline.RowCount]uint16 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.keys
}

// Handle processes one raw event. The event is stamped with the ingest
// clock at this moment; any timestamp embedded in the raw event is ignored.
func (g *Ingest) Handle(ev Event) {
	switch ev.Kind {
	case KindKey:
		g.handleKey(ev)
	case KindMotion:
		g.state.lastDX.Store(ev.DX)
		g.state.lastDY.Store(ev.DY)
		g.state.totalDX.Add(int64(ev.DX))
		g.state.totalDY.Add(int64(ev.DY))
		g.state.mouseEvents.Add(1)
	case KindButton:
		g.handleButton(ev)
	}
}

func (g *Ingest) handleKey(ev Event) {
	g.state.keyEvents.Add(1)

	row := timeline.Classify(ev.Code, g.Keys())
	if row == timeline.RowNone {
		return
	}

	// Raw pressed flag is diagnostics only. Duplicate-down suppression is
	// the store's already-open-segment check, nothing else.
	g.state.setKeyDown(row, ev.Pressed)

	t := g.clock()
	if ev.Pressed {
		g.store.OpenSegment(row, t)
	} else {
		g.store.CloseSegment(row, t)
	}
}

func (g *Ingest) handleButton(ev Event) {
	g.state.mouseEvents.Add(1)

	switch ev.Button {
	case ButtonPrimary:
		g.state.m1.Store(ev.Pressed)
		if ev.Pressed {
			c := g.store.RecordClick(g.clock())
			g.log.Debug("click recorded", "row", int(c.Row), "delta_ms", c.Delta)
		}
	case ButtonSecondary:
		g.state.m2.Store(ev.Pressed)
	case ButtonMiddle:
		g.state.m3.Store(ev.Pressed)
	}
}

// Rebind swaps in new row key bindings. For every row whose key changed,
// the raw pressed flag is cleared and any open segment is closed at the
// current time, so press state from the old binding cannot leak into the
// new one.
func (g *Ingest) Rebind(keys [timeline.RowCount]uint16) {
	g.mu.Lock()
	old := g.keys
	g.keys = keys
	g.mu.Unlock()

	t := g.clock()
	for i := range keys {
		if keys[i] == old[i] {
			continue
		}
		row := timeline.Row(i)
		g.state.ResetKeyDown(row)
		g.store.CloseRow(row, t)
		g.log.Info("row rebound", "row", i, "key", KeyName(keys[i]))
	}
}
