package input

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyline/internal/timeline"
)

var wasdKeys = [timeline.RowCount]uint16{CodeW, CodeS, CodeA, CodeD}

// fakeClock hands out a scripted sequence of timestamps.
type fakeClock struct {
	times []int64
	i     int
}

func (c *fakeClock) now() int64 {
	if c.i >= len(c.times) {
		return c.times[len(c.times)-1]
	}
	t := c.times[c.i]
	c.i++
	return t
}

func newTestIngest(t *testing.T, times ...int64) (*Ingest, *timeline.Store, *State) {
	t.Helper()
	store := timeline.NewStore(3)
	state := NewState()
	clk := &fakeClock{times: times}
	return NewIngest(store, state, wasdKeys, clk.now, nil), store, state
}

func TestIngestKeyDownUpMakesSegment(t *testing.T) {
	g, store, state := newTestIngest(t, 100, 350)

	g.Handle(Event{Kind: KindKey, Code: CodeW, Pressed: true})
	assert.True(t, state.KeyDown(0))

	g.Handle(Event{Kind: KindKey, Code: CodeW, Pressed: false})
	assert.False(t, state.KeyDown(0))

	segs, _ := store.Snapshot()
	require.Len(t, segs, 1)
	assert.Equal(t, timeline.Segment{Row: 0, Start: 100, End: 350}, segs[0])
}

func TestIngestClickAfterPress(t *testing.T) {
	// down(W)@100, up(W)@350, down(W)@400, click@450 -> {W, 450, 50}
	g, store, _ := newTestIngest(t, 100, 350, 400, 450)

	g.Handle(Event{Kind: KindKey, Code: CodeW, Pressed: true})
	g.Handle(Event{Kind: KindKey, Code: CodeW, Pressed: false})
	g.Handle(Event{Kind: KindKey, Code: CodeW, Pressed: true})
	g.Handle(Event{Kind: KindButton, Button: ButtonPrimary, Pressed: true})

	_, clicks := store.Snapshot()
	require.Len(t, clicks, 1)
	assert.Equal(t, timeline.Click{Row: 0, Time: 450, Delta: 50}, clicks[0])
}

func TestIngestClickWithoutPressFallsBack(t *testing.T) {
	// click@100 with no prior key press, fallback row D -> {D, 100, 0}
	g, store, _ := newTestIngest(t, 100)

	g.Handle(Event{Kind: KindButton, Button: ButtonPrimary, Pressed: true})

	_, clicks := store.Snapshot()
	require.Len(t, clicks, 1)
	assert.Equal(t, timeline.Click{Row: 3, Time: 100, Delta: 0}, clicks[0])
}

func TestIngestUnmappedKeyIgnored(t *testing.T) {
	g, store, state := newTestIngest(t, 100)

	g.Handle(Event{Kind: KindKey, Code: CodeQ, Pressed: true})

	segs, _ := store.Snapshot()
	assert.Empty(t, segs)
	// Still counted as a raw keyboard event.
	assert.Equal(t, uint32(1), state.Snapshot().KeyEvents)
}

func TestIngestMotionUpdatesDiagnosticsOnly(t *testing.T) {
	g, store, state := newTestIngest(t, 100)

	g.Handle(Event{Kind: KindMotion, DX: 5, DY: -3})
	g.Handle(Event{Kind: KindMotion, DX: 2})

	snap := state.Snapshot()
	assert.Equal(t, int32(2), snap.LastDX)
	assert.Equal(t, int64(7), snap.TotalDX)
	assert.Equal(t, int64(-3), snap.TotalDY)
	assert.Equal(t, uint32(2), snap.MouseEvents)

	segs, clicks := store.Snapshot()
	assert.Empty(t, segs)
	assert.Empty(t, clicks)
}

func TestIngestSecondaryButtonsAreDiagnosticsOnly(t *testing.T) {
	g, store, state := newTestIngest(t, 100)

	g.Handle(Event{Kind: KindButton, Button: ButtonSecondary, Pressed: true})
	g.Handle(Event{Kind: KindButton, Button: ButtonMiddle, Pressed: true})
	g.Handle(Event{Kind: KindButton, Button: ButtonPrimary, Pressed: false})

	snap := state.Snapshot()
	assert.True(t, snap.M2)
	assert.True(t, snap.M3)
	assert.False(t, snap.M1)

	_, clicks := store.Snapshot()
	assert.Empty(t, clicks)
}

func TestIngestRebindResetsStalePress(t *testing.T) {
	g, store, state := newTestIngest(t, 100, 200, 300)

	g.Handle(Event{Kind: KindKey, Code: CodeW, Pressed: true})
	require.True(t, state.KeyDown(0))

	newKeys := wasdKeys
	newKeys[0] = CodeSpace
	g.Rebind(newKeys)

	// The stale press from the old binding is gone.
	assert.False(t, state.KeyDown(0))
	segs, _ := store.Snapshot()
	require.Len(t, segs, 1)
	assert.False(t, segs[0].Open())

	// The new binding works from the next event on.
	g.Handle(Event{Kind: KindKey, Code: CodeSpace, Pressed: true})
	segs, _ = store.Snapshot()
	require.Len(t, segs, 2)
	assert.Equal(t, timeline.Row(0), segs[1].Row)
	assert.True(t, segs[1].Open())
}

func TestIngestRebindLeavesUnchangedRowsAlone(t *testing.T) {
	g, store, state := newTestIngest(t, 100, 200)

	g.Handle(Event{Kind: KindKey, Code: CodeS, Pressed: true})

	newKeys := wasdKeys
	newKeys[0] = CodeSpace // only row 0 changes
	g.Rebind(newKeys)

	assert.True(t, state.KeyDown(1))
	segs, _ := store.Snapshot()
	require.Len(t, segs, 1)
	assert.True(t, segs[0].Open())
}

func TestSimulatedCaptureDeliversInOrder(t *testing.T) {
	sim := NewSimulated()

	var got []Event
	require.NoError(t, sim.Start(context.Background(), func(ev Event) {
		got = append(got, ev)
	}))
	defer sim.Stop()

	sim.EmitKey(CodeW, true)
	sim.EmitMotion(1, 2)
	sim.EmitButton(ButtonPrimary, true)

	require.Len(t, got, 3)
	assert.Equal(t, KindKey, got[0].Kind)
	assert.Equal(t, KindMotion, got[1].Kind)
	assert.Equal(t, KindButton, got[2].Kind)

	ok, reason := sim.Available()
	assert.True(t, ok)
	assert.NotEmpty(t, reason)
}

func TestSimulatedStartTwice(t *testing.T) {
	sim := NewSimulated()
	require.NoError(t, sim.Start(context.Background(), func(Event) {}))
	assert.ErrorIs(t, sim.Start(context.Background(), func(Event) {}), ErrAlreadyRunning)
	sim.Stop()
}

func TestKeyTables(t *testing.T) {
	assert.Equal(t, "W", KeyName(CodeW))
	assert.Equal(t, "UNKNOWN", KeyName(0xfff))
	assert.Equal(t, CodeSpace, KeyCodeByName("space"))
	assert.Equal(t, uint16(0), KeyCodeByName("NO SUCH KEY"))

	assert.Equal(t, "SPC", KeyLabel(CodeSpace))
	assert.Equal(t, "LFT", KeyLabel(CodeLeft))
	assert.Equal(t, "W", KeyLabel(CodeW))
	// Long names truncate to three characters.
	assert.Equal(t, "UNK", KeyLabel(0xfff))
}
