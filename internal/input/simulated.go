package input

import (
	"context"
	"sync"
)

// Simulated is a capture source for tests and offline rendering. Events are
// injected with Emit instead of coming from real devices.
type Simulated struct {
	mu      sync.Mutex
	running bool
	sink    Sink
	cancel  context.CancelFunc
}

// NewSimulated creates a simulated capture source.
func NewSimulated() *Simulated {
	return &Simulated{}
}

// Start begins delivering emitted events to sink.
func (s *Simulated) Start(ctx context.Context, sink Sink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.sink = sink
	s.running = true

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		s.running = false
		s.sink = nil
		s.mu.Unlock()
	}()
	return nil
}

// Stop stops delivery.
func (s *Simulated) Stop() error {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	return nil
}

// Available returns true (simulated is always available).
func (s *Simulated) Available() (bool, string) {
	return true, "simulated capture (for testing)"
}

// Emit delivers one event to the sink, synchronously, preserving call order.
func (s *Simulated) Emit(ev Event) {
	s.mu.Lock()
	sink := s.sink
	s.mu.Unlock()
	if sink != nil {
		sink(ev)
	}
}

// EmitKey emits a keyboard transition.
func (s *Simulated) EmitKey(code uint16, pressed bool) {
	s.Emit(Event{Kind: KindKey, Code: code, Pressed: pressed})
}

// EmitButton emits a mouse button transition.
func (s *Simulated) EmitButton(b Button, pressed bool) {
	s.Emit(Event{Kind: KindButton, Button: b, Pressed: pressed})
}

// EmitMotion emits a relative mouse movement.
func (s *Simulated) EmitMotion(dx, dy int32) {
	s.Emit(Event{Kind: KindMotion, DX: dx, DY: dy})
}
