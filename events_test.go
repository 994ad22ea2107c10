package vktriangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// scriptedSource replays batches of events and then asks to close.
type scriptedSource struct {
	batches [][]Event
	redraw  bool
	polls   int
}

func (s *scriptedSource) PollEvents() []Event {
	s.polls++
	var out []Event
	if s.redraw {
		s.redraw = false
		out = append(out, RedrawRequested)
	}
	if len(s.batches) == 0 {
		return append(out, CloseRequested)
	}
	out = append(out, s.batches[0]...)
	s.batches = s.batches[1:]
	return out
}

func (s *scriptedSource) RequestRedraw() {
	s.redraw = true
}

func TestRunEventLoop(t *testing.T) {
	src := &scriptedSource{batches: [][]Event{
		{Resized, MainEventsCleared},
		{MainEventsCleared},
		{CloseRequested, Resized, MainEventsCleared},
	}}
	var order []string
	RunEventLoop(src, LoopHandler{
		Resize: func() { order = append(order, "resize") },
		Redraw: func() { order = append(order, "redraw") },
	})

	assert.Equal(t, []string{"resize", "redraw", "redraw"}, order)
	assert.Equal(t, 3, src.polls)
}

func TestRunEventLoopNilHandlers(t *testing.T) {
	src := &scriptedSource{batches: [][]Event{{Resized, MainEventsCleared}, {EventNone}}}
	assert.NotPanics(t, func() { RunEventLoop(src, LoopHandler{}) })
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "close requested", CloseRequested.String())
	assert.Equal(t, "redraw requested", RedrawRequested.String())
	assert.Equal(t, "none", Event(42).String())
}
