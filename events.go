package vktriangle

// Event is one of the window signals the renderer reacts to.
type Event int

const (
	EventNone Event = iota
	// CloseRequested ends the loop.
	CloseRequested
	// Resized means the drawable size changed and the swapchain is stale.
	Resized
	// MainEventsCleared follows the last input event of a poll.
	MainEventsCleared
	// RedrawRequested asks for one frame.
	RedrawRequested
)

func (e Event) String() string {
	switch e {
	case CloseRequested:
		return "close requested"
	case Resized:
		return "resized"
	case MainEventsCleared:
		return "main events cleared"
	case RedrawRequested:
		return "redraw requested"
	default:
		return "none"
	}
}

// EventSource delivers window events in the order they happened.
type EventSource interface {
	// PollEvents returns the events observed since the previous call.
	PollEvents() []Event
	// RequestRedraw schedules a RedrawRequested for a later poll.
	RequestRedraw()
}

// LoopHandler reacts to the signals RunEventLoop dispatches.
type LoopHandler struct {
	Resize func()
	Redraw func()
}

// RunEventLoop dispatches events until the source reports CloseRequested.
func RunEventLoop(src EventSource, h LoopHandler) {
	for {
		for _, ev := range src.PollEvents() {
			switch ev {
			case CloseRequested:
				return
			case Resized:
				if h.Resize != nil {
					h.Resize()
				}
			case MainEventsCleared:
				src.RequestRedraw()
			case RedrawRequested:
				if h.Redraw != nil {
					h.Redraw()
				}
			}
		}
	}
}
