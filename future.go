package vktriangle

// Future is a handle to device work that may not have completed yet.
type Future interface {
	// CleanupFinished releases whatever the device reports as finished. It never blocks.
	CleanupFinished()
	// Wait blocks until all work behind the future has completed.
	Wait() error
	// Discard gives up work that was chained but never submitted. What was
	// already submitted keeps running.
	Discard()
}

type readyFuture struct{}

func (readyFuture) CleanupFinished() {}

func (readyFuture) Wait() error { return nil }

func (readyFuture) Discard() {}

// Ready is a future that is already complete and owns nothing.
var Ready Future = readyFuture{}
