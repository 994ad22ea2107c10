package vktriangle

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
)

// Recreation stages, in the order they run.
const (
	StageSwapchain      = "swapchain"
	StageRenderPass     = "render pass"
	StagePipeline       = "pipeline"
	StageFramebuffers   = "framebuffers"
	StageCommandBuffers = "command buffers"
)

// RecreateError reports the first stage of a rebuild that failed.
type RecreateError struct {
	Stage string
	Err   error
}

func (e *RecreateError) Error() string {
	return fmt.Sprintf("recreate %s: %v", e.Stage, e.Err)
}

func (e *RecreateError) Unwrap() error {
	return e.Err
}

// FrameState is everything the frame loop mutates between ticks. It is owned
// by the thread running the loop and handed to Tick by pointer.
type FrameState struct {
	Swapchain  Swapchain
	RenderPass RenderPass
	Pipeline   Pipeline

	// Framebuffers and CommandBuffers are index aligned with the swapchain images.
	Framebuffers   []Framebuffer
	CommandBuffers []CommandBuffer

	// InFlight is the most recent submitted work not yet known to be complete.
	InFlight Future

	RecreateRequested bool

	// superseded holds values a rebuild replaced while later stages still
	// reference them. They are released once the whole chain is rebuilt.
	superseded []Releaser
}

// BuildFrameState runs the full build once. Any failure releases what was
// built and is returned; there is no partial state at startup.
func BuildFrameState(b Builder) (*FrameState, error) {
	s := &FrameState{}
	if err := rebuild(s, b); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

// RequestRecreate marks the swapchain stale; the next tick rebuilds it.
func (s *FrameState) RequestRecreate() {
	s.RecreateRequested = true
}

// Stale reports whether a rebuild stopped partway, leaving later stages built
// against a chain that has been replaced. Nothing is drawn while stale.
func (s *FrameState) Stale() bool {
	return len(s.superseded) > 0
}

// Release gives up every resource currently held. The in-flight future is dropped.
func (s *FrameState) Release() {
	s.releaseSuperseded()
	releaseAll(s.CommandBuffers)
	releaseAll(s.Framebuffers)
	if s.Pipeline != nil {
		s.Pipeline.Release()
	}
	if s.RenderPass != nil {
		s.RenderPass.Release()
	}
	if s.Swapchain != nil {
		s.Swapchain.Release()
	}
	*s = FrameState{}
}

// releaseSuperseded releases dependents before what they were built from.
func (s *FrameState) releaseSuperseded() {
	for i := len(s.superseded) - 1; i >= 0; i-- {
		s.superseded[i].Release()
	}
	s.superseded = nil
}

func (s *FrameState) supersede(r Releaser) {
	s.superseded = append(s.superseded, r)
}

// rebuild replaces stages strictly in order, and the first failure stops the
// chain with every later stage untouched. Replaced values are kept until the
// command buffers are rebuilt, since the untouched stages still use them.
func rebuild(s *FrameState, b Builder) error {
	sc, err := b.CreateSwapchain(s.Swapchain)
	if err != nil {
		return &RecreateError{Stage: StageSwapchain, Err: err}
	}
	if s.Swapchain != nil {
		s.supersede(s.Swapchain)
	}
	s.Swapchain = sc

	pass, err := b.CreateRenderPass(s.Swapchain.Format())
	if err != nil {
		return &RecreateError{Stage: StageRenderPass, Err: err}
	}
	if s.RenderPass != nil {
		s.supersede(s.RenderPass)
	}
	s.RenderPass = pass

	pipeline, err := b.CreatePipeline(s.Swapchain.Extent(), s.RenderPass)
	if err != nil {
		return &RecreateError{Stage: StagePipeline, Err: err}
	}
	if s.Pipeline != nil {
		s.supersede(s.Pipeline)
	}
	s.Pipeline = pipeline

	fbs, err := b.CreateFramebuffers(s.Swapchain, s.RenderPass)
	if err != nil {
		return &RecreateError{Stage: StageFramebuffers, Err: err}
	}
	if len(fbs) != s.Swapchain.ImageCount() {
		releaseAll(fbs)
		return &RecreateError{Stage: StageFramebuffers,
			Err: errors.Errorf("built %d framebuffers for %d images", len(fbs), s.Swapchain.ImageCount())}
	}
	for _, fb := range s.Framebuffers {
		s.supersede(fb)
	}
	s.Framebuffers = fbs

	cmds, err := b.CreateCommandBuffers(s.Framebuffers, s.RenderPass, s.Pipeline)
	if err != nil {
		return &RecreateError{Stage: StageCommandBuffers, Err: err}
	}
	if len(cmds) != len(s.Framebuffers) {
		releaseAll(cmds)
		return &RecreateError{Stage: StageCommandBuffers,
			Err: errors.Errorf("recorded %d command buffers for %d framebuffers", len(cmds), len(s.Framebuffers))}
	}
	releaseAll(s.CommandBuffers)
	s.CommandBuffers = cmds
	s.releaseSuperseded()
	return nil
}

// TickReport summarizes what one tick did.
type TickReport struct {
	// Stale is set when drawing was skipped because the last rebuild stopped partway.
	Stale bool

	Acquired   bool
	Image      uint32
	Suboptimal bool
	Submitted  bool
	Presented  bool

	// Recreated is set when a rebuild was attempted; RecreateErr holds its failure.
	Recreated   bool
	RecreateErr error
}

// FrameLoop drives one acquire/submit/present cycle per tick.
type FrameLoop struct {
	presenter Presenter
	builder   Builder
	log       *slog.Logger
}

func NewFrameLoop(p Presenter, b Builder, log *slog.Logger) *FrameLoop {
	if log == nil {
		log = slog.Default()
	}
	return &FrameLoop{presenter: p, builder: b, log: log}
}

// Tick runs one frame against s.
func (l *FrameLoop) Tick(s *FrameState) TickReport {
	var report TickReport

	if s.InFlight != nil {
		s.InFlight.CleanupFinished()
	}

	l.draw(s, &report)

	if s.RecreateRequested {
		// Cleared before the attempt: a failed rebuild waits for the next
		// resize, or out-of-date result if it replaced nothing.
		s.RecreateRequested = false
		report.Recreated = true
		if err := rebuild(s, l.builder); err != nil {
			report.RecreateErr = err
			l.log.Error("swapchain recreation failed", "err", err)
		} else {
			l.log.Debug("swapchain recreated", "images", s.Swapchain.ImageCount(),
				"width", s.Swapchain.Extent().Width, "height", s.Swapchain.Extent().Height)
		}
	}
	return report
}

// dropInFlight replaces the in-flight future with next, discarding whatever
// of the old one was never submitted.
func dropInFlight(s *FrameState, next Future) {
	if s.InFlight != nil {
		s.InFlight.Discard()
	}
	s.InFlight = next
}

func (l *FrameLoop) draw(s *FrameState, report *TickReport) {
	if s.Stale() {
		report.Stale = true
		l.log.Debug("frame skipped, swapchain partially rebuilt")
		return
	}

	acquired, err := l.presenter.Acquire(s.Swapchain)
	switch {
	case errors.Is(err, ErrOutOfDate):
		s.RecreateRequested = true
		dropInFlight(s, l.presenter.Now())
		return
	case err != nil:
		l.log.Error("acquire next image", "err", err)
		dropInFlight(s, nil)
		return
	}
	report.Acquired = true
	report.Image = acquired.Index
	report.Suboptimal = acquired.Suboptimal
	if acquired.Suboptimal {
		s.RecreateRequested = true
	}

	after := acquired.Ready
	if s.InFlight != nil {
		after = l.presenter.Join(s.InFlight, acquired.Ready)
	}

	if int(acquired.Index) >= len(s.CommandBuffers) {
		l.log.Error("acquired image has no command buffer", "image", acquired.Index,
			"command_buffers", len(s.CommandBuffers))
		// The next submission consumes the acquisition instead.
		s.InFlight = after
		s.RecreateRequested = true
		return
	}

	executed, err := l.presenter.Execute(after, s.CommandBuffers[acquired.Index])
	if err != nil {
		l.log.Error("execute command buffer", "image", acquired.Index, "err", err)
		// after already holds the old in-flight future.
		after.Discard()
		s.InFlight = nil
		return
	}
	report.Submitted = true

	presented, err := l.presenter.Present(executed, s.Swapchain, acquired.Index)
	switch {
	case errors.Is(err, ErrOutOfDate):
		s.RecreateRequested = true
		s.InFlight = l.presenter.Now()
	case err != nil:
		// Present consumed executed.
		l.log.Error("present", "image", acquired.Index, "err", err)
		s.InFlight = nil
	default:
		report.Presented = true
		s.InFlight = presented
	}
}
