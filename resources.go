package vktriangle

// Releaser gives up a resource. Implementations may defer the actual
// destruction until the device has finished any work that references it.
type Releaser interface {
	Release()
}

// Swapchain is the presentable image chain currently bound to the surface.
type Swapchain interface {
	Releaser
	Format() SurfaceFormat
	Extent() Extent
	ImageCount() int
}

// RenderPass is the single color pass the pipeline renders into.
type RenderPass interface {
	Releaser
	ColorFormat() SurfaceFormat
}

// Pipeline is the fixed triangle pipeline built for one extent.
type Pipeline interface {
	Releaser
	Extent() Extent
}

// Framebuffer binds the render pass color attachment to one swapchain image.
type Framebuffer interface {
	Releaser
}

// CommandBuffer is pre-recorded work drawing the triangle into one framebuffer.
type CommandBuffer interface {
	Releaser
}

// Builder creates everything that depends on the swapchain. Every method
// either returns a complete result or an error with nothing left allocated.
type Builder interface {
	// CreateSwapchain builds a new chain; old, when non-nil, is handed to the
	// driver as the chain being replaced but is not released.
	CreateSwapchain(old Swapchain) (Swapchain, error)
	CreateRenderPass(format SurfaceFormat) (RenderPass, error)
	CreatePipeline(extent Extent, pass RenderPass) (Pipeline, error)
	CreateFramebuffers(sc Swapchain, pass RenderPass) ([]Framebuffer, error)
	CreateCommandBuffers(framebuffers []Framebuffer, pass RenderPass, pipeline Pipeline) ([]CommandBuffer, error)
}

// AcquiredImage is the result of a successful acquisition.
type AcquiredImage struct {
	Index uint32
	// Suboptimal means the image can be rendered but the chain should be rebuilt.
	Suboptimal bool
	// Ready completes when the image may be rendered to.
	Ready Future
}

// Presenter issues device work for one frame. Methods return immediately;
// the returned futures represent work still pending on the device.
type Presenter interface {
	// Now returns a future that is already complete.
	Now() Future
	// Acquire blocks until the chain hands out an image. It returns ErrOutOfDate
	// when the chain no longer matches the surface.
	Acquire(sc Swapchain) (AcquiredImage, error)
	// Join returns a future that completes when both a and b have.
	Join(a, b Future) Future
	// Execute chains cmd on the graphics queue after the given future. On
	// error after is left to the caller.
	Execute(after Future, cmd CommandBuffer) (Future, error)
	// Present chains presentation of image on the present queue, signals a
	// fence and flushes. It returns ErrOutOfDate if the chain went stale.
	// after is consumed even when an error is returned.
	Present(after Future, sc Swapchain, image uint32) (Future, error)
}

func releaseAll[T Releaser](list []T) {
	for _, r := range list {
		r.Release()
	}
}
