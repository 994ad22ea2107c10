package vktriangle

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// gpuFuture is work that is either chained but not yet submitted (waits and
// cmds) or already flushed behind fences (subs).
type gpuFuture struct {
	ctx   *RenderContext
	waits []vk.Semaphore
	cmds  []vk.CommandBuffer
	subs  []*submission
}

func (f *gpuFuture) CleanupFinished() {
	f.ctx.fences.Collect()
	live := f.subs[:0]
	for _, sub := range f.subs {
		if !sub.done {
			live = append(live, sub)
		}
	}
	f.subs = live
}

// Wait blocks on flushed work only; unflushed commands never complete.
func (f *gpuFuture) Wait() error {
	return f.ctx.fences.Wait(f.subs)
}

// Discard drops the chained commands and hands the waits to an empty batch,
// so the acquire semaphores are consumed before they are freed. Flushed work
// stays with its fences.
func (f *gpuFuture) Discard() {
	f.cmds = nil
	if len(f.waits) == 0 {
		return
	}
	waits := f.waits
	f.waits = nil
	if sub := f.ctx.drain(waits); sub != nil {
		f.subs = append(f.subs, sub)
	}
}

func (c *RenderContext) future() *gpuFuture {
	return &gpuFuture{ctx: c}
}

func (c *RenderContext) asGPUFuture(fut Future) (*gpuFuture, error) {
	switch f := fut.(type) {
	case nil, readyFuture:
		return c.future(), nil
	case *gpuFuture:
		return f, nil
	default:
		return nil, errors.Errorf("unexpected future type %T", fut)
	}
}

// drain submits a batch with no commands that waits on waits and signals a
// tracked fence. If that fails the semaphores are retired behind whatever
// is already outstanding.
func (c *RenderContext) drain(waits []vk.Semaphore) *submission {
	fence, err := c.fences.NewFence()
	if err == nil {
		stages := make([]vk.PipelineStageFlags, len(waits))
		for i := range stages {
			stages[i] = vk.PipelineStageFlags(vk.PipelineStageAllCommandsBit)
		}
		ret := vk.QueueSubmit(c.device.Graphics.Queue, 1, []vk.SubmitInfo{{
			SType:              vk.StructureTypeSubmitInfo,
			WaitSemaphoreCount: uint32(len(waits)),
			PWaitSemaphores:    waits,
			PWaitDstStageMask:  stages,
		}}, fence)
		if !isError(ret) {
			return c.fences.Track(fence, waits)
		}
		vk.DestroyFence(c.device.Handle(), fence, nil)
		err = NewError(ret)
	}
	c.log.Warn("drain unsubmitted waits", "semaphores", len(waits), "err", err)
	c.fences.Retire(func() { c.fences.Discard(waits) })
	return nil
}

// retireSwapchain runs destroy once every present queued so far has been
// processed. A submit with no batches signals its fence after all earlier
// work on the present queue.
func (c *RenderContext) retireSwapchain(destroy func()) {
	fence, err := c.fences.NewFence()
	if err == nil {
		ret := vk.QueueSubmit(c.device.Present.Queue, 0, nil, fence)
		if !isError(ret) {
			c.fences.Track(fence, nil)
		} else {
			vk.DestroyFence(c.device.Handle(), fence, nil)
			err = NewError(ret)
		}
	}
	if err != nil {
		c.log.Warn("fence present queue", "err", err)
	}
	c.fences.Retire(destroy)
}

func (c *RenderContext) Now() Future {
	return Ready
}

// Acquire waits without a timeout for the next image. The returned future
// carries the semaphore the presentation engine signals when the image is free.
func (c *RenderContext) Acquire(sc Swapchain) (AcquiredImage, error) {
	core, err := asCoreSwapchain(sc)
	if err != nil {
		return AcquiredImage{}, err
	}
	if core == nil {
		return AcquiredImage{}, errors.New("acquire without a swapchain")
	}
	sem, err := c.fences.NewSemaphore()
	if err != nil {
		return AcquiredImage{}, errors.Wrap(err, "create acquire semaphore")
	}

	var idx uint32
	ret := vk.AcquireNextImage(c.device.Handle(), core.Handle(), vk.MaxUint64, sem, vk.NullFence, &idx)
	if err := resultError(ret, "acquire next image"); err != nil {
		// Nothing was queued against sem.
		c.fences.Discard([]vk.Semaphore{sem})
		return AcquiredImage{}, err
	}
	ready := c.future()
	ready.waits = []vk.Semaphore{sem}
	return AcquiredImage{
		Index:      idx,
		Suboptimal: ret == vk.Suboptimal,
		Ready:      ready,
	}, nil
}

func (c *RenderContext) Join(a, b Future) Future {
	fa, err := c.asGPUFuture(a)
	if err != nil {
		c.log.Error("join", "err", err)
		return b
	}
	fb, err := c.asGPUFuture(b)
	if err != nil {
		c.log.Error("join", "err", err)
		return a
	}
	joined := c.future()
	joined.waits = append(append(joined.waits, fa.waits...), fb.waits...)
	joined.cmds = append(append(joined.cmds, fa.cmds...), fb.cmds...)
	joined.subs = append(append(joined.subs, fa.subs...), fb.subs...)
	return joined
}

// Execute only chains cmd; nothing reaches the queue until Present flushes.
func (c *RenderContext) Execute(after Future, cmd CommandBuffer) (Future, error) {
	f, err := c.asGPUFuture(after)
	if err != nil {
		return nil, err
	}
	core, ok := cmd.(*CoreCommandBuffer)
	if !ok {
		return nil, errors.Errorf("unexpected command buffer type %T", cmd)
	}
	next := c.future()
	next.waits = append(next.waits, f.waits...)
	next.cmds = append(append(next.cmds, f.cmds...), core.Handle())
	next.subs = append(next.subs, f.subs...)
	return next, nil
}

// Present submits the chained work with a fence, then queues presentation of
// image once that work signals. after is consumed whether or not it succeeds.
func (c *RenderContext) Present(after Future, sc Swapchain, image uint32) (Future, error) {
	f, err := c.asGPUFuture(after)
	if err != nil {
		return nil, err
	}
	core, err := asCoreSwapchain(sc)
	if err == nil && core == nil {
		err = errors.New("present without a swapchain")
	}
	if err == nil && int(image) >= core.ImageCount() {
		err = errors.Errorf("present image %d of %d", image, core.ImageCount())
	}
	if err != nil {
		f.Discard()
		return nil, err
	}

	renderDone, err := c.fences.NewSemaphore()
	if err != nil {
		f.Discard()
		return nil, errors.Wrap(err, "create render semaphore")
	}
	fence, err := c.fences.NewFence()
	if err != nil {
		c.fences.Discard([]vk.Semaphore{renderDone})
		f.Discard()
		return nil, errors.Wrap(err, "create frame fence")
	}

	stages := make([]vk.PipelineStageFlags, len(f.waits))
	for i := range stages {
		stages[i] = vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)
	}
	submitInfo := vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount:   uint32(len(f.waits)),
		PWaitSemaphores:      f.waits,
		PWaitDstStageMask:    stages,
		CommandBufferCount:   uint32(len(f.cmds)),
		PCommandBuffers:      f.cmds,
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{renderDone},
	}
	ret := vk.QueueSubmit(c.device.Graphics.Queue, 1, []vk.SubmitInfo{submitInfo}, fence)
	if isError(ret) {
		vk.DestroyFence(c.device.Handle(), fence, nil)
		c.fences.Discard([]vk.Semaphore{renderDone})
		f.Discard()
		return nil, errors.Wrap(NewError(ret), "queue submit")
	}

	// renderDone is waited on by the present below, which no fence covers.
	// It is parked on the image and freed with the next submission that
	// presents the same image, by when the previous present has been consumed.
	semaphores := make([]vk.Semaphore, 0, len(f.waits)+1)
	semaphores = append(semaphores, f.waits...)
	if prev := core.parkPresentWait(image, renderDone); prev != vk.NullSemaphore {
		semaphores = append(semaphores, prev)
	}
	sub := c.fences.Track(fence, semaphores)

	next := c.future()
	next.subs = append(append(next.subs, f.subs...), sub)

	ret = vk.QueuePresent(c.device.Present.Queue, &vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{renderDone},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{core.Handle()},
		PImageIndices:      []uint32{image},
	})
	if err := resultError(ret, "queue present"); err != nil {
		return next, err
	}
	return next, nil
}
