package vktriangle

import (
	"log/slog"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// RenderContext builds the swapchain-dependent resources and issues each
// frame's work. Everything it creates is destroyed through its FenceManager,
// so releasing a resource never stalls on the device.
type RenderContext struct {
	device  *Device
	surface vk.Surface
	window  DrawableSizer
	program *ShaderProgram
	pool    *CorePool
	fences  *FenceManager
	log     *slog.Logger
}

func NewRenderContext(dev *Device, surface vk.Surface, window DrawableSizer, program *ShaderProgram, log *slog.Logger) (*RenderContext, error) {
	if log == nil {
		log = slog.Default()
	}
	pool, err := NewCorePool(dev.Handle(), dev.Graphics.Family)
	if err != nil {
		return nil, errors.Wrap(err, "create command pool")
	}
	return &RenderContext{
		device:  dev,
		surface: surface,
		window:  window,
		program: program,
		pool:    pool,
		fences:  NewFenceManager(dev.Handle()),
		log:     log,
	}, nil
}

func (c *RenderContext) Device() *Device {
	return c.device
}

func (c *RenderContext) retire(destroy func()) {
	c.fences.Retire(destroy)
}

func (c *RenderContext) CreateSwapchain(old Swapchain) (Swapchain, error) {
	prev, err := asCoreSwapchain(old)
	if err != nil {
		return nil, err
	}
	var sc *CoreSwapchain
	if prev != nil {
		sc, err = prev.Recreate(c.window)
	} else {
		sc, err = CreateSwapchain(c.device, c.surface, c.window, nil)
	}
	if err != nil {
		return nil, err
	}
	sc.retire = c.retireSwapchain
	c.log.Debug("swapchain created", "images", sc.ImageCount(),
		"width", sc.Extent().Width, "height", sc.Extent().Height,
		"sharing", sharingName(sc.Sharing().Mode))
	return sc, nil
}

func (c *RenderContext) CreateRenderPass(format SurfaceFormat) (RenderPass, error) {
	pass, err := NewCoreRenderPass(c.device.Handle(), format)
	if err != nil {
		return nil, err
	}
	pass.retire = c.retire
	return pass, nil
}

func (c *RenderContext) CreatePipeline(extent Extent, pass RenderPass) (Pipeline, error) {
	corePass, ok := pass.(*CoreRenderPass)
	if !ok {
		return nil, errors.Errorf("unexpected render pass type %T", pass)
	}
	pipeline, err := NewCorePipeline(c.device.Handle(), c.program, corePass, extent)
	if err != nil {
		return nil, err
	}
	pipeline.retire = c.retire
	return pipeline, nil
}

func (c *RenderContext) CreateFramebuffers(sc Swapchain, pass RenderPass) ([]Framebuffer, error) {
	coreSc, err := asCoreSwapchain(sc)
	if err != nil {
		return nil, err
	}
	corePass, ok := pass.(*CoreRenderPass)
	if !ok {
		return nil, errors.Errorf("unexpected render pass type %T", pass)
	}
	fbs, err := NewCoreFramebuffers(c.device.Handle(), coreSc, corePass)
	if err != nil {
		return nil, err
	}
	out := make([]Framebuffer, len(fbs))
	for i, fb := range fbs {
		fb.retire = c.retire
		out[i] = fb
	}
	return out, nil
}

func (c *RenderContext) CreateCommandBuffers(framebuffers []Framebuffer, pass RenderPass, pipeline Pipeline) ([]CommandBuffer, error) {
	corePass, ok := pass.(*CoreRenderPass)
	if !ok {
		return nil, errors.Errorf("unexpected render pass type %T", pass)
	}
	corePipeline, ok := pipeline.(*CorePipeline)
	if !ok {
		return nil, errors.Errorf("unexpected pipeline type %T", pipeline)
	}
	fbs := make([]*CoreFramebuffer, len(framebuffers))
	for i, fb := range framebuffers {
		coreFb, ok := fb.(*CoreFramebuffer)
		if !ok {
			return nil, errors.Errorf("unexpected framebuffer type %T", fb)
		}
		fbs[i] = coreFb
	}
	cmds, err := c.pool.Record(fbs, corePass, corePipeline)
	if err != nil {
		return nil, err
	}
	out := make([]CommandBuffer, len(cmds))
	for i, cmd := range cmds {
		cmd.retire = c.retire
		out[i] = cmd
	}
	return out, nil
}

// Destroy waits for every tracked submission, runs pending destructions and
// frees the command pool. The device must already be idle or about to be.
func (c *RenderContext) Destroy() {
	c.fences.Destroy()
	c.pool.Destroy()
}

func sharingName(mode vk.SharingMode) string {
	if mode == vk.SharingModeConcurrent {
		return "concurrent"
	}
	return "exclusive"
}
