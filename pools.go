package vktriangle

import (
	vk "github.com/vulkan-go/vulkan"
)

// ClearColor is the background every frame is cleared to.
var ClearColor = []float32{0, 0, 0, 1}

// CorePool owns the command pool for the graphics family.
type CorePool struct {
	device vk.Device
	pool   vk.CommandPool
}

func NewCorePool(device vk.Device, family uint32) (*CorePool, error) {
	var pool vk.CommandPool
	ret := vk.CreateCommandPool(device, &vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: family,
	}, nil, &pool)
	if isError(ret) {
		return nil, NewError(ret)
	}
	return &CorePool{device: device, pool: pool}, nil
}

func (c *CorePool) Destroy() {
	vk.DestroyCommandPool(c.device, c.pool, nil)
}

// CoreCommandBuffer draws the triangle into one framebuffer. It is recorded
// once and may be pending several times at once.
type CoreCommandBuffer struct {
	pool   *CorePool
	handle vk.CommandBuffer
	retire func(func())
}

// Record allocates one primary buffer per framebuffer and records the clear
// and draw into each.
func (c *CorePool) Record(framebuffers []*CoreFramebuffer, pass *CoreRenderPass, pipeline *CorePipeline) ([]*CoreCommandBuffer, error) {
	if len(framebuffers) == 0 {
		return nil, nil
	}
	buffers := make([]vk.CommandBuffer, len(framebuffers))
	ret := vk.AllocateCommandBuffers(c.device, &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        c.pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: uint32(len(buffers)),
	}, buffers)
	if isError(ret) {
		return nil, NewError(ret)
	}

	for i, buffer := range buffers {
		if err := recordTriangle(buffer, framebuffers[i], pass, pipeline); err != nil {
			vk.FreeCommandBuffers(c.device, c.pool, uint32(len(buffers)), buffers)
			return nil, err
		}
	}

	out := make([]*CoreCommandBuffer, len(buffers))
	for i := range buffers {
		out[i] = &CoreCommandBuffer{pool: c, handle: buffers[i]}
	}
	return out, nil
}

func recordTriangle(buffer vk.CommandBuffer, fb *CoreFramebuffer, pass *CoreRenderPass, pipeline *CorePipeline) error {
	ret := vk.BeginCommandBuffer(buffer, &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageSimultaneousUseBit),
	})
	if isError(ret) {
		return NewError(ret)
	}

	clearValues := []vk.ClearValue{
		vk.NewClearValue(ClearColor),
	}
	vk.CmdBeginRenderPass(buffer, &vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  pass.Handle(),
		Framebuffer: fb.Handle(),
		RenderArea: vk.Rect2D{
			Extent: toExtent2D(fb.Extent()),
		},
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}, vk.SubpassContentsInline)
	vk.CmdBindPipeline(buffer, vk.PipelineBindPointGraphics, pipeline.Handle())
	vk.CmdDraw(buffer, 3, 1, 0, 0)
	vk.CmdEndRenderPass(buffer)

	ret = vk.EndCommandBuffer(buffer)
	if isError(ret) {
		return NewError(ret)
	}
	return nil
}

func (b *CoreCommandBuffer) Handle() vk.CommandBuffer {
	return b.handle
}

func (b *CoreCommandBuffer) Release() {
	destroy := func() {
		vk.FreeCommandBuffers(b.pool.device, b.pool.pool, 1, []vk.CommandBuffer{b.handle})
	}
	if b.retire == nil {
		destroy()
		return
	}
	b.retire(destroy)
}
