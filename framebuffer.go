package vktriangle

import (
	vk "github.com/vulkan-go/vulkan"
)

// CoreFramebuffer targets one swapchain image view.
type CoreFramebuffer struct {
	device vk.Device
	handle vk.Framebuffer
	extent Extent
	retire func(func())
}

// NewCoreFramebuffers builds one framebuffer per view of sc, in image order.
// On failure the ones already built are destroyed.
func NewCoreFramebuffers(device vk.Device, sc *CoreSwapchain, pass *CoreRenderPass) ([]*CoreFramebuffer, error) {
	extent := sc.Extent()
	out := make([]*CoreFramebuffer, 0, len(sc.Views()))
	for _, view := range sc.Views() {
		attachments := []vk.ImageView{view}
		var handle vk.Framebuffer
		ret := vk.CreateFramebuffer(device, &vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      pass.Handle(),
			AttachmentCount: uint32(len(attachments)),
			PAttachments:    attachments,
			Width:           extent.Width,
			Height:          extent.Height,
			Layers:          1,
		}, nil, &handle)
		if isError(ret) {
			for _, fb := range out {
				fb.destroy()
			}
			return nil, NewError(ret)
		}
		out = append(out, &CoreFramebuffer{device: device, handle: handle, extent: extent})
	}
	return out, nil
}

func (f *CoreFramebuffer) Handle() vk.Framebuffer {
	return f.handle
}

func (f *CoreFramebuffer) Extent() Extent {
	return f.extent
}

func (f *CoreFramebuffer) Release() {
	if f.retire == nil {
		f.destroy()
		return
	}
	f.retire(f.destroy)
}

func (f *CoreFramebuffer) destroy() {
	vk.DestroyFramebuffer(f.device, f.handle, nil)
}
