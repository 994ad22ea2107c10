package vktriangle

import (
	vk "github.com/vulkan-go/vulkan"
)

// CoreRenderPass has a single color attachment that is cleared, stored and
// left ready for presentation.
type CoreRenderPass struct {
	device vk.Device
	handle vk.RenderPass
	format SurfaceFormat
	retire func(func())
}

func NewCoreRenderPass(device vk.Device, format SurfaceFormat) (*CoreRenderPass, error) {
	attachmentDescriptions := []vk.AttachmentDescription{{
		Format:         format.Format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}}

	colorReferences := []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}

	subpasses := []vk.SubpassDescription{{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: uint32(len(colorReferences)),
		PColorAttachments:    colorReferences,
	}}

	// Writes to the attachment wait until the acquired image is released by
	// the presentation engine.
	dependencies := []vk.SubpassDependency{{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentReadBit | vk.AccessColorAttachmentWriteBit),
	}}

	var handle vk.RenderPass
	ret := vk.CreateRenderPass(device, &vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachmentDescriptions)),
		PAttachments:    attachmentDescriptions,
		SubpassCount:    uint32(len(subpasses)),
		PSubpasses:      subpasses,
		DependencyCount: uint32(len(dependencies)),
		PDependencies:   dependencies,
	}, nil, &handle)
	if isError(ret) {
		return nil, NewError(ret)
	}
	return &CoreRenderPass{device: device, handle: handle, format: format}, nil
}

func (p *CoreRenderPass) ColorFormat() SurfaceFormat {
	return p.format
}

func (p *CoreRenderPass) Handle() vk.RenderPass {
	return p.handle
}

func (p *CoreRenderPass) Release() {
	destroy := func() {
		vk.DestroyRenderPass(p.device, p.handle, nil)
	}
	if p.retire == nil {
		destroy()
		return
	}
	p.retire(destroy)
}
