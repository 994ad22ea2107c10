package vktriangle

import (
	vk "github.com/vulkan-go/vulkan"
)

// CorePipeline is the triangle pipeline with its viewport baked in for one extent.
type CorePipeline struct {
	device vk.Device
	layout vk.PipelineLayout
	handle vk.Pipeline
	extent Extent
	retire func(func())
}

type pipelineBuilder struct {
	shaderStages         []vk.PipelineShaderStageCreateInfo
	vertexInputInfo      vk.PipelineVertexInputStateCreateInfo
	inputAssembly        vk.PipelineInputAssemblyStateCreateInfo
	rasterizer           vk.PipelineRasterizationStateCreateInfo
	colorBlendAttachment vk.PipelineColorBlendAttachmentState
	multisampling        vk.PipelineMultisampleStateCreateInfo
}

// Vertices come from gl_VertexIndex, so there is no vertex input.
func newPipelineBuilder(vert, frag vk.ShaderModule) *pipelineBuilder {
	return &pipelineBuilder{
		shaderStages: []vk.PipelineShaderStageCreateInfo{{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageVertexBit,
			Module: vert,
			PName:  safeString("main"),
		}, {
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageFragmentBit,
			Module: frag,
			PName:  safeString("main"),
		}},
		vertexInputInfo: vk.PipelineVertexInputStateCreateInfo{
			SType: vk.StructureTypePipelineVertexInputStateCreateInfo,
		},
		inputAssembly: vk.PipelineInputAssemblyStateCreateInfo{
			SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
			Topology:               vk.PrimitiveTopologyTriangleList,
			PrimitiveRestartEnable: vk.False,
		},
		rasterizer: vk.PipelineRasterizationStateCreateInfo{
			SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
			DepthClampEnable:        vk.False,
			RasterizerDiscardEnable: vk.False,
			PolygonMode:             vk.PolygonModeFill,
			CullMode:                vk.CullModeFlags(vk.CullModeBackBit),
			FrontFace:               vk.FrontFaceClockwise,
			DepthBiasEnable:         vk.False,
			LineWidth:               1.0,
		},
		colorBlendAttachment: vk.PipelineColorBlendAttachmentState{
			BlendEnable: vk.False,
			ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit |
				vk.ColorComponentBBit | vk.ColorComponentABit),
		},
		multisampling: vk.PipelineMultisampleStateCreateInfo{
			SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
			RasterizationSamples: vk.SampleCount1Bit,
			SampleShadingEnable:  vk.False,
			MinSampleShading:     1.0,
		},
	}
}

func (p *pipelineBuilder) build(device vk.Device, pass vk.RenderPass, layout vk.PipelineLayout, extent Extent) (vk.Pipeline, error) {
	viewports := []vk.Viewport{{
		Width:    float32(extent.Width),
		Height:   float32(extent.Height),
		MinDepth: 0,
		MaxDepth: 1,
	}}
	scissors := []vk.Rect2D{{Extent: toExtent2D(extent)}}
	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: uint32(len(viewports)),
		PViewports:    viewports,
		ScissorCount:  uint32(len(scissors)),
		PScissors:     scissors,
	}

	attachments := []vk.PipelineColorBlendAttachmentState{p.colorBlendAttachment}
	blendState := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		LogicOpEnable:   vk.False,
		LogicOp:         vk.LogicOpCopy,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
	}

	pipelines := []vk.Pipeline{vk.NullPipeline}
	ret := vk.CreateGraphicsPipelines(device, nil, 1, []vk.GraphicsPipelineCreateInfo{{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(p.shaderStages)),
		PStages:             p.shaderStages,
		PVertexInputState:   &p.vertexInputInfo,
		PInputAssemblyState: &p.inputAssembly,
		PViewportState:      &viewportState,
		PRasterizationState: &p.rasterizer,
		PMultisampleState:   &p.multisampling,
		PColorBlendState:    &blendState,
		Layout:              layout,
		RenderPass:          pass,
		Subpass:             0,
	}}, nil, pipelines)
	if isError(ret) {
		return vk.NullPipeline, NewError(ret)
	}
	return pipelines[0], nil
}

// NewCorePipeline compiles the program for pass at the given extent. The
// shader modules only live for the duration of the call.
func NewCorePipeline(device vk.Device, program *ShaderProgram, pass *CoreRenderPass, extent Extent) (*CorePipeline, error) {
	vert, err := createShaderModule(device, program.Vertex)
	if err != nil {
		return nil, err
	}
	defer vk.DestroyShaderModule(device, vert, nil)
	frag, err := createShaderModule(device, program.Fragment)
	if err != nil {
		return nil, err
	}
	defer vk.DestroyShaderModule(device, frag, nil)

	var layout vk.PipelineLayout
	ret := vk.CreatePipelineLayout(device, &vk.PipelineLayoutCreateInfo{
		SType: vk.StructureTypePipelineLayoutCreateInfo,
	}, nil, &layout)
	if isError(ret) {
		return nil, NewError(ret)
	}

	handle, err := newPipelineBuilder(vert, frag).build(device, pass.Handle(), layout, extent)
	if err != nil {
		vk.DestroyPipelineLayout(device, layout, nil)
		return nil, err
	}
	return &CorePipeline{device: device, layout: layout, handle: handle, extent: extent}, nil
}

func (p *CorePipeline) Extent() Extent {
	return p.extent
}

func (p *CorePipeline) Handle() vk.Pipeline {
	return p.handle
}

func (p *CorePipeline) Release() {
	destroy := func() {
		vk.DestroyPipeline(p.device, p.handle, nil)
		vk.DestroyPipelineLayout(p.device, p.layout, nil)
	}
	if p.retire == nil {
		destroy()
		return
	}
	p.retire(destroy)
}
