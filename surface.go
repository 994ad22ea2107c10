package vktriangle

import (
	vk "github.com/vulkan-go/vulkan"
)

// Extent is a width/height pair in pixels.
type Extent struct {
	Width  uint32
	Height uint32
}

// SurfaceFormat pairs a pixel format with its color space.
type SurfaceFormat struct {
	Format     vk.Format
	ColorSpace vk.ColorSpace
}

// SurfaceCapabilities is the read-only view of what the surface allows for a swapchain.
type SurfaceCapabilities struct {
	MinImageCount uint32
	// MaxImageCount of zero means the surface imposes no upper bound.
	MaxImageCount uint32

	// CurrentExtent is meaningful only when HasCurrentExtent is set; otherwise
	// the swapchain decides the size.
	CurrentExtent    Extent
	HasCurrentExtent bool
	MinImageExtent   Extent
	MaxImageExtent   Extent

	CurrentTransform        vk.SurfaceTransformFlagBits
	SupportedCompositeAlpha vk.CompositeAlphaFlags

	Formats      []SurfaceFormat
	PresentModes []vk.PresentMode
}

// A DrawableSizer reports the current drawable size of the window behind a surface.
type DrawableSizer interface {
	DrawableSize() Extent
}

// QuerySurface reads capabilities, formats and present modes for a surface.
// Returned results are raw so callers can classify the failure.
func QuerySurface(gpu vk.PhysicalDevice, surface vk.Surface) (SurfaceCapabilities, vk.Result) {
	var raw vk.SurfaceCapabilities
	ret := vk.GetPhysicalDeviceSurfaceCapabilities(gpu, surface, &raw)
	if isError(ret) {
		return SurfaceCapabilities{}, ret
	}
	raw.Deref()
	raw.CurrentExtent.Deref()
	raw.MinImageExtent.Deref()
	raw.MaxImageExtent.Deref()

	caps := SurfaceCapabilities{
		MinImageCount:           raw.MinImageCount,
		MaxImageCount:           raw.MaxImageCount,
		CurrentExtent:           Extent{raw.CurrentExtent.Width, raw.CurrentExtent.Height},
		HasCurrentExtent:        raw.CurrentExtent.Width != vk.MaxUint32,
		MinImageExtent:          Extent{raw.MinImageExtent.Width, raw.MinImageExtent.Height},
		MaxImageExtent:          Extent{raw.MaxImageExtent.Width, raw.MaxImageExtent.Height},
		CurrentTransform:        raw.CurrentTransform,
		SupportedCompositeAlpha: raw.SupportedCompositeAlpha,
	}

	var formatCount uint32
	ret = vk.GetPhysicalDeviceSurfaceFormats(gpu, surface, &formatCount, nil)
	if isError(ret) {
		return SurfaceCapabilities{}, ret
	}
	formats := make([]vk.SurfaceFormat, formatCount)
	ret = vk.GetPhysicalDeviceSurfaceFormats(gpu, surface, &formatCount, formats)
	if isError(ret) {
		return SurfaceCapabilities{}, ret
	}
	for _, f := range formats[:formatCount] {
		f.Deref()
		caps.Formats = append(caps.Formats, SurfaceFormat{Format: f.Format, ColorSpace: f.ColorSpace})
	}

	var modeCount uint32
	ret = vk.GetPhysicalDeviceSurfacePresentModes(gpu, surface, &modeCount, nil)
	if isError(ret) {
		return SurfaceCapabilities{}, ret
	}
	modes := make([]vk.PresentMode, modeCount)
	ret = vk.GetPhysicalDeviceSurfacePresentModes(gpu, surface, &modeCount, modes)
	if isError(ret) {
		return SurfaceCapabilities{}, ret
	}
	caps.PresentModes = modes[:modeCount]
	return caps, vk.Success
}
