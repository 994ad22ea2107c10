package vktriangle

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// RequiredSurfaceFormat is the only color format the swapchain is created with.
var RequiredSurfaceFormat = SurfaceFormat{
	Format:     vk.FormatB8g8r8a8Unorm,
	ColorSpace: vk.ColorspaceSrgbNonlinear,
}

// ChooseImageCount prefers one image above the minimum without exceeding the maximum.
func ChooseImageCount(caps SurfaceCapabilities) uint32 {
	max := caps.MaxImageCount
	if max == 0 {
		max = caps.MinImageCount + 1
	}
	if want := caps.MinImageCount + 1; want < max {
		return want
	}
	return max
}

// ChooseExtent uses the surface's current extent when it reports one; otherwise
// the drawable size is clamped into the supported range.
func ChooseExtent(caps SurfaceCapabilities, drawable Extent) Extent {
	if caps.HasCurrentExtent {
		return caps.CurrentExtent
	}
	return Extent{
		Width:  clampUint32(drawable.Width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clampUint32(drawable.Height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// ChooseSurfaceFormat accepts only RequiredSurfaceFormat. A lone undefined
// entry means the surface has no preference.
func ChooseSurfaceFormat(formats []SurfaceFormat) (SurfaceFormat, error) {
	if len(formats) == 1 && formats[0].Format == vk.FormatUndefined {
		return RequiredSurfaceFormat, nil
	}
	for _, f := range formats {
		if f == RequiredSurfaceFormat {
			return f, nil
		}
	}
	return SurfaceFormat{}, ErrFormatUnsupported
}

// checkPresentation verifies opaque composition and FIFO presentation are available.
func checkPresentation(caps SurfaceCapabilities) error {
	if caps.SupportedCompositeAlpha&vk.CompositeAlphaFlags(vk.CompositeAlphaOpaqueBit) == 0 {
		return errors.New("opaque composite alpha unsupported")
	}
	for _, mode := range caps.PresentModes {
		if mode == vk.PresentModeFifo {
			return nil
		}
	}
	return errors.New("fifo present mode unsupported")
}

// Sharing describes how swapchain images are shared between queue families.
type Sharing struct {
	Mode     vk.SharingMode
	Families []uint32
}

// ChooseSharing is exclusive when both queues come from one family and
// concurrent across the two families otherwise.
func ChooseSharing(graphics, present QueueHandle) Sharing {
	if graphics.Family == present.Family {
		return Sharing{Mode: vk.SharingModeExclusive}
	}
	return Sharing{
		Mode:     vk.SharingModeConcurrent,
		Families: []uint32{graphics.Family, present.Family},
	}
}
