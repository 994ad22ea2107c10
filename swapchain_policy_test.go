package vktriangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func windowedCaps() SurfaceCapabilities {
	return SurfaceCapabilities{
		MinImageCount:           1,
		MaxImageCount:           3,
		MinImageExtent:          Extent{1, 1},
		MaxImageExtent:          Extent{4096, 4096},
		SupportedCompositeAlpha: vk.CompositeAlphaFlags(vk.CompositeAlphaOpaqueBit),
		Formats:                 []SurfaceFormat{RequiredSurfaceFormat},
		PresentModes:            []vk.PresentMode{vk.PresentModeMailbox, vk.PresentModeFifo},
	}
}

func TestChooseWindowedScenario(t *testing.T) {
	caps := windowedCaps()
	assert.Equal(t, uint32(2), ChooseImageCount(caps))
	assert.Equal(t, Extent{800, 600}, ChooseExtent(caps, Extent{800, 600}))
}

func TestChooseImageCount(t *testing.T) {
	tests := []struct {
		name     string
		min, max uint32
		want     uint32
	}{
		{"fixed", 2, 2, 2},
		{"fixed single", 1, 1, 1},
		{"one above minimum", 2, 8, 3},
		{"unbounded", 3, 0, 4},
		{"max just above min", 2, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := SurfaceCapabilities{MinImageCount: tt.min, MaxImageCount: tt.max}
			assert.Equal(t, tt.want, ChooseImageCount(caps))
		})
	}
}

func TestChooseImageCountFixedEqualsBound(t *testing.T) {
	for n := uint32(1); n <= 8; n++ {
		caps := SurfaceCapabilities{MinImageCount: n, MaxImageCount: n}
		assert.Equal(t, n, ChooseImageCount(caps), "min == max == %d", n)
	}
}

func TestChooseExtentUsesCurrentExtent(t *testing.T) {
	caps := windowedCaps()
	caps.HasCurrentExtent = true
	caps.CurrentExtent = Extent{1024, 768}
	assert.Equal(t, Extent{1024, 768}, ChooseExtent(caps, Extent{800, 600}))
	assert.Equal(t, Extent{1024, 768}, ChooseExtent(caps, Extent{10000, 1}))
}

func TestChooseExtentClamps(t *testing.T) {
	caps := windowedCaps()
	caps.MinImageExtent = Extent{64, 32}
	caps.MaxImageExtent = Extent{1920, 1080}

	assert.Equal(t, Extent{64, 32}, ChooseExtent(caps, Extent{0, 0}))
	assert.Equal(t, Extent{1920, 1080}, ChooseExtent(caps, Extent{4000, 3000}))
	assert.Equal(t, Extent{64, 1080}, ChooseExtent(caps, Extent{10, 2000}))
	assert.Equal(t, Extent{640, 480}, ChooseExtent(caps, Extent{640, 480}))
}

func TestChooseSurfaceFormat(t *testing.T) {
	got, err := ChooseSurfaceFormat([]SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorspaceSrgbNonlinear},
		RequiredSurfaceFormat,
	})
	require.NoError(t, err)
	assert.Equal(t, RequiredSurfaceFormat, got)

	got, err = ChooseSurfaceFormat([]SurfaceFormat{{Format: vk.FormatUndefined}})
	require.NoError(t, err)
	assert.Equal(t, RequiredSurfaceFormat, got)

	_, err = ChooseSurfaceFormat([]SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorspaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorspaceSrgbNonlinear},
	})
	assert.ErrorIs(t, err, ErrFormatUnsupported)

	_, err = ChooseSurfaceFormat(nil)
	assert.ErrorIs(t, err, ErrFormatUnsupported)
}

func TestCheckPresentation(t *testing.T) {
	caps := windowedCaps()
	assert.NoError(t, checkPresentation(caps))

	noFifo := windowedCaps()
	noFifo.PresentModes = []vk.PresentMode{vk.PresentModeMailbox}
	assert.Error(t, checkPresentation(noFifo))

	noOpaque := windowedCaps()
	noOpaque.SupportedCompositeAlpha = vk.CompositeAlphaFlags(vk.CompositeAlphaInheritBit)
	assert.Error(t, checkPresentation(noOpaque))
}

func TestChooseSharing(t *testing.T) {
	shared := ChooseSharing(QueueHandle{Family: 0}, QueueHandle{Family: 0})
	assert.Equal(t, vk.SharingModeExclusive, shared.Mode)
	assert.Empty(t, shared.Families)

	split := ChooseSharing(QueueHandle{Family: 0}, QueueHandle{Family: 2})
	assert.Equal(t, vk.SharingModeConcurrent, split.Mode)
	assert.Equal(t, []uint32{0, 2}, split.Families)
}
