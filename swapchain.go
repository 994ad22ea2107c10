package vktriangle

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// CoreSwapchain is one generation of the presentable image chain. It is never
// patched: recreation builds a new value and the old one is released.
type CoreSwapchain struct {
	device  *Device
	surface vk.Surface
	handle  vk.Swapchain
	retire  func(func())

	format  SurfaceFormat
	extent  Extent
	sharing Sharing
	images  []vk.Image
	views   []vk.ImageView

	// presentWaits holds, per image, the semaphore its last present waited on.
	presentWaits []vk.Semaphore
}

// CreateSwapchain negotiates a chain for the surface. When old is non-nil it
// is passed to the driver as the chain being replaced; the caller still owns it.
func CreateSwapchain(dev *Device, surface vk.Surface, window DrawableSizer, old *CoreSwapchain) (*CoreSwapchain, error) {
	caps, ret := QuerySurface(dev.PhysicalDevice(), surface)
	if isError(ret) {
		return nil, newSwapchainError(ret, "query surface capabilities")
	}
	format, err := ChooseSurfaceFormat(caps.Formats)
	if err != nil {
		return nil, &SwapchainCreationError{Kind: SwapchainErrorOther, Err: err}
	}
	if err := checkPresentation(caps); err != nil {
		return nil, &SwapchainCreationError{Kind: SwapchainErrorOther, Err: err}
	}

	count := ChooseImageCount(caps)
	extent := ChooseExtent(caps, window.DrawableSize())
	sharing := ChooseSharing(dev.Graphics, dev.Present)

	oldHandle := vk.NullSwapchain
	if old != nil {
		oldHandle = old.handle
	}

	var handle vk.Swapchain
	ret = vk.CreateSwapchain(dev.Handle(), &vk.SwapchainCreateInfo{
		SType:                 vk.StructureTypeSwapchainCreateInfo,
		Surface:               surface,
		MinImageCount:         count,
		ImageFormat:           format.Format,
		ImageColorSpace:       format.ColorSpace,
		ImageExtent:           toExtent2D(extent),
		ImageArrayLayers:      1,
		ImageUsage:            vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode:      sharing.Mode,
		QueueFamilyIndexCount: uint32(len(sharing.Families)),
		PQueueFamilyIndices:   sharing.Families,
		PreTransform:          caps.CurrentTransform,
		CompositeAlpha:        vk.CompositeAlphaOpaqueBit,
		PresentMode:           vk.PresentModeFifo,
		Clipped:               vk.True,
		OldSwapchain:          oldHandle,
	}, nil, &handle)
	if isError(ret) {
		return nil, newSwapchainError(ret, "create swapchain")
	}

	sc := &CoreSwapchain{
		device:  dev,
		surface: surface,
		handle:  handle,
		format:  format,
		extent:  extent,
		sharing: sharing,
	}
	if old != nil {
		sc.retire = old.retire
	}

	var imageCount uint32
	ret = vk.GetSwapchainImages(dev.Handle(), handle, &imageCount, nil)
	if isError(ret) {
		sc.destroy()
		return nil, newSwapchainError(ret, "get swapchain images")
	}
	sc.images = make([]vk.Image, imageCount)
	ret = vk.GetSwapchainImages(dev.Handle(), handle, &imageCount, sc.images)
	if isError(ret) {
		sc.destroy()
		return nil, newSwapchainError(ret, "get swapchain images")
	}
	sc.images = sc.images[:imageCount]
	sc.presentWaits = make([]vk.Semaphore, imageCount)

	for i := range sc.images {
		view, ret := createColorView(dev.Handle(), sc.images[i], format.Format)
		if isError(ret) {
			sc.destroy()
			return nil, newSwapchainError(ret, "create image view")
		}
		sc.views = append(sc.views, view)
	}
	return sc, nil
}

// Recreate builds the replacement chain for the same device and surface.
func (s *CoreSwapchain) Recreate(window DrawableSizer) (*CoreSwapchain, error) {
	return CreateSwapchain(s.device, s.surface, window, s)
}

func createColorView(device vk.Device, image vk.Image, format vk.Format) (vk.ImageView, vk.Result) {
	var view vk.ImageView
	ret := vk.CreateImageView(device, &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    image,
		ViewType: vk.ImageViewType2d,
		Format:   format,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleIdentity,
			G: vk.ComponentSwizzleIdentity,
			B: vk.ComponentSwizzleIdentity,
			A: vk.ComponentSwizzleIdentity,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: 1,
			LayerCount: 1,
		},
	}, nil, &view)
	return view, ret
}

func (s *CoreSwapchain) Format() SurfaceFormat {
	return s.format
}

func (s *CoreSwapchain) Extent() Extent {
	return s.extent
}

func (s *CoreSwapchain) ImageCount() int {
	return len(s.images)
}

func (s *CoreSwapchain) Sharing() Sharing {
	return s.sharing
}

func (s *CoreSwapchain) Handle() vk.Swapchain {
	return s.handle
}

// Views returns one color view per image, index aligned with the images.
func (s *CoreSwapchain) Views() []vk.ImageView {
	return s.views
}

// parkPresentWait records sem as the semaphore the next present of image
// waits on and returns the one it replaces, or NullSemaphore.
func (s *CoreSwapchain) parkPresentWait(image uint32, sem vk.Semaphore) vk.Semaphore {
	prev := s.presentWaits[image]
	s.presentWaits[image] = sem
	return prev
}

// Release destroys the chain once the work and presents referencing it have
// finished. It never waits on a queue.
func (s *CoreSwapchain) Release() {
	if s.retire == nil {
		s.destroy()
		return
	}
	s.retire(s.destroy)
}

func (s *CoreSwapchain) destroy() {
	dev := s.device.Handle()
	for _, sem := range s.presentWaits {
		if sem != vk.NullSemaphore {
			vk.DestroySemaphore(dev, sem, nil)
		}
	}
	s.presentWaits = nil
	for _, view := range s.views {
		vk.DestroyImageView(dev, view, nil)
	}
	s.views = nil
	if s.handle != vk.NullSwapchain {
		vk.DestroySwapchain(dev, s.handle, nil)
		s.handle = vk.NullSwapchain
	}
}

func asCoreSwapchain(sc Swapchain) (*CoreSwapchain, error) {
	if sc == nil {
		return nil, nil
	}
	core, ok := sc.(*CoreSwapchain)
	if !ok {
		return nil, errors.Errorf("unexpected swapchain type %T", sc)
	}
	return core, nil
}
