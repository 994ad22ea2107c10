package vktriangle

import (
	"log/slog"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// requiredDeviceExtensions must be offered by an adapter before device creation is attempted.
var requiredDeviceExtensions = []string{"VK_KHR_swapchain"}

// Device is the logical device with its graphics and present queues. Both
// queue handles belong to this device; they alias when one family serves both roles.
type Device struct {
	Adapter  AdapterDescriptor
	Graphics QueueHandle
	Present  QueueHandle

	gpu    vk.PhysicalDevice
	handle vk.Device
}

// candidate is an adapter that passed the capability filters.
type candidate struct {
	adapter  AdapterDescriptor
	graphics uint32
	present  uint32
	families []uint32
}

type deviceFactory func(c candidate) (vk.Device, error)

// SelectDevice returns a logical device on the first adapter, in enumeration
// order, that has graphics and present families plus the swapchain extension
// and accepts device creation.
func SelectDevice(adapters []AdapterDescriptor, log *slog.Logger) (*Device, error) {
	c, handle, err := chooseAdapter(adapters, log, createLogicalDevice)
	if err != nil {
		return nil, err
	}
	dev := &Device{
		Adapter: c.adapter,
		gpu:     c.adapter.gpu,
		handle:  handle,
	}
	dev.Graphics = dev.resolveQueue(c.graphics)
	dev.Present = dev.resolveQueue(c.present)
	log.Info("device selected", "name", c.adapter.Name,
		"graphics_family", c.graphics, "present_family", c.present)
	return dev, nil
}

func chooseAdapter(adapters []AdapterDescriptor, log *slog.Logger, create deviceFactory) (candidate, vk.Device, error) {
	for _, a := range adapters {
		graphics, present, ok := chooseQueueFamilies(a.QueueFamilies)
		if !ok {
			log.Debug("adapter lacks graphics or present family", "name", a.Name)
			continue
		}
		set := NewExtensionSet(requiredDeviceExtensions, nil, a.Extensions)
		if missing := set.MissingRequired(); len(missing) > 0 {
			log.Debug("adapter lacks device extensions", "name", a.Name, "missing", missing)
			continue
		}
		c := candidate{
			adapter:  a,
			graphics: graphics,
			present:  present,
			families: uniqueFamilies(graphics, present),
		}
		handle, err := create(c)
		if err != nil {
			log.Warn("device creation failed", "name", a.Name, "err", err)
			continue
		}
		return c, handle, nil
	}
	return candidate{}, nil, ErrNoSuitableDevice
}

func createLogicalDevice(c candidate) (vk.Device, error) {
	infos := queueCreateInfos(c.families)
	var device vk.Device
	ret := vk.CreateDevice(c.adapter.gpu, &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(infos)),
		PQueueCreateInfos:       infos,
		EnabledExtensionCount:   uint32(len(requiredDeviceExtensions)),
		PpEnabledExtensionNames: safeStrings(requiredDeviceExtensions),
	}, nil, &device)
	if isError(ret) {
		return nil, errors.Wrap(NewError(ret), "create device")
	}
	return device, nil
}

// resolveQueue fetches queue 0 of a family requested at creation. A missing
// handle means the device was created without that family.
func (d *Device) resolveQueue(family uint32) QueueHandle {
	var queue vk.Queue
	vk.GetDeviceQueue(d.handle, family, 0, &queue)
	if queue == nil {
		Fatal(errors.Errorf("device has no queue for family %d", family))
	}
	return QueueHandle{Family: family, Queue: queue}
}

func (d *Device) Handle() vk.Device {
	return d.handle
}

func (d *Device) PhysicalDevice() vk.PhysicalDevice {
	return d.gpu
}

// SharedFamily reports whether graphics and present use the same queue family.
func (d *Device) SharedFamily() bool {
	return d.Graphics.Family == d.Present.Family
}

func (d *Device) WaitIdle() {
	vk.DeviceWaitIdle(d.handle)
}

func (d *Device) Destroy() {
	if d.handle == nil {
		return
	}
	d.WaitIdle()
	vk.DestroyDevice(d.handle, nil)
	d.handle = nil
}
