package vktriangle

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// AdapterDescriptor is a snapshot of one physical device and its queue families
// as seen against a particular surface.
type AdapterDescriptor struct {
	Index         int
	Name          string
	APIVersion    uint32
	DriverVersion uint32
	Type          vk.PhysicalDeviceType
	QueueFamilies []QueueFamily
	Extensions    []string

	gpu vk.PhysicalDevice
}

// EnumerateAdapters lists the physical devices in the order the loader reports them.
func EnumerateAdapters(instance vk.Instance, surface vk.Surface) ([]AdapterDescriptor, error) {
	var count uint32
	ret := vk.EnumeratePhysicalDevices(instance, &count, nil)
	if isError(ret) {
		return nil, errors.Wrap(NewError(ret), "enumerate physical devices")
	}
	gpus := make([]vk.PhysicalDevice, count)
	ret = vk.EnumeratePhysicalDevices(instance, &count, gpus)
	if isError(ret) {
		return nil, errors.Wrap(NewError(ret), "enumerate physical devices")
	}

	adapters := make([]AdapterDescriptor, 0, count)
	for i, gpu := range gpus[:count] {
		var props vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(gpu, &props)
		props.Deref()

		exts, err := DeviceExtensions(gpu)
		if err != nil {
			return nil, errors.Wrapf(err, "device %d extensions", i)
		}
		adapters = append(adapters, AdapterDescriptor{
			Index:         i,
			Name:          vk.ToString(props.DeviceName[:]),
			APIVersion:    props.ApiVersion,
			DriverVersion: props.DriverVersion,
			Type:          props.DeviceType,
			QueueFamilies: queueFamilies(gpu, surface),
			Extensions:    exts,
			gpu:           gpu,
		})
	}
	return adapters, nil
}

func deviceTypeName(t vk.PhysicalDeviceType) string {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "IntegratedGpu"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "DiscreteGpu"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "VirtualGpu"
	case vk.PhysicalDeviceTypeCpu:
		return "Cpu"
	default:
		return "Other"
	}
}

// PrintAdapters writes the device listing shown at startup.
func PrintAdapters(w io.Writer, adapters []AdapterDescriptor) {
	fmt.Fprintln(w, "=== Devices ===")
	for _, a := range adapters {
		fmt.Fprintf(w, "%s (index: %d)\n", a.Name, a.Index)
		fmt.Fprintf(w, "API version: %s, Driver version: %s\n",
			formatVersion(a.APIVersion), formatVersion(a.DriverVersion))
		fmt.Fprintf(w, "Type: %s\n", deviceTypeName(a.Type))
	}
}
