package vktriangle

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// LayerInfo describes one instance layer reported by the loader.
type LayerInfo struct {
	Name                  string
	SpecVersion           uint32
	ImplementationVersion uint32
	Description           string
}

// enumerate runs the count-then-fill protocol shared by the vkEnumerate*
// calls. An incomplete fill means the list grew between the two calls, so
// it starts over.
func enumerate[T any](what string, call func(count *uint32, list []T) vk.Result) ([]T, error) {
	for {
		var count uint32
		if ret := call(&count, nil); isError(ret) {
			return nil, errors.Wrapf(NewError(ret), "enumerate %s", what)
		}
		list := make([]T, count)
		ret := call(&count, list)
		if ret == vk.Incomplete {
			continue
		}
		if isError(ret) {
			return nil, errors.Wrapf(NewError(ret), "enumerate %s", what)
		}
		return list[:count], nil
	}
}

func extensionNames(list []vk.ExtensionProperties) []string {
	names := make([]string, 0, len(list))
	for _, ext := range list {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names
}

// InstanceExtensions gets a list of instance extensions available on the platform.
func InstanceExtensions() ([]string, error) {
	list, err := enumerate("instance extensions", func(count *uint32, list []vk.ExtensionProperties) vk.Result {
		return vk.EnumerateInstanceExtensionProperties("", count, list)
	})
	if err != nil {
		return nil, err
	}
	return extensionNames(list), nil
}

// DeviceExtensions gets a list of device extensions available on the provided physical device.
func DeviceExtensions(gpu vk.PhysicalDevice) ([]string, error) {
	list, err := enumerate("device extensions", func(count *uint32, list []vk.ExtensionProperties) vk.Result {
		return vk.EnumerateDeviceExtensionProperties(gpu, "", count, list)
	})
	if err != nil {
		return nil, err
	}
	return extensionNames(list), nil
}

// Layers gets the instance layers available on the platform.
func Layers() ([]LayerInfo, error) {
	list, err := enumerate("instance layers", func(count *uint32, list []vk.LayerProperties) vk.Result {
		return vk.EnumerateInstanceLayerProperties(count, list)
	})
	if err != nil {
		return nil, err
	}
	layers := make([]LayerInfo, 0, len(list))
	for _, layer := range list {
		layer.Deref()
		layers = append(layers, LayerInfo{
			Name:                  vk.ToString(layer.LayerName[:]),
			SpecVersion:           layer.SpecVersion,
			ImplementationVersion: layer.ImplementationVersion,
			Description:           vk.ToString(layer.Description[:]),
		})
	}
	return layers, nil
}

// ValidationLayers gets the names of the layers available on the platform.
func ValidationLayers() ([]string, error) {
	layers, err := Layers()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(layers))
	for _, l := range layers {
		names = append(names, l.Name)
	}
	return names, nil
}
