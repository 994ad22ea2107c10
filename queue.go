package vktriangle

import (
	vk "github.com/vulkan-go/vulkan"
)

// QueueFamily records what one queue family of an adapter can do.
type QueueFamily struct {
	Index    uint32
	Count    uint32
	Graphics bool
	// Present is true only when the support query succeeded and answered yes.
	Present bool
}

// QueueHandle is a queue retrieved from the logical device together with its family.
type QueueHandle struct {
	Family uint32
	Queue  vk.Queue
}

func queueFamilies(gpu vk.PhysicalDevice, surface vk.Surface) []QueueFamily {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, nil)
	props := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, props)

	families := make([]QueueFamily, 0, count)
	for i := uint32(0); i < count; i++ {
		props[i].Deref()
		families = append(families, QueueFamily{
			Index:    i,
			Count:    props[i].QueueCount,
			Graphics: props[i].QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0,
			Present:  presentSupported(gpu, i, surface),
		})
	}
	return families
}

func presentSupported(gpu vk.PhysicalDevice, family uint32, surface vk.Surface) bool {
	if surface == vk.NullSurface {
		return false
	}
	var supported vk.Bool32
	ret := vk.GetPhysicalDeviceSurfaceSupport(gpu, family, surface, &supported)
	return ret == vk.Success && supported.B()
}

// chooseQueueFamilies picks the first graphics family and, independently, the
// first present family. There is no fallback: without a present family the
// adapter is unsuitable.
func chooseQueueFamilies(families []QueueFamily) (graphics, present uint32, ok bool) {
	var foundGraphics, foundPresent bool
	for _, f := range families {
		if f.Count == 0 {
			continue
		}
		if !foundGraphics && f.Graphics {
			graphics, foundGraphics = f.Index, true
		}
		if !foundPresent && f.Present {
			present, foundPresent = f.Index, true
		}
	}
	return graphics, present, foundGraphics && foundPresent
}

// uniqueFamilies drops the duplicate when both roles share a family.
func uniqueFamilies(graphics, present uint32) []uint32 {
	if graphics == present {
		return []uint32{graphics}
	}
	return []uint32{graphics, present}
}

func queueCreateInfos(families []uint32) []vk.DeviceQueueCreateInfo {
	infos := make([]vk.DeviceQueueCreateInfo, 0, len(families))
	for _, family := range families {
		infos = append(infos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: family,
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		})
	}
	return infos
}
