package vktriangle

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestPrintLayers(t *testing.T) {
	var buf bytes.Buffer
	PrintLayers(&buf, []LayerInfo{{
		Name:                  "VK_LAYER_KHRONOS_validation",
		SpecVersion:           uint32(vk.MakeVersion(1, 3, 250)),
		ImplementationVersion: 1,
		Description:           "Khronos Validation Layer",
	}})
	assert.Equal(t, "=== Layers ===\n"+
		"VK_LAYER_KHRONOS_validation (version: 1)\n"+
		"Description: Khronos Validation Layer\n", buf.String())
}

func TestPrintAdapters(t *testing.T) {
	var buf bytes.Buffer
	PrintAdapters(&buf, []AdapterDescriptor{
		{
			Index:         0,
			Name:          "llvmpipe",
			APIVersion:    uint32(vk.MakeVersion(1, 3, 255)),
			DriverVersion: uint32(vk.MakeVersion(0, 0, 1)),
			Type:          vk.PhysicalDeviceTypeCpu,
		},
		{
			Index:         1,
			Name:          "Radeon",
			APIVersion:    uint32(vk.MakeVersion(1, 2, 0)),
			DriverVersion: uint32(vk.MakeVersion(2, 0, 7)),
			Type:          vk.PhysicalDeviceTypeDiscreteGpu,
		},
	})
	assert.Equal(t, "=== Devices ===\n"+
		"llvmpipe (index: 0)\n"+
		"API version: 1.3.255, Driver version: 0.0.1\n"+
		"Type: Cpu\n"+
		"Radeon (index: 1)\n"+
		"API version: 1.2.0, Driver version: 2.0.7\n"+
		"Type: DiscreteGpu\n", buf.String())
}

func TestDeviceTypeName(t *testing.T) {
	assert.Equal(t, "IntegratedGpu", deviceTypeName(vk.PhysicalDeviceTypeIntegratedGpu))
	assert.Equal(t, "VirtualGpu", deviceTypeName(vk.PhysicalDeviceTypeVirtualGpu))
	assert.Equal(t, "Other", deviceTypeName(vk.PhysicalDeviceTypeOther))
}
