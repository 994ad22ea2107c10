package vktriangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestSafeString(t *testing.T) {
	assert.Equal(t, "main\x00", safeString("main"))
	assert.Equal(t, "main\x00", safeString("main\x00"))
	assert.Equal(t, []string{"a\x00", "b\x00"}, safeStrings([]string{"a", "b\x00"}))
}

func TestSliceUint32(t *testing.T) {
	// SPIR-V magic number followed by version 1.0.
	words := sliceUint32([]byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00})
	assert.Equal(t, []uint32{0x07230203, 0x00010000}, words)
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "1.2.162", formatVersion(uint32(vk.MakeVersion(1, 2, 162))))
	assert.Equal(t, "0.0.0", formatVersion(0))
}

func TestClampUint32(t *testing.T) {
	assert.Equal(t, uint32(5), clampUint32(1, 5, 10))
	assert.Equal(t, uint32(10), clampUint32(11, 5, 10))
	assert.Equal(t, uint32(7), clampUint32(7, 5, 10))
}
