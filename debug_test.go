package vktriangle

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestFormatDebugMessage(t *testing.T) {
	tests := []struct {
		flags vk.DebugReportFlagBits
		want  string
	}{
		{vk.DebugReportErrorBit, "ERROR (type: validation) (layer: Validation): bad handle"},
		{vk.DebugReportWarningBit, "Warning (type: validation) (layer: Validation): bad handle"},
		{vk.DebugReportPerformanceWarningBit, "Warning (type: performance) (layer: Validation): bad handle"},
		{vk.DebugReportInformationBit, "Info (type: general) (layer: Validation): bad handle"},
		{vk.DebugReportDebugBit, "Verbose (type: general) (layer: Validation): bad handle"},
	}
	for _, tt := range tests {
		got := FormatDebugMessage(vk.DebugReportFlags(tt.flags), "Validation", "bad handle")
		assert.Equal(t, tt.want, got)
	}
}

func TestDebugSeverityPrefersMostSevere(t *testing.T) {
	flags := vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportPerformanceWarningBit)
	assert.Equal(t, "ERROR", debugSeverity(flags))
	assert.Equal(t, "performance", debugCategory(flags))
}

func TestDebugCallbackWritesLine(t *testing.T) {
	var buf bytes.Buffer
	saved := debugOutput
	debugOutput = &buf
	defer func() { debugOutput = saved }()

	ret := dbgCallbackFunc(vk.DebugReportFlags(vk.DebugReportWarningBit), vk.DebugReportObjectTypeUnknown,
		0, 0, 0, "Loader", "layer not found", nil)
	assert.Equal(t, vk.Bool32(vk.False), ret)
	assert.Equal(t, "Warning (type: validation) (layer: Loader): layer not found\n", buf.String())
}

func TestDebugCallbackDestroyNil(t *testing.T) {
	var cb *DebugCallback
	assert.NotPanics(t, cb.Destroy)
}
