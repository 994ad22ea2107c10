package vktriangle

import (
	"fmt"
	"io"
	"os"
	"unsafe"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

const debugReportExtension = "VK_EXT_debug_report"

var debugOutput io.Writer = os.Stderr

func debugSeverity(flags vk.DebugReportFlags) string {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		return "ERROR"
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit|vk.DebugReportPerformanceWarningBit) != 0:
		return "Warning"
	case flags&vk.DebugReportFlags(vk.DebugReportInformationBit) != 0:
		return "Info"
	default:
		return "Verbose"
	}
}

func debugCategory(flags vk.DebugReportFlags) string {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		return "performance"
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit|vk.DebugReportWarningBit) != 0:
		return "validation"
	default:
		return "general"
	}
}

// FormatDebugMessage renders one layer message the way it is printed to standard error.
func FormatDebugMessage(flags vk.DebugReportFlags, layerPrefix, message string) string {
	return fmt.Sprintf("%s (type: %s) (layer: %s): %s",
		debugSeverity(flags), debugCategory(flags), layerPrefix, message)
}

func dbgCallbackFunc(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, pLayerPrefix string,
	pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

	fmt.Fprintln(debugOutput, FormatDebugMessage(flags, pLayerPrefix, pMessage))
	return vk.Bool32(vk.False)
}

// DebugCallback owns a registered debug report callback.
type DebugCallback struct {
	instance vk.Instance
	handle   vk.DebugReportCallback
}

// RegisterDebugCallback subscribes to every severity the debug report extension emits.
func RegisterDebugCallback(instance vk.Instance) (*DebugCallback, error) {
	var cb vk.DebugReportCallback
	ret := vk.CreateDebugReportCallback(instance, &vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit |
			vk.DebugReportPerformanceWarningBit | vk.DebugReportInformationBit | vk.DebugReportDebugBit),
		PfnCallback: dbgCallbackFunc,
	}, nil, &cb)
	if isError(ret) {
		return nil, errors.Wrap(NewError(ret), "create debug report callback")
	}
	return &DebugCallback{instance: instance, handle: cb}, nil
}

func (d *DebugCallback) Destroy() {
	if d == nil || d.handle == vk.NullDebugReportCallback {
		return
	}
	vk.DestroyDebugReportCallback(d.instance, d.handle, nil)
	d.handle = vk.NullDebugReportCallback
}
