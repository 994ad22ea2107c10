package vktriangle

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

var (
	// ErrNoSuitableDevice is returned when no adapter offers graphics and present
	// queue families for the surface and accepts logical device creation.
	ErrNoSuitableDevice = errors.New("no suitable device")

	// ErrOutOfDate reports that the swapchain no longer matches the surface.
	ErrOutOfDate = errors.New("swapchain out of date")

	// ErrFormatUnsupported is returned when the surface does not offer the
	// B8G8R8A8 UNORM / sRGB non-linear pair.
	ErrFormatUnsupported = errors.New("surface format unsupported")
)

func isError(ret vk.Result) bool {
	return ret != vk.Success
}

// NewError converts a non-success result into an error annotated with the calling function.
func NewError(ret vk.Result) error {
	if ret == vk.Success {
		return nil
	}
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return fmt.Errorf("vulkan error: %s (%d)", vk.Error(ret).Error(), ret)
	}
	frame := newStackFrame(pc)
	return fmt.Errorf("vulkan error: %s (%d) on %s", vk.Error(ret).Error(), ret, frame.String())
}

// SwapchainErrorKind classifies swapchain creation failures.
type SwapchainErrorKind int

const (
	SwapchainErrorOther SwapchainErrorKind = iota
	SwapchainErrorOutOfMemory
	SwapchainErrorSurfaceLost
)

func (k SwapchainErrorKind) String() string {
	switch k {
	case SwapchainErrorOutOfMemory:
		return "out of memory"
	case SwapchainErrorSurfaceLost:
		return "surface lost"
	default:
		return "other"
	}
}

// SwapchainCreationError is returned by CreateSwapchain and Recreate.
type SwapchainCreationError struct {
	Kind SwapchainErrorKind
	Err  error
}

func (e *SwapchainCreationError) Error() string {
	return fmt.Sprintf("swapchain creation (%s): %v", e.Kind, e.Err)
}

func (e *SwapchainCreationError) Unwrap() error {
	return e.Err
}

func newSwapchainError(ret vk.Result, context string) *SwapchainCreationError {
	kind := SwapchainErrorOther
	switch ret {
	case vk.ErrorOutOfHostMemory, vk.ErrorOutOfDeviceMemory:
		kind = SwapchainErrorOutOfMemory
	case vk.ErrorSurfaceLost:
		kind = SwapchainErrorSurfaceLost
	}
	return &SwapchainCreationError{Kind: kind, Err: errors.Wrap(NewError(ret), context)}
}

// resultError maps results which the frame loop treats specially onto sentinels.
func resultError(ret vk.Result, context string) error {
	switch ret {
	case vk.Success, vk.Suboptimal:
		return nil
	case vk.ErrorOutOfDate:
		return ErrOutOfDate
	}
	return errors.Wrap(NewError(ret), context)
}

// Fatal panics on a non-nil error after running finalizers. Reserved for
// violated preconditions, never for runtime failures.
func Fatal(err error, finalizers ...func()) {
	if err != nil {
		for _, fn := range finalizers {
			fn()
		}
		panic(err)
	}
}
