package vktriangle

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Window is a GLFW window without a client API, adapted to EventSource.
// glfw must be initialized and all calls made from the main thread.
type Window struct {
	handle  *glfw.Window
	pending []Event
	redraw  bool
}

func NewWindow(cfg Config) (*Window, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.True)
	handle, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create window")
	}
	w := &Window{handle: handle}
	handle.SetCloseCallback(func(*glfw.Window) {
		w.pending = append(w.pending, CloseRequested)
	})
	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.pending = append(w.pending, Resized)
	})
	return w, nil
}

// RequiredExtensions lists the instance extensions surface creation needs.
func (w *Window) RequiredExtensions() []string {
	return w.handle.GetRequiredInstanceExtensions()
}

func (w *Window) CreateSurface(instance vk.Instance) (vk.Surface, error) {
	ptr, err := w.handle.CreateWindowSurface(instance, nil)
	if err != nil {
		return vk.NullSurface, errors.Wrap(err, "create window surface")
	}
	return vk.SurfaceFromPointer(ptr), nil
}

func (w *Window) DrawableSize() Extent {
	width, height := w.handle.GetFramebufferSize()
	return Extent{Width: uint32(max(width, 0)), Height: uint32(max(height, 0))}
}

// PollEvents pumps the GLFW queue. While the window has no drawable area it
// blocks for events instead, and redraws are held back.
func (w *Window) PollEvents() []Event {
	var out []Event
	if w.redraw && !w.minimized() {
		w.redraw = false
		out = append(out, RedrawRequested)
	}
	if w.minimized() {
		glfw.WaitEvents()
	} else {
		glfw.PollEvents()
	}
	out = append(out, w.pending...)
	w.pending = w.pending[:0]
	return append(out, MainEventsCleared)
}

func (w *Window) RequestRedraw() {
	w.redraw = true
}

func (w *Window) minimized() bool {
	size := w.DrawableSize()
	return size.Width == 0 || size.Height == 0
}

func (w *Window) Destroy() {
	w.handle.Destroy()
}
