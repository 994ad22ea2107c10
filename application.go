package vktriangle

import (
	"io"
	"os"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// AppWindow is what Run needs from the window system.
type AppWindow interface {
	EventSource
	DrawableSizer
	RequiredExtensions() []string
	CreateSurface(instance vk.Instance) (vk.Surface, error)
}

// Application owns every Vulkan object for one run, in creation order.
type Application struct {
	cfg      Config
	window   AppWindow
	instance *Instance
	surface  vk.Surface
	device   *Device
	context  *RenderContext
	state    *FrameState
	loop     *FrameLoop

	// Diagnostics is where the layer and device listings go.
	Diagnostics io.Writer
}

func NewApplication(cfg Config, window AppWindow) *Application {
	return &Application{cfg: cfg, window: window, Diagnostics: os.Stdout}
}

// Init creates the instance, surface, device and first swapchain generation.
// On failure everything created so far is destroyed.
func (a *Application) Init() (err error) {
	defer func() {
		if err != nil {
			a.Destroy()
		}
	}()
	log := a.cfg.logger()

	program, err := a.cfg.loadShaders()
	if err != nil {
		return err
	}

	if layers, err := Layers(); err == nil {
		PrintLayers(a.Diagnostics, layers)
	} else {
		log.Warn("enumerate layers", "err", err)
	}

	a.instance, err = CreateInstance(a.cfg, a.window.RequiredExtensions())
	if err != nil {
		return err
	}
	a.surface, err = a.window.CreateSurface(a.instance.Handle())
	if err != nil {
		return err
	}

	adapters, err := EnumerateAdapters(a.instance.Handle(), a.surface)
	if err != nil {
		return err
	}
	PrintAdapters(a.Diagnostics, adapters)

	a.device, err = SelectDevice(adapters, log)
	if err != nil {
		return err
	}
	a.context, err = NewRenderContext(a.device, a.surface, a.window, program, log)
	if err != nil {
		return err
	}
	a.state, err = BuildFrameState(a.context)
	if err != nil {
		return errors.Wrap(err, "initial build")
	}
	a.loop = NewFrameLoop(a.context, a.context, log)
	return nil
}

// Run renders until the window asks to close.
func (a *Application) Run() {
	RunEventLoop(a.window, LoopHandler{
		Resize: a.state.RequestRecreate,
		Redraw: func() { a.loop.Tick(a.state) },
	})
}

// Destroy waits for the last frame and the device, then tears down in
// reverse creation order. Safe to call after a partial Init.
func (a *Application) Destroy() {
	log := a.cfg.logger()
	if a.state != nil {
		if a.state.InFlight != nil {
			a.state.InFlight.Discard()
			if err := a.state.InFlight.Wait(); err != nil {
				log.Error("wait for last frame", "err", err)
			}
		}
		a.device.WaitIdle()
		a.state.Release()
		a.state = nil
	}
	if a.context != nil {
		a.context.Destroy()
		a.context = nil
	}
	if a.device != nil {
		a.device.Destroy()
		a.device = nil
	}
	if a.surface != vk.NullSurface {
		vk.DestroySurface(a.instance.Handle(), a.surface, nil)
		a.surface = vk.NullSurface
	}
	if a.instance != nil {
		a.instance.Destroy()
		a.instance = nil
	}
}

// Run is Init, Run and Destroy for one window.
func Run(cfg Config, window AppWindow) error {
	app := NewApplication(cfg, window)
	if err := app.Init(); err != nil {
		return err
	}
	defer app.Destroy()
	app.Run()
	return nil
}
