// Command vktriangle opens a window and renders a triangle with Vulkan until
// the window is closed.
package main

import (
	"os"
	"runtime"

	"github.com/andewx/vktriangle"
	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

func init() {
	// GLFW and every Vulkan object stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	cfg := vktriangle.DefaultConfig()
	log := cfg.Logger

	if err := glfw.Init(); err != nil {
		log.Error("glfw init", "err", err)
		os.Exit(1)
	}
	defer glfw.Terminate()

	vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
	if err := vk.Init(); err != nil {
		log.Error("vulkan init", "err", err)
		glfw.Terminate()
		os.Exit(1)
	}

	window, err := vktriangle.NewWindow(cfg)
	if err != nil {
		log.Error("window", "err", err)
		glfw.Terminate()
		os.Exit(1)
	}
	defer window.Destroy()

	if err := vktriangle.Run(cfg, window); err != nil {
		log.Error("vktriangle", "err", err)
		window.Destroy()
		glfw.Terminate()
		os.Exit(1)
	}
}
