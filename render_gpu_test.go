//go:build gpu

package vktriangle

import (
	"runtime"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

const (
	testWidth  = 500
	testHeight = 500
	testFrames = 120
)

func TestRender(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	require.NoError(t, glfw.Init())
	defer glfw.Terminate()

	vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
	require.NoError(t, vk.Init())

	cfg := DefaultConfig()
	cfg.Width, cfg.Height = testWidth, testHeight
	cfg.Logger = discardLogger()

	window, err := NewWindow(cfg)
	require.NoError(t, err)
	defer window.Destroy()

	app := NewApplication(cfg, window)
	require.NoError(t, app.Init())
	defer app.Destroy()

	var presented int
	for i := 0; i < testFrames; i++ {
		if i == testFrames/2 {
			window.handle.SetSize(testWidth*2, testHeight)
			app.state.RequestRecreate()
		}
		glfw.PollEvents()
		report := app.loop.Tick(app.state)
		assert.NoError(t, report.RecreateErr)
		if report.Presented {
			presented++
		}
	}
	assert.Greater(t, presented, testFrames/2)
	assert.Len(t, app.state.CommandBuffers, app.state.Swapchain.ImageCount())
}
