package vktriangle

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/andewx/vktriangle/shaders"
)

const (
	vertexShaderFile   = "triangle.vert.spv"
	fragmentShaderFile = "triangle.frag.spv"
)

// Config holds the application settings. The zero value is not usable, start
// from DefaultConfig.
type Config struct {
	AppName string
	Title   string
	Width   int
	Height  int

	// ShaderDir overrides the embedded SPIR-V with triangle.vert.spv and
	// triangle.frag.spv from a directory. Empty means embedded.
	ShaderDir string

	// Validation enables the Khronos validation layers and the debug report callback.
	Validation bool

	// RequestedLayers are enabled when Validation is set and the loader offers them.
	RequestedLayers []string

	Logger *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		AppName:    "vktriangle",
		Title:      "Vulkan",
		Width:      800,
		Height:     600,
		Validation: debugBuild,
		RequestedLayers: []string{
			"VK_LAYER_LUNARG_standard_validation",
			"VK_LAYER_KHRONOS_validation",
		},
		Logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c Config) shaderFS() fs.FS {
	if c.ShaderDir == "" {
		return shaders.FS
	}
	return os.DirFS(c.ShaderDir)
}

func (c Config) loadShaders() (*ShaderProgram, error) {
	return LoadShaderProgram(c.shaderFS(), vertexShaderFile, fragmentShaderFile)
}
