package vktriangle

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var spirvMagic = []byte{0x03, 0x02, 0x23, 0x07}

func TestLoadShaderProgram(t *testing.T) {
	fsys := fstest.MapFS{
		vertexShaderFile:   {Data: append(append([]byte{}, spirvMagic...), 1, 0, 0, 0)},
		fragmentShaderFile: {Data: spirvMagic},
	}
	program, err := LoadShaderProgram(fsys, vertexShaderFile, fragmentShaderFile)
	require.NoError(t, err)
	assert.Len(t, program.Vertex, 8)
	assert.Equal(t, spirvMagic, program.Fragment)
}

func TestLoadShaderProgramErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"good.spv":  {Data: spirvMagic},
		"odd.spv":   {Data: []byte{1, 2, 3}},
		"empty.spv": {},
	}
	_, err := LoadShaderProgram(fsys, "missing.spv", "good.spv")
	assert.Error(t, err)
	_, err = LoadShaderProgram(fsys, "good.spv", "odd.spv")
	assert.ErrorContains(t, err, "multiple of 4")
	_, err = LoadShaderProgram(fsys, "empty.spv", "good.spv")
	assert.Error(t, err)
}

func TestDefaultConfigLoadsEmbeddedShaders(t *testing.T) {
	// Loading must not depend on the working directory.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { require.NoError(t, os.Chdir(wd)) }()

	program, err := DefaultConfig().loadShaders()
	require.NoError(t, err)
	for _, code := range [][]byte{program.Vertex, program.Fragment} {
		require.GreaterOrEqual(t, len(code), 20)
		assert.Equal(t, spirvMagic, code[:4])
		assert.Equal(t, uint32(0x00010000), binary.LittleEndian.Uint32(code[4:]))
	}
}

func TestConfigShaderDirOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, vertexShaderFile), spirvMagic, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, fragmentShaderFile), spirvMagic, 0o644))

	cfg := DefaultConfig()
	cfg.ShaderDir = dir
	program, err := cfg.loadShaders()
	require.NoError(t, err)
	assert.Equal(t, spirvMagic, program.Vertex)

	cfg.ShaderDir = filepath.Join(dir, "missing")
	_, err = cfg.loadShaders()
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, debugBuild, cfg.Validation)
	assert.Empty(t, cfg.ShaderDir)
	assert.NotNil(t, cfg.Logger)

	cfg.Logger = nil
	assert.NotNil(t, cfg.logger())
}
