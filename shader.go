package vktriangle

import (
	"io/fs"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// ShaderProgram holds the SPIR-V for the triangle's two stages. It is read
// once; modules are created per pipeline build and destroyed right after.
type ShaderProgram struct {
	Vertex   []byte
	Fragment []byte
}

// LoadShaderProgram reads the vertex and fragment binaries from fsys.
func LoadShaderProgram(fsys fs.FS, vertPath, fragPath string) (*ShaderProgram, error) {
	vert, err := readSPIRV(fsys, vertPath)
	if err != nil {
		return nil, err
	}
	frag, err := readSPIRV(fsys, fragPath)
	if err != nil {
		return nil, err
	}
	return &ShaderProgram{Vertex: vert, Fragment: frag}, nil
}

func readSPIRV(fsys fs.FS, path string) ([]byte, error) {
	buffer, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrap(err, "read shader")
	}
	if len(buffer) == 0 || len(buffer)%4 != 0 {
		return nil, errors.Errorf("shader %s: size %d is not a multiple of 4", path, len(buffer))
	}
	return buffer, nil
}

func createShaderModule(device vk.Device, code []byte) (vk.ShaderModule, error) {
	var module vk.ShaderModule
	ret := vk.CreateShaderModule(device, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(code)),
		// Vulkan expects to receive type uint32 data
		PCode: sliceUint32(code),
	}, nil, &module)
	if isError(ret) {
		return vk.NullShaderModule, NewError(ret)
	}
	return module, nil
}
