package shaders

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spirvMagic = 0x07230203

func TestEmbeddedBinaries(t *testing.T) {
	for _, name := range []string{"triangle.vert.spv", "triangle.frag.spv"} {
		t.Run(name, func(t *testing.T) {
			code, err := FS.ReadFile(name)
			require.NoError(t, err)
			require.GreaterOrEqual(t, len(code), 20, "header is five words")
			assert.Zero(t, len(code)%4)
			assert.Equal(t, uint32(spirvMagic), binary.LittleEndian.Uint32(code))
			// Id bound must cover at least the entry point.
			assert.Greater(t, binary.LittleEndian.Uint32(code[12:]), uint32(1))
		})
	}
}
