package vktriangle

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	vk "github.com/vulkan-go/vulkan"
)

// safeString appends the terminating NUL vulkan-go expects on name strings.
func safeString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

func safeStrings(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, safeString(s))
	}
	return out
}

// sliceUint32 reads SPIR-V words, which are little endian on every platform we target.
func sliceUint32(data []byte) []uint32 {
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return words
}

// formatVersion renders a packed Vulkan version number as major.minor.patch.
func formatVersion(v uint32) string {
	return fmt.Sprintf("%d.%d.%d", v>>22, (v>>12)&0x3ff, v&0xfff)
}

func clampUint32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func toExtent2D(e Extent) vk.Extent2D {
	return vk.Extent2D{Width: e.Width, Height: e.Height}
}

type stackFrame struct {
	file     string
	line     int
	function string
}

func newStackFrame(pc uintptr) stackFrame {
	frame := stackFrame{function: "unknown"}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return frame
	}
	frame.file, frame.line = fn.FileLine(pc)
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	frame.function = name
	return frame
}

func (f stackFrame) String() string {
	return fmt.Sprintf("%s (%s:%d)", f.function, filepath.Base(f.file), f.line)
}
