// Package shaders embeds the SPIR-V of the triangle program. The binaries are
// built from the GLSL sources next to them with glslangValidator.
package shaders

import "embed"

//go:generate glslangValidator -V triangle.vert -o triangle.vert.spv
//go:generate glslangValidator -V triangle.frag -o triangle.frag.spv

// FS holds triangle.vert.spv and triangle.frag.spv.
//
//go:embed *.spv
var FS embed.FS
