// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed shaders/flat.wgsl
var flatShaderSource string

//go:embed shaders/glyph.wgsl
var glyphShaderSource string

// Uniform block layout shared by both shaders:
//
//	projection mat4x4<f32> = 64 bytes (offset 0)
//	view       mat4x4<f32> = 64 bytes (offset 64)
//	color      vec4<f32>   = 16 bytes (offset 128)
//
// Total = 144 bytes.
const (
	uniformViewOffset  = 64
	uniformColorOffset = 128
	uniformSize        = 144
)

// Vertex strides.
const (
	flatVertexStride  = 8  // position vec2<f32>
	glyphVertexStride = 16 // position vec2<f32>, uv vec2<f32>
)

// validateShader runs the WGSL front end and validator over src so that a
// broken shader fails with a readable diagnostic before the device sees it.
func validateShader(label, src string) error {
	if src == "" {
		return fmt.Errorf("%w: %s: empty source", ErrShaderCompile, label)
	}
	if _, err := naga.Compile(src); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrShaderCompile, label, err)
	}
	return nil
}
