// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render rasterizes easel primitives on a wgpu hal device.
//
// A [Rasterizer] owns two render pipelines (flat-color triangles and
// textured text quads), a [BufferPool] of reusable geometry buffers, an
// offscreen [Target] and the [Viewport] that maps world coordinates to the
// screen. Geometry comes from package geom: fills are ear-clipped and
// outlines are expanded into miter-joined triangle strips on the CPU.
//
// # Obtaining a device
//
// A host that already runs gogpu passes its device along:
//
//	d, err := render.FromProvider(app)
//
// Headless programs open one themselves after importing a backend:
//
//	import _ "github.com/gogpu/wgpu/hal/allbackends"
//
//	d, err := render.OpenDevice()
//	r, err := render.NewFromDevice(d, render.WithSize(800, 600))
//
// # Drawing
//
// Each Draw method uploads its vertices and submits one render pass that
// loads the current target contents. Render clears the target, draws a
// list of [Drawable] values in order and emits [EventAfterRender].
package render
