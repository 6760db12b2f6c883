// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// pipeline is one compiled shader with its layout and render pipeline.
// Bind group layouts are shared and owned by the Rasterizer.
type pipeline struct {
	label      string
	shader     hal.ShaderModule
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// pipelineDesc is the part of a render pipeline that differs between the
// flat and glyph variants.
type pipelineDesc struct {
	label   string
	source  string
	groups  []hal.BindGroupLayout
	buffers []gputypes.VertexBufferLayout
	format  gputypes.TextureFormat
}

// newPipeline validates and compiles the shader and creates the pipeline
// with premultiplied alpha blending, no culling and no multisampling.
func newPipeline(device hal.Device, d pipelineDesc) (*pipeline, error) {
	if err := validateShader(d.label, d.source); err != nil {
		return nil, err
	}
	p := &pipeline{label: d.label}

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  d.label + "_shader",
		Source: hal.ShaderSource{WGSL: d.source},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrShaderCompile, d.label, err)
	}
	p.shader = shader

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            d.label + "_pipe_layout",
		BindGroupLayouts: d.groups,
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("%w: %s layout: %w", ErrPipeline, d.label, err)
	}
	p.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	rp, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  d.label + "_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    d.buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    d.format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("%w: %s: %w", ErrPipeline, d.label, err)
	}
	p.pipeline = rp

	slogger().Debug("render: pipeline created", "label", d.label)
	return p, nil
}

// destroy releases the pipeline resources in reverse creation order.
func (p *pipeline) destroy(device hal.Device) {
	if p == nil || device == nil {
		return
	}
	if p.pipeline != nil {
		device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.shader != nil {
		device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// flatVertexLayout returns the vertex buffer layout of the flat pipeline.
func flatVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: flatVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
			},
		},
	}
}

// glyphVertexLayout returns the vertex buffer layout of the glyph pipeline.
func glyphVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: glyphVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // uv
			},
		},
	}
}

// uniformLayoutEntries describes group 0: the uniform block.
func uniformLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
	}
}

// textureLayoutEntries describes group 1 of the glyph pipeline.
func textureLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		{
			Binding:    1,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		},
	}
}
