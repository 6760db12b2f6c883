// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/easel/geom"
	"github.com/gogpu/easel/text"
)

// glyphTexture is an uploaded label bitmap and the bind group sampling it.
type glyphTexture struct {
	tex    hal.Texture
	view   hal.TextureView
	group  hal.BindGroup
	width  int
	height int
}

func (g *glyphTexture) destroy(device hal.Device) {
	if g.group != nil {
		device.DestroyBindGroup(g.group)
	}
	if g.view != nil {
		device.DestroyTextureView(g.view)
	}
	if g.tex != nil {
		device.DestroyTexture(g.tex)
	}
}

// DrawText draws a single-line label at (x, y), anchored by opts.Align and
// opts.Baseline, and returns its measured size in world units.
//
// The label is rasterized once per (text, font, size, color) into a
// supersampled bitmap, kept as a texture in an LRU cache and drawn as one
// textured quad.
func (r *Rasterizer) DrawText(str string, x, y float64, col Color, opts text.Options) (text.Size, error) {
	r.mustReady()
	opts = opts.WithDefaults()
	size, err := r.fonts.Measure(str, opts)
	if err != nil {
		return text.Size{}, err
	}
	if size.Empty() || !col.Visible() {
		return size, nil
	}

	scale := r.opts.textSupersample * r.vp.PixelRatio
	key := text.NewKey(str, opts, col.NRGBA(), scale)
	g, err := r.glyphs.GetOrCreate(key, func() (*glyphTexture, error) {
		img, err := r.fonts.Rasterize(str, opts, col.NRGBA(), scale)
		if err != nil {
			return nil, err
		}
		return r.uploadGlyph(img)
	})
	if err != nil {
		return size, err
	}

	dx, dy := text.Anchor(size, opts.Align, opts.Baseline)
	x0, y0 := x+dx, y+dy
	x1, y1 := x0+float64(g.width)/scale, y0+float64(g.height)/scale
	quad := []float32{
		float32(x0), float32(y0), 0, 0,
		float32(x1), float32(y0), 1, 0,
		float32(x1), float32(y1), 1, 1,
		float32(x0), float32(y0), 0, 0,
		float32(x1), float32(y1), 1, 1,
		float32(x0), float32(y1), 0, 1,
	}
	if !allFinite([]geom.Point{{X: x0, Y: y0}, {X: x1, Y: y1}}) {
		return size, nil
	}
	r.vertScratch = r.vertScratch[:0]
	for _, v := range quad {
		r.vertScratch = appendFloat32(r.vertScratch, v)
	}
	vb, err := r.pool.Upload(Key(PrimText, RoleQuadPosition), r.vertScratch)
	if err != nil {
		return size, err
	}
	if err := r.writeUniforms(White); err != nil {
		return size, err
	}
	err = r.submitPass("text", gputypes.LoadOpLoad, func(rp hal.RenderPassEncoder) {
		rp.SetPipeline(r.glyph.pipeline)
		rp.SetBindGroup(0, r.uniformGroup, nil)
		rp.SetBindGroup(1, g.group, nil)
		rp.SetVertexBuffer(0, vb, 0)
		rp.Draw(6, 1, 0, 0)
	})
	return size, err
}

// MeasureText returns the size DrawText would report for str.
func (r *Rasterizer) MeasureText(str string, opts text.Options) (text.Size, error) {
	return r.fonts.Measure(str, opts)
}

// uploadGlyph copies a premultiplied label bitmap into a new texture.
func (r *Rasterizer) uploadGlyph(img *image.RGBA) (*glyphTexture, error) {
	b := img.Bounds()
	w, h := uint32(b.Dx()), uint32(b.Dy())
	g := &glyphTexture{width: b.Dx(), height: b.Dy()}

	var err error
	g.tex, err = r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "easel_label",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create label texture: %w", err)
	}
	g.view, err = r.device.CreateTextureView(g.tex, &hal.TextureViewDescriptor{
		Label:         "easel_label_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		g.destroy(r.device)
		return nil, fmt.Errorf("render: create label view: %w", err)
	}

	err = r.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: g.tex, MipLevel: 0, Aspect: gputypes.TextureAspectAll},
		img.Pix,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: uint32(img.Stride), RowsPerImage: h},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	if err != nil {
		g.destroy(r.device)
		return nil, fmt.Errorf("render: upload label: %w", err)
	}

	g.group, err = r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "easel_label_bind",
		Layout: r.textureLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: g.view.NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: r.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		g.destroy(r.device)
		return nil, fmt.Errorf("render: create label bind group: %w", err)
	}
	return g, nil
}
