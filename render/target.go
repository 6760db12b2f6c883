// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyPitchAlignment is the row alignment of texture-to-buffer copies.
const copyPitchAlignment = 256

// Target is the offscreen color texture the rasterizer draws into.
//
// Hosts composite it through View; tests and the demo read it back with
// Rasterizer.ReadPixels.
type Target struct {
	texture hal.Texture
	view    hal.TextureView
	width   uint32
	height  uint32
	format  gputypes.TextureFormat
}

func newTarget(device hal.Device, width, height uint32, format gputypes.TextureFormat) (*Target, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrTarget, width, height)
	}
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "easel_target",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage: gputypes.TextureUsageRenderAttachment |
			gputypes.TextureUsageCopySrc |
			gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTarget, err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "easel_target_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("%w: view: %w", ErrTarget, err)
	}
	return &Target{texture: tex, view: view, width: width, height: height, format: format}, nil
}

// Width returns the target width in pixels.
func (t *Target) Width() int { return int(t.width) }

// Height returns the target height in pixels.
func (t *Target) Height() int { return int(t.height) }

// Format returns the pixel format.
func (t *Target) Format() gputypes.TextureFormat { return t.format }

// Texture returns the underlying texture.
func (t *Target) Texture() hal.Texture { return t.texture }

// View returns the texture view for host composition.
func (t *Target) View() hal.TextureView { return t.view }

func (t *Target) destroy(device hal.Device) {
	if t == nil {
		return
	}
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		device.DestroyTexture(t.texture)
		t.texture = nil
	}
}

// alignedRowPitch returns the buffer row stride of a readback copy.
func (t *Target) alignedRowPitch() uint32 {
	return (t.width*4 + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}

// recordReadback records the copy of the target into staging.
func (t *Target) recordReadback(encoder hal.CommandEncoder, staging hal.Buffer) {
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.texture,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(t.texture, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: t.alignedRowPitch(), RowsPerImage: t.height},
		TextureBase:  hal.ImageCopyTexture{Texture: t.texture, MipLevel: 0, Aspect: gputypes.TextureAspectAll},
		Size:         hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.texture,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})
}

// decode copies the mapped staging rows into an RGBA image, swizzling BGRA
// targets.
func (t *Target) decode(mapped unsafe.Pointer) *image.RGBA {
	pitch := int(t.alignedRowPitch())
	w, h := int(t.width), int(t.height)
	src := unsafe.Slice((*byte)(mapped), pitch*h)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		copy(row, src[y*pitch:y*pitch+w*4])
		if t.format == gputypes.TextureFormatBGRA8Unorm {
			for x := 0; x < len(row); x += 4 {
				row[x], row[x+2] = row[x+2], row[x]
			}
		}
	}
	return img
}
