// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/easel/text"
)

// Option configures a Rasterizer during creation.
type Option func(*options)

type options struct {
	width, height   int
	pixelRatio      float64
	background      Color
	fonts           *text.Registry
	textSupersample float64
	glyphCacheSize  int
	format          gputypes.TextureFormat
}

func defaultOptions() options {
	return options{
		width:           800,
		height:          600,
		pixelRatio:      DefaultPixelRatio,
		background:      White,
		textSupersample: 2,
		glyphCacheSize:  256,
		format:          gputypes.TextureFormatRGBA8Unorm,
	}
}

// WithSize sets the screen size in CSS pixels. Default 800x600.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithPixelRatio sets the backing-store density. Default 2.
// Non-positive values keep the default.
func WithPixelRatio(ratio float64) Option {
	return func(o *options) {
		if ratio > 0 {
			o.pixelRatio = ratio
		}
	}
}

// WithBackground sets the color Clear fills the target with. Default white.
func WithBackground(c Color) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithFonts sets the font registry used by DrawText.
// By default a registry with the Go fonts is created.
func WithFonts(reg *text.Registry) Option {
	return func(o *options) {
		o.fonts = reg
	}
}

// WithTextSupersample sets how many bitmap pixels back one target pixel
// of a text label. Default 2.
func WithTextSupersample(n float64) Option {
	return func(o *options) {
		if n > 0 {
			o.textSupersample = n
		}
	}
}

// WithGlyphCacheSize bounds the number of label textures kept on the GPU.
// Default 256.
func WithGlyphCacheSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.glyphCacheSize = n
		}
	}
}

// WithFormat sets the target format. RGBA8Unorm (default) and BGRA8Unorm
// are supported.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.format = f
	}
}
