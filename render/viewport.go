// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"

	"github.com/gogpu/easel/geom"
)

// Zoom limits.
const (
	MinScale = 0.1
	MaxScale = 10.0
)

// DefaultPixelRatio is the backing-store density used when none is given.
// Drawing at twice the CSS size keeps edges smooth without MSAA.
const DefaultPixelRatio = 2.0

// Viewport maps world coordinates to screen (CSS pixel) coordinates:
//
//	screen = world*Scale + Offset
//
// Width and Height are the screen size; the backing target is
// Width*PixelRatio by Height*PixelRatio pixels.
type Viewport struct {
	Scale      float64
	OffsetX    float64
	OffsetY    float64
	Width      int
	Height     int
	PixelRatio float64
}

// NewViewport returns an unscaled viewport of the given screen size.
func NewViewport(width, height int, pixelRatio float64) Viewport {
	if pixelRatio <= 0 {
		pixelRatio = DefaultPixelRatio
	}
	return Viewport{Scale: 1, Width: width, Height: height, PixelRatio: pixelRatio}
}

// ClampScale limits s to [MinScale, MaxScale]. NaN maps to 1.
func ClampScale(s float64) float64 {
	if math.IsNaN(s) {
		return 1
	}
	return min(max(s, MinScale), MaxScale)
}

// ScreenToWorld converts a screen point to world coordinates.
func (v Viewport) ScreenToWorld(sx, sy float64) (x, y float64) {
	s := v.scale()
	return (sx - v.OffsetX) / s, (sy - v.OffsetY) / s
}

// WorldToScreen converts a world point to screen coordinates.
func (v Viewport) WorldToScreen(x, y float64) (sx, sy float64) {
	s := v.scale()
	return x*s + v.OffsetX, y*s + v.OffsetY
}

// Pan returns v with its offset moved by (dx, dy) screen pixels.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.OffsetX += dx
	v.OffsetY += dy
	return v
}

// ZoomAt returns v rescaled to scale (clamped) so that the world point
// under the screen point (cx, cy) stays there.
func (v Viewport) ZoomAt(scale, cx, cy float64) Viewport {
	wx, wy := v.ScreenToWorld(cx, cy)
	v.Scale = ClampScale(scale)
	v.OffsetX = cx - wx*v.Scale
	v.OffsetY = cy - wy*v.Scale
	return v
}

// Projection maps screen pixels to clip space with y down.
func (v Viewport) Projection() geom.Mat4 {
	return geom.Projection(float64(v.Width), float64(v.Height))
}

// View maps world coordinates to screen pixels.
func (v Viewport) View() geom.Mat4 {
	return geom.View(v.scale(), v.OffsetX, v.OffsetY)
}

// BackingSize returns the pixel size of the render target.
func (v Viewport) BackingSize() (w, h uint32) {
	r := v.PixelRatio
	if r <= 0 {
		r = DefaultPixelRatio
	}
	return uint32(max(1, math.Ceil(float64(v.Width)*r))), uint32(max(1, math.Ceil(float64(v.Height)*r)))
}

// VisibleWorld returns the world rectangle covered by the screen.
func (v Viewport) VisibleWorld() geom.Rect {
	x0, y0 := v.ScreenToWorld(0, 0)
	x1, y1 := v.ScreenToWorld(float64(v.Width), float64(v.Height))
	return geom.RectFromPoints(geom.Pt(x0, y0), geom.Pt(x1, y1))
}

func (v Viewport) scale() float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}
