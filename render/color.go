// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image/color"
	"math"
)

// Color is a straight-alpha RGBA color with components in [0, 1].
// The zero Color is fully transparent and means "absent" in a Style.
type Color struct {
	R, G, B, A float32
}

// Common colors.
var (
	Transparent = Color{}
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
)

// RGBA returns a Color from straight-alpha components.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Visible reports whether drawing with c changes any pixel.
func (c Color) Visible() bool { return c.A > 0 }

// Premultiplied returns the components as a premultiplied vec4.
func (c Color) Premultiplied() [4]float32 {
	a := clamp01(c.A)
	return [4]float32{clamp01(c.R) * a, clamp01(c.G) * a, clamp01(c.B) * a, a}
}

// NRGBA converts c to an 8-bit straight-alpha color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// ColorFrom converts any image/color value to a Color.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

func clamp01(v float32) float32 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float32) uint8 {
	return uint8(math.Round(float64(clamp01(v)) * 255))
}

// Style is the paint of a primitive.
//
// Fill and stroke are independent: a zero Fill skips the fill and a
// non-positive Thickness or zero Stroke skips the outline.
type Style struct {
	Fill      Color
	Stroke    Color
	Thickness float64
}

// HasFill reports whether the style paints an interior.
func (s Style) HasFill() bool { return s.Fill.Visible() }

// HasStroke reports whether the style paints an outline.
func (s Style) HasStroke() bool { return s.Thickness > 0 && s.Stroke.Visible() }
