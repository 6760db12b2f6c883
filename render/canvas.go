// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/easel/geom"
	"github.com/gogpu/easel/text"
)

// Canvas is the drawing surface handed to a Drawable. Coordinates are in
// world units; the current Viewport maps them to the screen.
//
// *Rasterizer implements Canvas.
type Canvas interface {
	DrawRectangle(x, y, w, h float64, s Style) error
	DrawCircle(cx, cy, r float64, s Style) error
	DrawEllipse(cx, cy, rx, ry float64, s Style) error
	DrawLine(x1, y1, x2, y2 float64, s Style) error
	DrawPath(pts []geom.PathPoint, closed bool, s Style) error
	DrawPolygon(pts []geom.Point, s Style) error
	DrawTriangle(a, b, c geom.Point, s Style) error
	DrawText(str string, x, y float64, col Color, opts text.Options) (text.Size, error)
	Viewport() Viewport
}

// Drawable is anything that can paint itself on a Canvas.
type Drawable interface {
	Draw(c Canvas) error
}

// DrawableFunc adapts a function to Drawable.
type DrawableFunc func(c Canvas) error

// Draw calls f(c).
func (f DrawableFunc) Draw(c Canvas) error { return f(c) }

var _ Canvas = (*Rasterizer)(nil)
