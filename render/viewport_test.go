// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"
	"testing"

	"github.com/gogpu/easel/geom"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) <= eps*max(1, math.Abs(a), math.Abs(b)) }

func TestScreenToWorld(t *testing.T) {
	v := Viewport{Scale: 2, OffsetX: 100, OffsetY: 50, Width: 800, Height: 600, PixelRatio: 2}
	x, y := v.ScreenToWorld(120, 70)
	if !near(x, 10) || !near(y, 10) {
		t.Errorf("ScreenToWorld(120,70) = (%v,%v), want (10,10)", x, y)
	}
	sx, sy := v.WorldToScreen(10, 10)
	if !near(sx, 120) || !near(sy, 70) {
		t.Errorf("WorldToScreen(10,10) = (%v,%v), want (120,70)", sx, sy)
	}
}

func TestViewportRoundTrip(t *testing.T) {
	for _, scale := range []float64{MinScale, 0.37, 1, 2.5, MaxScale} {
		v := Viewport{Scale: scale, OffsetX: -33.5, OffsetY: 712, Width: 640, Height: 480}
		for _, p := range [][2]float64{{0, 0}, {123.25, -9}, {-1e4, 5e3}} {
			sx, sy := v.WorldToScreen(p[0], p[1])
			x, y := v.ScreenToWorld(sx, sy)
			if !near(x, p[0]) || !near(y, p[1]) {
				t.Errorf("scale %v: round trip of %v = (%v,%v)", scale, p, x, y)
			}
		}
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	v := NewViewport(800, 600, 1)
	v = v.Pan(40, -20)
	cx, cy := 300.0, 200.0
	wx, wy := v.ScreenToWorld(cx, cy)

	z := v.ZoomAt(2, cx, cy)
	if z.Scale != 2 {
		t.Fatalf("Scale = %v", z.Scale)
	}
	gx, gy := z.ScreenToWorld(cx, cy)
	if !near(gx, wx) || !near(gy, wy) {
		t.Errorf("world under cursor moved: (%v,%v) -> (%v,%v)", wx, wy, gx, gy)
	}
}

func TestClampScale(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.01, MinScale},
		{0.1, 0.1},
		{3, 3},
		{10, 10},
		{50, MaxScale},
		{math.NaN(), 1},
	}
	for _, tt := range tests {
		if got := ClampScale(tt.in); got != tt.want {
			t.Errorf("ClampScale(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if z := NewViewport(10, 10, 1).ZoomAt(100, 0, 0); z.Scale != MaxScale {
		t.Errorf("ZoomAt did not clamp: %v", z.Scale)
	}
}

func TestBackingSize(t *testing.T) {
	w, h := NewViewport(800, 600, 2).BackingSize()
	if w != 1600 || h != 1200 {
		t.Errorf("BackingSize = %dx%d, want 1600x1200", w, h)
	}
	w, h = NewViewport(101, 51, 1.5).BackingSize()
	if w != 152 || h != 77 {
		t.Errorf("BackingSize = %dx%d, want 152x77", w, h)
	}
}

func TestViewportMatrices(t *testing.T) {
	v := Viewport{Scale: 2, OffsetX: 100, OffsetY: 50, Width: 800, Height: 600}
	// World (10, 10) lands on screen (120, 70), which is clip (-0.7, 0.7667).
	p := v.Projection().Mul(v.View())
	got := p.Apply(geom.Pt(10, 10))
	if math.Abs(got.X-(-0.7)) > 1e-5 || math.Abs(got.Y-(1-140.0/600)) > 1e-5 {
		t.Errorf("clip = %+v", got)
	}
}
