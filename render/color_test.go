// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image/color"
	"testing"
)

func TestColorPremultiplied(t *testing.T) {
	got := RGBA(0.2, 0.4, 0.9, 0.5).Premultiplied()
	want := [4]float32{0.1, 0.2, 0.45, 0.5}
	for i := range got {
		if d := got[i] - want[i]; d > 1e-6 || d < -1e-6 {
			t.Fatalf("Premultiplied = %v, want %v", got, want)
		}
	}
	if p := RGBA(2, -1, 0.5, 1).Premultiplied(); p != [4]float32{1, 0, 0.5, 1} {
		t.Errorf("out-of-range components not clamped: %v", p)
	}
}

func TestColorConversions(t *testing.T) {
	if got := White.NRGBA(); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("White.NRGBA() = %v", got)
	}
	c := ColorFrom(color.NRGBA{R: 255, G: 0, B: 51, A: 255})
	if c.R != 1 || c.G != 0 || c.B != 0.2 || c.A != 1 {
		t.Errorf("ColorFrom = %+v", c)
	}
}

func TestStyle(t *testing.T) {
	tests := []struct {
		name      string
		style     Style
		fill      bool
		hasStroke bool
	}{
		{"zero", Style{}, false, false},
		{"fill only", Style{Fill: Black}, true, false},
		{"stroke", Style{Stroke: Black, Thickness: 2}, false, true},
		{"stroke without width", Style{Stroke: Black}, false, false},
		{"negative width", Style{Stroke: Black, Thickness: -1}, false, false},
		{"transparent stroke", Style{Stroke: Transparent, Thickness: 3}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.style.HasFill(); got != tt.fill {
				t.Errorf("HasFill = %v", got)
			}
			if got := tt.style.HasStroke(); got != tt.hasStroke {
				t.Errorf("HasStroke = %v", got)
			}
		})
	}
}
