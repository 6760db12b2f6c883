package text

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Rasterize draws s into a transparent premultiplied RGBA bitmap.
//
// scale multiplies the font size so the bitmap can be sampled down on the
// GPU; the returned image is Measure(s, opts) scaled by scale and rounded
// up to whole pixels. The glyphs are filled with col.
func (r *Registry) Rasterize(s string, opts Options, col color.Color, scale float64) (*image.RGBA, error) {
	if scale <= 0 {
		return nil, ErrInvalidSize
	}
	opts = opts.WithDefaults()
	s = Normalize(s)

	var img *image.RGBA
	err := r.withFace(opts.Family, opts.Size*scale, func(face font.Face) error {
		size := measureFace(face, s)
		img = image.NewRGBA(image.Rect(0, 0, ceilPixels(size.Width), ceilPixels(size.Height)))
		if s == "" {
			return nil
		}
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(col),
			Face: face,
			Dot:  fixed.Point26_6{X: 0, Y: face.Metrics().Ascent},
		}
		d.DrawString(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Key identifies a rasterized label for texture caching.
type Key struct {
	Text     string
	Family   string
	Size     float64
	Scale    float64
	R, G, B  uint8
	A        uint8
	Align    Align
	Baseline Baseline
}

// NewKey builds the cache key of a label.
func NewKey(s string, opts Options, col color.NRGBA, scale float64) Key {
	opts = opts.WithDefaults()
	return Key{
		Text:     s,
		Family:   opts.Family,
		Size:     opts.Size,
		Scale:    scale,
		R:        col.R,
		G:        col.G,
		B:        col.B,
		A:        col.A,
		Align:    opts.Align,
		Baseline: opts.Baseline,
	}
}
