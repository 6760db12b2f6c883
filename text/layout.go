package text

import (
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// Default label settings.
const (
	DefaultSize       = 16.0
	DefaultFamilyName = "Arial"
)

// Align is the horizontal anchor of a label relative to its x coordinate.
type Align uint8

const (
	// AlignLeft places the left edge at x.
	AlignLeft Align = iota
	// AlignCenter centers the label on x.
	AlignCenter
	// AlignRight places the right edge at x.
	AlignRight
)

// String returns the CSS-style name of the alignment.
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "unknown"
	}
}

// Baseline is the vertical anchor of a label relative to its y coordinate.
type Baseline uint8

const (
	// BaselineTop places the top of the line box at y.
	BaselineTop Baseline = iota
	// BaselineMiddle centers the line box on y.
	BaselineMiddle
	// BaselineBottom places the bottom of the line box at y.
	BaselineBottom
)

// String returns the CSS-style name of the baseline.
func (b Baseline) String() string {
	switch b {
	case BaselineTop:
		return "top"
	case BaselineMiddle:
		return "middle"
	case BaselineBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Options describes how a label is set.
// Zero fields take the defaults: 16px, "Arial", left, top.
type Options struct {
	Size     float64
	Family   string
	Align    Align
	Baseline Baseline
}

// WithDefaults returns o with zero fields replaced by defaults.
func (o Options) WithDefaults() Options {
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.Family == "" {
		o.Family = DefaultFamilyName
	}
	return o
}

// Size is the measured extent of a label in the units of Options.Size.
type Size struct {
	Width, Height float64
}

// Empty reports whether the label has no visible extent.
func (s Size) Empty() bool { return s.Width <= 0 || s.Height <= 0 }

// Anchor returns the offset from the label's (x, y) to the top-left corner
// of its box, following the alignment and baseline.
func Anchor(s Size, align Align, baseline Baseline) (dx, dy float64) {
	switch align {
	case AlignCenter:
		dx = -s.Width / 2
	case AlignRight:
		dx = -s.Width
	}
	switch baseline {
	case BaselineMiddle:
		dy = -s.Height / 2
	case BaselineBottom:
		dy = -s.Height
	}
	return dx, dy
}

// Normalize prepares a label for layout: NFC composition, and line breaks
// and tabs folded to spaces since labels are single-line.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return ' '
		}
		return r
	}, s)
}

// Measure returns the advance width and line height of s.
// An empty string measures zero wide but keeps the line height.
func (r *Registry) Measure(s string, opts Options) (Size, error) {
	opts = opts.WithDefaults()
	s = Normalize(s)
	var size Size
	err := r.withFace(opts.Family, opts.Size, func(face font.Face) error {
		size = measureFace(face, s)
		return nil
	})
	return size, err
}

func measureFace(face font.Face, s string) Size {
	m := face.Metrics()
	return Size{
		Width:  fixedToFloat64(font.MeasureString(face, s)),
		Height: fixedToFloat64(m.Ascent + m.Descent),
	}
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

// ceilPixels rounds a length up to whole pixels, at least one.
func ceilPixels(v float64) int {
	return max(1, int(math.Ceil(v)))
}
