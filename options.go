package easel

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/easel/render"
)

// Option configures an Engine during creation.
//
// Example:
//
//	e, err := easel.Open(
//	    easel.WithRenderOptions(render.WithSize(1024, 768)),
//	    easel.WithWheelSensitivity(0.002),
//	)
type Option func(*options)

// options holds optional configuration for Engine creation.
type options struct {
	render     []render.Option
	backends   []gputypes.Backend
	wheel      float64
	panFactor  float64
	selectMod  gpucontext.Modifiers
	lineHeight float64
}

// defaultOptions returns the default engine options.
func defaultOptions() options {
	return options{
		wheel:      0.001,
		panFactor:  0.5,
		selectMod:  gpucontext.ModShift,
		lineHeight: 16,
	}
}

// WithRenderOptions passes options through to the Rasterizer.
func WithRenderOptions(opts ...render.Option) Option {
	return func(o *options) {
		o.render = append(o.render, opts...)
	}
}

// WithBackends sets the backends Open tries, in order.
// The default is render.DefaultBackends.
func WithBackends(backends ...gputypes.Backend) Option {
	return func(o *options) {
		o.backends = backends
	}
}

// WithWheelSensitivity sets how much one pixel of wheel movement changes
// the zoom factor. The default is 0.001.
func WithWheelSensitivity(s float64) Option {
	return func(o *options) {
		if s > 0 {
			o.wheel = s
		}
	}
}

// WithPanFactor scales pointer movement into view panning. The default
// is 0.5.
func WithPanFactor(f float64) Option {
	return func(o *options) {
		if f > 0 {
			o.panFactor = f
		}
	}
}

// WithSelectModifier sets the modifier that turns a left-button press
// into a marquee selection. The default is Shift.
func WithSelectModifier(m gpucontext.Modifiers) Option {
	return func(o *options) {
		if m != 0 {
			o.selectMod = m
		}
	}
}

// WithLineHeight sets the pixel size of one line for wheels that scroll
// by lines. The default is 16.
func WithLineHeight(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.lineHeight = px
		}
	}
}
