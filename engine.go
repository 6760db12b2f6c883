package easel

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/easel/geom"
	"github.com/gogpu/easel/pick"
	"github.com/gogpu/easel/render"
	"github.com/gogpu/easel/scene"
	"github.com/gogpu/easel/selection"
)

// Engine is a retained-mode canvas: a Rasterizer, the shape Queue, the
// Picker and the selection Manager wired together.
//
// Engine is not safe for concurrent use. All calls, including the event
// handlers installed by Attach, belong on the host's UI goroutine.
type Engine struct {
	opts options

	device *render.Device
	r      *render.Rasterizer
	shapes *scene.Queue
	picker *pick.Picker
	sel    *selection.Manager
	frames *FrameScheduler

	renderPending bool
	panning       bool
	lastX, lastY  float64

	setCursor func(gpucontext.CursorShape)
	cursor    gpucontext.CursorShape

	closed bool
}

// New creates an Engine drawing with device and queue. The device stays
// owned by the caller.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r, err := render.New(device, queue, o.render...)
	if err != nil {
		return nil, fmt.Errorf("easel: create rasterizer: %w", err)
	}
	return newEngine(r, nil, o), nil
}

// NewWithProvider creates an Engine on the device of a gogpu host, such
// as a window implementing gpucontext.DeviceProvider together with
// HalDevice and HalQueue. The device stays owned by the host.
func NewWithProvider(provider any, opts ...Option) (*Engine, error) {
	d, err := render.FromProvider(provider)
	if err != nil {
		return nil, err
	}
	e, err := New(d.Device, d.Queue, opts...)
	if err != nil {
		return nil, err
	}
	if d.Info.Name != "" {
		Logger().Info("easel: using host device", slog.String("adapter", d.Info.Name))
	}
	return e, nil
}

// Open creates an Engine on a device of its own, opened from the first
// usable backend (see WithBackends). Close releases the device.
//
// Backends must be registered by the binary, for example by importing
// github.com/gogpu/wgpu/hal/allbackends.
func Open(opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d, err := render.OpenDevice(o.backends...)
	if err != nil {
		return nil, fmt.Errorf("easel: open device: %w", err)
	}
	r, err := render.NewFromDevice(d, o.render...)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("easel: create rasterizer: %w", err)
	}
	Logger().Info("easel: opened device", slog.String("adapter", d.Info.Name))
	return newEngine(r, d, o), nil
}

func newEngine(r *render.Rasterizer, d *render.Device, o options) *Engine {
	e := &Engine{
		opts:   o,
		device: d,
		r:      r,
		shapes: scene.NewQueue(),
		frames: NewFrameScheduler(nil),
	}
	e.sel = selection.New(e.shapes, r, e, e.frames)
	e.picker = pick.New(e.shapes, r, e, e.sel)
	r.SetRedrawRequester(e.requestRender)
	return e
}

// Rasterizer returns the underlying Rasterizer.
func (e *Engine) Rasterizer() *render.Rasterizer { return e.r }

// Frames returns the scheduler driving deferred redraws.
func (e *Engine) Frames() *FrameScheduler { return e.frames }

// Frame runs the work queued for this display frame: coalesced redraws
// after pan, zoom and upserts, and the selection marquee task.
func (e *Engine) Frame() int { return e.frames.Frame() }

// Upsert stores s, replacing the shape with the same id in place. Text
// shapes are measured first so that hit tests and bounds work before the
// next frame. A redraw is scheduled.
func (e *Engine) Upsert(s scene.Shape) error {
	if e.closed {
		return ErrClosed
	}
	s, err := scene.Measure(s, e.r.Fonts())
	if err != nil {
		return err
	}
	if err := e.shapes.Upsert(s); err != nil {
		return err
	}
	e.requestRender()
	return nil
}

// Remove deletes a shape and schedules a redraw. It reports whether the
// shape existed.
func (e *Engine) Remove(id string) bool {
	if !e.shapes.Remove(id) {
		return false
	}
	e.requestRender()
	return true
}

// Shapes returns the shapes in paint order.
func (e *Engine) Shapes() []scene.Shape { return e.shapes.All() }

// Shape returns the shape with the given id.
func (e *Engine) Shape(id string) (scene.Shape, bool) { return e.shapes.Get(id) }

// Render clears the target and draws every shape in paint order, the
// highlight of selected shapes and, while selecting, the marquee.
func (e *Engine) Render() error {
	if e.closed {
		return ErrClosed
	}
	drawables := e.shapes.Drawables(e.sel.Has)
	if e.sel.Active() {
		drawables = append(drawables, e.sel)
	}
	return e.r.Render(drawables)
}

// Clear fills the target with the background color.
func (e *Engine) Clear() error {
	if e.closed {
		return ErrClosed
	}
	return e.r.Clear()
}

// ReadPixels copies the last rendered frame to host memory.
func (e *Engine) ReadPixels() (*image.RGBA, error) {
	if e.closed {
		return nil, ErrClosed
	}
	return e.r.ReadPixels()
}

// SetViewport resizes the canvas to width x height logical pixels and
// schedules a redraw.
func (e *Engine) SetViewport(width, height int) error {
	if e.closed {
		return ErrClosed
	}
	if err := e.r.SetViewport(width, height); err != nil {
		return err
	}
	e.requestRender()
	return nil
}

// SetPixelRatio changes the device pixel ratio of the backing target.
func (e *Engine) SetPixelRatio(ratio float64) error {
	if e.closed {
		return ErrClosed
	}
	if err := e.r.SetPixelRatio(ratio); err != nil {
		return err
	}
	e.requestRender()
	return nil
}

// Viewport returns the current view transform and size.
func (e *Engine) Viewport() render.Viewport { return e.r.Viewport() }

// Pan moves the view by (dx, dy) screen pixels. The redraw happens on the
// next frame.
func (e *Engine) Pan(dx, dy float64) { e.r.Pan(dx, dy) }

// Zoom sets the scale keeping the world point under (cx, cy) in place.
// The redraw happens on the next frame.
func (e *Engine) Zoom(scale, cx, cy float64) { e.r.Zoom(scale, cx, cy) }

// ScreenToWorld converts a screen point to world coordinates.
func (e *Engine) ScreenToWorld(sx, sy float64) (x, y float64) { return e.r.ScreenToWorld(sx, sy) }

// WorldToScreen converts a world point to screen coordinates.
func (e *Engine) WorldToScreen(x, y float64) (sx, sy float64) { return e.r.WorldToScreen(x, y) }

// VisibleWorld returns the world rectangle currently on screen.
func (e *Engine) VisibleWorld() geom.Rect { return e.r.VisibleWorld() }

// On registers fn for a lifecycle event such as render.EventAfterRender.
func (e *Engine) On(event render.Event, fn func()) render.Handle { return e.r.On(event, fn) }

// Off removes a listener registered with On.
func (e *Engine) Off(h render.Handle) { e.r.Off(h) }

// Selected returns the ids of the selected shapes.
func (e *Engine) Selected() []string { return e.sel.IDs() }

// Select adds a shape to the selection.
func (e *Engine) Select(id string) error { return e.sel.Add(id) }

// ClearSelection deselects every shape.
func (e *Engine) ClearSelection() error { return e.sel.Clear() }

// OnSelectionChange registers fn to receive the selected ids whenever
// they change. The returned function unregisters it.
func (e *Engine) OnSelectionChange(fn func(ids []string)) (cancel func()) {
	return e.sel.OnChange(fn)
}

// Close releases the GPU resources of the engine, and its device when the
// engine opened it. Close is idempotent.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.r.SetRedrawRequester(nil)
	e.r.Close()
	if e.device != nil {
		e.device.Close()
	}
}

// requestRender schedules one redraw for the next frame. Further requests
// before that frame are folded into it.
func (e *Engine) requestRender() {
	if e.renderPending || e.closed {
		return
	}
	e.renderPending = true
	e.frames.RequestFrame(func() {
		e.renderPending = false
		if e.closed {
			return
		}
		if err := e.Render(); err != nil {
			Logger().Warn("easel: frame render failed", slog.Any("err", err))
		}
	})
}
