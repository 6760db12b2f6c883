// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/easel/geom"
	"github.com/gogpu/easel/text"
)

// Rasterizer draws primitives and text labels into an offscreen target
// through two render pipelines: flat-color triangles and textured glyph
// quads.
//
// Every draw uploads its geometry through the BufferPool and submits its
// own render pass that loads the previous contents, so a pooled buffer is
// never overwritten while an earlier draw of the same frame still needs
// it. Rasterizer is not safe for concurrent use; the host drives it from
// its UI goroutine.
type Rasterizer struct {
	device hal.Device
	queue  hal.Queue
	opts   options

	uniformLayout hal.BindGroupLayout
	textureLayout hal.BindGroupLayout
	flat          *pipeline
	glyph         *pipeline
	uniformBuf    hal.Buffer
	uniformGroup  hal.BindGroup
	sampler       hal.Sampler

	target *Target
	pool   *BufferPool
	fonts  *text.Registry
	glyphs *text.Cache[text.Key, *glyphTexture]

	vp     Viewport
	events Events
	redraw func()

	inflight []submission
	deferred []deferredRelease
	last     uint64

	uniformScratch [uniformSize]byte
	vertScratch    []byte
	indexScratch   []byte

	ready bool
}

// submission is a command buffer the GPU may still be executing.
type submission struct {
	encoder hal.CommandEncoder
	cmd     hal.CommandBuffer
	index   uint64
}

// deferredRelease frees a resource once submission index has completed.
type deferredRelease struct {
	index   uint64
	release func()
}

// New creates a rasterizer on device and queue. The device stays owned by
// the caller; Close releases only what the rasterizer created.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Rasterizer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.width <= 0 || o.height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, o.width, o.height)
	}
	if o.fonts == nil {
		o.fonts = text.NewRegistry()
	}

	r := &Rasterizer{
		device: device,
		queue:  queue,
		opts:   o,
		fonts:  o.fonts,
		vp:     NewViewport(o.width, o.height, o.pixelRatio),
		pool:   NewBufferPool(device, queue),
		glyphs: text.NewCache[text.Key, *glyphTexture](o.glyphCacheSize),
	}
	r.glyphs.OnEvict(func(_ text.Key, g *glyphTexture) { r.releaseLater(func() { g.destroy(r.device) }) })

	if err := r.init(); err != nil {
		r.Close()
		return nil, err
	}
	r.ready = true
	return r, nil
}

// NewFromDevice is New with the device and queue of d.
func NewFromDevice(d *Device, opts ...Option) (*Rasterizer, error) {
	return New(d.Device, d.Queue, opts...)
}

func (r *Rasterizer) init() error {
	var err error
	r.uniformLayout, err = r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "easel_uniform_layout",
		Entries: uniformLayoutEntries(),
	})
	if err != nil {
		return fmt.Errorf("%w: uniform layout: %w", ErrPipeline, err)
	}
	r.textureLayout, err = r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "easel_texture_layout",
		Entries: textureLayoutEntries(),
	})
	if err != nil {
		return fmt.Errorf("%w: texture layout: %w", ErrPipeline, err)
	}

	r.flat, err = newPipeline(r.device, pipelineDesc{
		label:   "flat",
		source:  flatShaderSource,
		groups:  []hal.BindGroupLayout{r.uniformLayout},
		buffers: flatVertexLayout(),
		format:  r.opts.format,
	})
	if err != nil {
		return err
	}
	r.glyph, err = newPipeline(r.device, pipelineDesc{
		label:   "glyph",
		source:  glyphShaderSource,
		groups:  []hal.BindGroupLayout{r.uniformLayout, r.textureLayout},
		buffers: glyphVertexLayout(),
		format:  r.opts.format,
	})
	if err != nil {
		return err
	}

	r.uniformBuf, err = r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "easel_uniforms",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("%w: uniform buffer: %w", ErrPipeline, err)
	}
	r.uniformGroup, err = r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "easel_uniform_bind",
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: r.uniformBuf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: uniform bind group: %w", ErrPipeline, err)
	}

	r.sampler, err = r.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "easel_glyph_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeNearest,
		LodMaxClamp:  32,
		Anisotropy:   1,
	})
	if err != nil {
		return fmt.Errorf("%w: sampler: %w", ErrPipeline, err)
	}

	w, h := r.vp.BackingSize()
	r.target, err = newTarget(r.device, w, h, r.opts.format)
	return err
}

// mustReady panics with ErrNotReady when the rasterizer cannot draw.
func (r *Rasterizer) mustReady() {
	if r == nil || !r.ready {
		panic(ErrNotReady)
	}
}

// Ready reports whether the rasterizer can draw.
func (r *Rasterizer) Ready() bool { return r != nil && r.ready }

// Fonts returns the registry DrawText uses.
func (r *Rasterizer) Fonts() *text.Registry { return r.fonts }

// Pool returns the geometry buffer pool.
func (r *Rasterizer) Pool() *BufferPool { return r.pool }

// GlyphCacheLen returns the number of label textures on the GPU.
func (r *Rasterizer) GlyphCacheLen() int { return r.glyphs.Len() }

// Target returns the offscreen color target.
func (r *Rasterizer) Target() *Target { return r.target }

// Background returns the clear color.
func (r *Rasterizer) Background() Color { return r.opts.background }

// SetBackground changes the clear color used by the next Clear.
func (r *Rasterizer) SetBackground(c Color) { r.opts.background = c }

// Events returns the lifecycle event bus.
func (r *Rasterizer) Events() *Events { return &r.events }

// On registers fn for a lifecycle event.
func (r *Rasterizer) On(event Event, fn func()) Handle { return r.events.On(event, fn) }

// Off removes a lifecycle listener.
func (r *Rasterizer) Off(h Handle) { r.events.Off(h) }

// SetRedrawRequester installs the callback Pan and Zoom use to ask for a
// new frame. The engine points it at its frame scheduler.
func (r *Rasterizer) SetRedrawRequester(fn func()) { r.redraw = fn }

func (r *Rasterizer) requestRedraw() {
	if r.redraw != nil {
		r.redraw()
	}
}

// Clear fills the target with the background color.
func (r *Rasterizer) Clear() error {
	r.mustReady()
	return r.submitPass("clear", gputypes.LoadOpClear, nil)
}

// Render clears the target, draws each drawable in order and emits
// EventAfterRender. A failing drawable does not stop the frame; the
// errors are joined and returned.
func (r *Rasterizer) Render(drawables []Drawable) error {
	r.mustReady()
	if err := r.Clear(); err != nil {
		return err
	}
	var errs []error
	for i, d := range drawables {
		if err := d.Draw(r); err != nil {
			errs = append(errs, fmt.Errorf("render: drawable %d: %w", i, err))
		}
	}
	r.events.Emit(EventAfterRender)
	return errors.Join(errs...)
}

// ReadPixels copies the target back to host memory. It waits for every
// submitted draw to finish.
func (r *Rasterizer) ReadPixels() (*image.RGBA, error) {
	r.mustReady()
	t := r.target
	size := uint64(t.alignedRowPitch()) * uint64(t.height)
	staging, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "easel_readback",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create readback buffer: %w", err)
	}
	defer r.device.DestroyBuffer(staging)

	err = r.submit("readback", func(enc hal.CommandEncoder) {
		t.recordReadback(enc, staging)
	})
	if err != nil {
		return nil, err
	}
	if err := r.drain(); err != nil {
		return nil, err
	}

	mapping, err := r.device.MapBuffer(staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("render: map readback buffer: %w", err)
	}
	img := t.decode(mapping.Ptr)
	if err := r.device.UnmapBuffer(staging); err != nil {
		slogger().Warn("render: unmap readback buffer", "err", err)
	}
	return img, nil
}

// Close waits for the GPU and releases every resource the rasterizer
// created, in reverse creation order. Drawing after Close panics.
func (r *Rasterizer) Close() {
	if r == nil || r.device == nil {
		return
	}
	r.ready = false
	if r.glyphs != nil {
		r.glyphs.Clear()
	}
	if err := r.drain(); err != nil {
		slogger().Warn("render: drain on close", "err", err)
	}
	if r.pool != nil {
		r.pool.Destroy()
	}
	r.target.destroy(r.device)
	r.target = nil
	if r.sampler != nil {
		r.device.DestroySampler(r.sampler)
		r.sampler = nil
	}
	if r.uniformGroup != nil {
		r.device.DestroyBindGroup(r.uniformGroup)
		r.uniformGroup = nil
	}
	if r.uniformBuf != nil {
		r.device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	r.glyph.destroy(r.device)
	r.glyph = nil
	r.flat.destroy(r.device)
	r.flat = nil
	if r.textureLayout != nil {
		r.device.DestroyBindGroupLayout(r.textureLayout)
		r.textureLayout = nil
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
}

// writeUniforms uploads the current transform and a paint color.
func (r *Rasterizer) writeUniforms(c Color) error {
	buf := r.uniformScratch[:]
	r.vp.Projection().PutBytes(buf[0:])
	r.vp.View().PutBytes(buf[uniformViewOffset:])
	pm := c.Premultiplied()
	putFloat32s(buf[uniformColorOffset:], pm[:])
	if err := r.queue.WriteBuffer(r.uniformBuf, 0, buf); err != nil {
		return fmt.Errorf("render: write uniforms: %w", err)
	}
	return nil
}

// submitPass records one render pass on the target and submits it.
// A nil record clears (or loads) without drawing.
func (r *Rasterizer) submitPass(label string, load gputypes.LoadOp, record func(rp hal.RenderPassEncoder)) error {
	bg := r.opts.background.Premultiplied()
	return r.submit(label, func(enc hal.CommandEncoder) {
		rp := enc.BeginRenderPass(&hal.RenderPassDescriptor{
			Label: label,
			ColorAttachments: []hal.RenderPassColorAttachment{{
				View:       r.target.view,
				LoadOp:     load,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: float64(bg[0]), G: float64(bg[1]), B: float64(bg[2]), A: float64(bg[3])},
			}},
		})
		if record != nil {
			record(rp)
		}
		rp.End()
	})
}

// submit encodes commands with a fresh encoder and submits them. The
// encoder and command buffer are released once the GPU is done.
func (r *Rasterizer) submit(label string, record func(enc hal.CommandEncoder)) error {
	r.reclaim()

	enc, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return fmt.Errorf("render: create command encoder: %w", err)
	}
	if err := enc.BeginEncoding(label); err != nil {
		enc.Destroy()
		return fmt.Errorf("render: begin encoding: %w", err)
	}
	record(enc)
	cmd, err := enc.EndEncoding()
	if err != nil {
		enc.Destroy()
		return fmt.Errorf("render: end encoding: %w", err)
	}
	idx, err := r.queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		r.device.FreeCommandBuffer(cmd)
		enc.Destroy()
		return fmt.Errorf("render: submit %s: %w", label, err)
	}
	r.last = idx
	r.inflight = append(r.inflight, submission{encoder: enc, cmd: cmd, index: idx})
	return nil
}

// releaseLater runs release once everything submitted so far completed.
func (r *Rasterizer) releaseLater(release func()) {
	r.deferred = append(r.deferred, deferredRelease{index: r.last, release: release})
}

// reclaim frees command buffers and deferred resources of completed
// submissions.
func (r *Rasterizer) reclaim() {
	r.reclaimUpTo(r.queue.PollCompleted())
}

func (r *Rasterizer) reclaimUpTo(done uint64) {
	n := 0
	for _, s := range r.inflight {
		if s.index <= done {
			r.device.FreeCommandBuffer(s.cmd)
			s.encoder.Destroy()
			continue
		}
		r.inflight[n] = s
		n++
	}
	clear(r.inflight[n:])
	r.inflight = r.inflight[:n]

	n = 0
	for _, d := range r.deferred {
		if d.index <= done {
			d.release()
			continue
		}
		r.deferred[n] = d
		n++
	}
	clear(r.deferred[n:])
	r.deferred = r.deferred[:n]
}

// drain waits for the GPU and reclaims everything.
func (r *Rasterizer) drain() error {
	if len(r.inflight) == 0 && len(r.deferred) == 0 {
		return nil
	}
	if err := r.device.WaitIdle(); err != nil {
		return fmt.Errorf("render: wait idle: %w", err)
	}
	r.reclaimUpTo(^uint64(0))
	return nil
}

// Viewport returns the current viewport.
func (r *Rasterizer) Viewport() Viewport { return r.vp }

// SetViewport resizes the screen to width x height CSS pixels and the
// target to match the pixel ratio.
func (r *Rasterizer) SetViewport(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	next := r.vp
	next.Width, next.Height = width, height
	return r.resize(next)
}

// SetPixelRatio changes the backing-store density, typically to the
// window's scale factor times the supersampling factor.
func (r *Rasterizer) SetPixelRatio(ratio float64) error {
	if ratio <= 0 {
		return fmt.Errorf("%w: pixel ratio %v", ErrInvalidSize, ratio)
	}
	next := r.vp
	next.PixelRatio = ratio
	return r.resize(next)
}

func (r *Rasterizer) resize(next Viewport) error {
	r.mustReady()
	ow, oh := r.vp.BackingSize()
	nw, nh := next.BackingSize()
	r.vp = next
	if ow != nw || oh != nh {
		if err := r.drain(); err != nil {
			return err
		}
		t, err := newTarget(r.device, nw, nh, r.opts.format)
		if err != nil {
			return err
		}
		r.target.destroy(r.device)
		r.target = t
		slogger().Debug("render: target resized", "width", nw, "height", nh)
	}
	r.events.Emit(EventResize)
	return nil
}

// Pan moves the view by (dx, dy) screen pixels and requests a redraw.
func (r *Rasterizer) Pan(dx, dy float64) {
	r.vp = r.vp.Pan(dx, dy)
	r.events.Emit(EventViewportChange)
	r.requestRedraw()
}

// Zoom sets the scale (clamped to [MinScale, MaxScale]) keeping the world
// point under the screen point (cx, cy) fixed, and requests a redraw.
func (r *Rasterizer) Zoom(scale, cx, cy float64) {
	r.vp = r.vp.ZoomAt(scale, cx, cy)
	r.events.Emit(EventViewportChange)
	r.requestRedraw()
}

// SetTransform replaces scale and offset, for restoring a saved view.
func (r *Rasterizer) SetTransform(scale, offsetX, offsetY float64) {
	r.vp.Scale = ClampScale(scale)
	r.vp.OffsetX = offsetX
	r.vp.OffsetY = offsetY
	r.events.Emit(EventViewportChange)
	r.requestRedraw()
}

// ScreenToWorld converts a screen point to world coordinates.
func (r *Rasterizer) ScreenToWorld(sx, sy float64) (x, y float64) {
	return r.vp.ScreenToWorld(sx, sy)
}

// WorldToScreen converts a world point to screen coordinates.
func (r *Rasterizer) WorldToScreen(x, y float64) (sx, sy float64) {
	return r.vp.WorldToScreen(x, y)
}

// Scale returns the current zoom factor.
func (r *Rasterizer) Scale() float64 { return r.vp.Scale }

// VisibleWorld returns the world rectangle currently on screen.
func (r *Rasterizer) VisibleWorld() geom.Rect { return r.vp.VisibleWorld() }
