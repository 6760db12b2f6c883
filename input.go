package easel

import (
	"errors"
	"log/slog"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/easel/render"
)

// HandlePointer routes a pointer event to selection, dragging or panning.
// Only the primary (left) button presses and releases; other buttons are
// ignored.
//
//   - Down with the left button and the select modifier (Shift) starts a
//     marquee selection.
//   - Down over the topmost draggable shape starts dragging it. The
//     selection is cleared first unless the shape is part of it, in which
//     case the whole selection is dragged.
//   - Down anywhere else clears the selection and starts panning.
//   - Move updates whichever of these is in progress.
//   - Up, leave and cancel end them.
func (e *Engine) HandlePointer(ev gpucontext.PointerEvent) error {
	if e.closed {
		return ErrClosed
	}
	switch ev.Type {
	case gpucontext.PointerDown:
		return e.pointerDown(ev)
	case gpucontext.PointerMove:
		return e.pointerMove(ev)
	case gpucontext.PointerUp:
		if ev.Button != gpucontext.ButtonLeft {
			return nil
		}
		return e.pointerUp(ev)
	case gpucontext.PointerLeave, gpucontext.PointerCancel:
		return e.pointerUp(ev)
	}
	return nil
}

func (e *Engine) pointerDown(ev gpucontext.PointerEvent) error {
	if ev.Button != gpucontext.ButtonLeft {
		return nil
	}
	e.lastX, e.lastY = ev.X, ev.Y

	if ev.Modifiers&e.opts.selectMod != 0 {
		e.sel.Start(ev)
		e.updateCursor(gpucontext.CursorCrosshair)
		return nil
	}

	if s, ok := e.picker.ShapeAt(ev.X, ev.Y); ok {
		var err error
		if !e.sel.Has(s.ID) {
			err = e.sel.Clear()
		}
		e.picker.StartDrag(ev, s)
		e.updateCursor(gpucontext.CursorMove)
		return err
	}

	err := e.sel.Clear()
	e.panning = true
	e.updateCursor(gpucontext.CursorMove)
	return err
}

func (e *Engine) pointerMove(ev gpucontext.PointerEvent) error {
	dx, dy := ev.X-e.lastX, ev.Y-e.lastY
	e.lastX, e.lastY = ev.X, ev.Y

	switch {
	case e.sel.Active():
		return e.sel.Update(ev)
	case e.picker.Active():
		return e.picker.Drag(ev)
	case e.panning:
		if dx != 0 || dy != 0 {
			e.r.Pan(dx*e.opts.panFactor, dy*e.opts.panFactor)
		}
	}
	return nil
}

func (e *Engine) pointerUp(ev gpucontext.PointerEvent) error {
	e.picker.EndDrag(ev)
	err := e.sel.End()
	e.panning = false
	e.updateCursor(gpucontext.CursorDefault)
	return err
}

// HandleScroll zooms about the pointer. Scrolling down zooms out.
func (e *Engine) HandleScroll(ev gpucontext.ScrollEvent) {
	if e.closed {
		return
	}
	dy := ev.DeltaY
	switch ev.DeltaMode {
	case gpucontext.ScrollDeltaLine:
		dy *= e.opts.lineHeight
	case gpucontext.ScrollDeltaPage:
		dy *= float64(e.r.Viewport().Height)
	}
	if dy == 0 {
		return
	}
	scale := render.ClampScale(e.r.Scale() * (1 - dy*e.opts.wheel))
	e.r.Zoom(scale, ev.X, ev.Y)
}

// Attach connects the engine to a host window. Each capability is used
// when host implements it:
//
//   - gpucontext.WindowProvider: the canvas follows the window size and
//     scale factor, and queued frames ask the window to redraw;
//   - gpucontext.PointerEventSource and gpucontext.ScrollEventSource:
//     events are routed to HandlePointer and HandleScroll;
//   - SetCursor(gpucontext.CursorShape), as in gpucontext.PlatformProvider:
//     the cursor reflects panning, dragging and selecting.
//
// The host must then call Frame once per rendered frame.
func (e *Engine) Attach(host any) error {
	if e.closed {
		return ErrClosed
	}
	var errs []error
	if wp, ok := host.(gpucontext.WindowProvider); ok {
		e.frames.SetWake(wp.RequestRedraw)
		if sf := wp.ScaleFactor(); sf > 0 {
			if err := e.r.SetPixelRatio(sf); err != nil {
				errs = append(errs, err)
			}
		}
		if w, h := wp.Size(); w > 0 && h > 0 {
			if err := e.SetViewport(w, h); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if ps, ok := host.(gpucontext.PointerEventSource); ok {
		ps.OnPointer(func(ev gpucontext.PointerEvent) {
			if err := e.HandlePointer(ev); err != nil && !errors.Is(err, ErrClosed) {
				Logger().Warn("easel: pointer event failed",
					slog.String("type", ev.Type.String()), slog.Any("err", err))
			}
		})
	}
	if ss, ok := host.(gpucontext.ScrollEventSource); ok {
		ss.OnScrollEvent(e.HandleScroll)
	}
	if cs, ok := host.(interface{ SetCursor(gpucontext.CursorShape) }); ok {
		e.setCursor = cs.SetCursor
	}
	return errors.Join(errs...)
}

// Cursor returns the cursor shape the engine last asked for.
func (e *Engine) Cursor() gpucontext.CursorShape { return e.cursor }

func (e *Engine) updateCursor(c gpucontext.CursorShape) {
	if c == e.cursor {
		return
	}
	e.cursor = c
	if e.setCursor != nil {
		e.setCursor(c)
	}
}
