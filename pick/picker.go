package pick

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/easel/scene"
)

// ShapeSource is the scene as seen by the Picker.
type ShapeSource interface {
	All() []scene.Shape
	Get(id string) (scene.Shape, bool)
	Upsert(s scene.Shape) error
}

// Viewport maps between screen and world coordinates.
type Viewport interface {
	ScreenToWorld(sx, sy float64) (x, y float64)
	WorldToScreen(x, y float64) (sx, sy float64)
	Scale() float64
}

// Redrawable repaints the scene.
type Redrawable interface {
	Render() error
}

// SelectedSet is the current selection.
type SelectedSet interface {
	Has(id string) bool
	IDs() []string
}

// session is the state of one drag, from pointer down to pointer up.
type session struct {
	active       bool
	target       string
	lastX, lastY float64
}

// Picker hit-tests shapes and moves them while the pointer drags.
// It is not safe for concurrent use.
type Picker struct {
	shapes ShapeSource
	vp     Viewport
	redraw Redrawable
	sel    SelectedSet

	session session
}

// New returns a Picker. sel may be nil, in which case drags always move
// the target alone.
func New(shapes ShapeSource, vp Viewport, redraw Redrawable, sel SelectedSet) *Picker {
	return &Picker{shapes: shapes, vp: vp, redraw: redraw, sel: sel}
}

// HitTest reports whether the screen point (sx, sy) lies on s.
// Shapes that are not draggable never hit.
func (p *Picker) HitTest(sx, sy float64, s scene.Shape) bool {
	if !s.Draggable {
		return false
	}
	x, y := p.vp.ScreenToWorld(sx, sy)
	return scene.HitTest(s, x, y)
}

// ShapeAt returns the topmost draggable shape under the screen point.
func (p *Picker) ShapeAt(sx, sy float64) (scene.Shape, bool) {
	shapes := p.shapes.All()
	for i := len(shapes) - 1; i >= 0; i-- {
		if p.HitTest(sx, sy, shapes[i]) {
			return shapes[i], true
		}
	}
	return scene.Shape{}, false
}

// Active reports whether a drag is in progress.
func (p *Picker) Active() bool { return p.session.active }

// Target returns the id of the shape being dragged, or "".
func (p *Picker) Target() string {
	if !p.session.active {
		return ""
	}
	return p.session.target
}

// StartDrag begins dragging s from the pointer position and fires its
// OnDragStart callback with zero deltas. A drag already in progress is
// replaced without an end notification.
func (p *Picker) StartDrag(ev gpucontext.PointerEvent, s scene.Shape) {
	p.session = session{active: true, target: s.ID, lastX: ev.X, lastY: ev.Y}
	slogger().Debug("pick: drag start", slog.String("id", s.ID))
	if s.OnDragStart != nil {
		s.OnDragStart(p.event(ev, 0, 0, 0, 0))
	}
}

// Drag moves the dragged shapes by the pointer movement since the last
// event, converted to world units. When the target is part of the
// selection every selected shape moves with it. Each moved shape is
// re-upserted and gets an OnDrag callback. The scene is then rendered
// before Drag returns.
func (p *Picker) Drag(ev gpucontext.PointerEvent) error {
	if !p.session.active {
		return nil
	}
	if _, ok := p.shapes.Get(p.session.target); !ok {
		slogger().Debug("pick: drag target gone", slog.String("id", p.session.target))
		p.session = session{}
		return nil
	}

	sdx, sdy := ev.X-p.session.lastX, ev.Y-p.session.lastY
	p.session.lastX, p.session.lastY = ev.X, ev.Y
	if sdx == 0 && sdy == 0 {
		return nil
	}

	scale := p.vp.Scale()
	if scale <= 0 {
		return nil
	}
	wdx, wdy := sdx/scale, sdy/scale
	e := p.event(ev, sdx, sdy, wdx, wdy)

	var errs []error
	for _, id := range p.moving() {
		s, ok := p.shapes.Get(id)
		if !ok {
			continue
		}
		moved := scene.Translate(s, wdx, wdy)
		if err := p.shapes.Upsert(moved); err != nil {
			errs = append(errs, fmt.Errorf("pick: move %q: %w", id, err))
			continue
		}
		if moved.OnDrag != nil {
			moved.OnDrag(e)
		}
	}

	if p.redraw != nil {
		if err := p.redraw.Render(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// EndDrag fires the target's OnDragEnd callback with zero deltas and
// clears the session.
func (p *Picker) EndDrag(ev gpucontext.PointerEvent) {
	if !p.session.active {
		return
	}
	id := p.session.target
	p.session = session{}
	slogger().Debug("pick: drag end", slog.String("id", id))
	if s, ok := p.shapes.Get(id); ok && s.OnDragEnd != nil {
		s.OnDragEnd(p.event(ev, 0, 0, 0, 0))
	}
}

// moving returns the ids that follow the current drag.
func (p *Picker) moving() []string {
	target := p.session.target
	if p.sel == nil || !p.sel.Has(target) {
		return []string{target}
	}
	return p.sel.IDs()
}

func (p *Picker) event(ev gpucontext.PointerEvent, sdx, sdy, wdx, wdy float64) scene.DragEvent {
	wx, wy := p.vp.ScreenToWorld(ev.X, ev.Y)
	return scene.DragEvent{
		ScreenX: ev.X, ScreenY: ev.Y,
		ScreenDX: sdx, ScreenDY: sdy,
		WorldX: wx, WorldY: wy,
		WorldDX: wdx, WorldDY: wdy,
	}
}
