package selection

import (
	"log/slog"
	"slices"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/easel/geom"
	"github.com/gogpu/easel/render"
	"github.com/gogpu/easel/scene"
)

// Marquee colors.
var (
	MarqueeFill   = render.RGBA(0.2, 0.4, 0.9, 0.2)
	OutlineFill   = render.RGBA(0.2, 0.4, 0.9, 0.6)
	OutlineStroke = render.RGBA(0.2, 0.4, 0.9, 1)
)

// ShapeSource lists the shapes that can be selected, in paint order.
type ShapeSource interface {
	All() []scene.Shape
}

// Viewport maps screen points to world space.
type Viewport interface {
	ScreenToWorld(sx, sy float64) (x, y float64)
}

// Redrawable repaints the scene.
type Redrawable interface {
	Render() error
}

// Scheduler runs a callback on the next display frame.
type Scheduler interface {
	RequestFrame(fn func())
}

// State is the phase of a Manager.
type State uint8

// Manager states.
const (
	Idle State = iota
	Selecting
)

// String returns the state name.
func (s State) String() string {
	if s == Selecting {
		return "selecting"
	}
	return "idle"
}

// Manager owns the marquee and the selected-id set.
// It is not safe for concurrent use.
type Manager struct {
	shapes ShapeSource
	vp     Viewport
	redraw Redrawable
	sched  Scheduler

	state  State
	anchor geom.Point
	rect   geom.Rect
	gen    uint64

	ids []string
	set map[string]struct{}

	listeners map[int]func([]string)
	nextID    int
}

// New returns an idle Manager with nothing selected.
func New(shapes ShapeSource, vp Viewport, redraw Redrawable, sched Scheduler) *Manager {
	return &Manager{
		shapes:    shapes,
		vp:        vp,
		redraw:    redraw,
		sched:     sched,
		set:       make(map[string]struct{}),
		listeners: make(map[int]func([]string)),
	}
}

// State returns the current phase.
func (m *Manager) State() State { return m.state }

// Active reports whether a marquee is being dragged.
func (m *Manager) Active() bool { return m.state == Selecting }

// Rect returns the marquee in world space. It is zero while idle.
func (m *Manager) Rect() geom.Rect { return m.rect }

// Has reports whether id is selected.
func (m *Manager) Has(id string) bool {
	_, ok := m.set[id]
	return ok
}

// IDs returns the selected ids. The slice is a copy.
func (m *Manager) IDs() []string { return slices.Clone(m.ids) }

// Len returns the number of selected shapes.
func (m *Manager) Len() int { return len(m.ids) }

// OnChange registers fn to receive the selected ids after every change.
// The returned function unregisters it.
func (m *Manager) OnChange(fn func(ids []string)) (cancel func()) {
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() { delete(m.listeners, id) }
}

// Start anchors a marquee at the pointer and enters the selecting state.
// Until End, a frame task repaints the scene and refreshes the matches
// every frame.
func (m *Manager) Start(ev gpucontext.PointerEvent) {
	x, y := m.vp.ScreenToWorld(ev.X, ev.Y)
	m.anchor = geom.Pt(x, y)
	m.rect = geom.Rect{X: x, Y: y}
	m.state = Selecting
	m.gen++
	slogger().Debug("selection: start", slog.Float64("x", x), slog.Float64("y", y))
	m.schedule(m.gen)
}

// Update stretches the marquee from the anchor to the pointer, selects
// every shape whose bounds touch it and repaints.
func (m *Manager) Update(ev gpucontext.PointerEvent) error {
	if m.state != Selecting {
		return nil
	}
	x, y := m.vp.ScreenToWorld(ev.X, ev.Y)
	m.rect = geom.RectFromPoints(m.anchor, geom.Pt(x, y))
	m.match()
	return m.render()
}

// End leaves the selecting state, drops the marquee and repaints once.
// Pending frame tasks become no-ops. The selected set is kept.
func (m *Manager) End() error {
	if m.state != Selecting {
		return nil
	}
	m.state = Idle
	m.gen++
	m.rect = geom.Rect{}
	slogger().Debug("selection: end", slog.Int("selected", len(m.ids)))
	return m.render()
}

// Add selects id and repaints.
func (m *Manager) Add(id string) error {
	if _, ok := m.set[id]; !ok {
		m.set[id] = struct{}{}
		m.ids = append(m.ids, id)
		m.publish()
	}
	return m.render()
}

// Clear deselects everything and repaints.
func (m *Manager) Clear() error {
	if len(m.ids) > 0 {
		m.ids = nil
		clear(m.set)
		m.publish()
	}
	return m.render()
}

// Draw paints the marquee while selecting. It implements render.Drawable.
func (m *Manager) Draw(c render.Canvas) error {
	if m.state != Selecting || m.rect.Empty() {
		return nil
	}
	r := m.rect
	if err := c.DrawRectangle(r.X, r.Y, r.W, r.H, render.Style{Fill: MarqueeFill}); err != nil {
		return err
	}
	scale := c.Viewport().Scale
	if scale <= 0 {
		scale = 1
	}
	return c.DrawPolygon(r.Corners(), render.Style{
		Fill:      OutlineFill,
		Stroke:    OutlineStroke,
		Thickness: 1 / scale,
	})
}

var _ render.Drawable = (*Manager)(nil)

// match replaces the selection with the shapes whose bounds touch the
// marquee, edges included.
func (m *Manager) match() {
	var ids []string
	for _, s := range m.shapes.All() {
		if m.rect.Overlaps(scene.Bounds(s)) {
			ids = append(ids, s.ID)
		}
	}
	if slices.Equal(ids, m.ids) {
		return
	}
	m.ids = ids
	clear(m.set)
	for _, id := range ids {
		m.set[id] = struct{}{}
	}
	m.publish()
}

func (m *Manager) publish() {
	ids := m.IDs()
	for _, fn := range m.listeners {
		fn(ids)
	}
}

func (m *Manager) schedule(gen uint64) {
	if m.sched == nil {
		return
	}
	m.sched.RequestFrame(func() { m.tick(gen) })
}

// tick is one run of the selecting frame task. It stops rescheduling once
// the session it was started for has ended.
func (m *Manager) tick(gen uint64) {
	if gen != m.gen || m.state != Selecting {
		return
	}
	m.match()
	if err := m.render(); err != nil {
		slogger().Warn("selection: frame render failed", slog.Any("err", err))
	}
	m.schedule(gen)
}

func (m *Manager) render() error {
	if m.redraw == nil {
		return nil
	}
	return m.redraw.Render()
}
