package pick

import (
	"errors"
	"math"
	"reflect"
	"sort"
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/easel/geom"
	"github.com/gogpu/easel/render"
	"github.com/gogpu/easel/scene"
)

type viewport struct{ render.Viewport }

func (v *viewport) Scale() float64 { return v.Viewport.Scale }

type counter struct {
	renders int
	err     error
}

func (c *counter) Render() error {
	c.renders++
	return c.err
}

type selected map[string]bool

func (s selected) Has(id string) bool { return s[id] }

func (s selected) IDs() []string {
	var out []string
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func pointer(x, y float64) gpucontext.PointerEvent {
	return gpucontext.PointerEvent{X: x, Y: y, Button: gpucontext.ButtonLeft}
}

func newTestPicker(t *testing.T, shapes ...scene.Shape) (*Picker, *scene.Queue, *viewport, *counter) {
	t.Helper()
	q := scene.NewQueue()
	for _, s := range shapes {
		if err := q.Upsert(s); err != nil {
			t.Fatal(err)
		}
	}
	vp := &viewport{render.NewViewport(800, 600, 1)}
	c := &counter{}
	return New(q, vp, c, nil), q, vp, c
}

func draggableCircle(id string, cx, cy, r float64) scene.Shape {
	return scene.Shape{ID: id, Draggable: true, Geometry: scene.Circle{CX: cx, CY: cy, R: r}}
}

func TestHitTest(t *testing.T) {
	p, _, vp, _ := newTestPicker(t)
	vp.Viewport.Scale, vp.OffsetX, vp.OffsetY = 2, 100, 50

	c := draggableCircle("c", 10, 10, 1)
	if !p.HitTest(120, 70, c) {
		t.Error("screen (120, 70) should map onto the circle at world (10, 10)")
	}
	if p.HitTest(20, 20, c) {
		t.Error("screen (20, 20) should miss")
	}

	c.Draggable = false
	if p.HitTest(120, 70, c) {
		t.Error("non-draggable shape hit")
	}
}

func TestShapeAtTopmostWins(t *testing.T) {
	p, q, _, _ := newTestPicker(t,
		draggableCircle("bottom", 50, 50, 20),
		scene.Shape{ID: "static", Geometry: scene.Circle{CX: 50, CY: 50, R: 20}},
		draggableCircle("top", 60, 50, 20),
	)

	tests := []struct {
		name   string
		x, y   float64
		want   string
		wantOK bool
	}{
		{"overlap picks last painted", 55, 50, "top", true},
		{"only bottom", 32, 50, "bottom", true},
		{"nothing", 300, 300, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := p.ShapeAt(tt.x, tt.y)
			if ok != tt.wantOK || s.ID != tt.want {
				t.Errorf("ShapeAt = %q, %v; want %q, %v", s.ID, ok, tt.want, tt.wantOK)
			}
		})
	}

	// Re-upserting keeps paint position, so "top" stays on top.
	_ = q.Upsert(draggableCircle("bottom", 50, 50, 30))
	if s, _ := p.ShapeAt(55, 50); s.ID != "top" {
		t.Errorf("after upsert ShapeAt = %q, want top", s.ID)
	}
}

func TestDragMovesTarget(t *testing.T) {
	var starts, drags, ends []scene.DragEvent
	s := draggableCircle("c", 100, 100, 10)
	s.OnDragStart = func(e scene.DragEvent) { starts = append(starts, e) }
	s.OnDrag = func(e scene.DragEvent) { drags = append(drags, e) }
	s.OnDragEnd = func(e scene.DragEvent) { ends = append(ends, e) }

	p, q, _, c := newTestPicker(t, s)
	before := scene.Bounds(s)

	hit, ok := p.ShapeAt(100, 100)
	if !ok {
		t.Fatal("pointer down missed the circle")
	}
	p.StartDrag(pointer(100, 100), hit)
	if !p.Active() || p.Target() != "c" {
		t.Fatalf("Active = %v, Target = %q", p.Active(), p.Target())
	}
	if len(starts) != 1 || starts[0].WorldDX != 0 || starts[0].WorldX != 100 {
		t.Errorf("start events = %+v", starts)
	}

	if err := p.Drag(pointer(105, 103)); err != nil {
		t.Fatal(err)
	}
	if len(drags) != 1 {
		t.Fatalf("drag events = %d, want 1", len(drags))
	}
	if drags[0].WorldDX != 5 || drags[0].WorldDY != 3 {
		t.Errorf("world delta = (%v, %v), want (5, 3)", drags[0].WorldDX, drags[0].WorldDY)
	}
	got, _ := q.Get("c")
	if b := scene.Bounds(got); b != before.Translate(5, 3) {
		t.Errorf("bounds = %+v, want %+v", b, before.Translate(5, 3))
	}
	if c.renders != 1 {
		t.Errorf("renders = %d, want 1", c.renders)
	}

	p.EndDrag(pointer(105, 103))
	if p.Active() || p.Target() != "" {
		t.Error("session not cleared")
	}
	if len(ends) != 1 || ends[0].WorldDX != 0 || ends[0].ScreenDY != 0 {
		t.Errorf("end events = %+v", ends)
	}
}

func TestDragScalesDelta(t *testing.T) {
	var got scene.DragEvent
	s := draggableCircle("c", 0, 0, 10)
	s.OnDrag = func(e scene.DragEvent) { got = e }

	p, _, vp, _ := newTestPicker(t, s)
	vp.Viewport = vp.ZoomAt(4, 0, 0)

	p.StartDrag(pointer(0, 0), s)
	if err := p.Drag(pointer(8, -4)); err != nil {
		t.Fatal(err)
	}
	if got.ScreenDX != 8 || got.ScreenDY != -4 {
		t.Errorf("screen delta = (%v, %v)", got.ScreenDX, got.ScreenDY)
	}
	if math.Abs(got.WorldDX-2) > 1e-9 || math.Abs(got.WorldDY+1) > 1e-9 {
		t.Errorf("world delta = (%v, %v), want (2, -1)", got.WorldDX, got.WorldDY)
	}
	if math.Abs(got.WorldX-2) > 1e-9 || math.Abs(got.WorldY+1) > 1e-9 {
		t.Errorf("world position = (%v, %v), want (2, -1)", got.WorldX, got.WorldY)
	}
}

func TestDragMovesSelection(t *testing.T) {
	a := draggableCircle("a", 0, 0, 5)
	b := scene.Shape{ID: "b", Geometry: scene.Rectangle{X: 10, Y: 10, W: 5, H: 5}}
	c := draggableCircle("c", 50, 50, 5)
	p, q, _, _ := newTestPicker(t, a, b, c)

	tests := []struct {
		name  string
		sel   selected
		moved []string
	}{
		{"target selected moves all", selected{"a": true, "b": true}, []string{"a", "b"}},
		{"target outside selection moves alone", selected{"b": true, "c": true}, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := map[string]geom.Rect{}
			for _, s := range q.All() {
				before[s.ID] = scene.Bounds(s)
			}
			p.sel = tt.sel
			p.StartDrag(pointer(0, 0), a)
			if err := p.Drag(pointer(1, 2)); err != nil {
				t.Fatal(err)
			}
			p.EndDrag(pointer(1, 2))

			var moved []string
			for _, s := range q.All() {
				if scene.Bounds(s) != before[s.ID] {
					moved = append(moved, s.ID)
				}
			}
			if !reflect.DeepEqual(moved, tt.moved) {
				t.Errorf("moved = %v, want %v", moved, tt.moved)
			}
		})
	}
}

func TestDragWithoutSession(t *testing.T) {
	p, _, _, c := newTestPicker(t, draggableCircle("c", 0, 0, 5))
	if err := p.Drag(pointer(5, 5)); err != nil {
		t.Fatal(err)
	}
	p.EndDrag(pointer(5, 5))
	if c.renders != 0 {
		t.Errorf("renders = %d, want 0", c.renders)
	}
}

func TestDragTargetRemoved(t *testing.T) {
	s := draggableCircle("c", 0, 0, 5)
	p, q, _, c := newTestPicker(t, s)
	p.StartDrag(pointer(0, 0), s)
	q.Remove("c")

	if err := p.Drag(pointer(5, 5)); err != nil {
		t.Fatal(err)
	}
	if p.Active() {
		t.Error("session survived target removal")
	}
	if c.renders != 0 {
		t.Errorf("renders = %d, want 0", c.renders)
	}
}

func TestDragRenderError(t *testing.T) {
	s := draggableCircle("c", 0, 0, 5)
	p, _, _, c := newTestPicker(t, s)
	c.err = errors.New("lost device")

	p.StartDrag(pointer(0, 0), s)
	if err := p.Drag(pointer(1, 1)); !errors.Is(err, c.err) {
		t.Errorf("err = %v, want %v", err, c.err)
	}
}
