package easel

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	_ "github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/easel/geom"
	"github.com/gogpu/easel/render"
	"github.com/gogpu/easel/scene"
	"github.com/gogpu/easel/text"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{
		WithBackends(gputypes.BackendEmpty),
		WithRenderOptions(render.WithSize(400, 300), render.WithPixelRatio(1)),
	}, opts...)
	e, err := Open(opts...)
	if err != nil {
		t.Fatalf("Open(noop): %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func circle(id string, cx, cy, r float64) scene.Shape {
	return scene.Shape{ID: id, Draggable: true, Geometry: scene.Circle{
		CX: cx, CY: cy, R: r,
		Style: render.Style{Fill: render.RGBA(1, 0, 0, 1)},
	}}
}

func mustUpsert(t *testing.T, e *Engine, shapes ...scene.Shape) {
	t.Helper()
	for _, s := range shapes {
		if err := e.Upsert(s); err != nil {
			t.Fatalf("Upsert(%s): %v", s.ID, err)
		}
	}
}

func down(x, y float64) gpucontext.PointerEvent {
	return gpucontext.PointerEvent{Type: gpucontext.PointerDown, X: x, Y: y, Button: gpucontext.ButtonLeft}
}

func move(x, y float64) gpucontext.PointerEvent {
	return gpucontext.PointerEvent{Type: gpucontext.PointerMove, X: x, Y: y, Button: gpucontext.ButtonNone}
}

func up(x, y float64) gpucontext.PointerEvent {
	return gpucontext.PointerEvent{Type: gpucontext.PointerUp, X: x, Y: y, Button: gpucontext.ButtonLeft}
}

func TestUpsertCoalescesRedraws(t *testing.T) {
	e := newTestEngine(t)
	renders := 0
	e.On(render.EventAfterRender, func() { renders++ })

	mustUpsert(t, e, circle("a", 10, 10, 5), circle("b", 20, 20, 5))
	e.Pan(5, 5)
	if got := e.Frames().Pending(); got != 1 {
		t.Fatalf("pending frames = %d, want 1", got)
	}

	if n := e.Frame(); n != 1 {
		t.Errorf("Frame ran %d callbacks, want 1", n)
	}
	if renders != 1 {
		t.Errorf("renders = %d, want 1", renders)
	}

	mustUpsert(t, e, circle("a", 15, 15, 5))
	if got := e.Frames().Pending(); got != 1 {
		t.Errorf("pending frames after second upsert = %d, want 1", got)
	}
}

func TestUpsertKeepsOrder(t *testing.T) {
	e := newTestEngine(t)
	mustUpsert(t, e, circle("a", 0, 0, 1), circle("b", 0, 0, 1), circle("a", 5, 5, 2))

	shapes := e.Shapes()
	if len(shapes) != 2 || shapes[0].ID != "a" || shapes[1].ID != "b" {
		t.Fatalf("shapes = %v", shapes)
	}
	if got := shapes[0].Geometry.(scene.Circle).R; got != 2 {
		t.Errorf("a.R = %v, want the latest 2", got)
	}
	if err := e.Render(); err != nil {
		t.Fatal(err)
	}
}

func TestUpsertMeasuresText(t *testing.T) {
	e := newTestEngine(t)
	mustUpsert(t, e, scene.Shape{ID: "label", Draggable: true, Geometry: scene.Text{
		Text: "Hello", X: 50, Y: 40, Color: render.Black,
	}})

	s, _ := e.Shape("label")
	size := s.Geometry.(scene.Text).Size
	if size.Empty() {
		t.Fatalf("text size not measured: %+v", size)
	}
	want, err := e.Rasterizer().Fonts().Measure("Hello", text.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if size != want {
		t.Errorf("size = %+v, want %+v", size, want)
	}
	if hit, ok := e.picker.ShapeAt(52, 42); !ok || hit.ID != "label" {
		t.Errorf("ShapeAt inside the label = %q, %v", hit.ID, ok)
	}
}

func TestUpsertErrors(t *testing.T) {
	e := newTestEngine(t)
	if err := e.Upsert(scene.Shape{Geometry: scene.Circle{R: 1}}); !errors.Is(err, scene.ErrEmptyID) {
		t.Errorf("err = %v, want ErrEmptyID", err)
	}
	bare := newTestEngine(t, WithRenderOptions(render.WithFonts(text.NewEmptyRegistry())))
	err := bare.Upsert(scene.Shape{ID: "t", Geometry: scene.Text{Text: "x"}})
	if !errors.Is(err, text.ErrNoFont) {
		t.Errorf("err = %v, want ErrNoFont", err)
	}
	if len(bare.Shapes()) != 0 {
		t.Error("unmeasurable text was stored")
	}
}

func TestRemove(t *testing.T) {
	e := newTestEngine(t)
	mustUpsert(t, e, circle("a", 0, 0, 1), circle("b", 0, 0, 1))
	e.Frame()

	if !e.Remove("a") {
		t.Fatal("Remove(a) = false")
	}
	if e.Remove("a") {
		t.Error("second Remove(a) = true")
	}
	if got := len(e.Shapes()); got != 1 {
		t.Errorf("len(Shapes) = %d, want 1", got)
	}
	if e.Frames().Pending() != 1 {
		t.Error("Remove did not schedule a redraw")
	}
}

func TestPointerDrag(t *testing.T) {
	e := newTestEngine(t)
	var drags []scene.DragEvent
	c := circle("c", 100, 100, 20)
	c.OnDrag = func(ev scene.DragEvent) { drags = append(drags, ev) }
	mustUpsert(t, e, c)
	before := scene.Bounds(c)

	if err := e.HandlePointer(down(100, 100)); err != nil {
		t.Fatal(err)
	}
	if e.Cursor() != gpucontext.CursorMove {
		t.Errorf("cursor = %v, want move", e.Cursor())
	}
	if err := e.HandlePointer(move(105, 103)); err != nil {
		t.Fatal(err)
	}
	if err := e.HandlePointer(up(105, 103)); err != nil {
		t.Fatal(err)
	}

	if len(drags) != 1 || drags[0].WorldDX != 5 || drags[0].WorldDY != 3 {
		t.Fatalf("drag events = %+v, want one with world delta (5, 3)", drags)
	}
	s, _ := e.Shape("c")
	if got, want := scene.Bounds(s), before.Translate(5, 3); got != want {
		t.Errorf("bounds = %+v, want %+v", got, want)
	}
	if e.Cursor() != gpucontext.CursorDefault {
		t.Errorf("cursor after up = %v", e.Cursor())
	}
	if v := e.Viewport(); v.OffsetX != 0 || v.OffsetY != 0 {
		t.Errorf("drag panned the view: %+v", v)
	}
}

func TestPointerDragMovesSelection(t *testing.T) {
	e := newTestEngine(t)
	mustUpsert(t, e, circle("a", 50, 50, 10), circle("b", 150, 50, 10), circle("c", 250, 50, 10))
	_ = e.Select("a")
	_ = e.Select("b")

	_ = e.HandlePointer(down(50, 50))
	_ = e.HandlePointer(move(60, 50))
	_ = e.HandlePointer(up(60, 50))

	for id, wantX := range map[string]float64{"a": 60, "b": 160, "c": 250} {
		s, _ := e.Shape(id)
		if got := s.Geometry.(scene.Circle).CX; got != wantX {
			t.Errorf("%s.CX = %v, want %v", id, got, wantX)
		}
	}
	if got := e.Selected(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("selection changed by drag: %v", got)
	}
}

func TestPointerDownOutsideSelectionClearsIt(t *testing.T) {
	e := newTestEngine(t)
	mustUpsert(t, e, circle("a", 50, 50, 10), circle("b", 150, 50, 10))
	_ = e.Select("a")

	_ = e.HandlePointer(down(150, 50))
	if got := e.Selected(); len(got) != 0 {
		t.Errorf("selection = %v, want cleared before dragging b", got)
	}
	_ = e.HandlePointer(up(150, 50))

	_ = e.Select("a")
	_ = e.HandlePointer(down(350, 250))
	if got := e.Selected(); len(got) != 0 {
		t.Errorf("selection = %v, want cleared by empty-space press", got)
	}
}

func TestPointerPan(t *testing.T) {
	e := newTestEngine(t)
	mustUpsert(t, e, circle("a", 50, 50, 10))
	e.Frame()

	_ = e.HandlePointer(down(200, 200))
	_ = e.HandlePointer(move(220, 240))
	_ = e.HandlePointer(up(220, 240))

	v := e.Viewport()
	if v.OffsetX != 10 || v.OffsetY != 20 {
		t.Errorf("offset = (%v, %v), want (10, 20)", v.OffsetX, v.OffsetY)
	}
	if e.Frames().Pending() != 1 {
		t.Errorf("pending frames = %d, want 1", e.Frames().Pending())
	}

	_ = e.HandlePointer(move(300, 300))
	if v2 := e.Viewport(); v2 != v {
		t.Error("view panned after pointer up")
	}
}

func TestPointerSelection(t *testing.T) {
	e := newTestEngine(t)
	mustUpsert(t, e,
		scene.Shape{ID: "near", Geometry: scene.Rectangle{X: 10, Y: 10, W: 5, H: 5}},
		scene.Shape{ID: "far", Geometry: scene.Rectangle{X: 100, Y: 100, W: 5, H: 5}},
	)
	var changes [][]string
	e.OnSelectionChange(func(ids []string) { changes = append(changes, ids) })

	ev := down(0, 0)
	ev.Modifiers = gpucontext.ModShift
	_ = e.HandlePointer(ev)
	if e.Cursor() != gpucontext.CursorCrosshair {
		t.Errorf("cursor = %v, want crosshair", e.Cursor())
	}
	if err := e.HandlePointer(move(50, 50)); err != nil {
		t.Fatal(err)
	}
	if err := e.HandlePointer(up(50, 50)); err != nil {
		t.Fatal(err)
	}

	if got := e.Selected(); !reflect.DeepEqual(got, []string{"near"}) {
		t.Errorf("Selected = %v, want [near]", got)
	}
	if len(changes) == 0 {
		t.Error("OnSelectionChange not called")
	}
	if e.sel.Active() {
		t.Error("selection still active after pointer up")
	}
}

func TestPointerLeaveEndsSessions(t *testing.T) {
	e := newTestEngine(t)
	mustUpsert(t, e, circle("a", 50, 50, 10))

	_ = e.HandlePointer(down(50, 50))
	_ = e.HandlePointer(gpucontext.PointerEvent{Type: gpucontext.PointerLeave, X: 60, Y: 60})
	if e.picker.Active() {
		t.Error("drag survived pointer leave")
	}
}

func TestPointerIgnoresOtherButtons(t *testing.T) {
	e := newTestEngine(t)
	mustUpsert(t, e, circle("a", 50, 50, 10))
	before := e.Viewport()

	for _, b := range []gpucontext.Button{gpucontext.ButtonRight, gpucontext.ButtonMiddle} {
		press := down(50, 50)
		press.Button = b
		_ = e.HandlePointer(press)
		_ = e.HandlePointer(move(60, 70))
		if e.picker.Active() {
			t.Errorf("button %v started a drag", b)
		}
		press.X, press.Y = 200, 200
		_ = e.HandlePointer(press)
		_ = e.HandlePointer(move(220, 230))
	}
	if e.Viewport() != before {
		t.Errorf("non-primary buttons panned the view: %+v", e.Viewport())
	}
	if s, _ := e.Shape("a"); s.Geometry.(scene.Circle).CX != 50 {
		t.Error("non-primary button moved a shape")
	}

	// A right-button release does not end a left-button drag.
	_ = e.HandlePointer(down(50, 50))
	release := up(50, 50)
	release.Button = gpucontext.ButtonRight
	_ = e.HandlePointer(release)
	if !e.picker.Active() {
		t.Error("right-button release ended the left-button drag")
	}
	_ = e.HandlePointer(up(50, 50))
	if e.picker.Active() {
		t.Error("left-button release did not end the drag")
	}
}

func TestHandleScroll(t *testing.T) {
	e := newTestEngine(t)

	wx, wy := e.ScreenToWorld(120, 80)
	e.HandleScroll(gpucontext.ScrollEvent{X: 120, Y: 80, DeltaY: 100})
	if got := e.Viewport().Scale; math.Abs(got-0.9) > 1e-9 {
		t.Errorf("scale = %v, want 0.9", got)
	}
	ax, ay := e.ScreenToWorld(120, 80)
	if !geom.Pt(ax, ay).Approx(geom.Pt(wx, wy), 1e-9) {
		t.Errorf("world under cursor moved from (%v, %v) to (%v, %v)", wx, wy, ax, ay)
	}

	e.HandleScroll(gpucontext.ScrollEvent{X: 0, Y: 0, DeltaY: -1e6})
	if got := e.Viewport().Scale; got != render.MaxScale {
		t.Errorf("scale = %v, want clamped to %v", got, render.MaxScale)
	}

	e.HandleScroll(gpucontext.ScrollEvent{X: 0, Y: 0, DeltaY: 1, DeltaMode: gpucontext.ScrollDeltaLine})
	if got := e.Viewport().Scale; math.Abs(got-render.MaxScale*(1-16*0.001)) > 1e-9 {
		t.Errorf("line scroll scale = %v", got)
	}
}

func TestRenderWithSelectionOverlay(t *testing.T) {
	e := newTestEngine(t)
	mustUpsert(t, e, circle("a", 50, 50, 10))
	_ = e.Select("a")

	ev := down(0, 0)
	ev.Modifiers = gpucontext.ModShift
	_ = e.HandlePointer(ev)
	_ = e.HandlePointer(move(100, 100))

	if err := e.Render(); err != nil {
		t.Fatal(err)
	}
	img, err := e.ReadPixels()
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Errorf("image bounds = %v", b)
	}
}

func TestSelectionTaskRunsOnFrames(t *testing.T) {
	e := newTestEngine(t)
	renders := 0
	e.On(render.EventAfterRender, func() { renders++ })

	ev := down(0, 0)
	ev.Modifiers = gpucontext.ModShift
	_ = e.HandlePointer(ev)
	for range 3 {
		e.Frame()
	}
	if renders != 3 {
		t.Errorf("renders while selecting = %d, want 3", renders)
	}

	_ = e.HandlePointer(up(0, 0))
	renders = 0
	e.Frame()
	e.Frame()
	if renders != 0 {
		t.Errorf("renders after selection ended = %d, want 0", renders)
	}
}

func TestClose(t *testing.T) {
	e := newTestEngine(t)
	e.Close()
	e.Close()

	if err := e.Upsert(circle("a", 0, 0, 1)); !errors.Is(err, ErrClosed) {
		t.Errorf("Upsert err = %v, want ErrClosed", err)
	}
	if err := e.Render(); !errors.Is(err, ErrClosed) {
		t.Errorf("Render err = %v, want ErrClosed", err)
	}
	if err := e.HandlePointer(down(0, 0)); !errors.Is(err, ErrClosed) {
		t.Errorf("HandlePointer err = %v, want ErrClosed", err)
	}
}
