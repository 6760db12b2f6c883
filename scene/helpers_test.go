package scene

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/gogpu/easel/geom"
	"github.com/gogpu/easel/render"
	"github.com/gogpu/easel/text"
)

// call is one recorded draw.
type call struct {
	op    string
	args  []float64
	style render.Style
	text  string
}

// recorder is a render.Canvas that records draws instead of rasterizing.
type recorder struct {
	calls    []call
	textSize text.Size
	fail     error
	vp       render.Viewport
}

func (r *recorder) record(op string, s render.Style, args ...float64) error {
	r.calls = append(r.calls, call{op: op, args: args, style: s})
	return r.fail
}

func (r *recorder) DrawRectangle(x, y, w, h float64, s render.Style) error {
	return r.record("rectangle", s, x, y, w, h)
}

func (r *recorder) DrawCircle(cx, cy, rad float64, s render.Style) error {
	return r.record("circle", s, cx, cy, rad)
}

func (r *recorder) DrawEllipse(cx, cy, rx, ry float64, s render.Style) error {
	return r.record("ellipse", s, cx, cy, rx, ry)
}

func (r *recorder) DrawLine(x1, y1, x2, y2 float64, s render.Style) error {
	return r.record("line", s, x1, y1, x2, y2)
}

func (r *recorder) DrawPath(pts []geom.PathPoint, closed bool, s render.Style) error {
	var args []float64
	for _, p := range pts {
		args = append(args, p.X, p.Y)
	}
	return r.record("path", s, args...)
}

func (r *recorder) DrawPolygon(pts []geom.Point, s render.Style) error {
	var args []float64
	for _, p := range pts {
		args = append(args, p.X, p.Y)
	}
	return r.record("polygon", s, args...)
}

func (r *recorder) DrawTriangle(a, b, c geom.Point, s render.Style) error {
	return r.record("triangle", s, a.X, a.Y, b.X, b.Y, c.X, c.Y)
}

func (r *recorder) DrawText(str string, x, y float64, col render.Color, opts text.Options) (text.Size, error) {
	r.calls = append(r.calls, call{op: "text", args: []float64{x, y}, style: render.Style{Fill: col}, text: str})
	return r.textSize, r.fail
}

func (r *recorder) Viewport() render.Viewport { return r.vp }

func (r *recorder) ops() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.op
	}
	return out
}

// fixedMeasurer measures every label with the same size.
type fixedMeasurer struct {
	size text.Size
	err  error
}

func (m fixedMeasurer) Measure(string, text.Options) (text.Size, error) {
	return m.size, m.err
}

var errCanvas = errors.New("canvas failed")

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func rectsEqual(t *testing.T, got, want geom.Rect) {
	t.Helper()
	if !approx(got.X, want.X) || !approx(got.Y, want.Y) || !approx(got.W, want.W) || !approx(got.H, want.H) {
		t.Errorf("rect = %+v, want %+v", got, want)
	}
}

func shapeID(i int) string { return fmt.Sprintf("s%d", i) }
