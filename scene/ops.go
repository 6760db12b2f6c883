package scene

import (
	"fmt"

	"github.com/gogpu/easel/geom"
	"github.com/gogpu/easel/render"
	"github.com/gogpu/easel/text"
)

// Highlight colors drawn over selected shapes.
var (
	HighlightFill   = render.RGBA(0.2, 0.4, 0.9, 0.3)
	HighlightStroke = render.RGBA(0.2, 0.4, 0.9, 0.9)
)

// Render paints s on c. When selected is set the highlight is painted on
// top of the shape.
func Render(c render.Canvas, s Shape, selected bool) error {
	var err error
	switch g := s.Geometry.(type) {
	case Rectangle:
		r := rectOf(g)
		st := resolve(g.Style)
		err = c.DrawRectangle(r.X, r.Y, r.W, r.H, st)
		if err == nil && selected {
			err = c.DrawRectangle(r.X, r.Y, r.W, r.H, highlight(st.Thickness+1))
		}
	case Circle:
		st := resolve(g.Style)
		err = c.DrawCircle(g.CX, g.CY, g.R, st)
		if err == nil && selected {
			err = c.DrawCircle(g.CX, g.CY, g.R, highlight(st.Thickness))
		}
	case Ellipse:
		st := resolve(g.Style)
		err = c.DrawEllipse(g.CX, g.CY, g.RX, g.RY, st)
		if err == nil && selected {
			err = c.DrawEllipse(g.CX, g.CY, g.RX, g.RY, highlight(st.Thickness))
		}
	case Line:
		st := resolve(g.Style)
		st.Fill = render.Transparent
		err = c.DrawLine(g.X1, g.Y1, g.X2, g.Y2, st)
		if err == nil && selected {
			hl := highlight(st.Thickness)
			hl.Fill = render.Transparent
			err = c.DrawLine(g.X1, g.Y1, g.X2, g.Y2, hl)
		}
	case Path:
		st := resolve(g.Style)
		pts := pathPoints(g)
		err = c.DrawPath(pts, g.Closed, st)
		if err == nil && selected {
			err = c.DrawPath(pts, g.Closed, highlight(st.Thickness))
		}
	case Polygon:
		st := resolve(g.Style)
		err = c.DrawPolygon(g.Points, st)
		if err == nil && selected {
			err = c.DrawPolygon(g.Points, highlight(st.Thickness))
		}
	case Triangle:
		st := resolve(g.Style)
		err = c.DrawTriangle(g.A, g.B, g.C, st)
		if err == nil && selected {
			err = c.DrawTriangle(g.A, g.B, g.C, highlight(st.Thickness))
		}
	case Text:
		var size text.Size
		size, err = c.DrawText(g.Text, g.X, g.Y, g.Color, g.Options)
		if err == nil && selected {
			g.Size = size
			r := textRect(g)
			err = c.DrawRectangle(r.X, r.Y, r.W, r.H, highlight(1))
		}
	case nil:
		return ErrNoGeometry
	default:
		return fmt.Errorf("scene: unknown geometry %T", g)
	}
	if err != nil {
		return fmt.Errorf("scene: render %s %q: %w", s.Kind(), s.ID, err)
	}
	return nil
}

func highlight(thickness float64) render.Style {
	return render.Style{Fill: HighlightFill, Stroke: HighlightStroke, Thickness: thickness}
}

// HitTest reports whether the world point (x, y) lies on s.
//
// Filled areas contain their interior; strokes, lines and open paths hit
// within their thickness plus geom.HitTolerance. Degenerate geometry never
// hits.
func HitTest(s Shape, x, y float64) bool {
	p := geom.Pt(x, y)
	switch g := s.Geometry.(type) {
	case Rectangle:
		r := rectOf(g)
		if r.Empty() {
			return false
		}
		return r.Contains(p)
	case Circle:
		return geom.InCircle(geom.Pt(g.CX, g.CY), g.R, p)
	case Ellipse:
		return geom.InEllipse(geom.Pt(g.CX, g.CY), g.RX, g.RY, p)
	case Line:
		a, b := geom.Pt(g.X1, g.Y1), geom.Pt(g.X2, g.Y2)
		if a == b {
			return false
		}
		return geom.NearSegment(a, b, p, resolve(g.Style).Thickness)
	case Path:
		st := resolve(g.Style)
		for _, sub := range geom.SplitPath(pathPoints(g)) {
			if st.HasFill() && geom.InPolygon(sub, p) {
				return true
			}
			if geom.NearPolyline(sub, g.Closed, p, st.Thickness) {
				return true
			}
		}
		return false
	case Polygon:
		if geom.InPolygon(g.Points, p) {
			return true
		}
		st := resolve(g.Style)
		return st.HasStroke() && geom.NearPolyline(g.Points, true, p, st.Thickness)
	case Triangle:
		return geom.InTriangle(g.A, g.B, g.C, p)
	case Text:
		r := textRect(g)
		if r.Empty() {
			return false
		}
		return r.Contains(p)
	}
	return false
}

// Bounds returns the world-space bounding box of s. Strokes are not
// included. A shape without geometry has zero bounds.
func Bounds(s Shape) geom.Rect {
	switch g := s.Geometry.(type) {
	case Rectangle:
		return rectOf(g)
	case Circle:
		return geom.Rect{X: g.CX - g.R, Y: g.CY - g.R, W: 2 * g.R, H: 2 * g.R}
	case Ellipse:
		return geom.Rect{X: g.CX - g.RX, Y: g.CY - g.RY, W: 2 * g.RX, H: 2 * g.RY}
	case Line:
		return geom.RectFromPoints(geom.Pt(g.X1, g.Y1), geom.Pt(g.X2, g.Y2))
	case Path:
		return geom.BoundsOf(geom.PathPoints(pathPoints(g)))
	case Polygon:
		return geom.BoundsOf(g.Points)
	case Triangle:
		return geom.BoundsOf([]geom.Point{g.A, g.B, g.C})
	case Text:
		return textRect(g)
	}
	return geom.Rect{}
}

// Translate returns a copy of s moved by (dx, dy) in world units.
// The result shares no slices with s.
func Translate(s Shape, dx, dy float64) Shape {
	s = s.Clone()
	switch g := s.Geometry.(type) {
	case Rectangle:
		g.X += dx
		g.Y += dy
		s.Geometry = g
	case Circle:
		g.CX += dx
		g.CY += dy
		s.Geometry = g
	case Ellipse:
		g.CX += dx
		g.CY += dy
		s.Geometry = g
	case Line:
		g.X1 += dx
		g.Y1 += dy
		g.X2 += dx
		g.Y2 += dy
		s.Geometry = g
	case Path:
		g.X += dx
		g.Y += dy
		s.Geometry = g
	case Polygon:
		g.Points = geom.TranslatePoints(g.Points, dx, dy)
		s.Geometry = g
	case Triangle:
		d := geom.Pt(dx, dy)
		g.A, g.B, g.C = g.A.Add(d), g.B.Add(d), g.C.Add(d)
		s.Geometry = g
	case Text:
		g.X += dx
		g.Y += dy
		s.Geometry = g
	}
	return s
}

// Measurer reports the extent of a label. *text.Registry implements it.
type Measurer interface {
	Measure(s string, opts text.Options) (text.Size, error)
}

// Measure fills in the Size of a Text shape. Other shapes are returned
// unchanged.
func Measure(s Shape, m Measurer) (Shape, error) {
	g, ok := s.Geometry.(Text)
	if !ok {
		return s, nil
	}
	size, err := m.Measure(g.Text, g.Options)
	if err != nil {
		return s, fmt.Errorf("scene: measure %q: %w", s.ID, err)
	}
	g.Size = size
	s.Geometry = g
	return s, nil
}

func rectOf(g Rectangle) geom.Rect {
	return geom.RectFromPoints(geom.Pt(g.X, g.Y), geom.Pt(g.X+g.W, g.Y+g.H))
}

func textRect(g Text) geom.Rect {
	dx, dy := text.Anchor(g.Size, g.Options.Align, g.Options.Baseline)
	return geom.Rect{X: g.X + dx, Y: g.Y + dy, W: g.Size.Width, H: g.Size.Height}
}

// pathPoints returns the path vertices in world space.
func pathPoints(g Path) []geom.PathPoint {
	out := make([]geom.PathPoint, len(g.Points))
	for i, p := range g.Points {
		out[i] = geom.PathPoint{X: p.X + g.X, Y: p.Y + g.Y, MoveTo: p.MoveTo}
	}
	return out
}
