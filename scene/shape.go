package scene

import (
	"github.com/gogpu/easel/geom"
	"github.com/gogpu/easel/render"
	"github.com/gogpu/easel/text"
)

// DefaultThickness is the stroke width used when a Style leaves Thickness
// at zero. A negative Thickness disables the stroke.
const DefaultThickness = 2.0

// Kind identifies the primitive behind a Geometry.
type Kind uint8

// Primitive kinds.
const (
	KindRectangle Kind = iota
	KindCircle
	KindEllipse
	KindLine
	KindPath
	KindPolygon
	KindTriangle
	KindText
)

var kindNames = [...]string{
	KindRectangle: "rectangle",
	KindCircle:    "circle",
	KindEllipse:   "ellipse",
	KindLine:      "line",
	KindPath:      "path",
	KindPolygon:   "polygon",
	KindTriangle:  "triangle",
	KindText:      "text",
}

// String returns the lower-case primitive name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Geometry is the immutable description of a shape's primitive.
// The set of implementations is closed.
type Geometry interface {
	Kind() Kind
	isGeometry()
}

// Rectangle is an axis-aligned box with its top-left corner at (X, Y).
// Negative sizes extend the box up or left.
type Rectangle struct {
	X, Y, W, H float64
	Style      render.Style
}

// Circle is centered at (CX, CY).
type Circle struct {
	CX, CY, R float64
	Style     render.Style
}

// Ellipse is an axis-aligned ellipse centered at (CX, CY).
type Ellipse struct {
	CX, CY, RX, RY float64
	Style          render.Style
}

// Line is a single stroked segment. Style.Fill is ignored.
type Line struct {
	X1, Y1, X2, Y2 float64
	Style          render.Style
}

// Path is a polyline whose Points are relative to (X, Y).
// A point with MoveTo set starts a new subpath.
type Path struct {
	X, Y   float64
	Points []geom.PathPoint
	Closed bool
	Style  render.Style
}

// Polygon is a closed outline through Points.
type Polygon struct {
	Points []geom.Point
	Style  render.Style
}

// Triangle is the triangle ABC.
type Triangle struct {
	A, B, C geom.Point
	Style   render.Style
}

// Text is a single-line label anchored at (X, Y) per Options.Align and
// Options.Baseline.
//
// Size is the measured extent of the label. It is filled by Measure, or by
// the engine when the shape is upserted, and drives Bounds and HitTest.
type Text struct {
	Text    string
	X, Y    float64
	Color   render.Color
	Options text.Options
	Size    text.Size
}

func (Rectangle) Kind() Kind { return KindRectangle }
func (Circle) Kind() Kind    { return KindCircle }
func (Ellipse) Kind() Kind   { return KindEllipse }
func (Line) Kind() Kind      { return KindLine }
func (Path) Kind() Kind      { return KindPath }
func (Polygon) Kind() Kind   { return KindPolygon }
func (Triangle) Kind() Kind  { return KindTriangle }
func (Text) Kind() Kind      { return KindText }

func (Rectangle) isGeometry() {}
func (Circle) isGeometry()    {}
func (Ellipse) isGeometry()   {}
func (Line) isGeometry()      {}
func (Path) isGeometry()      {}
func (Polygon) isGeometry()   {}
func (Triangle) isGeometry()  {}
func (Text) isGeometry()      {}

// DragEvent is passed to a shape's drag callbacks. Deltas are zero for
// the start and end notifications.
type DragEvent struct {
	ScreenX, ScreenY   float64
	ScreenDX, ScreenDY float64
	WorldX, WorldY     float64
	WorldDX, WorldDY   float64
}

// Shape is one retained record of the scene.
type Shape struct {
	// ID is unique within a Queue and chosen by the caller (see NewID).
	ID string

	// Draggable shapes take part in picking.
	Draggable bool

	OnDragStart func(DragEvent)
	OnDrag      func(DragEvent)
	OnDragEnd   func(DragEvent)

	Geometry Geometry
}

// Kind returns the primitive kind of the shape's geometry.
func (s Shape) Kind() Kind {
	if s.Geometry == nil {
		return Kind(len(kindNames))
	}
	return s.Geometry.Kind()
}

// Clone returns a copy of s whose geometry shares no slices with s.
func (s Shape) Clone() Shape {
	switch g := s.Geometry.(type) {
	case Path:
		g.Points = append([]geom.PathPoint(nil), g.Points...)
		s.Geometry = g
	case Polygon:
		g.Points = append([]geom.Point(nil), g.Points...)
		s.Geometry = g
	}
	return s
}

// resolve applies the thickness defaults.
func resolve(st render.Style) render.Style {
	switch {
	case st.Thickness == 0:
		st.Thickness = DefaultThickness
	case st.Thickness < 0:
		st.Thickness = 0
	}
	return st
}
