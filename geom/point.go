package geom

import "math"

// Point is a position or displacement in world units.
type Point struct {
	X, Y float64
}

// Pt returns Point{x, y}.
func Pt(x, y float64) Point { return Point{x, y} }

func (p Point) Add(q Point) Point        { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point        { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(k float64) Point      { return Point{p.X * k, p.Y * k} }
func (p Point) Dot(q Point) float64      { return p.X*q.X + p.Y*q.Y }
func (p Point) Cross(q Point) float64    { return p.X*q.Y - p.Y*q.X }
func (p Point) Distance(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Len2 is the squared length of p taken as a vector.
func (p Point) Len2() float64 { return p.Dot(p) }

// Perp turns p a quarter counterclockwise in a y-up frame.
func (p Point) Perp() Point { return Point{-p.Y, p.X} }

// Normalize scales p to unit length. Zero stays zero.
func (p Point) Normalize() Point {
	l := math.Hypot(p.X, p.Y)
	if l == 0 {
		return Point{}
	}
	return p.Mul(1 / l)
}

// Approx reports whether p and q are within eps on each axis.
func (p Point) Approx(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

// IsFinite reports whether neither coordinate is NaN or infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X+p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
