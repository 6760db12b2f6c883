package geom

import "math"

// PathPoint is a vertex of a polyline path. MoveTo starts a new subpath at
// this point instead of connecting it to the previous one.
type PathPoint struct {
	X, Y   float64
	MoveTo bool
}

// Point returns the vertex position.
func (p PathPoint) Point() Point { return Point{X: p.X, Y: p.Y} }

// SplitPath breaks a path into its subpaths. Empty subpaths are omitted.
func SplitPath(pts []PathPoint) [][]Point {
	var (
		out [][]Point
		cur []Point
	)
	for _, p := range pts {
		if p.MoveTo && len(cur) > 0 {
			out = append(out, cur)
			cur = nil
		}
		cur = append(cur, p.Point())
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// PathPoints drops the MoveTo markers and returns the plain vertices.
func PathPoints(pts []PathPoint) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = p.Point()
	}
	return out
}

const (
	minEllipseSegments = 16
	maxEllipseSegments = 256

	// ellipseSegmentLength is the target outline length, in world units,
	// covered by one segment.
	ellipseSegmentLength = 4.0
)

// EllipseSegments returns the number of outline segments used for an
// ellipse with the given radii.
func EllipseSegments(rx, ry float64) int {
	r := math.Max(math.Abs(rx), math.Abs(ry))
	n := int(math.Ceil(2 * math.Pi * r / ellipseSegmentLength))
	return max(minEllipseSegments, min(maxEllipseSegments, n))
}

// EllipsePoints samples the outline of an axis-aligned ellipse, starting at
// angle zero and walking clockwise on screen (y grows downward). Zero or
// negative radii yield nil.
func EllipsePoints(center Point, rx, ry float64) []Point {
	if rx <= 0 || ry <= 0 {
		return nil
	}
	n := EllipseSegments(rx, ry)
	out := make([]Point, n)
	step := 2 * math.Pi / float64(n)
	for i := range out {
		a := float64(i) * step
		out[i] = Point{
			X: center.X + rx*math.Cos(a),
			Y: center.Y + ry*math.Sin(a),
		}
	}
	return out
}

// TranslatePoints returns a copy of pts moved by (dx, dy).
func TranslatePoints(pts []Point, dx, dy float64) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}
