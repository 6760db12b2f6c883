package geom

import "math"

// HitTolerance is added to a stroke thickness when testing points against
// lines and path segments.
const HitTolerance = 1.0

// InCircle reports whether p lies inside or on the circle.
func InCircle(center Point, radius float64, p Point) bool {
	if radius <= 0 {
		return false
	}
	return p.Distance(center) <= radius
}

// InEllipse reports whether p lies inside or on the axis-aligned ellipse.
func InEllipse(center Point, rx, ry float64, p Point) bool {
	if rx <= 0 || ry <= 0 {
		return false
	}
	dx := (p.X - center.X) / rx
	dy := (p.Y - center.Y) / ry
	return dx*dx+dy*dy <= 1
}

// InRect reports whether p lies inside r, edges included.
func InRect(r Rect, p Point) bool {
	return r.Contains(p)
}

// SegmentDistance returns the distance from p to the closest point of the
// segment ab. A zero-length segment is treated as the point a.
func SegmentDistance(a, b, p Point) float64 {
	d := b.Sub(a)
	lenSq := d.Len2()
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(d) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Distance(a.Add(d.Mul(t)))
}

// NearSegment reports whether p is within thickness+HitTolerance of ab.
func NearSegment(a, b, p Point, thickness float64) bool {
	return SegmentDistance(a, b, p) <= thickness+HitTolerance
}

// NearPolyline reports whether p is near any consecutive segment of pts.
// When closed is set the segment from the last point back to the first
// is tested too.
func NearPolyline(pts []Point, closed bool, p Point, thickness float64) bool {
	switch len(pts) {
	case 0:
		return false
	case 1:
		return NearSegment(pts[0], pts[0], p, thickness)
	}
	for i := 0; i+1 < len(pts); i++ {
		if NearSegment(pts[i], pts[i+1], p, thickness) {
			return true
		}
	}
	if closed && len(pts) > 2 {
		return NearSegment(pts[len(pts)-1], pts[0], p, thickness)
	}
	return false
}

// InPolygon reports whether p lies inside the polygon using the even-odd
// rule. The polygon may be concave; fewer than three points never contain
// anything.
func InPolygon(pts []Point, p Point) bool {
	if len(pts) < 3 {
		return false
	}
	inside := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		pi, pj := pts[i], pts[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// InTriangle reports whether p lies inside the triangle abc in either
// winding. Points exactly on an edge are inside: a zero sign counts as
// neither positive nor negative. A triangle with zero area contains nothing.
func InTriangle(a, b, c, p Point) bool {
	if b.Sub(a).Cross(c.Sub(a)) == 0 {
		return false
	}
	d1 := edgeSign(p, a, b)
	d2 := edgeSign(p, b, c)
	d3 := edgeSign(p, c, a)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func edgeSign(p, a, b Point) float64 {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}
