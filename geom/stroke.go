package geom

// MiterLimit bounds the distance from a vertex to its miter point, as a
// multiple of the stroke thickness. The same limit applies to every
// primitive. Joins sharper than about 29 degrees are clamped.
const MiterLimit = 4.0

// Stroke expands a polyline into a triangle list with miter joins. Each
// side of the centerline is offset by thickness, so a straight segment is
// 2*thickness wide and covers the band NearSegment hit-tests. Every three
// consecutive points of the result form one triangle.
//
// For each vertex the incoming and outgoing edges contribute a left normal;
// the normalized bisector of the two normals gives the miter direction and
// thickness / cos(halfAngle) its length, clamped to MiterLimit*thickness
// so sharp corners do not spike. Each vertex yields an outer/inner pair and
// consecutive pairs are joined by two triangles. Closed outlines also join
// the last pair back to the first.
//
// Zero-length edges are dropped first. Fewer than two distinct points, or a
// non-positive thickness, produce no geometry.
func Stroke(pts []Point, thickness float64, closed bool) []Point {
	if thickness <= 0 {
		return nil
	}
	pts = dedupe(pts, closed)
	n := len(pts)
	if n < 2 {
		return nil
	}
	if n < 3 {
		closed = false
	}

	limit := max(MiterLimit, 1) * thickness

	outer := make([]Point, n)
	inner := make([]Point, n)
	for i := 0; i < n; i++ {
		offset := miterOffset(pts, i, closed, thickness, limit)
		outer[i] = pts[i].Add(offset)
		inner[i] = pts[i].Sub(offset)
	}

	segments := n - 1
	if closed {
		segments = n
	}
	out := make([]Point, 0, segments*6)
	for i := 0; i < segments; i++ {
		j := (i + 1) % n
		out = append(out,
			outer[i], inner[i], outer[j],
			inner[i], inner[j], outer[j],
		)
	}
	return out
}

// miterOffset returns the vector from pts[i] to its outer stroke vertex.
func miterOffset(pts []Point, i int, closed bool, width, limit float64) Point {
	n := len(pts)
	var in, out Point
	hasIn, hasOut := i > 0 || closed, i < n-1 || closed
	if hasIn {
		in = pts[i].Sub(pts[(i-1+n)%n]).Normalize()
	}
	if hasOut {
		out = pts[(i+1)%n].Sub(pts[i]).Normalize()
	}

	switch {
	case !hasIn:
		return out.Perp().Mul(width)
	case !hasOut:
		return in.Perp().Mul(width)
	}

	nIn, nOut := in.Perp(), out.Perp()
	bisector := nIn.Add(nOut).Normalize()
	if bisector == (Point{}) {
		// The path folds back on itself; square it off.
		return nIn.Mul(width)
	}
	cosHalf := bisector.Dot(nIn)
	length := limit
	if cosHalf > width/limit {
		length = width / cosHalf
	}
	return bisector.Mul(length)
}

// dedupe drops consecutive duplicate points, and for closed outlines a
// trailing point equal to the first.
func dedupe(pts []Point, closed bool) []Point {
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		if !p.IsFinite() {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	if closed && len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}
