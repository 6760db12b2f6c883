package geom

// Triangulate decomposes a simple polygon into triangles by ear clipping
// and returns a flat index list into pts, three indices per triangle.
//
// Either winding is accepted. Consecutive duplicate and collinear vertices
// are skipped. Fewer than three points, or a polygon with zero area, yield
// nil. If the outline self-intersects the clipper eventually finds no ear;
// it stops there and returns the triangles produced so far.
func Triangulate(pts []Point) []uint32 {
	if len(pts) < 3 {
		return nil
	}

	idx := make([]int, 0, len(pts))
	for i, p := range pts {
		if !p.IsFinite() {
			continue
		}
		if len(idx) > 0 && pts[idx[len(idx)-1]] == p {
			continue
		}
		idx = append(idx, i)
	}
	if len(idx) > 1 && pts[idx[0]] == pts[idx[len(idx)-1]] {
		idx = idx[:len(idx)-1]
	}
	if len(idx) < 3 {
		return nil
	}

	area := signedArea(pts, idx)
	if area == 0 {
		return nil
	}
	if area < 0 {
		for i, j := 0, len(idx)-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}

	out := make([]uint32, 0, (len(idx)-2)*3)
	for len(idx) > 3 {
		clipped := false
		for i := 0; i < len(idx); i++ {
			prev := idx[(i-1+len(idx))%len(idx)]
			cur := idx[i]
			next := idx[(i+1)%len(idx)]
			a, b, c := pts[prev], pts[cur], pts[next]

			turn := b.Sub(a).Cross(c.Sub(b))
			if turn == 0 {
				// Collinear vertex: contributes no area.
				idx = append(idx[:i], idx[i+1:]...)
				clipped = true
				break
			}
			if turn < 0 || !isEar(pts, idx, a, b, c) {
				continue
			}
			out = append(out, uint32(prev), uint32(cur), uint32(next))
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return out
		}
	}
	if len(idx) == 3 {
		a, b, c := pts[idx[0]], pts[idx[1]], pts[idx[2]]
		if b.Sub(a).Cross(c.Sub(a)) != 0 {
			out = append(out, uint32(idx[0]), uint32(idx[1]), uint32(idx[2]))
		}
	}
	return out
}

// TriangulateFlat returns the triangles of Triangulate as a point list,
// three points per triangle.
func TriangulateFlat(pts []Point) []Point {
	indices := Triangulate(pts)
	out := make([]Point, len(indices))
	for i, k := range indices {
		out[i] = pts[k]
	}
	return out
}

// isEar reports whether no remaining vertex lies inside the counter-clockwise
// triangle abc.
func isEar(pts []Point, idx []int, a, b, c Point) bool {
	for _, k := range idx {
		p := pts[k]
		if p == a || p == b || p == c {
			continue
		}
		if b.Sub(a).Cross(p.Sub(a)) >= 0 &&
			c.Sub(b).Cross(p.Sub(b)) >= 0 &&
			a.Sub(c).Cross(p.Sub(c)) >= 0 {
			return false
		}
	}
	return true
}

func signedArea(pts []Point, idx []int) float64 {
	var sum float64
	for i, k := range idx {
		p, q := pts[k], pts[idx[(i+1)%len(idx)]]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}
