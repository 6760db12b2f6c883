// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/easel/geom"
)

// DrawRectangle draws an axis-aligned rectangle with its top-left corner
// at (x, y).
func (r *Rasterizer) DrawRectangle(x, y, w, h float64, s Style) error {
	r.mustReady()
	corners := geom.Rect{X: x, Y: y, W: w, H: h}.Corners()
	if w != 0 && h != 0 {
		if err := r.fill(PrimRectangle, corners, quadIndices, s.Fill); err != nil {
			return err
		}
	}
	return r.stroke(PrimRectangle, corners, true, s)
}

// DrawCircle draws a circle of radius rad centered at (cx, cy).
func (r *Rasterizer) DrawCircle(cx, cy, rad float64, s Style) error {
	r.mustReady()
	return r.drawOval(PrimCircle, cx, cy, rad, rad, s)
}

// DrawEllipse draws an axis-aligned ellipse centered at (cx, cy).
func (r *Rasterizer) DrawEllipse(cx, cy, rx, ry float64, s Style) error {
	r.mustReady()
	return r.drawOval(PrimEllipse, cx, cy, rx, ry, s)
}

func (r *Rasterizer) drawOval(prim Primitive, cx, cy, rx, ry float64, s Style) error {
	if !(rx > 0) || !(ry > 0) {
		return nil
	}
	pts := geom.EllipsePoints(geom.Pt(cx, cy), rx, ry)
	if err := r.fill(prim, pts, fanIndices(len(pts)), s.Fill); err != nil {
		return err
	}
	return r.stroke(prim, pts, true, s)
}

// DrawLine strokes the segment from (x1, y1) to (x2, y2). Lines have no
// fill; a zero-length line draws nothing.
func (r *Rasterizer) DrawLine(x1, y1, x2, y2 float64, s Style) error {
	r.mustReady()
	return r.stroke(PrimLine, []geom.Point{{X: x1, Y: y1}, {X: x2, Y: y2}}, false, s)
}

// DrawPath draws a multi-subpath polyline. A point with MoveTo set starts
// a new subpath. closed closes every subpath; only closed subpaths of at
// least three points are filled.
func (r *Rasterizer) DrawPath(pts []geom.PathPoint, closed bool, s Style) error {
	r.mustReady()
	subpaths := geom.SplitPath(pts)
	if len(subpaths) == 0 {
		return nil
	}
	if closed && s.HasFill() {
		var verts []geom.Point
		var idx []uint32
		for _, sp := range subpaths {
			tri := geom.Triangulate(sp)
			if len(tri) == 0 {
				continue
			}
			base := uint32(len(verts))
			verts = append(verts, sp...)
			for _, i := range tri {
				idx = append(idx, base+i)
			}
		}
		if err := r.fill(PrimPath, verts, idx, s.Fill); err != nil {
			return err
		}
	}
	if !s.HasStroke() {
		return nil
	}
	var tris []geom.Point
	for _, sp := range subpaths {
		tris = append(tris, geom.Stroke(sp, s.Thickness, closed)...)
	}
	return r.strokeTriangles(PrimPath, tris, s.Stroke)
}

// DrawPolygon draws a closed polygon. Concave outlines are triangulated by
// ear clipping.
func (r *Rasterizer) DrawPolygon(pts []geom.Point, s Style) error {
	r.mustReady()
	if len(pts) < 2 {
		return nil
	}
	if err := r.fill(PrimPolygon, pts, geom.Triangulate(pts), s.Fill); err != nil {
		return err
	}
	return r.stroke(PrimPolygon, pts, true, s)
}

// DrawTriangle draws the triangle a, b, c.
func (r *Rasterizer) DrawTriangle(a, b, c geom.Point, s Style) error {
	r.mustReady()
	pts := []geom.Point{a, b, c}
	if edgeArea(a, b, c) != 0 {
		if err := r.fill(PrimTriangle, pts, triangleIndices, s.Fill); err != nil {
			return err
		}
	}
	return r.stroke(PrimTriangle, pts, true, s)
}

var (
	quadIndices     = []uint32{0, 1, 2, 0, 2, 3}
	triangleIndices = []uint32{0, 1, 2}
)

// fill draws indexed triangles over pts in a solid color.
func (r *Rasterizer) fill(prim Primitive, pts []geom.Point, idx []uint32, c Color) error {
	if !c.Visible() || len(idx) < 3 || !allFinite(pts) {
		return nil
	}
	r.vertScratch = appendPoints(r.vertScratch[:0], pts)
	vb, err := r.pool.Upload(Key(prim, RoleFillPosition), r.vertScratch)
	if err != nil {
		return err
	}
	r.indexScratch = appendIndices(r.indexScratch[:0], idx)
	ib, err := r.pool.Upload(Key(prim, RoleFillIndex), r.indexScratch)
	if err != nil {
		return err
	}
	if err := r.writeUniforms(c); err != nil {
		return err
	}
	count := uint32(len(idx))
	return r.submitPass(string(prim)+"_fill", gputypes.LoadOpLoad, func(rp hal.RenderPassEncoder) {
		rp.SetPipeline(r.flat.pipeline)
		rp.SetBindGroup(0, r.uniformGroup, nil)
		rp.SetVertexBuffer(0, vb, 0)
		rp.SetIndexBuffer(ib, gputypes.IndexFormatUint32, 0)
		rp.DrawIndexed(count, 1, 0, 0, 0)
	})
}

// stroke outlines pts with miter joins when the style has a stroke.
func (r *Rasterizer) stroke(prim Primitive, pts []geom.Point, closed bool, s Style) error {
	if !s.HasStroke() {
		return nil
	}
	return r.strokeTriangles(prim, geom.Stroke(pts, s.Thickness, closed), s.Stroke)
}

func (r *Rasterizer) strokeTriangles(prim Primitive, tris []geom.Point, c Color) error {
	if len(tris) < 3 {
		return nil
	}
	r.vertScratch = appendPoints(r.vertScratch[:0], tris)
	vb, err := r.pool.Upload(Key(prim, RoleStrokePosition), r.vertScratch)
	if err != nil {
		return err
	}
	if err := r.writeUniforms(c); err != nil {
		return err
	}
	count := uint32(len(tris))
	return r.submitPass(string(prim)+"_stroke", gputypes.LoadOpLoad, func(rp hal.RenderPassEncoder) {
		rp.SetPipeline(r.flat.pipeline)
		rp.SetBindGroup(0, r.uniformGroup, nil)
		rp.SetVertexBuffer(0, vb, 0)
		rp.Draw(count, 1, 0, 0)
	})
}

// fanIndices triangulates a convex outline of n points from its first point.
func fanIndices(n int) []uint32 {
	if n < 3 {
		return nil
	}
	idx := make([]uint32, 0, (n-2)*3)
	for i := 1; i < n-1; i++ {
		idx = append(idx, 0, uint32(i), uint32(i+1))
	}
	return idx
}

func edgeArea(a, b, c geom.Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

func allFinite(pts []geom.Point) bool {
	for _, p := range pts {
		if !p.IsFinite() {
			return false
		}
	}
	return true
}

// appendPoints encodes pts as little-endian vec2<f32>.
func appendPoints(buf []byte, pts []geom.Point) []byte {
	for _, p := range pts {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(p.X)))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(p.Y)))
	}
	return buf
}

// appendIndices encodes idx as little-endian u32.
func appendIndices(buf []byte, idx []uint32) []byte {
	for _, i := range idx {
		buf = binary.LittleEndian.AppendUint32(buf, i)
	}
	return buf
}

// putFloat32s writes vs as little-endian f32 into buf.
func putFloat32s(buf []byte, vs []float32) {
	for i, v := range vs {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}

func appendFloat32(buf []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
}
