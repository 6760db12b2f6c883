package geom

import (
	"encoding/binary"
	"math"
)

// Mat4 is a 4x4 float32 matrix in column-major order, the layout WGSL
// expects for a mat4x4<f32> uniform.
//
//	| m[0] m[4] m[8]  m[12] |
//	| m[1] m[5] m[9]  m[13] |
//	| m[2] m[6] m[10] m[14] |
//	| m[3] m[7] m[11] m[15] |
type Mat4 [16]float32

// Mat4Size is the byte size of a Mat4 uniform.
const Mat4Size = 64

// Identity4 returns the identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Projection maps pixel coordinates of a width x height surface to clip
// space, with the origin in the top-left corner and y pointing down.
// A non-positive dimension yields the identity.
func Projection(width, height float64) Mat4 {
	if width <= 0 || height <= 0 {
		return Identity4()
	}
	return Mat4{
		float32(2 / width), 0, 0, 0,
		0, float32(-2 / height), 0, 0,
		0, 0, 1, 0,
		-1, 1, 0, 1,
	}
}

// View returns the pan/zoom transform: uniform scale s followed by a
// translation of (tx, ty).
func View(s, tx, ty float64) Mat4 {
	return Mat4{
		float32(s), 0, 0, 0,
		0, float32(s), 0, 0,
		0, 0, 1, 0,
		float32(tx), float32(ty), 0, 1,
	}
}

// Mul returns m * n, so that applying the result equals applying n first
// and then m.
func (m Mat4) Mul(n Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * n[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// Apply transforms the point (x, y, 0, 1) and returns the resulting x and y.
func (m Mat4) Apply(p Point) Point {
	x, y := float32(p.X), float32(p.Y)
	return Point{
		X: float64(m[0]*x + m[4]*y + m[12]),
		Y: float64(m[1]*x + m[5]*y + m[13]),
	}
}

// Bytes encodes the matrix as little-endian float32 values.
func (m Mat4) Bytes() []byte {
	buf := make([]byte, Mat4Size)
	m.PutBytes(buf)
	return buf
}

// PutBytes writes the matrix into buf, which must hold Mat4Size bytes.
func (m Mat4) PutBytes(buf []byte) {
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}
