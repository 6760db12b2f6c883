// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/noop"
)

// openNoop opens the noop backend, whose buffers keep their bytes.
func openNoop(t *testing.T) *Device {
	t.Helper()
	d, err := OpenDevice(gputypes.BackendEmpty)
	if err != nil {
		t.Fatalf("OpenDevice(noop): %v", err)
	}
	t.Cleanup(d.Close)
	return d
}

func newTestRasterizer(t *testing.T, opts ...Option) *Rasterizer {
	t.Helper()
	d := openNoop(t)
	r, err := NewFromDevice(d, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(r.Close)
	return r
}

// readBuffer returns the first n bytes of a noop buffer.
func readBuffer(t *testing.T, device hal.Device, buf hal.Buffer, n int) []byte {
	t.Helper()
	m, err := device.MapBuffer(buf, 0, uint64(n))
	if err != nil {
		t.Fatalf("MapBuffer: %v", err)
	}
	out := make([]byte, n)
	copy(out, unsafe.Slice((*byte)(m.Ptr), n))
	if err := device.UnmapBuffer(buf); err != nil {
		t.Fatalf("UnmapBuffer: %v", err)
	}
	return out
}

func decodeFloat32s(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}

func expectPanic(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		got := recover()
		if got == nil {
			t.Fatal("expected panic")
		}
		if want != nil {
			if err, ok := got.(error); !ok || err != want {
				t.Fatalf("panic value = %v, want %v", got, want)
			}
		}
	}()
	fn()
}
