// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"bytes"
	"testing"
)

func TestKey(t *testing.T) {
	if got := Key(PrimCircle, RoleFillPosition); got != "circleFillPosition" {
		t.Errorf("Key = %q", got)
	}
	if got := Key(PrimText, RoleQuadPosition); got != "textQuadPosition" {
		t.Errorf("Key = %q", got)
	}
	expectPanic(t, nil, func() { Key("hexagon", RoleFillIndex) })
	expectPanic(t, nil, func() { Key(PrimLine, "Colour") })
}

func TestPoolCapacity(t *testing.T) {
	tests := []struct {
		n, want uint64
	}{
		{1, 256},
		{256, 256},
		{257, 512},
		{1000, 1024},
		{1024, 1024},
		{1025, 2048},
	}
	for _, tt := range tests {
		if got := poolCapacity(tt.n); got != tt.want {
			t.Errorf("poolCapacity(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestBufferPoolUpload(t *testing.T) {
	d := openNoop(t)
	p := NewBufferPool(d.Device, d.Queue)
	defer p.Destroy()

	key := Key(PrimPolygon, RoleFillPosition)
	small := bytes.Repeat([]byte{1}, 64)
	buf, err := p.Upload(key, small)
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 1 || p.Capacity(key) != 256 {
		t.Fatalf("Len=%d Capacity=%d, want 1 and 256", p.Len(), p.Capacity(key))
	}
	if got := readBuffer(t, d.Device, buf, 64); !bytes.Equal(got, small) {
		t.Error("uploaded bytes not found in buffer")
	}

	again, err := p.Upload(key, bytes.Repeat([]byte{2}, 200))
	if err != nil {
		t.Fatal(err)
	}
	if again != buf {
		t.Error("payload that fits should reuse the buffer")
	}

	big := bytes.Repeat([]byte{3}, 1000)
	grown, err := p.Upload(key, big)
	if err != nil {
		t.Fatal(err)
	}
	if grown == buf {
		t.Error("payload larger than capacity should replace the buffer")
	}
	if p.Capacity(key) != 1024 || p.Len() != 1 {
		t.Errorf("after growth Capacity=%d Len=%d", p.Capacity(key), p.Len())
	}
	if got := readBuffer(t, d.Device, grown, 1000); !bytes.Equal(got, big) {
		t.Error("grown buffer does not hold the payload")
	}

	if b, _ := p.Buffer(key); b != grown {
		t.Error("Buffer returned a different buffer")
	}
	if _, ok := p.Buffer(Key(PrimLine, RoleStrokePosition)); ok {
		t.Error("unused key should have no buffer")
	}
}

func TestBufferPoolEmptyAndUnknown(t *testing.T) {
	d := openNoop(t)
	p := NewBufferPool(d.Device, d.Queue)

	buf, err := p.Upload(Key(PrimLine, RoleStrokePosition), nil)
	if err != nil || buf != nil {
		t.Errorf("empty upload = (%v, %v), want (nil, nil)", buf, err)
	}
	if p.Len() != 0 {
		t.Errorf("empty upload allocated a buffer")
	}
	expectPanic(t, nil, func() { _, _ = p.Upload("lineColor", []byte{0, 0, 0, 0}) })

	_, _ = p.Upload(Key(PrimLine, RoleStrokePosition), make([]byte, 16))
	p.Destroy()
	if p.Len() != 0 {
		t.Errorf("Len after Destroy = %d", p.Len())
	}
}
