// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"math/bits"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Primitive names the drawing operation a pooled buffer belongs to.
type Primitive string

// Primitives with pooled geometry.
const (
	PrimRectangle Primitive = "rectangle"
	PrimCircle    Primitive = "circle"
	PrimEllipse   Primitive = "ellipse"
	PrimLine      Primitive = "line"
	PrimPath      Primitive = "path"
	PrimPolygon   Primitive = "polygon"
	PrimTriangle  Primitive = "triangle"
	PrimText      Primitive = "text"
)

// Role names what a pooled buffer holds for its primitive.
type Role string

// Buffer roles.
const (
	RoleFillPosition   Role = "FillPosition"
	RoleFillIndex      Role = "FillIndex"
	RoleStrokePosition Role = "StrokePosition"
	RoleQuadPosition   Role = "QuadPosition"
)

var (
	primitives = []Primitive{PrimRectangle, PrimCircle, PrimEllipse, PrimLine, PrimPath, PrimPolygon, PrimTriangle, PrimText}
	roles      = []Role{RoleFillPosition, RoleFillIndex, RoleStrokePosition, RoleQuadPosition}

	// validKeys holds every key Key can produce.
	validKeys = func() map[string]bool {
		m := make(map[string]bool, len(primitives)*len(roles))
		for _, p := range primitives {
			for _, r := range roles {
				m[string(p)+string(r)] = true
			}
		}
		return m
	}()
)

// minPoolBufferSize is the smallest buffer the pool allocates.
const minPoolBufferSize = 256

// poolUsage lets one pooled buffer serve as vertex or index data.
const poolUsage = gputypes.BufferUsageVertex | gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst

// Key returns the stable pool key of a primitive and role, for example
// "circleFillPosition". It panics on a primitive or role it does not know.
func Key(p Primitive, r Role) string {
	k := string(p) + string(r)
	if !validKeys[k] {
		panic(fmt.Sprintf("render: unknown buffer key %q", k))
	}
	return k
}

// BufferPool keeps one GPU buffer per key and reuses it across draws.
//
// Contents are overwritten on every Upload. A buffer is replaced only when
// the payload outgrows it, and capacities are powers of two so a growing
// scene reallocates rarely. BufferPool is not safe for concurrent use.
type BufferPool struct {
	device  hal.Device
	queue   hal.Queue
	entries map[string]*poolEntry
}

type poolEntry struct {
	buf  hal.Buffer
	size uint64
	used uint64
}

// NewBufferPool returns an empty pool allocating from device.
func NewBufferPool(device hal.Device, queue hal.Queue) *BufferPool {
	return &BufferPool{
		device:  device,
		queue:   queue,
		entries: make(map[string]*poolEntry),
	}
}

// Upload writes data into the buffer for key, creating or growing it first.
// It panics when key was not built by Key. Empty data leaves the buffer
// untouched and returns it, or nil when none exists yet.
func (p *BufferPool) Upload(key string, data []byte) (hal.Buffer, error) {
	if !validKeys[key] {
		panic(fmt.Sprintf("render: unknown buffer key %q", key))
	}
	e := p.entries[key]
	if len(data) == 0 {
		if e == nil {
			return nil, nil
		}
		return e.buf, nil
	}

	need := uint64(len(data))
	if e == nil || e.size < need {
		size := poolCapacity(need)
		buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
			Label: key,
			Size:  size,
			Usage: poolUsage,
		})
		if err != nil {
			return nil, fmt.Errorf("render: create pool buffer %s (%d bytes): %w", key, size, err)
		}
		if e != nil {
			p.retire(e.buf)
		}
		slogger().Debug("render: pool buffer allocated", "key", key, "size", size)
		e = &poolEntry{buf: buf, size: size}
		p.entries[key] = e
	}

	if err := p.queue.WriteBuffer(e.buf, 0, data); err != nil {
		return nil, fmt.Errorf("render: write pool buffer %s: %w", key, err)
	}
	e.used = need
	return e.buf, nil
}

// Buffer returns the buffer stored for key.
func (p *BufferPool) Buffer(key string) (hal.Buffer, bool) {
	e, ok := p.entries[key]
	if !ok {
		return nil, false
	}
	return e.buf, true
}

// Capacity returns the allocated size of the buffer for key, or 0.
func (p *BufferPool) Capacity(key string) uint64 {
	if e, ok := p.entries[key]; ok {
		return e.size
	}
	return 0
}

// Len returns the number of allocated buffers.
func (p *BufferPool) Len() int { return len(p.entries) }

// Destroy releases every buffer. The pool can be reused afterwards.
func (p *BufferPool) Destroy() {
	for k, e := range p.entries {
		p.device.DestroyBuffer(e.buf)
		delete(p.entries, k)
	}
}

// retire destroys a buffer that earlier submissions may still read.
func (p *BufferPool) retire(buf hal.Buffer) {
	if err := p.device.WaitIdle(); err != nil {
		slogger().Warn("render: wait idle before buffer release", "err", err)
	}
	p.device.DestroyBuffer(buf)
}

// poolCapacity rounds n up to a power of two, at least minPoolBufferSize.
func poolCapacity(n uint64) uint64 {
	if n <= minPoolBufferSize {
		return minPoolBufferSize
	}
	return 1 << bits.Len64(n-1)
}
