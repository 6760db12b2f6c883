// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// Event identifies a rasterizer lifecycle event.
type Event uint8

const (
	// EventAfterRender fires after Render has drawn every drawable.
	EventAfterRender Event = iota
	// EventResize fires after SetViewport changed the target size.
	EventResize
	// EventViewportChange fires after a pan or zoom.
	EventViewportChange
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventAfterRender:
		return "after-render"
	case EventResize:
		return "resize"
	case EventViewportChange:
		return "viewport-change"
	default:
		return "unknown"
	}
}

type listener struct {
	id uint32
	fn func()
}

// Events is a small synchronous event bus. Listeners run in registration
// order on the goroutine that emits. Events is not safe for concurrent use.
type Events struct {
	listeners map[Event][]listener
	nextID    uint32
}

// Handle identifies a registered listener.
type Handle struct {
	id    uint32
	event Event
}

// On registers fn for event and returns a handle for Off.
func (e *Events) On(event Event, fn func()) Handle {
	if e.listeners == nil {
		e.listeners = make(map[Event][]listener)
	}
	e.nextID++
	e.listeners[event] = append(e.listeners[event], listener{id: e.nextID, fn: fn})
	return Handle{id: e.nextID, event: event}
}

// Off removes the listener behind h. Removing twice is a no-op.
func (e *Events) Off(h Handle) {
	ls := e.listeners[h.event]
	for i := range ls {
		if ls[i].id == h.id {
			copy(ls[i:], ls[i+1:])
			ls[len(ls)-1] = listener{}
			e.listeners[h.event] = ls[:len(ls)-1]
			return
		}
	}
}

// Emit calls every listener of event. A listener removed by an earlier
// listener of the same emission still runs once.
func (e *Events) Emit(event Event) {
	ls := e.listeners[event]
	if len(ls) == 0 {
		return
	}
	snapshot := make([]listener, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		l.fn()
	}
}

// Len returns the number of listeners of event.
func (e *Events) Len(event Event) int { return len(e.listeners[event]) }
