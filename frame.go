package easel

import "sync"

// FrameScheduler queues work for the next display frame.
//
// RequestFrame may be called from any goroutine; Frame runs the queued
// callbacks and belongs on the host's UI goroutine, once per refresh.
type FrameScheduler struct {
	mu      sync.Mutex
	pending []func()
	wake    func()
}

// NewFrameScheduler returns a scheduler that calls wake, when non-nil,
// every time work is queued. Hosts point wake at their window's
// RequestRedraw.
func NewFrameScheduler(wake func()) *FrameScheduler {
	return &FrameScheduler{wake: wake}
}

// RequestFrame queues fn for the next call to Frame.
func (f *FrameScheduler) RequestFrame(fn func()) {
	f.mu.Lock()
	f.pending = append(f.pending, fn)
	wake := f.wake
	f.mu.Unlock()
	if wake != nil {
		wake()
	}
}

// SetWake replaces the wake callback.
func (f *FrameScheduler) SetWake(wake func()) {
	f.mu.Lock()
	f.wake = wake
	f.mu.Unlock()
}

// Pending returns the number of queued callbacks.
func (f *FrameScheduler) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Frame runs the callbacks queued so far and returns how many ran.
// Callbacks queued while Frame runs wait for the next frame.
func (f *FrameScheduler) Frame() int {
	f.mu.Lock()
	run := f.pending
	f.pending = nil
	f.mu.Unlock()
	for _, fn := range run {
		fn()
	}
	return len(run)
}
