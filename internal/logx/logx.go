// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package logx holds the swappable package loggers of easel.
package logx

import (
	"log/slog"
	"sync/atomic"
)

// Discard is the logger in use until one is set. It is disabled at every
// level, so call sites skip formatting.
var Discard = slog.New(slog.DiscardHandler)

// Slot is a logger that can be replaced while other goroutines log.
// The zero value logs to Discard.
type Slot struct {
	p atomic.Pointer[slog.Logger]
}

// Load returns the current logger, never nil.
func (s *Slot) Load() *slog.Logger {
	if l := s.p.Load(); l != nil {
		return l
	}
	return Discard
}

// Store replaces the logger. nil restores Discard.
func (s *Slot) Store(l *slog.Logger) {
	if l == nil {
		l = Discard
	}
	s.p.Store(l)
}
