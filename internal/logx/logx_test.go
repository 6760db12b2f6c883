// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package logx

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

func TestSlotDefaultsToDiscard(t *testing.T) {
	var s Slot
	if s.Load() != Discard {
		t.Fatal("zero Slot should load Discard")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if s.Load().Enabled(context.Background(), level) {
			t.Errorf("Discard enabled at %v", level)
		}
	}
}

func TestSlotStore(t *testing.T) {
	var s Slot
	l := slog.Default()
	s.Store(l)
	if s.Load() != l {
		t.Error("Load did not return the stored logger")
	}
	s.Store(nil)
	if s.Load() != Discard {
		t.Error("Store(nil) should restore Discard")
	}
}

func TestSlotConcurrent(t *testing.T) {
	var s Slot
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Load().Debug("read")
		}()
		go func() {
			defer wg.Done()
			s.Store(slog.Default())
			s.Store(nil)
		}()
	}
	wg.Wait()
}
