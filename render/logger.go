// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"log/slog"

	"github.com/gogpu/easel/internal/logx"
)

var logs logx.Slot

func slogger() *slog.Logger { return logs.Load() }

// SetLogger sets the logger of package render. nil silences it.
// easel.SetLogger sets every package at once.
func SetLogger(l *slog.Logger) { logs.Store(l) }
