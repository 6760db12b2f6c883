package selection

import (
	"log/slog"

	"github.com/gogpu/easel/internal/logx"
)

var logs logx.Slot

func slogger() *slog.Logger { return logs.Load() }

// SetLogger sets the logger of package selection. nil silences it.
// easel.SetLogger sets every package at once.
func SetLogger(l *slog.Logger) { logs.Store(l) }
