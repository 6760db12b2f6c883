package easel

import (
	"log/slog"

	"github.com/gogpu/easel/internal/logx"
	"github.com/gogpu/easel/pick"
	"github.com/gogpu/easel/render"
	"github.com/gogpu/easel/scene"
	"github.com/gogpu/easel/selection"
)

var logs logx.Slot

// SetLogger configures the logger for easel and all its sub-packages.
// By default easel produces no log output.
//
// Pass nil to restore the silent default.
//
// Log levels used by easel:
//   - [slog.LevelDebug]: buffer growth, pipeline creation, upserts, drag
//     and selection transitions
//   - [slog.LevelInfo]: adapter selection
//   - [slog.LevelWarn]: failed background frames, resource release errors
//
// Example:
//
//	easel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logs.Store(l)

	render.SetLogger(l)
	scene.SetLogger(l)
	pick.SetLogger(l)
	selection.SetLogger(l)
}

// Logger returns the current logger used by easel.
func Logger() *slog.Logger { return logs.Load() }
