package marquee

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards all records. Enabled reports
// false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. The terminal front end commits text
// from its event goroutine, so access is atomic.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by marquee and its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used by marquee:
//   - [slog.LevelDebug]: per-recycle and per-tick diagnostics
//   - [slog.LevelInfo]: committed text, batch spawns
//   - [slog.LevelWarn]: skipped glyphs (asset load failures)
//
// Example:
//
//	marquee.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages (ecs, terminal, window)
// share it through this accessor.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
