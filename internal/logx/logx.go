// Package logx holds the logger shared by the attack packages. It discards
// everything until a caller installs a logger with Set.
package logx

import (
	"io"
	"log/slog"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// L returns the current logger.
func L() *slog.Logger { return current.Load() }

// Set installs l. A nil logger restores the discarding default.
func Set(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	current.Store(l)
}
