// Package logging provides the engine's internal diagnostic logger. It
// never touches the UCI wire protocol — callers write search/TT/book
// diagnostics here, and the UCI layer writes the protocol itself straight
// to stdout via bufio/fmt, per spec.md §6.
package logging

import (
	"go.uber.org/zap"
)

// New builds a stderr-only structured logger: timestamped, leveled, safe
// to call concurrently from worker threads. A broken logger configuration
// falls back to zap's no-op logger rather than failing engine startup.
func New() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
