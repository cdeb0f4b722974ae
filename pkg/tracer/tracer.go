// Package tracer provides the capability object the parser calls at
// sub-machine transitions, replacing the reference implementation's
// global DEBUG flag with something injectable and test-friendly.
package tracer

import (
	"log/slog"
	"os"
)

// Tracer receives one call per parser sub-machine transition. Implementations
// must not block or retain the passed strings beyond the call.
type Tracer interface {
	Trace(line int, mode, msg string)
}

// slogTracer adapts a *slog.Logger to Tracer.
type slogTracer struct {
	log *slog.Logger
}

func (t *slogTracer) Trace(line int, mode, msg string) {
	t.log.Debug(msg, slog.Int("line", line), slog.String("mode", mode))
}

// New wraps an slog.Logger as a Tracer.
func New(log *slog.Logger) Tracer {
	return &slogTracer{log: log}
}

// FromEnv builds a Tracer from the SIML_DEBUG environment variable,
// the reborn form of the reference implementation's global DEBUG
// flag (spec.md §9 Design Notes). It returns nil when SIML_DEBUG is
// unset or empty, so callers can pass the result straight to
// options.WithTracer without a nil check.
func FromEnv() Tracer {
	v, ok := os.LookupEnv("SIML_DEBUG")
	if !ok || v == "" {
		return nil
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return New(slog.New(handler))
}
