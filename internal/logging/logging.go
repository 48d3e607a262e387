// Package logging builds the logr.Logger shared by the commands.
package logging

import (
	"io"
	"log/slog"

	"github.com/go-logr/logr"
)

// New returns a text logger writing to w. Verbosity 0 logs Info; each level
// above that enables the matching V(n) calls.
func New(w io.Writer, verbosity int) logr.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.Level(-verbosity),
	})
	return logr.FromSlogHandler(h)
}
