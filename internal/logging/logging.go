// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup installs the default logger writing to stderr.
func Setup(level, format string) error {
	handler, err := NewHandler(os.Stderr, level, format)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))

	return nil
}

// NewHandler builds a JSON handler for format "json" and a text handler otherwise.
func NewHandler(w io.Writer, level, format string) (slog.Handler, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}

	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts), nil
	}

	return slog.NewTextHandler(w, opts), nil
}
