package logging

import (
	"log/slog"
	"os"
)

// New returns a slog.Logger writing to stdout. JSON output is used when
// format is "json", plain text otherwise.
func New(format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
