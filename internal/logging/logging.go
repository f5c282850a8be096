// Package logging builds the structured logger shared by the commands.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

const Prefix = "dpsim"

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error"). An unknown level falls back to info and is reported
// through the returned error.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	return logger, err
}

// Discard is a logger that drops everything, for hosts that own the
// terminal.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
