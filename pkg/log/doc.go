// Package log builds the [slog.Handler] used by the CLI and TUI.
//
// Handlers are backed by charmbracelet/log, which renders colored text when
// writing to a terminal and plain logfmt or JSON otherwise.
package log
