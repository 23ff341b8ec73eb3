package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type Format string

const (
	FormatText   Format = "text"
	FormatLogfmt Format = "logfmt"
	FormatJSON   Format = "json"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnknownLevel    = errors.New("unknown log level")
	ErrUnknownFormat   = errors.New("unknown log format")
)

// GetLevel parses a level name. The aliases "warning", "trace", "fatal" and
// "panic" are accepted.
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error", "fatal", "panic":
		return slog.LevelError, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
}

// GetFormat parses a format name.
func GetFormat(format string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(format))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatLogfmt, FormatJSON:
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// CreateHandler returns a [slog.Handler] writing to w.
func CreateHandler(w io.Writer, level slog.Level, format Format) slog.Handler {
	opts := charmlog.Options{
		Level:           charmlog.Level(level),
		ReportTimestamp: format != FormatText,
	}

	switch format {
	case FormatJSON:
		opts.Formatter = charmlog.JSONFormatter
	case FormatLogfmt:
		opts.Formatter = charmlog.LogfmtFormatter
	default:
		opts.Formatter = charmlog.TextFormatter
	}

	return charmlog.NewWithOptions(w, opts)
}

// CreateHandlerWithStrings is like [CreateHandler], but parses the level and
// format first.
func CreateHandlerWithStrings(w io.Writer, level, format string) (slog.Handler, error) {
	l, err := GetLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	f, err := GetFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return CreateHandler(w, l, f), nil
}
