package log_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/rttmlabel/pkg/log"
)

func TestGetLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		wantErr error
		want    slog.Level
	}{
		"debug":   {want: slog.LevelDebug},
		"trace":   {want: slog.LevelDebug},
		"INFO":    {want: slog.LevelInfo},
		"":        {want: slog.LevelInfo},
		"warning": {want: slog.LevelWarn},
		"error":   {want: slog.LevelError},
		"loud":    {wantErr: log.ErrUnknownLevel},
	}

	for in, tc := range tcs {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			got, err := log.GetLevel(in)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCreateHandlerWithStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		wantErr error
		level   string
		format  string
	}{
		"text":           {level: "warn", format: "text"},
		"logfmt":         {level: "info", format: "logfmt"},
		"json":           {level: "debug", format: "json"},
		"invalid level":  {level: "nope", format: "text", wantErr: log.ErrUnknownLevel},
		"invalid format": {level: "warn", format: "xml", wantErr: log.ErrUnknownFormat},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			h, err := log.CreateHandlerWithStrings(&bytes.Buffer{}, tc.level, tc.format)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.ErrorIs(t, err, log.ErrInvalidArgument)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, h)
		})
	}
}

func TestJSONHandlerOutput(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(log.CreateHandler(buf, slog.LevelInfo, log.FormatJSON))

	logger.Debug("hidden")
	logger.Info("loaded file", slog.String("file_id", "meeting_01"))

	line := bytes.TrimSpace(buf.Bytes())
	require.NotEmpty(t, line)

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(line, &out))
	assert.Equal(t, "loaded file", out["msg"])
	assert.Equal(t, "meeting_01", out["file_id"])
	assert.NotContains(t, buf.String(), "hidden")
}
