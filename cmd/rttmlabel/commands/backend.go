package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/macropower/rttmlabel/pkg/browser"
	"github.com/macropower/rttmlabel/pkg/labelapi"
	"github.com/macropower/rttmlabel/pkg/notify"
	"github.com/macropower/rttmlabel/pkg/segment"
	"github.com/macropower/rttmlabel/pkg/session"
	"github.com/macropower/rttmlabel/pkg/tracing"
)

// backend bundles what the backend subcommands share.
type backend struct {
	client   *labelapi.Client
	state    *session.State
	notifier notify.Notifier
}

func newBackend(args *RootArgs) (*backend, error) {
	cfg := args.GetConfig()

	client, err := cfg.Client(labelapi.WithTracer(tracing.NewLoggingTracer(nil)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigFailed, err)
	}

	return &backend{
		client:   client,
		state:    session.New(),
		notifier: notify.NewLogger(slog.Default()),
	}, nil
}

func parseKind(s string) (browser.Kind, error) {
	kind, err := browser.ParseKind(s)
	if err != nil {
		return "", fmt.Errorf("%w: type: %w", ErrInvalidArgument, err)
	}

	return kind, nil
}

func segmentTable(segs []segment.Segment) string {
	rows := make([][]string, 0, len(segs))
	for i, s := range segs {
		rows = append(rows, []string{
			fmt.Sprint(i),
			segment.FormatSeconds(s.StartTime),
			segment.FormatSeconds(s.EndTime),
			segment.FormatSeconds(s.Duration),
			s.SpeakerID,
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "START", "END", "DURATION", "SPEAKER").
		Rows(rows...).
		String()
}

func printLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		_, err := fmt.Fprintln(w, l)
		if err != nil {
			return err
		}
	}

	return nil
}
