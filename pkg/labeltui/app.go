package labeltui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/rttmlabel/pkg/log"
)

// App runs a [Model] as a full screen program. Logs written while the
// program runs are printed above it.
type App struct {
	model *Model
	p     *tea.Program
	w     io.Writer
}

// NewApp creates an [App] drawing to w. The default logger is replaced with
// one that writes through the program at lvl.
func NewApp(w io.Writer, lvl slog.Level, model *Model) *App {
	a := &App{
		model: model,
		w:     w,
	}

	slog.SetDefault(
		slog.New(log.CreateHandler(a, lvl, log.FormatText)),
	)

	return a
}

func (a *App) Write(p []byte) (int, error) {
	if a.p != nil {
		a.p.Send(teaMsgWriteLog(string(p)))
	}

	return len(p), nil
}

// Run blocks until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.model.Close()

	a.p = tea.NewProgram(a.model, tea.WithOutput(a.w), tea.WithContext(ctx))

	_, err := a.p.Run()
	if err != nil {
		return fmt.Errorf("launch tui: %w", err)
	}

	return nil
}
