package labeltui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/rttmlabel/pkg/notify"
	"github.com/macropower/rttmlabel/pkg/segment"
)

func (m *Model) syncTable() {
	segs := m.state.Segments()

	rows := make([]table.Row, 0, len(segs))
	for _, s := range segs {
		rows = append(rows, table.Row{
			segment.FormatSeconds(s.StartTime),
			segment.FormatSeconds(s.EndTime),
			segment.FormatSeconds(s.Duration),
			s.SpeakerID,
		})
	}

	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

func (m *Model) updateSegments(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit

	case "esc", "b":
		m.mode = ModeFiles

		return nil

	case "a":
		err := m.adder.Open()
		if err != nil {
			m.notes.Notify(err.Error(), notify.LevelWarning)

			return nil
		}

		m.err = nil
		m.mode = ModeAddSegment
		m.syncAddInputs()

		return m.focusAdd(0)

	case "d":
		if m.state.RemoveSegment(m.table.Cursor()) {
			m.syncTable()
			m.notes.Notify("Segment removed", notify.LevelInfo)
		}

		return nil

	case "s":
		return tea.Batch(m.startBusy(), m.saveCmd())

	case "p":
		segs := m.state.Segments()

		c := m.table.Cursor()
		if c < 0 || c >= len(segs) {
			return nil
		}

		return tea.Batch(m.startBusy(), m.clipCmd(segs[c]))
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return cmd
}

func (m *Model) viewSegments() string {
	b := &strings.Builder{}

	b.WriteString(titleStyle.Render("Segments"))
	b.WriteString(dimStyle.Render("  " + m.state.FileID()))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(help("a add", "d delete", "p clip", "s save", "esc files", "q quit"))
	b.WriteString("\n")

	return b.String()
}
