package labeltui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/rttmlabel/pkg/editor"
)

var addLabels = map[string]string{
	editor.FieldStartTime: "Start time",
	editor.FieldDuration:  "Duration",
	editor.FieldEndTime:   "End time",
	editor.FieldSpeakerID: "Speaker ID",
}

func (m *Model) focusAdd(i int) tea.Cmd {
	n := len(m.addInputs)
	m.addFocus = (i%n + n) % n

	var cmd tea.Cmd

	for j := range m.addInputs {
		if j == m.addFocus {
			cmd = m.addInputs[j].Focus()
		} else {
			m.addInputs[j].Blur()
		}
	}

	return cmd
}

func (m *Model) syncAddInputs() {
	for i, id := range editor.AddSegmentFields {
		m.addInputs[i].SetValue(m.addFields.Get(id))
	}
}

func (m *Model) updateAddSegment(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.adder.Close()
		m.mode = ModeSegments

		return nil

	case "tab", "down":
		return m.focusAdd(m.addFocus + 1)

	case "shift+tab", "up":
		return m.focusAdd(m.addFocus - 1)

	case "enter":
		_, err := m.adder.Save()
		if err != nil {
			m.err = err

			return nil
		}

		m.err = nil
		m.mode = ModeSegments
		m.syncTable()

		return nil
	}

	var cmd tea.Cmd
	m.addInputs[m.addFocus], cmd = m.addInputs[m.addFocus].Update(msg)

	id := editor.AddSegmentFields[m.addFocus]

	derived, err := m.adder.Edit(id, m.addInputs[m.addFocus].Value())
	if err != nil || derived == "" {
		return cmd
	}

	for i, other := range editor.AddSegmentFields {
		if other == derived {
			m.addInputs[i].SetValue(m.addFields.Get(derived))
		}
	}

	return cmd
}

func (m *Model) viewAddSegment() string {
	b := &strings.Builder{}

	b.WriteString(titleStyle.Render("Add segment"))
	b.WriteString("\n\n")

	for i, id := range editor.AddSegmentFields {
		label := labelStyle.Render(addLabels[id])
		if i == m.addFocus {
			label = selectedStyle.Inherit(labelStyle).Render(addLabels[id])
		}

		b.WriteString(label + m.addInputs[i].View() + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errStyle.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(help("tab next", "enter save", "esc cancel"))

	return modalStyle.Render(b.String()) + "\n"
}
