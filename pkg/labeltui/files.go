package labeltui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/rttmlabel/pkg/editor"
	"github.com/macropower/rttmlabel/pkg/notify"
)

func (m *Model) setOptions(opts editor.Options) {
	m.options = opts

	if m.category > len(opts.Categories) {
		m.category = 0
	}

	m.cursor = min(m.cursor, max(0, len(m.visibleFiles())-1))
}

// currentCategory is the selected category filter; index zero shows all.
func (m *Model) currentCategory() string {
	if m.category == 0 || m.category > len(m.options.Categories) {
		return editor.AllCategories
	}

	return m.options.Categories[m.category-1]
}

func (m *Model) visibleFiles() []editor.FileOption {
	return m.options.InCategory(m.currentCategory())
}

func (m *Model) updateFiles(msg tea.KeyMsg) tea.Cmd {
	files := m.visibleFiles()

	switch msg.String() {
	case "q", "esc":
		return tea.Quit

	case "up", "k":
		m.cursor = max(0, m.cursor-1)

	case "down", "j":
		m.cursor = min(max(0, len(files)-1), m.cursor+1)

	case "tab":
		m.category = (m.category + 1) % (len(m.options.Categories) + 1)
		m.cursor = 0

	case "shift+tab":
		n := len(m.options.Categories) + 1
		m.category = (m.category + n - 1) % n
		m.cursor = 0

	case "enter", "e":
		if m.cursor >= len(files) {
			return nil
		}

		return tea.Batch(m.startBusy(), m.loadCmd(files[m.cursor].Path, msg.String() == "e"))

	case "v":
		if m.state.Loaded() {
			m.mode = ModeSegments
			m.syncTable()
		}

	case "f":
		m.openFolders()

	case "r":
		return tea.Batch(m.startBusy(), m.refreshCmd())

	case "R":
		return tea.Batch(m.startBusy(), m.resetDirsCmd())

	case "a":
		if !m.state.Loaded() {
			m.notes.Notify("Please load an RTTM file first", notify.LevelWarning)
		}
	}

	return nil
}

func (m *Model) viewFiles() string {
	b := &strings.Builder{}

	b.WriteString(titleStyle.Render("Files"))
	b.WriteString("  ")

	cats := append([]string{"All"}, m.options.Categories...)
	for i, c := range cats {
		if i == m.category {
			b.WriteString(selectedStyle.Render("[" + c + "]"))
		} else {
			b.WriteString(dimStyle.Render(" " + c + " "))
		}
	}

	b.WriteString("\n")

	files := m.visibleFiles()
	if len(files) == 0 {
		b.WriteString(dimStyle.Render("  No RTTM files"))
		b.WriteString("\n")
	}

	for i, f := range files {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + f.Path))
		} else {
			b.WriteString("  " + f.Path)
		}

		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(help("enter load", "e load saved", "tab category", "f folders", "r refresh", "R reset dirs", "v segments", "q quit"))
	b.WriteString("\n")

	return b.String()
}
