package labeltui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/rttmlabel/pkg/browser"
	"github.com/macropower/rttmlabel/pkg/editor"
)

func (m *Model) openFolders() {
	m.err = nil
	m.mode = ModeFolders

	dirs := m.state.Dirs()
	if m.folderFields.Get(editor.FieldRTTMFolder) == "" {
		m.folderFields.Set(editor.FieldRTTMFolder, dirs.RTTM)
	}

	if m.folderFields.Get(editor.FieldAudioFolder) == "" {
		m.folderFields.Set(editor.FieldAudioFolder, dirs.Audio)
	}

	m.syncFolderInputs()
	m.focusFolder(0)
}

func (m *Model) focusFolder(i int) tea.Cmd {
	n := len(m.folderInputs)
	m.folderFocus = (i%n + n) % n

	var cmd tea.Cmd

	for j := range m.folderInputs {
		if j == m.folderFocus {
			cmd = m.folderInputs[j].Focus()
		} else {
			m.folderInputs[j].Blur()
		}
	}

	return cmd
}

func (m *Model) syncFolderInputs() {
	for i, id := range editor.FolderConfigFields {
		m.folderInputs[i].SetValue(m.folderFields.Get(id))
	}
}

func (m *Model) focusedKind() browser.Kind {
	if editor.FolderConfigFields[m.folderFocus] == editor.FieldAudioFolder {
		return browser.KindAudio
	}

	return browser.KindRTTM
}

func (m *Model) updateFolders(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.err = nil
		m.mode = ModeFiles

		return nil

	case "tab", "down", "shift+tab", "up":
		return m.focusFolder(m.folderFocus + 1)

	case "ctrl+b":
		kind := m.focusedKind()
		m.mode = ModeBrowse
		m.browse = browseState{kind: kind}

		return tea.Batch(m.startBusy(), m.listDirsCmd(m.folders.StartPath(kind)))

	case "enter":
		m.err = nil

		return tea.Batch(m.startBusy(), m.submitFoldersCmd())
	}

	var cmd tea.Cmd
	m.folderInputs[m.folderFocus], cmd = m.folderInputs[m.folderFocus].Update(msg)
	m.folderFields.Set(editor.FolderConfigFields[m.folderFocus], m.folderInputs[m.folderFocus].Value())

	return cmd
}

func (m *Model) viewFolders() string {
	b := &strings.Builder{}

	b.WriteString(titleStyle.Render("Folders"))
	b.WriteString("\n\n")

	for i, kind := range []browser.Kind{browser.KindRTTM, browser.KindAudio} {
		text := kind.Label() + " folder"

		label := labelStyle.Render(text)
		if i == m.folderFocus {
			label = selectedStyle.Inherit(labelStyle).Render(text)
		}

		b.WriteString(label + m.folderInputs[i].View() + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errStyle.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(help("tab switch", "ctrl+b browse", "enter apply", "esc cancel"))

	return modalStyle.Render(b.String()) + "\n"
}

func (m *Model) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	dialog := browser.DialogFor(m.browse.kind)

	switch msg.String() {
	case "esc", "q":
		return m.postCmd(browser.DialogClosed{DialogID: dialog})
	}

	l := m.browse.listing
	if l == nil {
		return nil
	}

	switch msg.String() {
	case "up", "k":
		m.browse.cursor = max(0, m.browse.cursor-1)

	case "down", "j":
		m.browse.cursor = min(max(0, len(l.Directories)-1), m.browse.cursor+1)

	case "enter", "right", "l":
		if m.browse.cursor < len(l.Directories) {
			return tea.Batch(m.startBusy(), m.listDirsCmd(l.Directories[m.browse.cursor].Path))
		}

	case "backspace", "left", "h":
		return tea.Batch(m.startBusy(), m.listDirsCmd(m.paths.Parent(l.BasePath)))

	case "s", " ":
		return m.postCmd(browser.FolderSelected{DialogID: dialog, Path: l.BasePath})
	}

	return nil
}

func (m *Model) viewBrowse() string {
	b := &strings.Builder{}

	b.WriteString(titleStyle.Render("Select " + m.browse.kind.Label() + " folder"))
	b.WriteString("\n")

	l := m.browse.listing
	if l == nil {
		b.WriteString(dimStyle.Render("Loading..."))
		b.WriteString("\n")

		return modalStyle.Render(b.String()) + "\n"
	}

	b.WriteString("Browsing " + l.BasePath + "\n\n")

	if len(l.Directories) == 0 {
		b.WriteString(dimStyle.Render("  (no subdirectories)"))
		b.WriteString("\n")
	}

	for i, d := range l.Directories {
		if i == m.browse.cursor {
			b.WriteString(selectedStyle.Render("> " + d.Name + "/"))
		} else {
			b.WriteString("  " + d.Name + "/")
		}

		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(help("enter open", "backspace up", "s select this folder", "esc close"))

	return modalStyle.Render(b.String()) + "\n"
}
