// Package labeltui is the terminal front end of the annotation tool.
//
// A single [Model] owns the screen. Backend calls run as [tea.Cmd]s, and
// their results come back as messages on the program's update loop, so the
// session is only ever changed from one place.
package labeltui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/rttmlabel/pkg/notify"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("211"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	labelStyle    = lipgloss.NewStyle().Width(14)
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	levelStyles = map[notify.Level]lipgloss.Style{
		notify.LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		notify.LevelSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		notify.LevelWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		notify.LevelDanger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

type (
	// Sent to write a log message.
	teaMsgWriteLog string
)

func writeLog(msg teaMsgWriteLog, width int) tea.Cmd {
	logMsg := string(msg)
	logMsg = strings.Trim(logMsg, "\r\n")
	logMsg = lipgloss.NewStyle().Width(max(0, width-2)).Render(logMsg)

	return tea.Println(logMsg)
}

func renderNotification(n notify.Notification) string {
	style, ok := levelStyles[n.Level]
	if !ok {
		style = levelStyles[notify.LevelInfo]
	}

	return style.Render(n.Level.Title()+":") + " " + n.Message
}

func help(keys ...string) string {
	return dimStyle.Render(strings.Join(keys, " • "))
}
