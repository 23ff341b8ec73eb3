package labeltui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/rttmlabel/pkg/browser"
	"github.com/macropower/rttmlabel/pkg/editor"
	"github.com/macropower/rttmlabel/pkg/labelapi"
	"github.com/macropower/rttmlabel/pkg/segment"
	"github.com/macropower/rttmlabel/pkg/session"
)

type (
	listingMsg struct {
		err     error
		listing editor.Listing
	}

	loadedMsg struct {
		err  error
		file session.File
	}

	savedMsg struct {
		err error
		res *labelapi.SaveResult
	}

	clipMsg struct {
		err error
		url string
	}

	foldersMsg struct {
		err     error
		options editor.Options
	}

	dirsMsg struct {
		err     error
		listing *labelapi.DirectoryListing
	}

	browserMsg struct {
		err error
		msg browser.Message
	}

	postedMsg struct {
		err error
	}
)

func (m *Model) refreshCmd() tea.Cmd {
	ctx := m.ctx

	return func() tea.Msg {
		l, err := m.dirs.Refresh(ctx)

		return listingMsg{listing: l, err: err}
	}
}

func (m *Model) resetDirsCmd() tea.Cmd {
	ctx := m.ctx

	return func() tea.Msg {
		l, err := m.dirs.Reset(ctx)

		return listingMsg{listing: l, err: err}
	}
}

func (m *Model) loadCmd(file string, useSaved bool) tea.Cmd {
	ctx := m.ctx

	return func() tea.Msg {
		f, err := m.loader.Load(ctx, file, useSaved)

		return loadedMsg{file: f, err: err}
	}
}

func (m *Model) saveCmd() tea.Cmd {
	ctx := m.ctx

	return func() tea.Msg {
		res, err := m.loader.Save(ctx)

		return savedMsg{res: res, err: err}
	}
}

func (m *Model) clipCmd(seg segment.Segment) tea.Cmd {
	ctx := m.ctx
	f, _ := m.state.File()

	return func() tea.Msg {
		url, err := m.api.SegmentURL(ctx, f.FileID, f.RTTMPath, seg)

		return clipMsg{url: url, err: err}
	}
}

func (m *Model) submitFoldersCmd() tea.Cmd {
	ctx := m.ctx

	return func() tea.Msg {
		opts, err := m.folders.Submit(ctx)

		return foldersMsg{options: opts, err: err}
	}
}

func (m *Model) listDirsCmd(path string) tea.Cmd {
	ctx := m.ctx

	return func() tea.Msg {
		l, err := m.api.GetDirectories(ctx, path)

		return dirsMsg{listing: l, err: err}
	}
}

// postCmd plays the part of the browse dialog: it sends msg over the channel
// in wire form.
func (m *Model) postCmd(msg browser.Message) tea.Cmd {
	ctx := m.ctx

	return func() tea.Msg {
		raw, err := browser.Encode(msg)
		if err != nil {
			return postedMsg{err: err}
		}

		return postedMsg{err: m.channel.Post(ctx, raw)}
	}
}

func (m *Model) waitBrowserCmd() tea.Cmd {
	ctx := m.ctx

	return func() tea.Msg {
		msg, err := m.channel.Receive(ctx)
		if err != nil && (errors.Is(err, browser.ErrClosed) || errors.Is(err, context.Canceled)) {
			return nil
		}

		return browserMsg{msg: msg, err: err}
	}
}
