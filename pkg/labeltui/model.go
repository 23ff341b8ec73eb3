package labeltui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/rttmlabel/pkg/browser"
	"github.com/macropower/rttmlabel/pkg/editor"
	"github.com/macropower/rttmlabel/pkg/form"
	"github.com/macropower/rttmlabel/pkg/labelapi"
	"github.com/macropower/rttmlabel/pkg/notify"
	"github.com/macropower/rttmlabel/pkg/pathutil"
	"github.com/macropower/rttmlabel/pkg/segment"
	"github.com/macropower/rttmlabel/pkg/session"
)

// API is the backend surface the TUI needs.
type API interface {
	editor.PathsAPI
	editor.DirectoriesAPI
	editor.FilesAPI
	GetDirectories(ctx context.Context, basePath string) (*labelapi.DirectoryListing, error)
	SegmentURL(ctx context.Context, fileID, rttmPath string, seg segment.Segment) (string, error)
}

// Mode is the screen the model shows.
type Mode int

const (
	ModeFiles Mode = iota
	ModeSegments
	ModeAddSegment
	ModeFolders
	ModeBrowse
)

// Config configures a [Model].
type Config struct {
	API API
	// Paths decides the path style of folder fields. Defaults to the local
	// host.
	Paths *pathutil.Paths
	// State is the session to edit. A new one is created when nil.
	State *session.State
	// Defaults are restored by the reset key.
	Defaults session.Dirs
}

type browseState struct {
	listing *labelapi.DirectoryListing
	kind    browser.Kind
	cursor  int
}

// Model is the root [tea.Model].
type Model struct {
	ctx          context.Context
	api          API
	state        *session.State
	paths        *pathutil.Paths
	channel      *browser.Channel
	notes        *notify.Recorder
	loader       *editor.Loader
	adder        *editor.AddSegment
	folders      *editor.FolderConfig
	dirs         *editor.DirectorySelection
	addFields    form.Fields
	folderFields form.Fields
	err          error
	browse       browseState
	options      editor.Options
	addInputs    []textinput.Model
	folderInputs []textinput.Model
	table        table.Model
	spinner      spinner.Model
	category     int
	cursor       int
	addFocus     int
	folderFocus  int
	width        int
	height       int
	mode         Mode
	busy         bool
}

// NewModel creates a [Model]. Backend calls made by the model use ctx.
func NewModel(ctx context.Context, cfg Config) (*Model, error) {
	if cfg.API == nil {
		return nil, fmt.Errorf("%w: no backend", labelapi.ErrRequest)
	}

	state := cfg.State
	if state == nil {
		state = session.New()
	}

	paths := cfg.Paths
	if paths == nil {
		paths = pathutil.New(nil)
	}

	m := &Model{
		ctx:          ctx,
		api:          cfg.API,
		state:        state,
		paths:        paths,
		channel:      browser.NewChannel(4),
		notes:        notify.NewRecorder(20),
		addFields:    form.NewFields(editor.AddSegmentFields...),
		folderFields: form.NewFields(editor.FolderConfigFields...),
	}

	var err error

	m.adder, err = editor.NewAddSegment(state, m.addFields, m.notes)
	if err != nil {
		return nil, err
	}

	m.folders, err = editor.NewFolderConfig(state, m.folderFields, cfg.API, paths, m.notes)
	if err != nil {
		return nil, err
	}

	m.dirs, err = editor.NewDirectorySelection(
		state,
		form.NewFields(editor.DirectorySelectionFields...),
		cfg.API,
		notify.NewBanner(nil),
		cfg.Defaults,
	)
	if err != nil {
		return nil, err
	}

	m.loader = editor.NewLoader(state, cfg.API, m.notes)

	m.addInputs = newInputs(map[string]string{
		editor.FieldStartTime: "Start (s)",
		editor.FieldDuration:  "Duration (s)",
		editor.FieldEndTime:   "End (s)",
		editor.FieldSpeakerID: "Speaker ID",
	}, editor.AddSegmentFields)
	m.folderInputs = newInputs(map[string]string{
		editor.FieldRTTMFolder:  paths.DefaultRoot(),
		editor.FieldAudioFolder: paths.DefaultRoot(),
	}, editor.FolderConfigFields)

	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "Start", Width: 9},
			{Title: "End", Width: 9},
			{Title: "Duration", Width: 9},
			{Title: "Speaker", Width: 20},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	m.spinner = spinner.New()
	m.spinner.Style = spinnerStyle

	return m, nil
}

func newInputs(placeholders map[string]string, ids []string) []textinput.Model {
	inputs := make([]textinput.Model, 0, len(ids))
	for _, id := range ids {
		in := textinput.New()
		in.Placeholder = placeholders[id]
		in.Prompt = ""
		inputs = append(inputs, in)
	}

	return inputs
}

// State returns the session the model edits.
func (m *Model) State() *session.State { return m.state }

// Mode returns the current screen.
func (m *Model) Mode() Mode { return m.mode }

// Notifications returns the notifications shown so far.
func (m *Model) Notifications() []notify.Notification { return m.notes.All() }

// Close releases the browse dialog channel.
func (m *Model) Close() { m.channel.Close() }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.startBusy(), m.refreshCmd(), m.waitBrowserCmd())
}

func (m *Model) startBusy() tea.Cmd {
	m.busy = true

	return m.spinner.Tick
}

//nolint:ireturn // Third-party.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(3, msg.Height-10))

		return m, nil

	case teaMsgWriteLog:
		return m, writeLog(msg, m.width)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case listingMsg:
		m.busy = false

		if msg.err != nil {
			m.notes.Notify("Error refreshing files: "+labelapi.Message(msg.err), notify.LevelDanger)

			return m, nil
		}

		m.setOptions(msg.listing.Options)

		return m, nil

	case loadedMsg:
		m.busy = false

		if msg.err == nil {
			m.mode = ModeSegments
			m.syncTable()
		}

		return m, nil

	case savedMsg:
		m.busy = false

		return m, nil

	case clipMsg:
		m.busy = false

		if msg.err != nil {
			m.notes.Notify("Error getting segment: "+labelapi.Message(msg.err), notify.LevelDanger)

			return m, nil
		}

		m.notes.Notify("Segment audio: "+msg.url, notify.LevelInfo)

		return m, nil

	case foldersMsg:
		m.busy = false

		if msg.err != nil {
			m.err = msg.err

			return m, nil
		}

		m.err = nil
		m.mode = ModeFiles
		m.setOptions(msg.options)
		m.syncTable()

		return m, nil

	case dirsMsg:
		m.busy = false

		if msg.err != nil {
			m.notes.Notify(labelapi.Message(msg.err), notify.LevelDanger)

			return m, nil
		}

		m.browse.listing = msg.listing
		m.browse.cursor = 0

		return m, nil

	case postedMsg:
		if msg.err != nil {
			slog.Error("post browser message", slog.Any("err", msg.err))
		}

		return m, nil

	case browserMsg:
		return m, m.handleBrowser(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.mode {
		case ModeFiles:
			return m, m.updateFiles(msg)
		case ModeSegments:
			return m, m.updateSegments(msg)
		case ModeAddSegment:
			return m, m.updateAddSegment(msg)
		case ModeFolders:
			return m, m.updateFolders(msg)
		case ModeBrowse:
			return m, m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m *Model) handleBrowser(msg browserMsg) tea.Cmd {
	if msg.err != nil {
		slog.Warn("browser message", slog.Any("err", msg.err))

		return m.waitBrowserCmd()
	}

	if m.folders.HandleMessage(msg.msg) {
		m.syncFolderInputs()
	}

	if m.mode == ModeBrowse {
		m.mode = ModeFolders
		m.browse = browseState{}
	}

	return m.waitBrowserCmd()
}

func (m *Model) View() string {
	b := &strings.Builder{}

	b.WriteString(titleStyle.Render("rttmlabel"))

	if f, ok := m.state.File(); ok {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %s (%s)", f.RTTMPath, f.SourceType)))
	} else {
		b.WriteString(dimStyle.Render("  No file loaded"))
	}

	b.WriteString("\n")

	if dirs := m.state.Dirs(); dirs.RTTM != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("RTTM: %s  Audio: %s", dirs.RTTM, dirs.Audio)))
		b.WriteString("\n")
	}

	if n, ok := m.dirs.Banner().Current(time.Now()); ok {
		b.WriteString(renderNotification(n))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	switch m.mode {
	case ModeFiles:
		b.WriteString(m.viewFiles())
	case ModeSegments:
		b.WriteString(m.viewSegments())
	case ModeAddSegment:
		b.WriteString(m.viewAddSegment())
	case ModeFolders:
		b.WriteString(m.viewFolders())
	case ModeBrowse:
		b.WriteString(m.viewBrowse())
	}

	b.WriteString("\n")

	if m.busy {
		b.WriteString(m.spinner.View() + " Working...\n")
	}

	if n, ok := m.notes.Last(); ok {
		b.WriteString(renderNotification(n))
		b.WriteString("\n")
	}

	return b.String()
}
