package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/macropower/rttmlabel/pkg/browser"
	"github.com/macropower/rttmlabel/pkg/form"
	"github.com/macropower/rttmlabel/pkg/labelapi"
	"github.com/macropower/rttmlabel/pkg/notify"
	"github.com/macropower/rttmlabel/pkg/pathutil"
	"github.com/macropower/rttmlabel/pkg/session"
)

const (
	FieldRTTMFolder  = "rttm-folder"
	FieldAudioFolder = "audio-folder"
)

var ErrInvalidFolder = errors.New("please enter a valid folder path")

// FolderConfigFields lists the fields [FolderConfig] needs.
var FolderConfigFields = []string{FieldRTTMFolder, FieldAudioFolder}

// PathsAPI is the part of the backend [FolderConfig] uses.
type PathsAPI interface {
	UpdatePaths(ctx context.Context, rttmDir, audioDir string) (*labelapi.FileList, error)
	BrowseDialogURL(startPath, dialogID string) string
}

// FolderConfig drives the folder configuration form, including the folder
// browser dialogs it opens.
type FolderConfig struct {
	api      PathsAPI
	state    *session.State
	paths    *pathutil.Paths
	fields   form.Fields
	notifier notify.Notifier
}

// NewFolderConfig creates a [FolderConfig] controller.
func NewFolderConfig(
	state *session.State,
	fields form.Fields,
	api PathsAPI,
	paths *pathutil.Paths,
	n notify.Notifier,
) (*FolderConfig, error) {
	err := fields.Require(FolderConfigFields...)
	if err != nil {
		return nil, err
	}

	if paths == nil {
		paths = pathutil.New(nil)
	}

	return &FolderConfig{state: state, fields: fields, api: api, paths: paths, notifier: n}, nil
}

// FieldFor returns the field ID holding the folder of kind.
func FieldFor(kind browser.Kind) string {
	if kind == browser.KindAudio {
		return FieldAudioFolder
	}

	return FieldRTTMFolder
}

// Browse returns the URL of the folder browser for kind. Browsing starts at
// the current field value, or at the root of the file system.
func (c *FolderConfig) Browse(kind browser.Kind) string {
	start := c.fields.Trimmed(FieldFor(kind))
	if start == "" {
		start = c.paths.DefaultRoot()
	}

	return c.api.BrowseDialogURL(start, browser.DialogFor(kind))
}

// StartPath is the path a browser for kind opens at.
func (c *FolderConfig) StartPath(kind browser.Kind) string {
	start := c.fields.Trimmed(FieldFor(kind))
	if start == "" {
		return c.paths.DefaultRoot()
	}

	return c.paths.Normalize(start)
}

// HandleMessage applies a browser message. It reports whether a field was
// updated.
func (c *FolderConfig) HandleMessage(msg browser.Message) bool {
	sel, ok := msg.(browser.FolderSelected)
	if !ok {
		return false
	}

	kind, ok := browser.KindOf(sel.DialogID)
	if !ok {
		return false
	}

	c.fields.Set(FieldFor(kind), sel.Path)
	c.notify(fmt.Sprintf("%s folder selected: %s", kind.Label(), sel.Path), notify.LevelInfo)

	return true
}

// PickFolder is the fallback when only a relative path below the picked
// folder is known: the folder name replaces the last part of the current
// value.
func (c *FolderConfig) PickFolder(kind browser.Kind, relPath string) bool {
	folder := pathutil.FirstDir(relPath)
	if folder == "" {
		return false
	}

	id := FieldFor(kind)
	c.fields.Set(id, pathutil.ReplaceLast(c.fields.Get(id), folder))
	c.notify(fmt.Sprintf("Selected %s folder: %s", kind.Label(), folder), notify.LevelInfo)

	return true
}

// Submit sends both folders to the backend. On success the loaded file, if
// any, is unloaded and the new file options are returned.
func (c *FolderConfig) Submit(ctx context.Context) (Options, error) {
	rttmDir := c.fields.Trimmed(FieldRTTMFolder)
	if rttmDir == "" {
		return Options{}, fmt.Errorf("%w: RTTM folder", ErrInvalidFolder)
	}

	audioDir := c.fields.Trimmed(FieldAudioFolder)
	if audioDir == "" {
		return Options{}, fmt.Errorf("%w: audio folder", ErrInvalidFolder)
	}

	list, err := c.api.UpdatePaths(ctx, rttmDir, audioDir)
	if err != nil {
		if errors.Is(err, labelapi.ErrServer) {
			c.notify(labelapi.Message(err), notify.LevelDanger)
		} else {
			c.notify("Error updating folders: "+err.Error(), notify.LevelDanger)
		}

		return Options{}, fmt.Errorf("update folders: %w", err)
	}

	c.state.SetDirs(rttmDir, audioDir)

	if c.state.Loaded() {
		slog.Info("unloading file after folder change",
			slog.String("session", c.state.ID()),
			slog.String("file_id", c.state.FileID()),
		)
		c.state.Reset()
	}

	c.notify("Folders updated successfully. Please select an RTTM file to load.", notify.LevelSuccess)

	return NewOptions(list), nil
}

func (c *FolderConfig) notify(msg string, level notify.Level) {
	if c.notifier != nil {
		c.notifier.Notify(msg, level)
	}
}
