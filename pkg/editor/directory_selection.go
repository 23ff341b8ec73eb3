package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/macropower/rttmlabel/pkg/form"
	"github.com/macropower/rttmlabel/pkg/labelapi"
	"github.com/macropower/rttmlabel/pkg/notify"
	"github.com/macropower/rttmlabel/pkg/session"
)

const (
	FieldRTTMDir  = "rttm-dir-input"
	FieldAudioDir = "audio-dir-input"
)

var ErrMissingDirectories = errors.New("please enter both RTTM and Audio directories")

// DirectorySelectionFields lists the fields [DirectorySelection] needs.
var DirectorySelectionFields = []string{FieldRTTMDir, FieldAudioDir}

// DirectoriesAPI is the part of the backend [DirectorySelection] uses.
type DirectoriesAPI interface {
	SetDirectories(ctx context.Context, rttmDir, audioDir string) error
	RefreshFileList(ctx context.Context) (*labelapi.FileList, error)
}

// Listing is the result of refreshing the file list.
type Listing struct {
	Dirs    session.Dirs `json:"dirs" yaml:"dirs"`
	Options Options      `json:"options" yaml:"options"`
}

// DirectorySelection drives the directory form. Results are reported on a
// status [notify.Banner].
type DirectorySelection struct {
	api      DirectoriesAPI
	state    *session.State
	banner   *notify.Banner
	fields   form.Fields
	defaults session.Dirs
}

// NewDirectorySelection creates a [DirectorySelection] controller. defaults
// are restored by [DirectorySelection.Reset].
func NewDirectorySelection(
	state *session.State,
	fields form.Fields,
	api DirectoriesAPI,
	banner *notify.Banner,
	defaults session.Dirs,
) (*DirectorySelection, error) {
	err := fields.Require(DirectorySelectionFields...)
	if err != nil {
		return nil, err
	}

	if banner == nil {
		banner = notify.NewBanner(nil)
	}

	return &DirectorySelection{
		state:    state,
		fields:   fields,
		api:      api,
		banner:   banner,
		defaults: defaults,
	}, nil
}

// Banner returns the status banner.
func (d *DirectorySelection) Banner() *notify.Banner {
	return d.banner
}

// Set sends the entered directories to the backend and refreshes the file
// list.
func (d *DirectorySelection) Set(ctx context.Context) (Listing, error) {
	rttmDir := d.fields.Trimmed(FieldRTTMDir)
	audioDir := d.fields.Trimmed(FieldAudioDir)

	if rttmDir == "" || audioDir == "" {
		d.banner.Show("Please enter both RTTM and Audio directories", notify.LevelDanger)

		return Listing{}, ErrMissingDirectories
	}

	err := d.post(ctx, rttmDir, audioDir, "Directories updated successfully")
	if err != nil {
		return Listing{}, err
	}

	return d.Refresh(ctx)
}

// Reset restores the default directories, sends them to the backend and
// refreshes the file list.
func (d *DirectorySelection) Reset(ctx context.Context) (Listing, error) {
	d.fields.Set(FieldRTTMDir, d.defaults.RTTM)
	d.fields.Set(FieldAudioDir, d.defaults.Audio)

	err := d.post(ctx, d.defaults.RTTM, d.defaults.Audio, "Directories reset to defaults")
	if err != nil {
		return Listing{}, err
	}

	return d.Refresh(ctx)
}

// Refresh fetches the file list and the directories the backend uses.
func (d *DirectorySelection) Refresh(ctx context.Context) (Listing, error) {
	list, err := d.api.RefreshFileList(ctx)
	if err != nil {
		slog.Error("refresh file list", slog.Any("err", err))

		return Listing{}, fmt.Errorf("refresh file list: %w", err)
	}

	if list.CurrentRTTMDir != "" || list.CurrentAudioDir != "" {
		d.state.SetDirs(list.CurrentRTTMDir, list.CurrentAudioDir)
	}

	return Listing{Options: NewOptions(list), Dirs: d.state.Dirs()}, nil
}

func (d *DirectorySelection) post(ctx context.Context, rttmDir, audioDir, okMsg string) error {
	err := d.api.SetDirectories(ctx, rttmDir, audioDir)
	if err != nil {
		d.banner.Show("Error: "+labelapi.Message(err), notify.LevelDanger)

		return fmt.Errorf("set directories: %w", err)
	}

	d.state.SetDirs(rttmDir, audioDir)
	d.banner.Show(okMsg, notify.LevelSuccess)

	return nil
}
