package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/macropower/rttmlabel/pkg/browser"
	"github.com/macropower/rttmlabel/pkg/syncs"
)

var ErrMissingFolders = errors.New("please select both RTTM and Audio folders")

// FoldersAPI is the part of the backend [FolderSelection] uses.
type FoldersAPI interface {
	SetFolderPath(ctx context.Context, kind browser.Kind, path string) error
	ListFiles(ctx context.Context, kind browser.Kind) ([]string, error)
}

// FolderSelection selects the folders files are listed from.
type FolderSelection struct {
	api   FoldersAPI
	locks *syncs.KeyLock[browser.Kind]
}

func NewFolderSelection(api FoldersAPI) *FolderSelection {
	return &FolderSelection{api: api, locks: syncs.NewKeyLock[browser.Kind]()}
}

// SetFolder selects the folder for kind. Calls for the same kind are
// serialized, so the last call made is the last one the backend sees.
func (f *FolderSelection) SetFolder(ctx context.Context, kind browser.Kind, path string) error {
	return f.locks.Do(kind, func() error {
		err := f.api.SetFolderPath(ctx, kind, path)
		if err != nil {
			return fmt.Errorf("set %s folder path: %w", kind, err)
		}

		slog.Debug("folder path set",
			slog.String("kind", string(kind)),
			slog.String("path", path),
		)

		return nil
	})
}

// Confirm selects both folders, then lists the RTTM files of the new RTTM
// folder.
func (f *FolderSelection) Confirm(ctx context.Context, rttmFolder, audioFolder string) ([]string, error) {
	rttmFolder = strings.TrimSpace(rttmFolder)
	audioFolder = strings.TrimSpace(audioFolder)

	if rttmFolder == "" || audioFolder == "" {
		return nil, ErrMissingFolders
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return f.SetFolder(gctx, browser.KindRTTM, rttmFolder) })
	g.Go(func() error { return f.SetFolder(gctx, browser.KindAudio, audioFolder) })

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	files, err := f.api.ListFiles(ctx, browser.KindRTTM)
	if err != nil {
		return nil, fmt.Errorf("list rttm files: %w", err)
	}

	return files, nil
}

// SelectRTTM lists the audio files available for the selected RTTM file. An
// empty selection lists nothing.
func (f *FolderSelection) SelectRTTM(ctx context.Context, rttmFile string) ([]string, error) {
	if rttmFile == "" {
		return nil, nil
	}

	files, err := f.api.ListFiles(ctx, browser.KindAudio)
	if err != nil {
		return nil, fmt.Errorf("list audio files: %w", err)
	}

	return files, nil
}
