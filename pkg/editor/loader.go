package editor

import (
	"context"
	"fmt"

	"github.com/macropower/rttmlabel/pkg/labelapi"
	"github.com/macropower/rttmlabel/pkg/notify"
	"github.com/macropower/rttmlabel/pkg/segment"
	"github.com/macropower/rttmlabel/pkg/session"
)

// FilesAPI is the part of the backend [Loader] uses.
type FilesAPI interface {
	LoadRTTM(ctx context.Context, rttmFile string, useSaved bool) (*labelapi.LoadedFile, error)
	CheckSavedEdits(ctx context.Context, rttmFile string) (*labelapi.SavedEdits, error)
	SaveLabels(ctx context.Context, fileID, rttmPath string, segs []segment.Segment) (*labelapi.SaveResult, error)
}

// Loader moves files between the backend and the session.
type Loader struct {
	api      FilesAPI
	state    *session.State
	notifier notify.Notifier
}

func NewLoader(state *session.State, api FilesAPI, n notify.Notifier) *Loader {
	return &Loader{state: state, api: api, notifier: n}
}

// HasSavedEdits reports whether rttmFile has saved edits.
func (l *Loader) HasSavedEdits(ctx context.Context, rttmFile string) (bool, error) {
	res, err := l.api.CheckSavedEdits(ctx, rttmFile)
	if err != nil {
		return false, fmt.Errorf("check saved edits: %w", err)
	}

	return res.HasSavedEdits, nil
}

// Load loads rttmFile into the session, replacing whatever was loaded.
// Segments are kept as the backend sent them, so a later save writes them
// back unchanged.
func (l *Loader) Load(ctx context.Context, rttmFile string, useSaved bool) (session.File, error) {
	res, err := l.api.LoadRTTM(ctx, rttmFile, useSaved)
	if err != nil {
		l.notify("Error loading RTTM file: "+labelapi.Message(err), notify.LevelDanger)

		return session.File{}, fmt.Errorf("load %s: %w", rttmFile, err)
	}

	segs := make([]segment.Segment, 0, len(res.Segments))
	for _, s := range res.Segments {
		segs = append(segs, s.Complete(res.FileID))
	}

	f := session.File{
		FileID:     res.FileID,
		RTTMPath:   res.RTTMPath,
		AudioURL:   res.AudioPath,
		SourceType: res.SourceType,
	}

	l.state.Load(f, segs)

	if res.RTTMDir != "" || res.AudioDir != "" {
		l.state.SetDirs(res.RTTMDir, res.AudioDir)
	}

	l.notify(fmt.Sprintf("Loaded %d segments from %s (%s)", len(segs), res.FileID, res.SourceType), notify.LevelInfo)

	return f, nil
}

// Save posts the session's segments to the backend.
func (l *Loader) Save(ctx context.Context) (*labelapi.SaveResult, error) {
	f, ok := l.state.File()
	if !ok {
		return nil, ErrNoFileLoaded
	}

	res, err := l.api.SaveLabels(ctx, f.FileID, f.RTTMPath, l.state.Segments())
	if err != nil {
		l.notify("Error saving labels: "+labelapi.Message(err), notify.LevelDanger)

		return nil, fmt.Errorf("save %s: %w", f.FileID, err)
	}

	l.notify(res.Message, notify.LevelSuccess)

	return res, nil
}

func (l *Loader) notify(msg string, level notify.Level) {
	if l.notifier != nil {
		l.notifier.Notify(msg, level)
	}
}
