package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/rttmlabel/pkg/editor"
	"github.com/macropower/rttmlabel/pkg/labelapi"
	"github.com/macropower/rttmlabel/pkg/labelapi/labelapitest"
	"github.com/macropower/rttmlabel/pkg/notify"
	"github.com/macropower/rttmlabel/pkg/segment"
	"github.com/macropower/rttmlabel/pkg/session"
)

func TestLoaderRoundTrip(t *testing.T) {
	t.Parallel()

	b := labelapitest.New(t)
	b.Segments["odd.rttm"] = []segment.Segment{
		{SpeakerID: "a", StartTime: 1, Duration: 1},
		{SpeakerID: "", StartTime: 2, Duration: 1},
		{SpeakerID: "b", StartTime: 3, Duration: 0},
	}

	state := session.New()
	rec := notify.NewRecorder(0)
	l := editor.NewLoader(state, b.Client(t), rec)
	ctx := t.Context()

	_, err := l.Save(ctx)
	require.ErrorIs(t, err, editor.ErrNoFileLoaded)

	f, err := l.Load(ctx, "meeting.rttm", false)
	require.NoError(t, err)
	assert.Equal(t, "meeting", f.FileID)
	assert.Equal(t, "/audio/meeting.wav", f.AudioURL)
	assert.Equal(t, "original", f.SourceType)
	assert.Len(t, state.Segments(), 2)
	assert.Equal(t, session.Dirs{RTTM: labelapitest.DefaultRTTMDir, Audio: labelapitest.DefaultAudioDir}, state.Dirs())

	seg, err := segment.New("meeting", 0.5, 0.25, "spk_9")
	require.NoError(t, err)
	state.AddSegment(seg)

	res, err := l.Save(ctx)
	require.NoError(t, err)
	assert.True(t, res.Success)

	saved, ok := b.SavedSegments("meeting.rttm")
	require.True(t, ok)
	require.Len(t, saved, 3)
	assert.InDelta(t, 0.5, saved[0].StartTime, 1e-9)

	has, err := l.HasSavedEdits(ctx, "meeting.rttm")
	require.NoError(t, err)
	assert.True(t, has)

	f, err = l.Load(ctx, "meeting.rttm", true)
	require.NoError(t, err)
	assert.Equal(t, "saved", f.SourceType)
	assert.Len(t, state.Segments(), 3)

	f, err = l.Load(ctx, "odd.rttm", false)
	require.NoError(t, err)
	assert.Equal(t, "odd", f.FileID)
	require.Len(t, state.Segments(), 3)
	assert.Equal(t, "odd", state.Segments()[0].FileID)
	assert.InDelta(t, 2.0, state.Segments()[0].EndTime, 1e-9)

	_, err = l.Save(ctx)
	require.NoError(t, err)

	saved, ok = b.SavedSegments("odd.rttm")
	require.True(t, ok)
	require.Len(t, saved, 3)
	assert.Empty(t, saved[1].SpeakerID)
	assert.Zero(t, saved[2].Duration)
	assert.InDelta(t, 3.0, saved[2].EndTime, 1e-9)

	_, err = l.Load(ctx, "missing.rttm", false)
	require.ErrorIs(t, err, labelapi.ErrServer)

	last, _ := rec.Last()
	assert.Equal(t, "Error loading RTTM file: Original RTTM file not found", last.Message)
	assert.Equal(t, "odd", state.FileID())
}
