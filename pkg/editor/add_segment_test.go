package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/rttmlabel/pkg/editor"
	"github.com/macropower/rttmlabel/pkg/form"
	"github.com/macropower/rttmlabel/pkg/notify"
	"github.com/macropower/rttmlabel/pkg/segment"
	"github.com/macropower/rttmlabel/pkg/session"
)

func loadedState(t *testing.T, starts ...float64) *session.State {
	t.Helper()

	segs := []segment.Segment{}
	for _, s := range starts {
		seg, err := segment.New("meeting", s, 0.5, "spk")
		require.NoError(t, err)

		segs = append(segs, seg)
	}

	s := session.New()
	s.Load(session.File{FileID: "meeting", RTTMPath: "meeting.rttm"}, segs)

	return s
}

func startTimes(s *session.State) []float64 {
	out := []float64{}
	for _, seg := range s.Segments() {
		out = append(out, seg.StartTime)
	}

	return out
}

func TestNewAddSegmentRequiresFields(t *testing.T) {
	t.Parallel()

	_, err := editor.NewAddSegment(session.New(), form.NewFields(editor.FieldStartTime), nil)
	require.ErrorIs(t, err, form.ErrMissingFields)
	assert.Contains(t, err.Error(), editor.FieldSpeakerID)
}

func TestAddSegmentOpen(t *testing.T) {
	t.Parallel()

	fields := form.NewFields(editor.AddSegmentFields...)

	a, err := editor.NewAddSegment(session.New(), fields, nil)
	require.NoError(t, err)
	require.ErrorIs(t, a.Open(), editor.ErrNoFileLoaded)
	assert.False(t, a.IsOpen())

	a, err = editor.NewAddSegment(loadedState(t), fields, nil)
	require.NoError(t, err)

	fields.Set(editor.FieldSpeakerID, "stale")
	require.NoError(t, a.Open())
	assert.True(t, a.IsOpen())
	assert.Empty(t, fields.Get(editor.FieldSpeakerID))

	a.Close()
	assert.False(t, a.IsOpen())
}

func TestAddSegmentEdit(t *testing.T) {
	t.Parallel()

	fields := form.NewFields(editor.AddSegmentFields...)

	a, err := editor.NewAddSegment(loadedState(t), fields, nil)
	require.NoError(t, err)

	derived, err := a.Edit(editor.FieldStartTime, "1.5")
	require.NoError(t, err)
	assert.Empty(t, derived)
	assert.Empty(t, fields.Get(editor.FieldEndTime))

	derived, err = a.Edit(editor.FieldDuration, "2.0")
	require.NoError(t, err)
	assert.Equal(t, editor.FieldEndTime, derived)
	assert.Equal(t, "3.50", fields.Get(editor.FieldEndTime))

	derived, err = a.Edit(editor.FieldEndTime, "3.5")
	require.NoError(t, err)
	assert.Equal(t, editor.FieldDuration, derived)
	assert.Equal(t, "2.00", fields.Get(editor.FieldDuration))

	derived, err = a.Edit(editor.FieldStartTime, "x")
	require.NoError(t, err)
	assert.Empty(t, derived)
	assert.Equal(t, "2.00", fields.Get(editor.FieldDuration))
	assert.Equal(t, "3.50", fields.Get(editor.FieldEndTime))

	derived, err = a.Edit(editor.FieldSpeakerID, "spk_9")
	require.NoError(t, err)
	assert.Empty(t, derived)

	_, err = a.Edit("color", "red")
	require.ErrorIs(t, err, editor.ErrUnknownField)
}

func TestAddSegmentSetFromPosition(t *testing.T) {
	t.Parallel()

	fields := form.NewFields(editor.AddSegmentFields...)

	a, err := editor.NewAddSegment(loadedState(t), fields, nil)
	require.NoError(t, err)

	require.ErrorIs(t, a.SetFromPosition(3, false), editor.ErrNotPlaying)

	fields.Set(editor.FieldDuration, "1")
	require.NoError(t, a.SetFromPosition(2.25, true))
	assert.Equal(t, "2.25", fields.Get(editor.FieldStartTime))
	assert.Equal(t, "3.25", fields.Get(editor.FieldEndTime))
}

func TestAddSegmentSave(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		wantErr  error
		start    string
		duration string
		speaker  string
		want     []float64
	}{
		"inserted in order": {
			start: "0.5", duration: "1", speaker: "spk_2",
			want: []float64{0.5, 1, 2},
		},
		"appended": {
			start: "3", duration: "1", speaker: "spk_2",
			want: []float64{1, 2, 3},
		},
		"zero duration": {
			start: "1", duration: "0", speaker: "spk_2",
			wantErr: segment.ErrInvalidDuration,
			want:    []float64{1, 2},
		},
		"negative start": {
			start: "-1", duration: "1", speaker: "spk_2",
			wantErr: segment.ErrInvalidStartTime,
			want:    []float64{1, 2},
		},
		"empty speaker": {
			start: "1", duration: "1", speaker: " ",
			wantErr: segment.ErrMissingSpeaker,
			want:    []float64{1, 2},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			state := loadedState(t, 1, 2)
			fields := form.NewFields(editor.AddSegmentFields...)
			rec := notify.NewRecorder(0)

			a, err := editor.NewAddSegment(state, fields, rec)
			require.NoError(t, err)
			require.NoError(t, a.Open())

			fields.Set(editor.FieldStartTime, tc.start)
			fields.Set(editor.FieldDuration, tc.duration)
			fields.Set(editor.FieldSpeakerID, tc.speaker)

			seg, err := a.Save()
			assert.Equal(t, tc.want, startTimes(state))

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.True(t, a.IsOpen())
				assert.Empty(t, rec.All())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "meeting", seg.FileID)
			assert.False(t, a.IsOpen())

			last, ok := rec.Last()
			require.True(t, ok)
			assert.Equal(t, "New segment added successfully", last.Message)
			assert.Equal(t, notify.LevelSuccess, last.Level)
		})
	}
}

func TestAddSegmentSaveWithoutFile(t *testing.T) {
	t.Parallel()

	a, err := editor.NewAddSegment(session.New(), form.NewFields(editor.AddSegmentFields...), nil)
	require.NoError(t, err)

	_, err = a.Save()
	require.ErrorIs(t, err, editor.ErrNoFileLoaded)
}
