package segment_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/rttmlabel/pkg/segment"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		wantErr  error
		speaker  string
		start    float64
		duration float64
	}{
		"valid": {
			start: 1.5, duration: 2.0, speaker: "spk_1",
		},
		"zero start": {
			start: 0, duration: 0.1, speaker: "spk_1",
		},
		"zero duration": {
			start: 1, duration: 0, speaker: "spk_1",
			wantErr: segment.ErrInvalidDuration,
		},
		"negative duration": {
			start: 1, duration: -2, speaker: "spk_1",
			wantErr: segment.ErrInvalidDuration,
		},
		"negative start": {
			start: -1, duration: 1, speaker: "spk_1",
			wantErr: segment.ErrInvalidStartTime,
		},
		"empty speaker": {
			start: 1, duration: 1, speaker: "",
			wantErr: segment.ErrMissingSpeaker,
		},
		"blank speaker": {
			start: 1, duration: 1, speaker: "   ",
			wantErr: segment.ErrMissingSpeaker,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := segment.New("file_a", tc.start, tc.duration, tc.speaker)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.ErrorIs(t, err, segment.ErrInvalidSegment)

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tc.start+tc.duration, got.EndTime, 1e-9)
			assert.Equal(t, "file_a", got.FileID)
		})
	}
}

func TestNewDerivesEndTime(t *testing.T) {
	t.Parallel()

	got, err := segment.New("f", 1.5, 2.0, " spk ")
	require.NoError(t, err)
	assert.InDelta(t, 3.5, got.EndTime, 1e-9)
	assert.Equal(t, "spk", got.SpeakerID)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		wantErr  error
		start    string
		duration string
		want     float64
	}{
		"plain":          {start: "1.5", duration: "2", want: 3.5},
		"whitespace":     {start: " 1.5 ", duration: "2.0\n", want: 3.5},
		"trailing unit":  {start: "1.5s", duration: "2s", want: 3.5},
		"leading dot":    {start: ".5", duration: "1", want: 1.5},
		"exponent":       {start: "1e0", duration: "2e-1", want: 1.2},
		"exponent unit":  {start: "1.5E1s", duration: "1", want: 16},
		"bare exponent":  {start: "1e", duration: "2", want: 3},
		"empty start":    {start: "", duration: "1", wantErr: segment.ErrInvalidStartTime},
		"text start":     {start: "abc", duration: "1", wantErr: segment.ErrInvalidStartTime},
		"empty duration": {start: "1", duration: "", wantErr: segment.ErrInvalidDuration},
		"zero duration":  {start: "1", duration: "0", wantErr: segment.ErrInvalidDuration},
		"negative start": {start: "-1", duration: "1", wantErr: segment.ErrInvalidStartTime},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := segment.Parse("f", tc.start, tc.duration, "spk")
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tc.want, got.EndTime, 1e-9)
		})
	}
}

func TestParseFloat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		text   string
		want   float64
		wantOK bool
	}{
		"exponent":          {text: "1e3", want: 1000, wantOK: true},
		"signed exponent":   {text: "25e-1", want: 2.5, wantOK: true},
		"exponent no digit": {text: "2e+", want: 2, wantOK: true},
		"infinity":          {text: "Infinity", want: math.Inf(1), wantOK: true},
		"negative infinity": {text: " -Infinity", want: math.Inf(-1), wantOK: true},
		"infinity suffix":   {text: "+Infinityx", want: math.Inf(1), wantOK: true},
		"overflow":          {text: "1e400", want: math.Inf(1), wantOK: true},
		"lowercase inf":     {text: "inf", wantOK: false},
		"sign only":         {text: "-", wantOK: false},
		"exponent only":     {text: "e3", wantOK: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := segment.ParseFloat(tc.text)
			require.Equal(t, tc.wantOK, ok)

			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestComplete(t *testing.T) {
	t.Parallel()

	s := segment.Segment{StartTime: 1, Duration: 2, EndTime: 99, SpeakerID: "a"}.Complete("f")
	assert.InDelta(t, 3.0, s.EndTime, 1e-9)
	assert.Equal(t, "f", s.FileID)

	s = segment.Segment{FileID: "other", StartTime: 1}.Complete("f")
	assert.Equal(t, "other", s.FileID)
	assert.Empty(t, s.SpeakerID)
	assert.InDelta(t, 1.0, s.EndTime, 1e-9)
}

func TestSegmentJSON(t *testing.T) {
	t.Parallel()

	s, err := segment.New("meeting", 1.5, 2, "spk_0")
	require.NoError(t, err)

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"start_time":1.5,"duration":2,"end_time":3.5,"speaker_id":"spk_0","file_id":"meeting"}`,
		string(b),
	)
}

func TestSegmentString(t *testing.T) {
	t.Parallel()

	s, err := segment.New("meeting", 1.5, 2, "spk_0")
	require.NoError(t, err)
	assert.Equal(t, "spk_0 [1.50-3.50]", s.String())
}
