package editor

import (
	"errors"
	"log/slog"

	"github.com/macropower/rttmlabel/pkg/form"
	"github.com/macropower/rttmlabel/pkg/notify"
	"github.com/macropower/rttmlabel/pkg/segment"
	"github.com/macropower/rttmlabel/pkg/session"
)

const (
	FieldStartTime = "new-start-time"
	FieldDuration  = "new-duration"
	FieldEndTime   = "new-end-time"
	FieldSpeakerID = "new-speaker-id"
)

var (
	ErrNoFileLoaded = errors.New("please load an RTTM file first")
	ErrNotPlaying   = errors.New("please start playing the full audio first")
	ErrUnknownField = errors.New("unknown field")
)

// AddSegmentFields lists the fields [AddSegment] needs.
var AddSegmentFields = []string{FieldStartTime, FieldDuration, FieldEndTime, FieldSpeakerID}

var timeFields = map[string]segment.Field{
	FieldStartTime: segment.FieldStart,
	FieldDuration:  segment.FieldDuration,
	FieldEndTime:   segment.FieldEnd,
}

// AddSegment drives the "add segment" form.
type AddSegment struct {
	state    *session.State
	fields   form.Fields
	notifier notify.Notifier
	open     bool
}

// NewAddSegment creates an [AddSegment] controller.
func NewAddSegment(state *session.State, fields form.Fields, n notify.Notifier) (*AddSegment, error) {
	err := fields.Require(AddSegmentFields...)
	if err != nil {
		return nil, err
	}

	return &AddSegment{state: state, fields: fields, notifier: n}, nil
}

// Open clears the form and shows it. It fails with [ErrNoFileLoaded] when
// there is nothing to add segments to.
func (a *AddSegment) Open() error {
	if !a.state.Loaded() {
		return ErrNoFileLoaded
	}

	a.fields.Clear(AddSegmentFields...)
	a.open = true

	return nil
}

func (a *AddSegment) IsOpen() bool { return a.open }

func (a *AddSegment) Close() { a.open = false }

// Edit writes value to a time field and recomputes the dependent one. It
// returns the ID of the recomputed field, or "" when nothing was recomputed.
func (a *AddSegment) Edit(id, value string) (string, error) {
	if id == FieldSpeakerID {
		a.fields.Set(id, value)

		return "", nil
	}

	field, ok := timeFields[id]
	if !ok {
		return "", ErrUnknownField
	}

	times := a.times()
	derived, changed := times.Edit(field, value)
	a.setTimes(times)

	if !changed {
		return "", nil
	}

	return fieldID(derived), nil
}

// SetFromPosition fills the start time from the audio playback position.
func (a *AddSegment) SetFromPosition(position float64, playing bool) error {
	if !playing {
		return ErrNotPlaying
	}

	times := a.times()
	times.SetStart(position)
	a.setTimes(times)

	return nil
}

// Save validates the form and inserts the segment into the session. On
// failure the session is left untouched and the form stays open.
func (a *AddSegment) Save() (segment.Segment, error) {
	if !a.state.Loaded() {
		return segment.Segment{}, ErrNoFileLoaded
	}

	seg, err := segment.Parse(
		a.state.FileID(),
		a.fields.Trimmed(FieldStartTime),
		a.fields.Trimmed(FieldDuration),
		a.fields.Get(FieldSpeakerID),
	)
	if err != nil {
		return segment.Segment{}, err
	}

	a.state.AddSegment(seg)
	a.open = false

	slog.Debug("segment added",
		slog.String("session", a.state.ID()),
		slog.String("segment", seg.String()),
	)

	if a.notifier != nil {
		a.notifier.Notify("New segment added successfully", notify.LevelSuccess)
	}

	return seg, nil
}

func (a *AddSegment) times() segment.Times {
	return segment.Times{
		Start:    a.fields.Get(FieldStartTime),
		Duration: a.fields.Get(FieldDuration),
		End:      a.fields.Get(FieldEndTime),
	}
}

func (a *AddSegment) setTimes(t segment.Times) {
	a.fields.Set(FieldStartTime, t.Start)
	a.fields.Set(FieldDuration, t.Duration)
	a.fields.Set(FieldEndTime, t.End)
}

func fieldID(f segment.Field) string {
	for id, tf := range timeFields {
		if tf == f {
			return id
		}
	}

	return ""
}
