package segment

// Field identifies one of the three time inputs of a segment form.
type Field int

const (
	FieldStart Field = iota
	FieldDuration
	FieldEnd
)

func (f Field) String() string {
	switch f {
	case FieldStart:
		return "start_time"
	case FieldDuration:
		return "duration"
	case FieldEnd:
		return "end_time"
	}

	return "unknown"
}

// Times holds the text of the start, duration and end inputs of a segment
// form. The zero value is an empty form.
type Times struct {
	Start    string
	Duration string
	End      string
}

// Edit sets field to value and recomputes the dependent field:
//   - start or duration recompute end, when both parse;
//   - end recomputes duration, when start parses.
//
// It returns the field that was recomputed and whether anything changed.
func (t *Times) Edit(field Field, value string) (Field, bool) {
	switch field {
	case FieldStart:
		t.Start = value
		return FieldEnd, t.deriveEnd()

	case FieldDuration:
		t.Duration = value
		return FieldEnd, t.deriveEnd()

	case FieldEnd:
		t.End = value
		return FieldDuration, t.deriveDuration()
	}

	return field, false
}

// SetStart sets the start time from a playback position. When a duration is
// already entered the end time follows.
func (t *Times) SetStart(position float64) {
	t.Start = FormatSeconds(position)
	t.deriveEnd()
}

// Get returns the text of field.
func (t *Times) Get(field Field) string {
	switch field {
	case FieldStart:
		return t.Start
	case FieldDuration:
		return t.Duration
	case FieldEnd:
		return t.End
	}

	return ""
}

// Reset clears all inputs.
func (t *Times) Reset() {
	*t = Times{}
}

func (t *Times) deriveEnd() bool {
	start, ok := ParseFloat(t.Start)
	if !ok {
		return false
	}

	duration, ok := ParseFloat(t.Duration)
	if !ok {
		return false
	}

	t.End = FormatSeconds(start + duration)

	return true
}

func (t *Times) deriveDuration() bool {
	start, ok := ParseFloat(t.Start)
	if !ok {
		return false
	}

	end, ok := ParseFloat(t.End)
	if !ok {
		return false
	}

	t.Duration = FormatSeconds(end - start)

	return true
}
