package segment

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidSegment is wrapped by every validation error.
	ErrInvalidSegment = errors.New("invalid segment")

	ErrInvalidStartTime = fmt.Errorf("%w: please enter a valid start time (must be a positive number)", ErrInvalidSegment)
	ErrInvalidDuration  = fmt.Errorf("%w: please enter a valid duration (must be greater than 0)", ErrInvalidSegment)
	ErrMissingSpeaker   = fmt.Errorf("%w: please enter a speaker ID", ErrInvalidSegment)
)

const infinity = "Infinity"

// Segment is one annotated interval of speech attributed to a speaker.
type Segment struct {
	SpeakerID string  `json:"speaker_id" yaml:"speaker_id"`
	FileID    string  `json:"file_id,omitempty" yaml:"file_id,omitempty"`
	StartTime float64 `json:"start_time" yaml:"start_time"`
	Duration  float64 `json:"duration" yaml:"duration"`
	EndTime   float64 `json:"end_time" yaml:"end_time"`
}

// New validates the inputs and returns a [Segment] with a derived end time.
func New(fileID string, start, duration float64, speakerID string) (Segment, error) {
	speakerID = strings.TrimSpace(speakerID)

	if math.IsNaN(start) || start < 0 {
		return Segment{}, ErrInvalidStartTime
	}

	if math.IsNaN(duration) || duration <= 0 {
		return Segment{}, ErrInvalidDuration
	}

	if speakerID == "" {
		return Segment{}, ErrMissingSpeaker
	}

	return Segment{
		StartTime: start,
		Duration:  duration,
		EndTime:   start + duration,
		SpeakerID: speakerID,
		FileID:    fileID,
	}, nil
}

// Parse is like [New] but takes the raw text of form fields.
func Parse(fileID, start, duration, speakerID string) (Segment, error) {
	s, ok := ParseFloat(start)
	if !ok {
		return Segment{}, ErrInvalidStartTime
	}

	d, ok := ParseFloat(duration)
	if !ok {
		return Segment{}, ErrInvalidDuration
	}

	return New(fileID, s, d, speakerID)
}

// Complete fills in what a decoded segment may lack: fileID when it names no
// file, and the end time. Nothing is validated, so segments a backend sends
// survive unchanged.
func (s Segment) Complete(fileID string) Segment {
	if s.FileID == "" {
		s.FileID = fileID
	}

	s.EndTime = s.StartTime + s.Duration

	return s
}

func (s Segment) String() string {
	return fmt.Sprintf("%s [%s-%s]", s.SpeakerID, FormatSeconds(s.StartTime), FormatSeconds(s.EndTime))
}

// ParseFloat parses the leading number of a form value the way a browser's
// parseFloat does. Surrounding whitespace and trailing garbage are ignored, so
// "1.5s" parses as 1.5 and "1e3x" as 1000. "Infinity" with an optional sign is
// accepted.
func ParseFloat(text string) (float64, bool) {
	text = strings.TrimSpace(text)

	end := numberPrefix(text)
	if end == 0 {
		return 0, false
	}

	v, err := strconv.ParseFloat(text[:end], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}

	return v, true
}

// FormatSeconds renders seconds with two decimals.
func FormatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// numberPrefix returns the length of the longest prefix of text that looks
// like a decimal number with an optional exponent, or a signed "Infinity".
func numberPrefix(text string) int {
	i := 0
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		i++
	}

	if strings.HasPrefix(text[i:], infinity) {
		return i + len(infinity)
	}

	digits := 0
	for i < len(text) && isDigit(text[i]) {
		i++
		digits++
	}

	if i < len(text) && text[i] == '.' {
		j := i + 1
		frac := 0

		for j < len(text) && isDigit(text[j]) {
			j++
			frac++
		}

		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}

	if digits == 0 {
		return 0
	}

	// An exponent only counts when at least one digit follows it.
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if j < len(text) && (text[j] == '+' || text[j] == '-') {
			j++
		}

		exp := j
		for j < len(text) && isDigit(text[j]) {
			j++
		}

		if j > exp {
			i = j
		}
	}

	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
