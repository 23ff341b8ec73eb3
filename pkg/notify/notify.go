// Package notify delivers user-visible status messages.
package notify

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Level is the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// BannerTimeout is how long a [Banner] keeps showing a message.
const BannerTimeout = 5 * time.Second

var titler = cases.Title(language.English)

// Title returns the capitalized level name, e.g. "Danger".
func (l Level) Title() string {
	if l == "" {
		l = LevelInfo
	}

	return titler.String(string(l))
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelWarning:
		return slog.LevelWarn
	case LevelDanger:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type Notification struct {
	At      time.Time
	Message string
	Level   Level
}

// Notifier shows a message to the user.
type Notifier interface {
	Notify(message string, level Level)
}

// Logger is a [Notifier] that writes to a [slog.Logger].
type Logger struct {
	log *slog.Logger
}

// NewLogger returns a [Logger] writing to l, or to [slog.Default] when l is
// nil.
func NewLogger(l *slog.Logger) *Logger {
	if l == nil {
		l = slog.Default()
	}

	return &Logger{log: l}
}

func (n *Logger) Notify(message string, level Level) {
	n.log.Log(context.Background(), level.slogLevel(), message, slog.String("level", string(level)))
}

// Recorder is a [Notifier] that keeps the most recent notifications.
type Recorder struct {
	now   func() time.Time
	items []Notification
	limit int
	mu    sync.Mutex
}

// NewRecorder creates a [Recorder] keeping up to limit notifications. A limit of
// zero or less keeps everything.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit, now: time.Now}
}

func (r *Recorder) Notify(message string, level Level) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if level == "" {
		level = LevelInfo
	}

	now := time.Now
	if r.now != nil {
		now = r.now
	}

	r.items = append(r.items, Notification{Message: message, Level: level, At: now()})
	if r.limit > 0 && len(r.items) > r.limit {
		r.items = slices.Delete(r.items, 0, len(r.items)-r.limit)
	}
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.items) == 0 {
		return Notification{}, false
	}

	return r.items[len(r.items)-1], true
}

// All returns the recorded notifications, oldest first.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.items)
}

// Multi fans each notification out to every notifier.
type Multi []Notifier

func (m Multi) Notify(message string, level Level) {
	for _, n := range m {
		if n != nil {
			n.Notify(message, level)
		}
	}
}
