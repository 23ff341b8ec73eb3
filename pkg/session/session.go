// Package session holds the state of one editing session: the loaded RTTM
// file, its segments, and the configured directories.
//
// A single owner creates the [State] with [New] and hands the pointer to every
// controller that needs it. All methods are safe for concurrent use, so
// continuations of network calls may touch the state from any goroutine.
package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/macropower/rttmlabel/pkg/segment"
)

// File describes the RTTM file that is currently loaded.
type File struct {
	FileID     string `json:"file_id" yaml:"file_id"`
	RTTMPath   string `json:"rttm_path" yaml:"rttm_path"`
	AudioURL   string `json:"audio_path" yaml:"audio_path"`
	SourceType string `json:"source_type" yaml:"source_type"`
}

// Dirs are the RTTM and audio directories the backend serves from.
type Dirs struct {
	RTTM  string `json:"rttm_dir" yaml:"rttm_dir"`
	Audio string `json:"audio_dir" yaml:"audio_dir"`
}

type State struct {
	segments *segment.List
	file     File
	dirs     Dirs
	id       uuid.UUID
	mu       sync.RWMutex
	loaded   bool
}

// New creates an empty [State] with a fresh ID.
func New() *State {
	return &State{
		id:       uuid.New(),
		segments: &segment.List{},
	}
}

// ID identifies the session in logs.
func (s *State) ID() string {
	return s.id.String()
}

// Load replaces the loaded file and its segments. Segment file IDs are filled
// in from the file when they are empty.
func (s *State) Load(f File, segs []segment.Segment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range segs {
		if segs[i].FileID == "" {
			segs[i].FileID = f.FileID
		}
	}

	s.file = f
	s.loaded = true
	s.segments.Replace(segs)

	slog.Debug("loaded file",
		slog.String("session", s.id.String()),
		slog.String("file_id", f.FileID),
		slog.Int("segments", s.segments.Len()),
	)
}

// Loaded reports whether a file is loaded.
func (s *State) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}

// File returns the loaded file, if any.
func (s *State) File() (File, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.file, s.loaded
}

// FileID returns the ID of the loaded file, or "" when nothing is loaded.
func (s *State) FileID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.file.FileID
}

// Segments returns a copy of the segments, sorted by start time.
func (s *State) Segments() []segment.Segment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.segments.Segments()
}

// AddSegment inserts seg into the sorted segment list.
func (s *State) AddSegment(seg segment.Segment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.segments.Insert(seg)
}

// RemoveSegment deletes the segment at index i.
func (s *State) RemoveSegment(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.segments.Remove(i)
}

// Reset unloads the current file and drops its segments. Directories are
// kept.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.file = File{}
	s.loaded = false
	s.segments.Clear()
}

func (s *State) Dirs() Dirs {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dirs
}

func (s *State) SetDirs(rttm, audio string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dirs = Dirs{RTTM: rttm, Audio: audio}
}
