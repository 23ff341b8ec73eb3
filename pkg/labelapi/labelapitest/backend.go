package labelapitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/macropower/rttmlabel/pkg/browser"
	"github.com/macropower/rttmlabel/pkg/labelapi"
	"github.com/macropower/rttmlabel/pkg/pathutil"
	"github.com/macropower/rttmlabel/pkg/segment"
)

const (
	DefaultRTTMDir  = "/data/rttm"
	DefaultAudioDir = "/data/audio"
	SaveTimestamp   = "20250101_120000"
	SaveModified    = "2025-01-01 12:00:00"
)

// Backend is a fake annotation backend. Exported maps may be edited before
// requests are made; use [Backend.Lock] when changing them concurrently.
type Backend struct {
	// Dirs maps each existing directory to the RTTM files below it, relative
	// to the directory. Audio directories map to nil.
	Dirs map[string][]string
	// Subdirs is served by /get_directories.
	Subdirs map[string][]labelapi.Directory
	// Files is served by /list_files.
	Files map[browser.Kind][]string
	// FolderPaths records /set_folder_path calls.
	FolderPaths map[browser.Kind]string
	// Segments holds the original segments per RTTM file.
	Segments map[string][]segment.Segment
	// Saved holds segments posted to /save_labels, keyed like Segments.
	Saved map[string][]segment.Segment

	server   *httptest.Server
	RTTMDir  string
	AudioDir string
	Roots    []labelapi.Directory
	requests []string
	mu       sync.Mutex

	// Gzip compresses every response.
	Gzip bool
}

// New starts a [Backend] with a small default data set. The server is closed
// when the test ends.
func New(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		RTTMDir:  DefaultRTTMDir,
		AudioDir: DefaultAudioDir,
		Dirs: map[string][]string{
			DefaultRTTMDir:  {"interviews/int_01.rttm", "interviews/int_02.rttm", "meeting.rttm"},
			DefaultAudioDir: nil,
			"/empty":        nil,
		},
		Subdirs: map[string][]labelapi.Directory{
			"/": {
				{Name: "data", Path: "/data"},
				{Name: "home", Path: "/home"},
			},
			"/data": {
				{Name: "audio", Path: "/data/audio"},
				{Name: "rttm", Path: "/data/rttm"},
			},
		},
		Roots: []labelapi.Directory{
			{Name: "/", Path: "/"},
			{Name: "data", Path: "/data"},
		},
		Files: map[browser.Kind][]string{
			browser.KindRTTM:  {"meeting.rttm"},
			browser.KindAudio: {"meeting.wav"},
		},
		FolderPaths: map[browser.Kind]string{},
		Segments: map[string][]segment.Segment{
			"meeting.rttm": {
				{FileID: "meeting", SpeakerID: "spk_0", StartTime: 1, Duration: 1, EndTime: 2},
				{FileID: "meeting", SpeakerID: "spk_1", StartTime: 2, Duration: 1.5, EndTime: 3.5},
			},
			"interviews/int_01.rttm": {
				{FileID: "int_01", SpeakerID: "host", StartTime: 0, Duration: 4, EndTime: 4},
			},
		},
		Saved: map[string][]segment.Segment{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /set_directories", b.setDirectories)
	mux.HandleFunc("GET /refresh_file_list", b.refreshFileList)
	mux.HandleFunc("POST /update_paths", b.updatePaths)
	mux.HandleFunc("GET /list_files", b.listFiles)
	mux.HandleFunc("POST /set_folder_path", b.setFolderPath)
	mux.HandleFunc("POST /get_directories", b.getDirectories)
	mux.HandleFunc("GET /get_root_directories", b.getRootDirectories)
	mux.HandleFunc("POST /load_rttm", b.loadRTTM)
	mux.HandleFunc("POST /check_saved_edits", b.checkSavedEdits)
	mux.HandleFunc("POST /save_labels", b.saveLabels)
	mux.HandleFunc("POST /get_segment", b.getSegment)

	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, r.Method+" "+r.URL.Path)
		b.mu.Unlock()

		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.server.Close)

	return b
}

// URL is the base URL of the server.
func (b *Backend) URL() string {
	return b.server.URL
}

// Client returns a [labelapi.Client] for the server.
func (b *Backend) Client(t *testing.T, opts ...labelapi.Option) *labelapi.Client {
	t.Helper()

	opts = append([]labelapi.Option{labelapi.WithHTTPClient(b.server.Client())}, opts...)

	c, err := labelapi.NewClient(b.URL(), opts...)
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	return c
}

// Requests returns "METHOD /path" for every request served so far.
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.requests)
}

// Lock and Unlock guard the exported fields.
func (b *Backend) Lock()   { b.mu.Lock() }
func (b *Backend) Unlock() { b.mu.Unlock() }

// Folder returns the folder recorded for kind.
func (b *Backend) Folder(kind browser.Kind) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.FolderPaths[kind]
}

// SavedSegments returns the segments saved for rttmPath.
func (b *Backend) SavedSegments(rttmPath string) ([]segment.Segment, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	segs, ok := b.Saved[rttmPath]

	return slices.Clone(segs), ok
}

// CurrentDirs returns the RTTM and audio directories in use.
func (b *Backend) CurrentDirs() (string, string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.RTTMDir, b.AudioDir
}

func (b *Backend) setDirectories(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rttmDir, audioDir := r.PostFormValue("rttm_dir"), r.PostFormValue("audio_dir")

	if msg := b.checkDirs(rttmDir, audioDir); msg != "" {
		b.writeError(w, http.StatusBadRequest, msg)

		return
	}

	b.RTTMDir, b.AudioDir = rttmDir, audioDir

	b.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (b *Backend) refreshFileList(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	files := b.rttmFiles(b.RTTMDir)

	b.writeJSON(w, http.StatusOK, labelapi.FileList{
		Categories:      categories(files),
		RTTMFiles:       files,
		CurrentRTTMDir:  b.RTTMDir,
		CurrentAudioDir: b.AudioDir,
	})
}

func (b *Backend) updatePaths(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rttmDir, audioDir := r.PostFormValue("rttm_dir"), r.PostFormValue("audio_dir")

	if msg := b.checkDirs(rttmDir, audioDir); msg != "" {
		b.writeError(w, http.StatusBadRequest, msg)

		return
	}

	files := b.rttmFiles(rttmDir)
	if len(files) == 0 {
		b.writeError(w, http.StatusBadRequest, "No RTTM files found in "+rttmDir)

		return
	}

	b.RTTMDir, b.AudioDir = rttmDir, audioDir

	b.writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"rttm_files": files,
		"categories": categories(files),
	})
}

func (b *Backend) listFiles(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	kind, err := browser.ParseKind(r.URL.Query().Get("type"))
	if err != nil {
		b.writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": "Invalid type"})

		return
	}

	files := b.Files[kind]
	if files == nil {
		files = []string{}
	}

	b.writeJSON(w, http.StatusOK, map[string]any{"success": true, "files": files})
}

func (b *Backend) setFolderPath(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var req struct {
		Type string `json:"type"`
		Path string `json:"path"`
	}

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		b.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false})

		return
	}

	kind, err := browser.ParseKind(req.Type)
	if err != nil || req.Path == "" {
		b.writeJSON(w, http.StatusOK, map[string]any{"success": false})

		return
	}

	b.FolderPaths[kind] = req.Path

	b.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (b *Backend) getDirectories(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	base := r.PostFormValue("base_path")
	if base == "" {
		base = "/"
	}

	dirs, ok := b.Subdirs[base]
	if !ok {
		b.writeError(w, http.StatusBadRequest, "Directory not found: "+base)

		return
	}

	b.writeJSON(w, http.StatusOK, labelapi.DirectoryListing{BasePath: base, Directories: dirs})
}

func (b *Backend) getRootDirectories(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.writeJSON(w, http.StatusOK, labelapi.DirectoryListing{Directories: b.Roots})
}

func (b *Backend) loadRTTM(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	file := r.PostFormValue("rttm_file")
	useSaved := strings.EqualFold(r.PostFormValue("use_saved"), "true")

	segs, ok := b.Segments[file]
	if !ok {
		b.writeError(w, http.StatusNotFound, "Original RTTM file not found")

		return
	}

	source := "original"

	if useSaved {
		segs, ok = b.Saved[file]
		if !ok {
			b.writeError(w, http.StatusNotFound, "Saved RTTM file not found")

			return
		}

		source = "saved"
	}

	if len(segs) == 0 {
		b.writeError(w, http.StatusBadRequest, "No segments found in RTTM file")

		return
	}

	fileID := strings.TrimSuffix(path.Base(file), ".rttm")

	audio := "/audio/" + fileID + ".wav"
	if dir := path.Dir(file); dir != "." {
		audio = "/audio/" + pathutil.ToURL(dir) + "/" + fileID + ".wav"
	}

	b.writeJSON(w, http.StatusOK, labelapi.LoadedFile{
		Segments:   segs,
		FileID:     fileID,
		RTTMPath:   file,
		AudioPath:  audio,
		SourceType: source,
		RTTMDir:    b.RTTMDir,
		AudioDir:   b.AudioDir,
	})
}

func (b *Backend) checkSavedEdits(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	file := r.PostFormValue("rttm_file")
	if file == "" {
		b.writeError(w, http.StatusBadRequest, "No RTTM file specified")

		return
	}

	out := labelapi.SavedEdits{}
	if _, ok := b.Saved[file]; ok {
		out.HasSavedEdits = true
		out.LastModified = SaveModified
		out.SavedPath = savedDir(file) + "/" + path.Base(file)
	}

	b.writeJSON(w, http.StatusOK, out)
}

func (b *Backend) saveLabels(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var req struct {
		FileID   string            `json:"file_id"`
		RTTMPath string            `json:"rttm_path"`
		Segments []segment.Segment `json:"segments"`
	}

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req.FileID == "" {
		b.writeError(w, http.StatusBadRequest, "Missing required parameters")

		return
	}

	key := req.RTTMPath
	if key == "" {
		key = req.FileID + ".rttm"
	}

	b.Saved[key] = req.Segments

	b.writeJSON(w, http.StatusOK, labelapi.SaveResult{
		Success:   true,
		Message:   "Labels saved to " + savedDir(key),
		Timestamp: SaveTimestamp,
	})
}

func (b *Backend) getSegment(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var req struct {
		StartTime *float64 `json:"start_time"`
		Duration  *float64 `json:"duration"`
		FileID    string   `json:"file_id"`
		RTTMPath  string   `json:"rttm_path"`
	}

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req.FileID == "" || req.StartTime == nil || req.Duration == nil {
		b.writeError(w, http.StatusBadRequest, "Missing required parameters")

		return
	}

	key := req.RTTMPath
	if key == "" {
		key = req.FileID + ".rttm"
	}

	if _, ok := b.Segments[key]; !ok {
		b.writeError(w, http.StatusNotFound, "Audio file not found at "+b.AudioDir+"/"+req.FileID+".wav")

		return
	}

	b.writeJSON(w, http.StatusOK, map[string]string{
		"segment_url": "/static/temp/segment_" + req.FileID + "_" +
			segment.FormatSeconds(*req.StartTime) + "_" + segment.FormatSeconds(*req.Duration) + ".wav",
	})
}

func (b *Backend) checkDirs(rttmDir, audioDir string) string {
	if _, ok := b.Dirs[rttmDir]; !ok {
		return "RTTM directory not found: " + rttmDir
	}

	if _, ok := b.Dirs[audioDir]; !ok {
		return "Audio directory not found: " + audioDir
	}

	return ""
}

func (b *Backend) rttmFiles(dir string) []string {
	files := slices.Clone(b.Dirs[dir])
	if files == nil {
		files = []string{}
	}

	slices.Sort(files)

	return files
}

func (b *Backend) writeError(w http.ResponseWriter, code int, msg string) {
	b.writeJSON(w, code, map[string]string{"error": msg})
}

func (b *Backend) writeJSON(w http.ResponseWriter, code int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if !b.Gzip {
		w.WriteHeader(code)
		_, _ = w.Write(data)

		return
	}

	w.Header().Set("Content-Encoding", "gzip")
	w.WriteHeader(code)

	zw := gzip.NewWriter(w)
	_, _ = zw.Write(data)
	_ = zw.Close()
}

func categories(files []string) []string {
	out := []string{}
	for _, f := range files {
		c := pathutil.Category(f)
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}

	slices.Sort(out)

	return out
}

func savedDir(rttmPath string) string {
	fileID := strings.TrimSuffix(path.Base(rttmPath), ".rttm")

	dir := path.Dir(rttmPath)
	if dir == "." {
		return "labels/" + fileID
	}

	return "labels/" + dir + "/" + fileID
}
