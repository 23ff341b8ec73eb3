package labelapi

import "github.com/macropower/rttmlabel/pkg/segment"

// FileList is the set of RTTM files the backend currently serves.
type FileList struct {
	CurrentRTTMDir  string   `json:"current_rttm_dir,omitempty" yaml:"current_rttm_dir,omitempty"`
	CurrentAudioDir string   `json:"current_audio_dir,omitempty" yaml:"current_audio_dir,omitempty"`
	Categories      []string `json:"categories" yaml:"categories"`
	RTTMFiles       []string `json:"rttm_files" yaml:"rttm_files"`
}

// Directory is one entry of a directory listing.
type Directory struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

type DirectoryListing struct {
	BasePath    string      `json:"base_path,omitempty" yaml:"base_path,omitempty"`
	Directories []Directory `json:"directories" yaml:"directories"`
}

// LoadedFile is the backend's answer to loading an RTTM file.
type LoadedFile struct {
	FileID     string            `json:"file_id" yaml:"file_id"`
	RTTMPath   string            `json:"rttm_path" yaml:"rttm_path"`
	AudioPath  string            `json:"audio_path" yaml:"audio_path"`
	SourceType string            `json:"source_type" yaml:"source_type"`
	RTTMDir    string            `json:"rttm_dir" yaml:"rttm_dir"`
	AudioDir   string            `json:"audio_dir" yaml:"audio_dir"`
	Segments   []segment.Segment `json:"segments" yaml:"segments"`
}

type SavedEdits struct {
	LastModified  string `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
	SavedPath     string `json:"saved_path,omitempty" yaml:"saved_path,omitempty"`
	HasSavedEdits bool   `json:"has_saved_edits" yaml:"has_saved_edits"`
}

type SaveResult struct {
	Message   string `json:"message" yaml:"message"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Success   bool   `json:"success" yaml:"success"`
}

type saveRequest struct {
	FileID   string            `json:"file_id"`
	RTTMPath string            `json:"rttm_path,omitempty"`
	Segments []segment.Segment `json:"segments"`
}

type folderPathRequest struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type listFilesResponse struct {
	Files   []string `json:"files"`
	Success bool     `json:"success"`
}

type segmentRequest struct {
	FileID    string  `json:"file_id"`
	RTTMPath  string  `json:"rttm_path,omitempty"`
	StartTime float64 `json:"start_time"`
	Duration  float64 `json:"duration"`
}

type segmentResponse struct {
	SegmentURL string `json:"segment_url"`
}
