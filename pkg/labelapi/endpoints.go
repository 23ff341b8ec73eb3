package labelapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/macropower/rttmlabel/pkg/browser"
	"github.com/macropower/rttmlabel/pkg/segment"
)

// SetDirectories points the backend at new RTTM and audio directories.
func (c *Client) SetDirectories(ctx context.Context, rttmDir, audioDir string) error {
	form := url.Values{}
	form.Set("rttm_dir", rttmDir)
	form.Set("audio_dir", audioDir)

	return c.postForm(ctx, "/set_directories", form, nil)
}

// RefreshFileList returns the RTTM files and categories of the current
// directories.
func (c *Client) RefreshFileList(ctx context.Context) (*FileList, error) {
	out := &FileList{}

	err := c.getJSON(ctx, "/refresh_file_list", nil, out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// UpdatePaths validates and applies new RTTM and audio folders. The backend
// rejects folders that do not exist or hold no RTTM files.
func (c *Client) UpdatePaths(ctx context.Context, rttmDir, audioDir string) (*FileList, error) {
	form := url.Values{}
	form.Set("rttm_dir", rttmDir)
	form.Set("audio_dir", audioDir)

	out := &FileList{}

	err := c.postForm(ctx, "/update_paths", form, out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ListFiles lists the files of the given kind in the selected folder.
func (c *Client) ListFiles(ctx context.Context, kind browser.Kind) ([]string, error) {
	out := &listFilesResponse{}

	err := c.getJSON(ctx, "/list_files", url.Values{"type": {string(kind)}}, out)
	if err != nil {
		return nil, err
	}

	if !out.Success {
		return nil, fmt.Errorf("%w: list %s files", ErrUnsuccessful, kind)
	}

	return out.Files, nil
}

// SetFolderPath selects the folder used for files of the given kind.
func (c *Client) SetFolderPath(ctx context.Context, kind browser.Kind, path string) error {
	out := &successResponse{}

	err := c.postJSON(ctx, "/set_folder_path", folderPathRequest{Type: string(kind), Path: path}, out)
	if err != nil {
		return err
	}

	if !out.Success {
		return fmt.Errorf("%w: set %s folder path", ErrUnsuccessful, kind)
	}

	return nil
}

// BrowseDialogURL returns the URL of the backend's folder browser dialog.
func (c *Client) BrowseDialogURL(startPath, dialogID string) string {
	return browser.DialogURL(c.BaseURL(), startPath, dialogID)
}

// GetDirectories lists the subdirectories of basePath on the backend host.
func (c *Client) GetDirectories(ctx context.Context, basePath string) (*DirectoryListing, error) {
	form := url.Values{}
	if basePath != "" {
		form.Set("base_path", basePath)
	}

	out := &DirectoryListing{}

	err := c.postForm(ctx, "/get_directories", form, out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// GetRootDirectories lists well-known starting points for browsing.
func (c *Client) GetRootDirectories(ctx context.Context) (*DirectoryListing, error) {
	out := &DirectoryListing{}

	err := c.getJSON(ctx, "/get_root_directories", nil, out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// LoadRTTM loads an RTTM file, given relative to the RTTM directory. When
// useSaved is set, previously saved edits are loaded instead of the original.
func (c *Client) LoadRTTM(ctx context.Context, rttmFile string, useSaved bool) (*LoadedFile, error) {
	form := url.Values{}
	form.Set("rttm_file", rttmFile)
	form.Set("use_saved", strconv.FormatBool(useSaved))

	out := &LoadedFile{}

	err := c.postForm(ctx, "/load_rttm", form, out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// CheckSavedEdits reports whether edits of rttmFile were saved before.
func (c *Client) CheckSavedEdits(ctx context.Context, rttmFile string) (*SavedEdits, error) {
	form := url.Values{}
	form.Set("rttm_file", rttmFile)

	out := &SavedEdits{}

	err := c.postForm(ctx, "/check_saved_edits", form, out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// SaveLabels stores segs as the edited labels of fileID.
func (c *Client) SaveLabels(ctx context.Context, fileID, rttmPath string, segs []segment.Segment) (*SaveResult, error) {
	if segs == nil {
		segs = []segment.Segment{}
	}

	out := &SaveResult{}

	err := c.postJSON(ctx, "/save_labels", saveRequest{FileID: fileID, RTTMPath: rttmPath, Segments: segs}, out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// SegmentURL asks the backend to cut seg out of the audio of fileID and
// returns the absolute URL of the extracted clip.
func (c *Client) SegmentURL(ctx context.Context, fileID, rttmPath string, seg segment.Segment) (string, error) {
	out := &segmentResponse{}

	err := c.postJSON(ctx, "/get_segment", segmentRequest{
		FileID:    fileID,
		RTTMPath:  rttmPath,
		StartTime: seg.StartTime,
		Duration:  seg.Duration,
	}, out)
	if err != nil {
		return "", err
	}

	if out.SegmentURL == "" {
		return "", fmt.Errorf("%w: no segment url in response", ErrRequest)
	}

	ref, err := url.Parse(out.SegmentURL)
	if err != nil {
		return "", fmt.Errorf("%w: parse segment url: %w", ErrRequest, err)
	}

	return c.base.ResolveReference(ref).String(), nil
}
