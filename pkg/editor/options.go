package editor

import (
	"slices"

	"github.com/macropower/rttmlabel/pkg/labelapi"
	"github.com/macropower/rttmlabel/pkg/pathutil"
)

// AllCategories selects every file in [Options.InCategory].
const AllCategories = ""

// FileOption is one entry of the RTTM file picker.
type FileOption struct {
	Path     string `json:"path" yaml:"path"`
	Category string `json:"category" yaml:"category"`
}

// Options is the content of the file picker: the files and the categories
// used to filter them.
type Options struct {
	Files      []FileOption `json:"files" yaml:"files"`
	Categories []string     `json:"categories" yaml:"categories"`
}

// FileOptions builds picker entries for files, categorized by their first
// directory.
func FileOptions(files []string) []FileOption {
	out := make([]FileOption, 0, len(files))
	for _, f := range files {
		out = append(out, FileOption{Path: f, Category: pathutil.Category(f)})
	}

	return out
}

// NewOptions builds [Options] from a backend file list. Categories reported
// by the backend are merged with the ones derived from the files.
func NewOptions(list *labelapi.FileList) Options {
	if list == nil {
		return Options{Files: []FileOption{}, Categories: []string{}}
	}

	files := FileOptions(list.RTTMFiles)

	cats := slices.Clone(list.Categories)
	for _, f := range files {
		if !slices.Contains(cats, f.Category) {
			cats = append(cats, f.Category)
		}
	}

	if cats == nil {
		cats = []string{}
	}

	slices.Sort(cats)

	return Options{Files: files, Categories: cats}
}

// InCategory returns the files in category, or all files for
// [AllCategories].
func (o Options) InCategory(category string) []FileOption {
	if category == AllCategories {
		return slices.Clone(o.Files)
	}

	out := []FileOption{}
	for _, f := range o.Files {
		if f.Category == category {
			out = append(out, f)
		}
	}

	return out
}
