package pathutil

import (
	"regexp"
	"strings"
)

const (
	windowsSeparator = `\`
	posixSeparator   = "/"

	windowsRoot = `C:\`
	posixRoot   = "/"

	uncPrefix = `\\`

	// RootCategory is the category of files that are not inside a directory.
	RootCategory = "root"
)

var (
	separatorRun   = regexp.MustCompile(`[\\/]+`)
	windowsAbsPath = regexp.MustCompile(`^[A-Z]:[\\/]`)
)

// Paths manipulates path strings for the host returned by its [HostFunc].
// Create instances with [New].
type Paths struct {
	host HostFunc
}

// New creates a [Paths] for the given host. A nil host means [LocalHost].
func New(host HostFunc) *Paths {
	if host == nil {
		host = LocalHost
	}

	return &Paths{host: host}
}

// IsWindows reports whether the host looks like Windows. The result is not
// cached.
func (p *Paths) IsWindows() bool {
	return p.host().Windows()
}

// Separator returns the separator for the host.
func (p *Paths) Separator() string {
	if p.IsWindows() {
		return windowsSeparator
	}

	return posixSeparator
}

// DefaultRoot returns the root directory to start browsing from.
func (p *Paths) DefaultRoot() string {
	if p.IsWindows() {
		return windowsRoot
	}

	return posixRoot
}

// Normalize replaces every run of separators of either style with a single
// host separator. Leading and trailing separators are kept.
func (p *Paths) Normalize(path string) string {
	if path == "" {
		return path
	}

	return separatorRun.ReplaceAllLiteralString(path, p.Separator())
}

// Split returns the non-empty segments of path. A path made only of
// separators has no segments.
func (*Paths) Split(path string) []string {
	return Split(path)
}

// Join joins the non-empty parts with the host separator.
func (p *Paths) Join(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}

	return strings.Join(kept, p.Separator())
}

// ToURL converts backslashes to forward slashes.
func (*Paths) ToURL(path string) string {
	return ToURL(path)
}

// FirstDir returns the first segment of path, or an empty string.
func (*Paths) FirstDir(path string) string {
	return FirstDir(path)
}

// IsAbsolute reports whether path is absolute for the host.
func (p *Paths) IsAbsolute(path string) bool {
	if path == "" {
		return false
	}

	if p.IsWindows() {
		return windowsAbsPath.MatchString(path) || strings.HasPrefix(path, uncPrefix)
	}

	return strings.HasPrefix(path, posixSeparator)
}

// Parent returns the directory containing path, in host style. The parent of
// a root is the root itself, and a single relative segment has no parent. A
// leading separator is kept whichever style it was written in.
func (p *Paths) Parent(path string) string {
	parts := Split(path)
	windows := p.IsWindows()

	switch {
	case windows && windowsAbsPath.MatchString(path):
		if len(parts) <= 2 {
			return parts[0] + windowsSeparator
		}

	case windows && strings.HasPrefix(path, uncPrefix):
		if len(parts) <= 1 {
			return path
		}

		return uncPrefix + p.Join(parts[:len(parts)-1]...)

	case strings.HasPrefix(path, posixSeparator) || strings.HasPrefix(path, windowsSeparator):
		if len(parts) <= 1 {
			return p.Separator()
		}

		return p.Separator() + p.Join(parts[:len(parts)-1]...)

	case len(parts) <= 1:
		return ""
	}

	return p.Join(parts[:len(parts)-1]...)
}

// Split returns the non-empty segments of path, accepting both separator
// styles.
func Split(path string) []string {
	if path == "" {
		return []string{}
	}

	parts := separatorRun.Split(path, -1)

	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}

	return segments
}

// ToURL converts backslashes to forward slashes. Forward slashes are never
// converted back.
func ToURL(path string) string {
	if path == "" {
		return path
	}

	return strings.ReplaceAll(path, windowsSeparator, posixSeparator)
}

// FirstDir returns the first segment of path, or an empty string.
func FirstDir(path string) string {
	segments := Split(path)
	if len(segments) == 0 {
		return ""
	}

	return segments[0]
}

// Category returns the top-level directory of a relative file path, or
// [RootCategory] when the file is not inside a directory.
func Category(path string) string {
	segments := Split(path)
	if len(segments) > 1 {
		return segments[0]
	}

	return RootCategory
}

// ReplaceLast drops the last "/" separated part of current and appends
// folder. It is used when only the name of a picked folder is known and the
// rest of the path has to be taken from the previous value.
func ReplaceLast(current, folder string) string {
	parts := strings.Split(current, posixSeparator)
	parts = parts[:len(parts)-1]

	return strings.Join(parts, posixSeparator) + posixSeparator + folder
}
