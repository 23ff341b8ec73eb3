package pathutil

import (
	"os"
	"regexp"
	"runtime"
	"strings"
)

var windowsLocation = regexp.MustCompile(`^[A-Z]:\\`)

// Host describes the environment a path is interpreted in.
type Host struct {
	// Platform is a platform string such as "Win32", "Linux x86_64" or
	// "MacIntel".
	Platform string
	// UserAgent is an optional client identification string.
	UserAgent string
	// Location is the path the client is currently working in.
	Location string
}

// Windows reports whether the host looks like a Windows machine.
func (h Host) Windows() bool {
	return strings.Contains(h.Platform, "Win") ||
		strings.Contains(h.UserAgent, "Windows") ||
		windowsLocation.MatchString(h.Location)
}

// HostFunc returns the current [Host]. It is called once per operation, so
// implementations may return a different host over time.
type HostFunc func() Host

// StaticHost returns a [HostFunc] that always returns h.
func StaticHost(h Host) HostFunc {
	return func() Host {
		return h
	}
}

// LocalHost describes the running process.
func LocalHost() Host {
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}

	return Host{
		Platform: platformName(runtime.GOOS),
		Location: wd,
	}
}

// Windows and POSIX are fixed hosts for callers that want to force a style.
var (
	Windows = Host{Platform: "Win32"}
	POSIX   = Host{Platform: "Linux"}
)

// HostForOS returns a [Host] for an OS name as accepted on the command line.
// Unknown or empty names return the local host.
func HostForOS(name string) Host {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "windows", "win", "win32":
		return Windows
	case "posix", "unix", "linux", "darwin", "macos":
		return POSIX
	}

	return LocalHost()
}

func platformName(goos string) string {
	switch goos {
	case "windows":
		return "Win32"
	case "darwin":
		return "MacIntel"
	}

	return "Linux"
}
