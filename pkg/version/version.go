package version

import (
	"fmt"
	"runtime/debug"
)

var (
	Version   = "0.0.0"
	Revision  = "unknown"
	BuildDate = ""
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "0.0.0" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Revision == "unknown" && s.Value != "" {
				Revision = s.Value
			}
		case "vcs.time":
			if BuildDate == "" {
				BuildDate = s.Value
			}
		}
	}
}

// String returns "version+revision".
func String() string {
	return fmt.Sprintf("%s+%s", Version, Revision)
}
