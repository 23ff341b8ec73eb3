package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/macropower/rttmlabel/cmd/rttmlabel/commands"
)

const (
	cmdName = "rttmlabel"

	shortDesc = "Speaker diarization labeling client."
	longDesc  = `rttmlabel is a client for the RTTM labeling backend.

It lists and loads RTTM annotation files, edits their speaker segments, and
saves the edited labels back to the backend. Folders can be picked with a
directory browser, either from the interactive terminal UI or with the
folder commands.
`
)

func main() {
	cmd := commands.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
