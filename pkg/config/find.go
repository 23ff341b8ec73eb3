package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the config file [Find] looks for.
const FileName = ".rttmlabel.yaml"

var ErrConfigNotFound = errors.New("config file not found")

// Find walks from path upward to the file system root and returns the first
// [FileName] found.
func Find(path string) (string, error) {
	currentDir, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("get absolute path: %w", err)
	}

	for {
		checkPath := filepath.Join(currentDir, FileName)

		fi, err := os.Stat(checkPath)
		if err == nil && fi.Mode().IsRegular() {
			return checkPath, nil
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}

		currentDir = parent
	}

	return "", fmt.Errorf("%w: %s", ErrConfigNotFound, FileName)
}
