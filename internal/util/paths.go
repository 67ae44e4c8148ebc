package util

import (
	"os"
	"path/filepath"
)

// DefaultDataPath returns a path under the per-user data directory,
// ~/.clearuse. Falls back to the working directory when the home directory
// cannot be determined.
func DefaultDataPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(append([]string{home, ".clearuse"}, elem...)...)
}
