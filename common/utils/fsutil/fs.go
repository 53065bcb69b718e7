package fsutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading ~ to the home directory and returns a
// clean absolute path. An empty path is the working directory.
func ExpandPath(p string) (string, error) {
	if p == "" {
		return os.Getwd()
	}
	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, p[1:])
	}
	return filepath.Abs(p)
}

// IsRoot reports whether p has no parent directory.
func IsRoot(p string) bool {
	p = filepath.Clean(p)
	return filepath.Dir(p) == p
}
