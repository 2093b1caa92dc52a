package pathutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FindProjectRoot scans startDir's path segments left to right for one
// named projectName and returns the absolute path ending at that segment.
// The leftmost match wins when the name appears more than once. The
// anchor lets the scraper find its data directory no matter which
// subdirectory it is launched from.
func FindProjectRoot(startDir, projectName string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}

	sep := string(filepath.Separator)
	parts := strings.Split(dir, sep)
	for i, part := range parts {
		if part == projectName {
			return strings.Join(parts[:i+1], sep), nil
		}
	}
	return "", fmt.Errorf("no path segment named %q in %s", projectName, dir)
}
