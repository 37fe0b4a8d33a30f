// Package filesystem guards paths built from node IDs and operator input
// against directory traversal. Identity and envelope files are always opened
// through these helpers.
package filesystem

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SafePath joins filename onto baseDir and rejects any result that would
// resolve outside the base directory.
func SafePath(baseDir, filename string) (string, error) {
	cleanFilename := filepath.Clean(filename)
	if strings.Contains(cleanFilename, "..") {
		return "", fmt.Errorf("refusing filename %q: path traversal not allowed", filename)
	}

	fullPath := filepath.Join(baseDir, cleanFilename)

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("resolve base directory %q: %w", baseDir, err)
	}

	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", fullPath, err)
	}

	if absPath != absBase && !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("refusing path %q: outside base directory %q", fullPath, baseDir)
	}

	return fullPath, nil
}

// ValidateFilePath rejects operator-supplied paths containing traversal
// segments. Used for flags that name files directly, where there is no base
// directory to anchor SafePath on.
func ValidateFilePath(filePath string) error {
	if strings.Contains(filepath.Clean(filePath), "..") {
		return fmt.Errorf("refusing path %q: path traversal not allowed", filePath)
	}
	return nil
}
