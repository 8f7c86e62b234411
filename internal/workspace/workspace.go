// Package workspace manages the per-run directory that holds transformed
// images until they are assembled into the PDF.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"imgs2pdf/internal/models"
)

// Create makes a fresh directory inside dir. The name starts as "tmp" and
// grows by another "tmp" for as long as the path is taken.
func Create(dir string) (string, error) {
	path := filepath.Join(dir, "tmp")
	for {
		_, err := os.Lstat(path)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: failed to probe workspace %s: %w", models.ErrFilesystem, path, err)
		}
		path += "tmp"
	}

	if err := os.Mkdir(path, 0755); err != nil {
		return "", fmt.Errorf("%w: failed to create workspace: %w", models.ErrFilesystem, err)
	}
	return path, nil
}

// Cleanup removes the workspace unless keep is set
func Cleanup(path string, keep bool) error {
	if keep || path == "" {
		return nil
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("%w: failed to remove workspace: %w", models.ErrFilesystem, err)
	}
	return nil
}

// UniqueName returns name, or name with a numeric suffix when it is already
// in used. The chosen name is recorded in used.
func UniqueName(used map[string]bool, name string) string {
	if !used[name] {
		used[name] = true
		return name
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, counter, ext)
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
	}
}
