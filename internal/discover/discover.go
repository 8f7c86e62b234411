// Package discover resolves the ordered list of input images.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"imgs2pdf/internal/models"
)

// Files returns the names of regular files in dir that match "*<ext>" for
// any of exts, in natural order (descending when reverse is set). Matching
// is case-sensitive, hidden files are skipped, and a file matched by more
// than one extension is listed once.
func Files(dir string, exts []string, reverse bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read input folder: %w", models.ErrFilesystem, err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, ext := range exts {
		pattern := "*" + ext
		for _, e := range entries {
			name := e.Name()
			if seen[name] || e.IsDir() || strings.HasPrefix(name, ".") {
				continue
			}
			ok, err := filepath.Match(pattern, name)
			if err != nil {
				return nil, fmt.Errorf("%w: bad extension %q: %w", models.ErrConfig, ext, err)
			}
			if ok {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w: nothing matches %s in %s (check the folder and extension settings)",
			models.ErrEmptySelection, strings.Join(exts, ", "), dir)
	}

	Sort(names, reverse)
	return names, nil
}

// Sort orders names naturally, so embedded numbers compare by value:
// img2 sorts before img10.
func Sort(names []string, reverse bool) {
	sort.SliceStable(names, func(i, j int) bool {
		if reverse {
			return natural.Less(names[j], names[i])
		}
		return natural.Less(names[i], names[j])
	})
}
