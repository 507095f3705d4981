package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/grindlemire/qmlfmt/internal/config"
)

// collectFiles finds the files to format from the given paths.
// Supports:
//   - Direct file paths: "Main.qml" (accepted whatever the extension)
//   - Directory paths: "./ui" (non-recursive)
//   - Recursive pattern: "./ui/..."
//
// Directory entries are matched against the configured extensions. Hidden
// directories are skipped during a recursive walk.
func collectFiles(paths []string, cfg config.Config) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, path := range paths {
		// Handle ./... recursive pattern
		if path == "..." || strings.HasSuffix(path, "/...") {
			root := strings.TrimSuffix(strings.TrimSuffix(path, "..."), "/")
			if root == "" {
				root = "."
			}

			err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					if p != root && strings.HasPrefix(d.Name(), ".") {
						return filepath.SkipDir
					}
					return nil
				}
				if cfg.MatchesExtension(p) {
					add(p)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walking %s: %w", root, err)
			}
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", path, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && cfg.MatchesExtension(entry.Name()) {
				add(filepath.Join(path, entry.Name()))
			}
		}
	}

	return files, nil
}
