package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Directories that never contain source worth linting.
var skippedDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
}

// FindAabhaFiles recursively finds all .aabha files under each of the given
// paths. A path that is itself a .aabha file is returned as-is, so callers can
// pass a mix of files and directories straight from the command line.
func FindAabhaFiles(paths ...string) ([]string, error) {
	var files []string

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if IsAabhaFile(root) {
				files = append(files, root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && ShouldSkipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}

			if IsAabhaFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// IsAabhaFile reports whether path names an Aabha source file.
func IsAabhaFile(path string) bool {
	return filepath.Ext(path) == ".aabha"
}

// ShouldSkipDir reports whether a directory name should be excluded from
// walks: hidden directories and common dependency and output trees.
func ShouldSkipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return skippedDirs[name]
}
