package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Scanner discovers test-definition files.
type Scanner interface {
	Scan(paths []string) ([]string, error)
}

// FileScanner implements Scanner using filepath.WalkDir.
type FileScanner struct {
	Extension string
}

// NewScanner creates a FileScanner collecting files with the given extension.
func NewScanner(extension string) *FileScanner {
	return &FileScanner{Extension: extension}
}

// Scan resolves each path in order: files are taken as given, directories are
// walked recursively collecting files with the scanner's extension. Files
// found in a directory are sorted so the run order is stable.
func (s *FileScanner) Scan(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", path, err)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		found, err := s.scanDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", path, err)
		}
		files = append(files, found...)
	}

	return files, nil
}

func (s *FileScanner) scanDir(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == s.Extension {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
