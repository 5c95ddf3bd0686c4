package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// findFile scans dir for a file or symlink named exactly name.
func findFile(dir, name string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read dir %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.Name() == name && (e.Type().IsRegular() || e.Type()&fs.ModeSymlink != 0) {
			return filepath.Join(dir, name), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrFileNotFound, name)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// writeFile creates or truncates dir/name. Concurrent writers to the same
// name are not serialized; the last one to finish wins.
func writeFile(dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
