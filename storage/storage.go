// Package storage persists acquisition results as CSV files under themed
// directories of a base output directory.
package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Themes accepted by SaveCSV. Each maps to a subdirectory of the base
// output directory, except demografia, whose files live in the base
// directory itself.
const (
	ThemeSatellite   = "satelital"
	ThemeTransport   = "transporte"
	ThemeNightLights = "luz_nocturna"
	ThemeDemography  = "demografia"
)

var themeDirs = map[string]string{
	ThemeSatellite:   "satelital",
	ThemeTransport:   "transporte",
	ThemeNightLights: "luz_nocturna",
	ThemeDemography:  "",
}

// Dataset is a tabular result ready to be persisted.
type Dataset struct {
	Header []string
	Rows   [][]string
}

// Empty reports whether the dataset has no rows. Callers treat an empty
// dataset as nothing to persist and skip SaveCSV.
func (d Dataset) Empty() bool {
	return len(d.Rows) == 0
}

// Store writes datasets under a base output directory.
type Store struct {
	baseDir string
}

// NewStore creates a store rooted at baseDir. Directories are created
// lazily on first save.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Dir returns the directory a theme writes into.
func (s *Store) Dir(theme string) (string, error) {
	sub, ok := themeDirs[theme]
	if !ok {
		return "", fmt.Errorf("unknown theme: %s", theme)
	}
	return filepath.Join(s.baseDir, sub), nil
}

// SaveCSV writes the dataset as a CSV file inside the theme directory and
// returns the final path. The file is written under a temporary name and
// renamed into place, so a failed write leaves any previous file as it was.
// Each successful save fully overwrites the destination.
func (s *Store) SaveCSV(theme, filename string, ds Dataset) (string, error) {
	dir, err := s.Dir(theme)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filename+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	writer := csv.NewWriter(tmp)
	writeErr := writer.Write(ds.Header)
	if writeErr == nil {
		writeErr = writer.WriteAll(ds.Rows)
	}
	if writeErr == nil {
		writeErr = tmp.Sync()
	}
	if closeErr := tmp.Close(); closeErr != nil && writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write %s: %w", filename, writeErr)
	}

	finalPath := filepath.Join(dir, filename)
	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move %s into place: %w", filename, err)
	}
	return finalPath, nil
}
