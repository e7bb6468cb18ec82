// Package storage writes and reads extraction artifacts on disk. The
// database keeps the queryable copy; these files are the human-readable
// one.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sitetruth/sitetruth/models"
)

type Storage struct{}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

func (s *Storage) SaveFile(filePath string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %s", err)
	}
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return fmt.Errorf("error saving file: %s", err)
	}

	return nil
}

func (s *Storage) ReadFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %s", err)
	}
	return data, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

func (s *Storage) HasFile(fn string) bool {
	return fileExists(fn)
}

// GetFileStats returns metadata about a file using os.Stat (no I/O overhead).
func (s *Storage) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %s", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}

// SavePage serializes an extracted page record to <dir>/<slug>.json.
// Returns the written path.
func (s *Storage) SavePage(dir string, page *models.ExtractedPage) (string, error) {
	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error serializing page record: %s", err)
	}

	path := filepath.Join(dir, page.Slug+".json")
	if err := s.SaveFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// LoadPage reads a page record back from disk.
func (s *Storage) LoadPage(filePath string) (*models.ExtractedPage, error) {
	data, err := s.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var page models.ExtractedPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("error deserializing page record: %s", err)
	}
	return &page, nil
}
