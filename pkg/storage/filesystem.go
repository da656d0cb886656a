package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// LocalStorage writes generated files (exports, backups) under a base directory.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "."
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Save writes data to filename. The file is written to a temp sibling and
// renamed so readers never observe a partial file.
func (s *LocalStorage) Save(filename string, data []byte) (string, error) {
	return s.SaveStream(filename, bytes.NewReader(data))
}

// SaveStream copies r into filename atomically and returns the final path.
func (s *LocalStorage) SaveStream(filename string, r io.Reader) (string, error) {
	path := s.Path(filename)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("prepare output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("close %s: %w", filename, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return "", fmt.Errorf("chmod %s: %w", filename, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return "", fmt.Errorf("rename %s: %w", filename, err)
	}
	return path, nil
}

// CleanupOlderThan removes files matching pattern older than ttl and returns their names.
func (s *LocalStorage) CleanupOlderThan(pattern string, ttl time.Duration) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.baseDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", pattern, err)
	}
	cutoff := time.Now().Add(-ttl)
	deleted := make([]string, 0)
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return deleted, fmt.Errorf("remove %s: %w", path, err)
		}
		deleted = append(deleted, filepath.Base(path))
	}
	return deleted, nil
}

// Path resolves filename against the base directory; absolute paths pass through.
func (s *LocalStorage) Path(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(s.baseDir, filename)
}
