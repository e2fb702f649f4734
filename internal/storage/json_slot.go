package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// JSONSlot keeps the document as a standalone JSON file.
type JSONSlot struct {
	path string
}

func NewJSONSlot(path string) *JSONSlot {
	return &JSONSlot{path: path}
}

func (s *JSONSlot) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

// Open succeeds even when the file is missing; an absent file is an absent document.
func (s *JSONSlot) Open() error {
	return nil
}

func (s *JSONSlot) Close() error {
	return nil
}

func (s *JSONSlot) Read() (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read storage: %w", err)
	}
	return string(data), true, nil
}

// Write replaces the file atomically via a temp file and rename.
func (s *JSONSlot) Write(doc string) error {
	if err := s.Init(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(doc); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close storage: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set storage permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONSlot) Location() string {
	return s.path
}

// Path returns the file backing the slot
func (s *JSONSlot) Path() string {
	return s.path
}
