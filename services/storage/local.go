package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidPath  = errors.New("invalid file path")
	ErrFileNotFound = errors.New("file not found")
)

// LocalStore writes files below Root.
type LocalStore struct {
	Root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{Root: abs}, nil
}

// Path joins subPath onto Root and rejects anything escaping it.
func (s *LocalStore) Path(subPath string) (string, error) {
	for _, seg := range strings.FieldsFunc(subPath, func(r rune) bool { return r == '/' || r == '\\' }) {
		if seg == ".." {
			return "", ErrInvalidPath
		}
	}
	clean := filepath.Clean(filepath.FromSlash("/" + strings.TrimLeft(subPath, "/")))
	if clean == string(filepath.Separator) {
		return "", ErrInvalidPath
	}
	full := filepath.Join(s.Root, clean)
	rel, err := filepath.Rel(s.Root, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", ErrInvalidPath
	}
	return full, nil
}

// Save replaces any file at subPath with data.
func (s *LocalStore) Save(subPath string, data []byte) (string, error) {
	full, err := s.Path(subPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("remove previous file: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return full, nil
}

// Lookup returns the absolute path of an existing regular file.
func (s *LocalStore) Lookup(subPath string) (string, error) {
	full, err := s.Path(subPath)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", ErrFileNotFound
	}
	return full, nil
}
