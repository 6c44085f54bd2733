package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps images on the local filesystem under baseDir and
// serves them below urlPrefix (the /media route).
type LocalStorage struct {
	baseDir   string
	urlPrefix string
}

func NewLocalStorage(baseDir, urlPrefix string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}
}

func (s *LocalStorage) Save(key string, data io.Reader, _ string) (string, error) {
	dest, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("storage: create: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return "", fmt.Errorf("storage: write: %w", err)
	}
	return s.urlPrefix + "/" + filepath.ToSlash(key), nil
}

func (s *LocalStorage) Delete(key string) error {
	dest, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: remove: %w", err)
	}
	return nil
}

func (s *LocalStorage) KeyFor(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, s.urlPrefix+"/")
	return key, ok && key != ""
}

func (s *LocalStorage) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	return filepath.Join(s.baseDir, clean), nil
}
