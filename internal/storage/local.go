package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage keeps files in a directory served under URLPrefix.
type LocalStorage struct {
	Dir       string
	URLPrefix string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{Dir: dir, URLPrefix: "/uploads"}, nil
}

func (s *LocalStorage) Save(_ context.Context, r io.Reader, name string) (string, error) {
	name = filepath.Base(name)
	dst, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return s.URLPrefix + "/" + name, nil
}

func (s *LocalStorage) Owns(p string) bool {
	return strings.HasPrefix(strings.TrimSpace(p), s.URLPrefix+"/")
}

// Delete removes the file behind a path returned by Save. Paths that would
// resolve outside Dir are refused; a file that is already gone is not an error.
func (s *LocalStorage) Delete(_ context.Context, p string) error {
	trimmed := strings.TrimSpace(p)
	if !s.Owns(trimmed) {
		return fmt.Errorf("refusing to delete non-upload path: %s", p)
	}

	rel := "/" + strings.TrimPrefix(trimmed, s.URLPrefix+"/")
	if path.Clean(rel) != rel {
		return fmt.Errorf("refusing to delete unclean path: %s", p)
	}
	base := filepath.Clean(s.Dir)
	target := filepath.Clean(filepath.Join(base, filepath.FromSlash(rel)))
	if target == base || !strings.HasPrefix(target, base+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete path outside upload dir: %s", p)
	}

	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
