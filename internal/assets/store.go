package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is the public path prefix generated images are served under.
const URLPrefix = "/assets/"

const dirPerm = 0o755

// Store writes generated images to a local directory and hands out the
// public URLs they are served under. Image "references" everywhere else
// in the API are these URLs.
type Store struct {
	dir string
}

// NewStore creates the backing directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create assets dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory static serving should be mounted on.
func (s *Store) Dir() string {
	return s.dir
}

// Put writes image bytes under a fresh name and returns the public URL.
func (s *Store) Put(data []byte, ext string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("refusing to store empty image")
	}
	if ext == "" {
		ext = "png"
	}
	name := uuid.New().String() + "." + ext

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image %s: %w", name, err)
	}
	return URLPrefix + name, nil
}

// Get reads back the bytes behind a URL previously returned by Put.
// Rejects anything that does not resolve inside the store directory.
func (s *Store) Get(url string) ([]byte, error) {
	name, ok := strings.CutPrefix(url, URLPrefix)
	if !ok || name == "" {
		return nil, fmt.Errorf("unknown image reference: %s", url)
	}
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid image reference: %s", url)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", name, err)
	}
	return data, nil
}

// Exists reports whether a URL refers to a stored image.
func (s *Store) Exists(url string) bool {
	name, ok := strings.CutPrefix(url, URLPrefix)
	if !ok || name == "" || name != filepath.Base(name) {
		return false
	}
	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}
