package media

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store persists generated images under a flat media directory and
// hands back paths relative to it, suitable for serving as static files.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = "media"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the root media directory.
func (s *Store) Dir() string {
	return s.dir
}

// SaveMCQImage writes PNG bytes for a question and returns the relative
// path ("media/mcq_<id>.png").
func (s *Store) SaveMCQImage(mcqId string, data []byte) (string, error) {
	filename := fmt.Sprintf("mcq_%s.png", mcqId)
	fullPath := filepath.Join(s.dir, filename)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return filepath.ToSlash(filepath.Join(filepath.Base(s.dir), filename)), nil
}

// Remove deletes a previously stored image, ignoring missing files.
func (s *Store) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	fullPath := filepath.Join(filepath.Dir(s.dir), relPath)
	err := os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
