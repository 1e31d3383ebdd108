package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStorage writes uploads below a root directory. Stored paths are
// relative to the root and use forward slashes.
type DiskStorage struct {
	root string
}

func NewDiskStorage(root string) *DiskStorage {
	return &DiskStorage{root: root}
}

func (s *DiskStorage) Root() string {
	return s.root
}

// Save copies src into dir under a fresh uuid name keeping ext. It returns
// the generated uid and the stored relative path.
func (s *DiskStorage) Save(dir, ext string, src io.Reader) (uid, rel string, err error) {
	uid = uuid.NewString()
	rel = filepath.ToSlash(filepath.Join(dir, uid+strings.ToLower(ext)))
	full := filepath.Join(s.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", "", fmt.Errorf("create upload directory: %w", err)
	}

	dst, err := os.Create(full)
	if err != nil {
		return "", "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(full)
		return "", "", fmt.Errorf("write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(full)
		return "", "", fmt.Errorf("close upload file: %w", err)
	}
	return uid, rel, nil
}

// Remove deletes a stored file; a missing file is not an error
func (s *DiskStorage) Remove(rel string) error {
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
