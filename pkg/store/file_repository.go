package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bft-labs/avatarsync/pkg/avatar"
)

const fileName = "avatar-config.json"

// FileRepository implements Repository with a JSON file in a directory.
type FileRepository struct {
	dir string
}

// NewFileRepository creates a repository rooted at dir.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// Path returns the full path of the backing file.
func (r *FileRepository) Path() string {
	return filepath.Join(r.dir, fileName)
}

// Load reads and validates the saved configuration.
func (r *FileRepository) Load(ctx context.Context) (*avatar.Config, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	cfg, err := avatar.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", r.Path(), err)
	}
	return &cfg, nil
}

// Save writes cfg via a temp file and rename.
func (r *FileRepository) Save(ctx context.Context, cfg avatar.Config) error {
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	path := r.Path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

var _ Repository = (*FileRepository)(nil)
