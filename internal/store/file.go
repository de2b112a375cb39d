// Package store holds the harmonic model stores. Every store returns
// harmonic.ErrModelNotFound, wrapped, when a station has no model.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bbernstein/tidecal/internal/harmonic"
)

const modelExtension = ".json"

// FileStore reads models from <dir>/<stationID>.json
type FileStore struct {
	dir string
}

// NewFileStore fails when dir does not exist or is not a directory.
func NewFileStore(dir string) (*FileStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("harmonics directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("harmonics path is not a directory: %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Load(_ context.Context, stationID string) ([]byte, error) {
	if err := validateStationID(stationID); err != nil {
		return nil, err
	}
	path := filepath.Join(s.dir, stationID+modelExtension)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, harmonic.ErrModelNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func validateStationID(stationID string) error {
	if stationID == "" || stationID != filepath.Base(stationID) || stationID == "." || stationID == ".." {
		return fmt.Errorf("invalid station id %q", stationID)
	}
	return nil
}
