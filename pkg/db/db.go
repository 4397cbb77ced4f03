package db

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// FileStore keeps the whole patient list as a single JSON array in one file.
// The list is loaded wholesale on every read and written back after every mutation.
type FileStore struct {
	path string
	fs   afs.Service
	mu   sync.RWMutex
}

// Ensure FileStore implements Database
var _ Database = (*FileStore)(nil)

// NewFileStore creates a patient store backed by the file at path
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("patient store path cannot be empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve patient store path: %w", err)
	}

	return &FileStore{
		path: absPath,
		fs:   afs.New(),
	}, nil
}

// Path returns the absolute location of the patient file
func (s *FileStore) Path() string {
	return s.path
}

// Close is a no-op for the file store
func (s *FileStore) Close() {}

// load reads the patient list, returning an empty list if the file does not exist yet
func (s *FileStore) load(ctx context.Context) ([]Patient, error) {
	exists, err := s.fs.Exists(ctx, s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to check patient file: %w", err)
	}
	if !exists {
		return []Patient{}, nil
	}

	data, err := s.fs.DownloadWithURL(ctx, s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read patient file: %w", err)
	}

	patients := []Patient{}
	if len(bytes.TrimSpace(data)) == 0 {
		return patients, nil
	}
	if err := json.Unmarshal(data, &patients); err != nil {
		return nil, fmt.Errorf("failed to decode patient file %s: %w", s.path, err)
	}

	return patients, nil
}

// save writes the full patient list back to the file
func (s *FileStore) save(ctx context.Context, patients []Patient) error {
	data, err := json.MarshalIndent(patients, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode patients: %w", err)
	}

	if err := s.fs.Upload(ctx, s.path, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write patient file %s: %w", s.path, err)
	}

	return nil
}
