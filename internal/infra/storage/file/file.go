package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/facebookgo/atomicfile"

	"github.com/vietddude/codemarket/internal/infra/storage"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// Store implements storage.EntryRepository with one JSON file per entry.
// Writes go through a temp file and rename, so readers never see a partial file.
type Store struct {
	dir string
}

// NewStore creates the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the file backing key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	f, err := atomicfile.New(s.Path(key), 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", key, err)
	}

	if _, err := f.Write(value); err != nil {
		_ = f.Abort()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	return nil
}
