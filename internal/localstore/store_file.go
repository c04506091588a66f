package localstore

import (
	"context"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
)

// FileStore keeps one file per key under dir. Writes go through a temp file
// and a rename so readers never see a half-written value.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("file store: empty dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "file store: create dir")
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "read %q", key)
	}
	return string(b), true, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "write %q", key)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %q", key)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return errors.Wrapf(err, "rename %q", key)
	}
	return nil
}

func (s *FileStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "remove %q", key)
	}
	return nil
}
