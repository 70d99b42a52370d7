package store

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// NewFileStore returns a Store that keeps the ledger blob in a single JSON
// file at path. This is the default backend — the closest local analog of
// the key-value slot the app's data has always lived in.
func NewFileStore(path string, log *slog.Logger) Store {
	return newBlobStore(&fileBlob{path: path}, log)
}

type fileBlob struct {
	path string
}

func (f *fileBlob) read(_ context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// write replaces the blob atomically: write to a temp file in the same
// directory, then rename over the target. A crash mid-write leaves the old
// blob intact rather than a truncated one.
func (f *fileBlob) write(_ context.Context, data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
