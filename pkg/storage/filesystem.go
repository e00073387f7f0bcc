package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/eventforge/eventforge/internal/errdef"
)

// NewFileSystem returns a store writing files into folder. The folder is created if it does not exist.
func NewFileSystem(folder string) (*FileSystem, error) {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create folder %q: %v", folder, err)
	}
	return &FileSystem{folder: folder}, nil
}

// FileSystem stores objects as files in a flat folder keyed by their name.
type FileSystem struct {
	folder string
}

func (f FileSystem) path(key string) (string, error) {
	name := filepath.Base(key)
	if name != key || name == "." || name == ".." {
		return "", errdef.NewBadRequest("invalid file name %q", key)
	}
	return filepath.Join(f.folder, name), nil
}

func (f FileSystem) Exists(_ context.Context, key string) (bool, error) {
	path, err := f.path(key)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Write creates the file exclusively. Writing to an existing key fails with a Conflict.
func (f FileSystem) Write(_ context.Context, key string, body io.Reader, _ string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return errdef.NewConflict("file %q already exists", key)
	}
	if err != nil {
		return fmt.Errorf("failed to create file %q: %v", key, err)
	}

	if _, err := io.Copy(file, body); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to write file %q: %v", key, err)
	}

	return file.Close()
}

func (f FileSystem) Read(_ context.Context, key string, dst io.Writer) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return errdef.NewNotFound("file %q not found", key)
	}
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(dst, file)
	return err
}

func (f FileSystem) Delete(_ context.Context, key string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return errdef.NewNotFound("file %q not found", key)
	}
	return err
}
