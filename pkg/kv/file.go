package kv

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/agentstation/bookmap/pkg/constants"
	"github.com/agentstation/bookmap/pkg/errors"
)

// File is a Store kept in a single JSON object on disk. Every Set and
// Delete rewrites the file through a temp file and rename, so a crash
// leaves either the old or the new contents.
type File struct {
	path string
	mu   sync.RWMutex
	data map[string]string
}

var _ Store = (*File)(nil)

// NewFile opens or creates the JSON store at path.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.NewConfigError("store", "file backend requires a path", nil)
	}
	f := &File{path: path, data: make(map[string]string)}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the file backing the store.
func (f *File) Path() string { return f.path }

func (f *File) load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(f.path), err)
	}

	file, err := os.Open(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.WrapIO("open", f.path, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&f.data); err != nil {
		if err == io.EOF {
			return nil
		}
		return errors.WrapParse("json", f.path, err)
	}
	if f.data == nil {
		f.data = make(map[string]string)
	}
	return nil
}

// Get implements Store.
func (f *File) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.data[key]
	return v, ok, nil
}

// Set implements Store.
func (f *File) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.data[key]
	f.data[key] = value
	if err := f.save(); err != nil {
		if had {
			f.data[key] = prev
		} else {
			delete(f.data, key)
		}
		return err
	}
	return nil
}

// Delete implements Store.
func (f *File) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.data[key]
	if !had {
		return nil
	}
	delete(f.data, key)
	if err := f.save(); err != nil {
		f.data[key] = prev
		return err
	}
	return nil
}

// Close implements Store.
func (f *File) Close() error { return nil }

// save writes the map to disk. Callers hold the write lock.
func (f *File) save() error {
	if err := os.MkdirAll(filepath.Dir(f.path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(f.path), err)
	}
	tmp := f.path + ".tmp"
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", tmp, err)
	}

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f.data); err != nil {
		file.Close()
		return errors.WrapIO("write", tmp, err)
	}
	if err := file.Close(); err != nil {
		return errors.WrapIO("close", tmp, err)
	}

	if err := os.Rename(tmp, f.path); err != nil {
		return errors.WrapIO("rename", f.path, err)
	}
	return nil
}
