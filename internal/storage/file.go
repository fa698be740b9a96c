package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/anmolrajas/portfolio/internal/errors"
)

// File is a KV persisted as a flat JSON object. Every write rewrites the
// whole file through a temp file and rename.
type File struct {
	mu       sync.RWMutex
	values   map[string]string
	filePath string
}

// OpenFile loads the JSON store at path. A missing file is an empty store.
func OpenFile(path string) (*File, error) {
	const op errors.Op = "storage.OpenFile"

	f := &File{values: make(map[string]string), filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, errors.StorageFailed(op, path, err)
	}
	if len(data) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(data, &f.values); err != nil {
		return nil, errors.StorageFailed(op, path, err)
	}
	if f.values == nil {
		f.values = make(map[string]string)
	}
	return f, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.filePath
}

func (f *File) Get(key string) (string, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.values[key]
	f.values[key] = value
	if err := f.save(); err != nil {
		if had {
			f.values[key] = prev
		} else {
			delete(f.values, key)
		}
		return errors.StorageFailed("storage.File.Set", key, err)
	}
	return nil
}

func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.values[key]
	if !had {
		return nil
	}
	delete(f.values, key)
	if err := f.save(); err != nil {
		f.values[key] = prev
		return errors.StorageFailed("storage.File.Delete", key, err)
	}
	return nil
}

func (f *File) Close() error { return nil }

// save writes the map to disk. Caller must hold f.mu.
func (f *File) save() error {
	if err := os.MkdirAll(filepath.Dir(f.filePath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return err
	}

	tmp := f.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.filePath)
}
