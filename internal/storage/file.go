package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// JSON-backed storage. Single file holding {"key": "value", ...},
// human-readable and portable.

const DefaultFileName = "simpletodo.json"

// errCorrupt marks a document that was read but does not parse.
var errCorrupt = errors.New("corrupt document")

// File stores every key in one JSON document on disk.
type File struct {
	path string
}

// DefaultPath places the data file in the working directory.
func DefaultPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(wd, DefaultFileName), nil
}

func NewFile(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &File{path: filepath.Clean(path)}, nil
}

// Path is the file backing the store.
func (f *File) Path() string { return f.path }

func (f *File) GetItem(key string) (string, error) {
	items, err := f.read()
	if err != nil {
		return "", err
	}
	v, ok := items[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// SetItem rewrites the whole document. A document that no longer parses
// is replaced; read errors are returned and the file is left alone.
func (f *File) SetItem(key, value string) error {
	items, err := f.read()
	if errors.Is(err, errCorrupt) {
		items = map[string]string{}
	} else if err != nil {
		return err
	}
	items[key] = value
	return f.write(items)
}

func (f *File) RemoveItem(key string) error {
	items, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return f.write(items)
}

func (f *File) Close() error { return nil }

func (f *File) read() (map[string]string, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return map[string]string{}, nil
	}
	items := map[string]string{}
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w: %w", errCorrupt, err)
	}
	return items, nil
}

// write goes through a temp file and rename so readers never see half a
// document.
func (f *File) write(items map[string]string) error {
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".simpletodo-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
