// Package storage is a small key-value blob store, the local equivalent
// of a browser's localStorage. Values are opaque strings.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by GetItem when the key has no value.
var ErrNotFound = errors.New("storage: key not found")

// Storage is implemented by every backend.
type Storage interface {
	GetItem(key string) (string, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	Close() error
}

// Drivers accepted by Open.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Drivers lists the names Open understands.
func Drivers() []string {
	return []string{DriverFile, DriverSQLite, DriverMemory}
}

// Open returns the backend named by driver. path is ignored for memory.
func Open(driver, path string) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile, "":
		return NewFile(path)
	case DriverSQLite:
		return OpenSQLite(path)
	}
	return nil, fmt.Errorf("unknown storage driver %q", driver)
}
