package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Storage {
	t.Helper()
	dir := t.TempDir()

	file, err := NewFile(filepath.Join(dir, "data.json"))
	require.NoError(t, err)
	db, err := OpenSQLite(filepath.Join(dir, "data.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]Storage{
		DriverMemory: NewMemory(),
		DriverFile:   file,
		DriverSQLite: db,
	}
}

func TestBackendContract(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.GetItem("missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.SetItem("k", `[{"id":"1"}]`))
			v, err := s.GetItem("k")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"1"}]`, v)

			require.NoError(t, s.SetItem("k", "[]"))
			v, err = s.GetItem("k")
			require.NoError(t, err)
			assert.Equal(t, "[]", v)

			require.NoError(t, s.SetItem("other", "x"))
			require.NoError(t, s.RemoveItem("k"))
			_, err = s.GetItem("k")
			assert.ErrorIs(t, err, ErrNotFound)

			v, err = s.GetItem("other")
			require.NoError(t, err)
			assert.Equal(t, "x", v)

			assert.NoError(t, s.RemoveItem("never-set"))
		})
	}
}

func TestFileSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	f1, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, f1.SetItem("simpletodo.todos", "[]"))

	f2, err := NewFile(path)
	require.NoError(t, err)
	v, err := f2.GetItem("simpletodo.todos")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestFileCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	f, err := NewFile(path)
	require.NoError(t, err)
	_, err = f.GetItem("k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, errCorrupt)

	require.NoError(t, f.SetItem("k", "v"))
	v, err := f.GetItem("k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestFileReadErrorIsNotOverwritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.Mkdir(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), []byte("x"), 0o644))

	f, err := NewFile(path)
	require.NoError(t, err)
	err = f.SetItem("k", "v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read file")
	assert.NotErrorIs(t, err, errCorrupt)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.FileExists(t, filepath.Join(path, "keep"))
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, db.SetItem("k", "v"))
	require.NoError(t, db.Close())

	db, err = OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()
	v, err := db.GetItem("k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := OpenSQLite(" ")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open("FILE", filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	assert.IsType(t, &File{}, s)

	s, err = Open("sqlite", filepath.Join(dir, "a.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	require.NoError(t, s.Close())

	_, err = Open("redis", "")
	assert.Error(t, err)
}
