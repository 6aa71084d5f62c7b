package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSave(t *testing.T) {
	store, err := NewLocalStorage(filepath.Join(t.TempDir(), "exports"))
	require.NoError(t, err)

	path, err := store.Save("attendance/attendance_list_a.csv", []byte("No.,Nombre\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir(), "attendance", "attendance_list_a.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "No.,Nombre\n", string(data))

	_, err = store.Save("attendance/attendance_list_a.csv", []byte("v2"))
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	entries, err := os.ReadDir(filepath.Join(store.Dir(), "attendance"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalStorageRejectsEscapingNames(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"../x.pdf", "a/../../x.pdf", "/etc/x.pdf", "", "."} {
		_, err := store.Save(name, []byte("x"))
		assert.Error(t, err, name)
	}
	_, err = store.Save("../x.pdf", nil)
	assert.ErrorIs(t, err, ErrOutsideBase)
}

func TestLocalStoragePruneOlderThan(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	oldPath, err := store.Save("old/report.pdf", []byte("old"))
	require.NoError(t, err)
	_, err = store.Save("fresh.pdf", []byte("fresh"))
	require.NoError(t, err)

	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, past, past))

	deleted, err := store.PruneOlderThan(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"old/report.pdf"}, deleted)

	_, err = os.Stat(oldPath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(store.Dir(), "fresh.pdf"))
	assert.NoError(t, err)
}
