package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWritesAtomically(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)

	path, err := s.Save("exports/schedule.csv", []byte("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "exports", "schedule.csv"), path)

	body, err := os.ReadFile(s.Path("exports/schedule.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(body))

	entries, err := os.ReadDir(filepath.Join(dir, "exports"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestCleanupOlderThan(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)

	_, err = s.Save("backup-old.json", []byte("{}"))
	require.NoError(t, err)
	_, err = s.Save("backup-new.json", []byte("{}"))
	require.NoError(t, err)
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(s.Path("backup-old.json"), old, old))

	deleted, err := s.CleanupOlderThan("backup-*.json", 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"backup-old.json"}, deleted)
	_, err = os.Stat(s.Path("backup-new.json"))
	assert.NoError(t, err)
}
