package filestorage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveOpenDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	ls, err := NewLocalStorage(dir)
	require.NoError(t, err)

	path, err := ls.Save("mototransporte_backup_2026-10-17.json", strings.NewReader(`{"students":[]}`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mototransporte_backup_2026-10-17.json"), path)

	rc, err := ls.Open("mototransporte_backup_2026-10-17.json")
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, `{"students":[]}`, string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")

	require.NoError(t, ls.Delete("mototransporte_backup_2026-10-17.json"))
	require.NoError(t, ls.Delete("mototransporte_backup_2026-10-17.json"))
}

func TestLocalStorageConfinesPaths(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "passwd"), ls.GetFullPath("../../etc/passwd"))
	assert.Empty(t, ls.GetFullPath(".."))

	_, err = ls.Save("..", strings.NewReader("x"))
	assert.Error(t, err)
}
