package evallist

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eval_list.txt")
	ids := []string{"scene0707_00", "scene0000_01", "scene0015_00"}

	require.NoError(t, Save(ids, path))
	got, err := Load(path)
	require.NoError(t, err)

	// Order must survive exactly; Save never sorts.
	assert.Equal(t, ids, got)
}

func TestLoad_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eval_list.txt")
	require.NoError(t, os.WriteFile(path, []byte("scene0001_00\n\n  \nscene0002_00\n\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"scene0001_00", "scene0002_00"}, got)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))

	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSave_OverwritesExistingList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eval_list.txt")
	require.NoError(t, Save([]string{"scene0001_00", "scene0002_00"}, path))
	require.NoError(t, Save([]string{"scene0003_00"}, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"scene0003_00"}, got)
}

func TestSave_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lists", "eval_list.txt")

	require.NoError(t, Save([]string{"scene0001_00"}, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"scene0001_00"}, got)
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save([]string{"scene0001_00"}, filepath.Join(dir, "eval_list.txt")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "eval_list.txt", entries[0].Name())
}
