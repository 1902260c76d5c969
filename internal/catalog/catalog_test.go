package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkScene(t *testing.T, scansDir, id string, withSens bool) {
	t.Helper()
	dir := filepath.Join(scansDir, id)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	if withSens {
		require.NoError(t, os.WriteFile(filepath.Join(dir, id+".sens"), []byte("sens"), 0o644))
	}
}

func TestScan_FiltersAndSorts(t *testing.T) {
	scansDir := t.TempDir()
	mkScene(t, scansDir, "scene0010_00", true)
	mkScene(t, scansDir, "scene0002_01", true)
	require.NoError(t, os.MkdirAll(filepath.Join(scansDir, "notes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(scansDir, "scene0001_00"), []byte("a file, not a dir"), 0o644))

	got, err := Scan(scansDir, ".sens", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"scene0002_01", "scene0010_00"}, got)
}

func TestScan_VerifySourceExcludesIncompleteScenes(t *testing.T) {
	scansDir := t.TempDir()
	mkScene(t, scansDir, "scene0001_00", true)
	mkScene(t, scansDir, "scene0002_00", false)

	all, err := Scan(scansDir, ".sens", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"scene0001_00", "scene0002_00"}, all)

	verified, err := Scan(scansDir, ".sens", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"scene0001_00"}, verified)
}

func TestScan_MissingDir(t *testing.T) {
	got, err := Scan(filepath.Join(t.TempDir(), "absent"), ".sens", false)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSourcePath(t *testing.T) {
	got := SourcePath(filepath.Join("data", "raw", "scans"), "scene0001_00", ".sens")
	want := filepath.Join("data", "raw", "scans", "scene0001_00", "scene0001_00.sens")
	assert.Equal(t, want, got)
}

const sampleListing = `dataset
├── raw
│   └── scans
│       ├── scene0000_00
│       │   ├── scene0000_00.sens
│       │   └── scene0000_00.txt
│       ├── scene0001_00
│       └── scene0002_00
└── processed
    └── scans
        ├── scene0000_00
        └── scene0003_00
`

func TestScanListing_ExtractsScenesInOrder(t *testing.T) {
	entries, err := ScanListing(strings.NewReader(sampleListing))
	require.NoError(t, err)

	// scene0000_00 appears in both sections; the first occurrence wins.
	assert.Equal(t, []Entry{
		{Name: "scene0000_00", Partition: PartitionRaw},
		{Name: "scene0001_00", Partition: PartitionRaw},
		{Name: "scene0002_00", Partition: PartitionRaw},
		{Name: "scene0003_00", Partition: PartitionProcessed},
	}, entries)
}

func TestScanListing_IgnoresSceneFiles(t *testing.T) {
	entries, err := ScanListing(strings.NewReader(sampleListing))
	require.NoError(t, err)

	for _, e := range entries {
		assert.NotContains(t, e.Name, ".sens")
	}
}

func TestNames_PartitionFilter(t *testing.T) {
	entries := []Entry{
		{Name: "scene0000_00", Partition: PartitionRaw},
		{Name: "scene0003_00", Partition: PartitionProcessed},
	}

	assert.Equal(t, []string{"scene0000_00", "scene0003_00"}, Names(entries, ""))
	assert.Equal(t, []string{"scene0000_00"}, Names(entries, PartitionRaw))
	assert.Equal(t, []string{"scene0003_00"}, Names(entries, PartitionProcessed))
}

func TestScanListing_EmptyInput(t *testing.T) {
	entries, err := ScanListing(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
