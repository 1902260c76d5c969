package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/sensweep/internal/config"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) record(level, format string, args []interface{}) {
	r.lines = append(r.lines, level+": "+fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Info(f string, a ...interface{})    { r.record("INFO", f, a) }
func (r *recordingLogger) Success(f string, a ...interface{}) { r.record("SUCCESS", f, a) }
func (r *recordingLogger) Warn(f string, a ...interface{})    { r.record("WARN", f, a) }
func (r *recordingLogger) Error(f string, a ...interface{})   { r.record("ERROR", f, a) }
func (r *recordingLogger) Debug(v bool, f string, a ...interface{}) {
	if v {
		r.record("DEBUG", f, a)
	}
}

func (r *recordingLogger) contains(substr string) bool {
	for _, l := range r.lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func writeReader(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reader.py")
	require.NoError(t, os.WriteFile(path, []byte("print('ok')\n"), 0o644))
	return path
}

func TestCheckDeps_MissingInterpreter(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PythonBin = "sensweep-no-such-interpreter"
	cfg.ReaderScript = writeReader(t)

	err := CheckDeps(&cfg)
	assert.ErrorIs(t, err, ErrPythonNotFound)
}

func TestCheckDeps_MissingReader(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PythonBin = "sh" // any resolvable binary will do
	cfg.ReaderScript = filepath.Join(t.TempDir(), "absent.py")

	err := CheckDeps(&cfg)
	assert.ErrorIs(t, err, ErrReaderNotFound)
}

func TestCheckDeps_AllPresent(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PythonBin = "sh"
	cfg.ReaderScript = writeReader(t)

	assert.NoError(t, CheckDeps(&cfg))
}

func TestRunCheck_ReportsMissingReader(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PythonBin = "sh"
	cfg.ReaderScript = filepath.Join(t.TempDir(), "absent.py")
	log := &recordingLogger{}

	ok := RunCheck(&cfg, log)

	assert.False(t, ok)
	assert.True(t, log.contains("Reader script not found"))
}

func TestRunCheck_DatasetCounts(t *testing.T) {
	root := t.TempDir()
	scansDir := filepath.Join(root, "raw", "scans")
	for _, id := range []string{"scene0001_00", "scene0002_00"} {
		require.NoError(t, os.MkdirAll(filepath.Join(scansDir, id), 0o755))
	}
	require.NoError(t, os.WriteFile(
		filepath.Join(scansDir, "scene0001_00", "scene0001_00.sens"), []byte("s"), 0o644))

	cfg := config.DefaultConfig()
	cfg.PythonBin = "sh"
	cfg.ReaderScript = writeReader(t)
	cfg.DatasetRoot = root
	log := &recordingLogger{}

	ok := RunCheck(&cfg, log)

	assert.True(t, ok)
	assert.True(t, log.contains("2 scenes, 1 with .sens artifact"))
	assert.True(t, log.contains("1 scenes are missing their source artifact"))
}

func TestRunCheck_NoDatasetConfigured(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PythonBin = "sh"
	cfg.ReaderScript = writeReader(t)
	log := &recordingLogger{}

	ok := RunCheck(&cfg, log)

	assert.True(t, ok)
	assert.True(t, log.contains("skipping dataset check"))
}
