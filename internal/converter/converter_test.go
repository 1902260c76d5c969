package converter

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/sensweep/internal/config"
)

func TestBuild_FullExport(t *testing.T) {
	cfg := config.DefaultConfig()

	got := Build(&cfg, "/data/raw/scans/scene0001_00/scene0001_00.sens", "/out/scene0001_00")

	assert.Equal(t, []string{
		"python3", "reader.py",
		"--filename", "/data/raw/scans/scene0001_00/scene0001_00.sens",
		"--output_path", "/out/scene0001_00",
		"--export_depth_images",
		"--export_color_images",
		"--export_poses",
		"--export_intrinsics",
	}, got)
}

func TestBuild_DisabledExports(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Exports.DepthImages = false
	cfg.Exports.Intrinsics = false

	got := Build(&cfg, "in.sens", "out")

	assert.NotContains(t, got, "--export_depth_images")
	assert.NotContains(t, got, "--export_intrinsics")
	assert.Contains(t, got, "--export_color_images")
	assert.Contains(t, got, "--export_poses")
}

func TestBuild_CustomInterpreter(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PythonBin = "/usr/bin/python3.11"
	cfg.ReaderScript = "/opt/scannet/reader.py"

	got := Build(&cfg, "in.sens", "out")

	assert.Equal(t, "/usr/bin/python3.11", got[0])
	assert.Equal(t, "/opt/scannet/reader.py", got[1])
}

func needSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExec_Success(t *testing.T) {
	needSh(t)

	res := Exec{}.Run(context.Background(), []string{"sh", "-c", "exit 0"}, time.Minute)

	require.NoError(t, res.Err)
	assert.False(t, res.TimedOut)
}

func TestExec_FailureCapturesStderr(t *testing.T) {
	needSh(t)

	res := Exec{}.Run(context.Background(), []string{"sh", "-c", "echo boom >&2; exit 3"}, time.Minute)

	require.Error(t, res.Err)
	assert.False(t, res.TimedOut)
	assert.Contains(t, res.Stderr, "boom")
}

func TestExec_Timeout(t *testing.T) {
	needSh(t)

	start := time.Now()
	res := Exec{}.Run(context.Background(), []string{"sh", "-c", "sleep 10"}, 100*time.Millisecond)

	require.Error(t, res.Err)
	assert.True(t, res.TimedOut)
	assert.Less(t, time.Since(start), 5*time.Second, "timeout must not hang the caller")
}

func TestExec_MissingBinary(t *testing.T) {
	res := Exec{}.Run(context.Background(), []string{"sensweep-no-such-binary"}, time.Minute)

	require.Error(t, res.Err)
	assert.False(t, res.TimedOut)
}

func TestExec_CancelledContextIsNotTimeout(t *testing.T) {
	needSh(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := Exec{}.Run(ctx, []string{"sh", "-c", "sleep 10"}, time.Minute)

	require.Error(t, res.Err)
	assert.False(t, res.TimedOut)
}
