package converter

import "github.com/backmassage/sensweep/internal/config"

// Build constructs the complete converter argument vector for one scene:
// the interpreter, the reader script, the source/output paths, and the
// enabled export-mode flags.
func Build(cfg *config.Config, sourcePath, outputDir string) []string {
	args := make([]string, 0, 10)
	args = append(args,
		cfg.PythonBin, cfg.ReaderScript,
		"--filename", sourcePath,
		"--output_path", outputDir,
	)
	if cfg.Exports.DepthImages {
		args = append(args, "--export_depth_images")
	}
	if cfg.Exports.ColorImages {
		args = append(args, "--export_color_images")
	}
	if cfg.Exports.Poses {
		args = append(args, "--export_poses")
	}
	if cfg.Exports.Intrinsics {
		args = append(args, "--export_intrinsics")
	}
	return args
}
