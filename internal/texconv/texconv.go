// Package texconv builds and executes commands for the external texconv
// texture converter. texconv decodes the source into a fixed intermediate
// pixel format and writes <stem>.<format> into the requested output
// directory; this package only shells out and classifies the result.
package texconv

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
)

// intermediateFormat is the pixel format texconv decodes into before
// re-encoding. 8-bit RGBA keeps alpha intact for every target we support.
const intermediateFormat = "R8G8B8A8_UNORM"

// BuildArgs constructs the texconv argument slice for one input file.
// -y enables overwrite so re-runs are idempotent.
func BuildArgs(bin, format, outputDir, inputPath string) []string {
	return []string{
		bin,
		"-f", intermediateFormat,
		"-ft", format,
		"-y",
		"-o", outputDir,
		inputPath,
	}
}

// Convert runs texconv on inputPath, writing the converted file into
// outputDir. A nonzero exit (or a missing binary) is returned as a
// *ToolError carrying the captured output.
func Convert(ctx context.Context, bin, format, outputDir, inputPath string) error {
	args := BuildArgs(bin, format, outputDir, inputPath)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &ToolError{
			Tool:     bin,
			Input:    inputPath,
			ExitCode: exitCode(err),
			Output:   combinedOutput(stdout.String(), stderr.String()),
			Err:      err,
		}
	}
	return nil
}

// OutputName returns the file name texconv produces for inputPath: the input
// stem with the target format as extension.
func OutputName(inputPath, format string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "." + format
}

func exitCode(err error) int {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}

func combinedOutput(stdout, stderr string) string {
	stdout = strings.TrimSpace(stdout)
	stderr = strings.TrimSpace(stderr)
	switch {
	case stdout == "":
		return stderr
	case stderr == "":
		return stdout
	default:
		return stderr + "\n" + stdout
	}
}
