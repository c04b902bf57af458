package texconv

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArgs(t *testing.T) {
	args := BuildArgs("texconv", "png", "/out/ui", "/in/ui/icon.dds")

	want := []string{
		"texconv",
		"-f", "R8G8B8A8_UNORM",
		"-ft", "png",
		"-y",
		"-o", "/out/ui",
		"/in/ui/icon.dds",
	}
	assert.Equal(t, want, args)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "icon.png", OutputName("/in/ui/icon.dds", "png"))
	assert.Equal(t, "icon.jpg", OutputName("icon.dds", "jpg"))
	assert.Equal(t, "noext.png", OutputName("/in/noext", "png"))
}

func TestConvertMissingBinary(t *testing.T) {
	err := Convert(context.Background(), "definitely-not-texconv-on-path", "png", t.TempDir(), "in.dds")
	require.Error(t, err)

	var te *ToolError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "in.dds", te.Input)
	assert.Equal(t, -1, te.ExitCode)
	assert.True(t, IsNotFound(err))
}

func TestConvertNonzeroExit(t *testing.T) {
	falseBin, err := exec.LookPath("false")
	if err != nil {
		t.Skip("no false binary available")
	}

	err = Convert(context.Background(), falseBin, "png", t.TempDir(), "in.dds")
	require.Error(t, err)

	var te *ToolError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 1, te.ExitCode)
	assert.False(t, IsNotFound(err))
}

func TestToolErrorMessage(t *testing.T) {
	withOutput := &ToolError{Tool: "texconv", Input: "a.dds", ExitCode: 2, Output: "bad header", Err: errors.New("exit status 2")}
	assert.Contains(t, withOutput.Error(), "a.dds")
	assert.Contains(t, withOutput.Error(), "bad header")

	bare := &ToolError{Tool: "texconv", Input: "a.dds", ExitCode: -1, Err: exec.ErrNotFound}
	assert.Contains(t, bare.Error(), "exit code -1")
	assert.ErrorIs(t, bare, exec.ErrNotFound)
}

func TestCombinedOutput(t *testing.T) {
	assert.Equal(t, "err", combinedOutput("", "err\n"))
	assert.Equal(t, "out", combinedOutput("out\n", ""))
	assert.Equal(t, "err\nout", combinedOutput("out", "err"))
}

func TestOutputNameMatchesBuildArgsDir(t *testing.T) {
	// texconv writes <stem>.<format> directly under -o; the produced path
	// is the join of the two helpers.
	out := filepath.Join("/out/ui", OutputName("/in/ui/icon.dds", "png"))
	assert.Equal(t, filepath.Join("/out/ui", "icon.png"), out)
}
