package texconv

import (
	"errors"
	"fmt"
	"os/exec"
)

// ToolError reports a failed external tool invocation: nonzero exit, missing
// binary, or a killed process. Output carries the captured stderr/stdout so
// batch logs show the tool's own diagnostics next to the offending path.
type ToolError struct {
	Tool     string
	Input    string
	ExitCode int // -1 when the process never ran or was killed.
	Output   string
	Err      error
}

func (e *ToolError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s failed for %s: exit code %d: %v", e.Tool, e.Input, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("%s failed for %s: exit code %d: %s", e.Tool, e.Input, e.ExitCode, e.Output)
}

func (e *ToolError) Unwrap() error { return e.Err }

// IsNotFound reports whether err means the tool binary was not on PATH.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}
