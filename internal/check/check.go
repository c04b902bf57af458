// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation for the texconv and ffmpeg executables.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/1mZ1kk4d0/nw-dds-converter/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrTexconvNotFound = errors.New("texconv not found on PATH")
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability of texconv
// and ffmpeg. Returns false when texconv is unusable; a missing ffmpeg only
// degrades animation output and is reported as a warning.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkTexconv(cfg, log)
	checkFfmpeg(cfg, log)
	return ok
}

// checkTexconv verifies the converter binary runs. texconv exits 1 for -h;
// both 0 and 1 mean the binary is usable.
func checkTexconv(cfg *config.Config, log Logger) bool {
	if _, err := exec.LookPath(cfg.TexconvBin); err != nil {
		log.Error("texconv not found (looked for %q)", cfg.TexconvBin)
		return false
	}

	cmd := exec.Command(cfg.TexconvBin, "-h")
	out, err := cmd.CombinedOutput()
	if err != nil {
		var ee *exec.ExitError
		if !errors.As(err, &ee) || ee.ExitCode() != 1 {
			log.Error("texconv found but not runnable: %v", err)
			return false
		}
	}
	log.Success("texconv available: %s", cfg.TexconvBin)
	log.Debug(true, "texconv -h output: %s", firstLine(string(out)))
	return true
}

// checkFfmpeg reports ffmpeg availability and version. Missing ffmpeg is a
// warning: animation assembly falls back to static WebP output without it.
func checkFfmpeg(cfg *config.Config, log Logger) {
	if _, err := exec.LookPath(cfg.FfmpegBin); err != nil {
		log.Warn("ffmpeg not found (looked for %q); animations will fall back to static WebP", cfg.FfmpegBin)
		return
	}

	cmd := exec.Command(cfg.FfmpegBin, "-version")
	out, err := cmd.Output()
	if err != nil {
		log.Warn("ffmpeg found but -version failed: %v", err)
		return
	}
	log.Success("ffmpeg available: %s", firstLine(string(out)))
}

// CheckDeps fails fast before a run when a required tool is unavailable.
// texconv is always required; ffmpeg is optional because the assembler has a
// fallback path.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.TexconvBin); err != nil {
		return ErrTexconvNotFound
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
