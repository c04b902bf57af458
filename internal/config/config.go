// Package config holds runtime configuration: defaults, the optional TOML
// config file, CLI flag parsing, and validation. Settings are layered in that
// order — defaults < file < flags — so the file never overrides an explicit flag.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// --- Enum types for validated string fields ---

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stderr is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// AnimationFormat is the container for assembled animations. WebP is the only
// format that carries both animation and alpha through the encoder we drive.
type AnimationFormat string

const (
	AnimationWebP AnimationFormat = "webp"
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [LoadFile], and finally mutated by [ParseFlags]
// before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args).
	InputDir  string
	OutputDir string

	// Conversion settings.
	Format        string // Target texture format extension. Default: "png".
	StripSegments int    // Leading path components dropped when mapping output paths.
	Concurrency   int    // Max simultaneous texconv processes. Default: 4.

	// Animation settings.
	AnimationMode   bool
	FrameDelayMS    int             // Per-frame delay in milliseconds. Default: 100.
	AnimationFormat AnimationFormat // Default: "webp".

	// Behavior flags.
	DryRun          bool
	ContinueOnError bool // Record per-file failures and keep going.

	// External tools. Overridable for tests and nonstandard installs.
	TexconvBin string // Default: "texconv".
	FfmpegBin  string // Default: "ffmpeg".

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.

	// ConfigFile is the explicit --config path; empty means "ddsconv.toml in
	// the working directory, if present".
	ConfigFile string
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [LoadFile] and [ParseFlags] apply overrides.
func DefaultConfig() Config {
	return Config{
		Format:          "png",
		StripSegments:   0,
		Concurrency:     4,
		FrameDelayMS:    100,
		AnimationFormat: AnimationWebP,
		TexconvBin:      "texconv",
		FfmpegBin:       "ffmpeg",
		ColorMode:       ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum and range fields. When not in CheckOnly mode, it also
// requires that both input and output directory paths are non-empty.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		return errors.New("output format must not be empty")
	}

	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1 (got %d)", c.Concurrency)
	}
	if c.StripSegments < 0 {
		return fmt.Errorf("strip-segments must not be negative (got %d)", c.StripSegments)
	}
	if c.FrameDelayMS < 1 {
		return fmt.Errorf("frame delay must be at least 1 ms (got %d)", c.FrameDelayMS)
	}

	if c.AnimationFormat != AnimationWebP {
		return fmt.Errorf("unsupported animation format %q (only 'webp' carries animation with transparency)", c.AnimationFormat)
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" || c.OutputDir == "" {
		return errors.New("need exactly input_dir and output_dir")
	}
	return nil
}

// ValidatePaths ensures the resolved output directory is not inside (or equal
// to) the resolved input directory. This prevents the pipeline from
// discovering its own output files. Both arguments must be absolute,
// symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return errors.New("output directory must not be inside input directory")
	}
	return nil
}
