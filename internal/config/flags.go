package config

// This file implements CLI flag parsing and help text.
// The config file is loaded before the flag set is built, so flag defaults
// reflect file values and explicit flags always win. Negated flags
// (e.g. --no-color) are applied after Parse so defaults hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags loads the optional config file and parses os.Args into cfg.
// On --help or --version it prints and exits. On error it returns non-nil
// (e.g. unknown flag, missing positional args).
func ParseFlags(cfg *Config, version string) error {
	return parseArgs(cfg, os.Args[1:], version)
}

// parseArgs is the testable core of ParseFlags.
func parseArgs(cfg *Config, args []string, version string) error {
	// The --config value has to be known before the flag set is built, so
	// that file settings become the defaults of every other flag.
	cfg.ConfigFile = preScanConfigPath(args)
	if err := LoadFile(cfg, cfg.ConfigFile); err != nil {
		return err
	}

	fs := flag.NewFlagSet("ddsconv", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var negated negatedFlags

	defineConversionFlags(fs, cfg)
	defineAnimationFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, cfg, &negated)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "ddsconv v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either invert a default (e.g. noColor -> ColorMode=never) or trigger
// exit (showHelp, showVersion).
type negatedFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineConversionFlags registers --format, --strip-segments, --concurrency.
func defineConversionFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Target texture format (png, jpg, bmp, tga, dds, ...)")
	fs.StringVar(&cfg.Format, "f", cfg.Format, "Same as --format")
	fs.IntVar(&cfg.StripSegments, "strip-segments", cfg.StripSegments, "Leading path segments to drop from output paths")
	fs.IntVar(&cfg.StripSegments, "s", cfg.StripSegments, "Same as --strip-segments")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Max parallel texconv processes")
	fs.IntVar(&cfg.Concurrency, "j", cfg.Concurrency, "Same as --concurrency")
}

// defineAnimationFlags registers --animation-mode, --frame-delay, --animation-format.
func defineAnimationFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.AnimationMode, "animation-mode", cfg.AnimationMode, "Assemble image sequences / sprite sheets into animations")
	fs.BoolVar(&cfg.AnimationMode, "a", cfg.AnimationMode, "Same as --animation-mode")
	fs.IntVar(&cfg.FrameDelayMS, "frame-delay", cfg.FrameDelayMS, "Animation frame delay in milliseconds")
	fs.Var(&animationFormatValue{&cfg.AnimationFormat}, "animation-format", "Animation format: webp")
}

// defineBehaviorFlags registers --dry-run and --continue-on-error.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Preview only; do not convert or assemble")
	fs.BoolVar(&cfg.DryRun, "d", cfg.DryRun, "Same as --dry-run")
	fs.BoolVar(&cfg.ContinueOnError, "continue-on-error", cfg.ContinueOnError, "Record per-file failures and keep going")
	fs.StringVar(&cfg.TexconvBin, "texconv", cfg.TexconvBin, "Path to the texconv executable")
	fs.StringVar(&cfg.FfmpegBin, "ffmpeg", cfg.FfmpegBin, "Path to the ffmpeg executable")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log, --config.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Config file path (default: ./"+defaultConfigFile+" if present)")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets InputDir and OutputDir from the two positional
// args when not in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("need exactly input_dir and output_dir")
	}
	cfg.InputDir = NormalizeDirArg(args[0])
	cfg.OutputDir = NormalizeDirArg(args[1])
	return nil
}

// preScanConfigPath finds a --config/-config value before flag parsing runs.
// Both "--config path" and "--config=path" spellings are recognized.
func preScanConfigPath(args []string) string {
	for i, a := range args {
		switch {
		case a == "--config" || a == "-config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(a, "--config="):
			return a[len("--config="):]
		case strings.HasPrefix(a, "-config="):
			return a[len("-config="):]
		}
	}
	return ""
}

// animationFormatValue adapts AnimationFormat to flag.Value with validation
// at parse time.
type animationFormatValue struct{ v *AnimationFormat }

func (a *animationFormatValue) String() string {
	if a.v == nil {
		return ""
	}
	return string(*a.v)
}

func (a *animationFormatValue) Set(s string) error {
	f := AnimationFormat(s)
	if f != AnimationWebP {
		return fmt.Errorf("unsupported animation format %q (use 'webp')", s)
	}
	*a.v = f
	return nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprint(os.Stderr, `Usage: ddsconv [options] <input_dir> <output_dir>

Batch-converts DDS textures through texconv, or (with --animation-mode)
assembles image sequences and sprite sheets into WebP animations.

Options:
`)
	fs.PrintDefaults()
}
