package config

// This file implements the optional TOML config file. The file carries the
// same settings as the flags, minus the positional paths; anything it sets is
// still overridable on the command line because flags are parsed afterwards.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// defaultConfigFile is probed in the working directory when --config is not given.
const defaultConfigFile = "ddsconv.toml"

// fileSettings mirrors the Config fields a config file may set. Pointer
// fields distinguish "absent" from a zero value, so a file that only sets
// concurrency leaves everything else at its default.
type fileSettings struct {
	Format          *string `toml:"format"`
	StripSegments   *int    `toml:"strip_segments"`
	Concurrency     *int    `toml:"concurrency"`
	FrameDelayMS    *int    `toml:"frame_delay_ms"`
	AnimationFormat *string `toml:"animation_format"`
	ContinueOnError *bool   `toml:"continue_on_error"`
	TexconvBin      *string `toml:"texconv_bin"`
	FfmpegBin       *string `toml:"ffmpeg_bin"`
	Color           *string `toml:"color"`
	LogFile         *string `toml:"log_file"`
	Verbose         *bool   `toml:"verbose"`
}

// LoadFile overlays cfg with settings from the TOML file at path. When path
// is empty the default file name is probed and a missing file is not an
// error; an explicitly named file must exist.
func LoadFile(cfg *Config, path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config file: %w", err)
	}

	var fileCfg fileSettings
	if err := toml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	apply(cfg, &fileCfg)
	return nil
}

func apply(cfg *Config, f *fileSettings) {
	if f.Format != nil {
		cfg.Format = *f.Format
	}
	if f.StripSegments != nil {
		cfg.StripSegments = *f.StripSegments
	}
	if f.Concurrency != nil {
		cfg.Concurrency = *f.Concurrency
	}
	if f.FrameDelayMS != nil {
		cfg.FrameDelayMS = *f.FrameDelayMS
	}
	if f.AnimationFormat != nil {
		cfg.AnimationFormat = AnimationFormat(*f.AnimationFormat)
	}
	if f.ContinueOnError != nil {
		cfg.ContinueOnError = *f.ContinueOnError
	}
	if f.TexconvBin != nil {
		cfg.TexconvBin = *f.TexconvBin
	}
	if f.FfmpegBin != nil {
		cfg.FfmpegBin = *f.FfmpegBin
	}
	if f.Color != nil {
		cfg.ColorMode = ColorMode(*f.Color)
	}
	if f.LogFile != nil {
		cfg.LogFile = *f.LogFile
	}
	if f.Verbose != nil {
		cfg.Verbose = *f.Verbose
	}
}
