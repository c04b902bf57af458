// Package animation feeds ordered frame lists to ffmpeg to produce looping
// WebP animations, with a static single-frame fallback when the encoder is
// unavailable or fails.
package animation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/chai2010/webp"
	"github.com/google/uuid"

	"github.com/1mZ1kk4d0/nw-dds-converter/internal/imaging"
)

// Encoder parameters. Quality 85 with lossy-alpha WebP matches the upstream
// asset pipeline's output; compression level 6 trades encode time for size.
const (
	webpQuality      = 85
	compressionLevel = 6
	framePattern     = "frame_%04d.png"
)

// ErrNoFrames is returned when Assemble is called with an empty frame list.
var ErrNoFrames = errors.New("no frames to assemble")

// Logger is the minimal logging surface the assembler needs. Defined here so
// the package stays decoupled from the logging implementation.
type Logger interface {
	Info(string, ...interface{})
	Warn(string, ...interface{})
}

// Assemble writes frames as intermediate PNGs in a scratch directory and
// invokes ffmpeg to encode an infinitely looping WebP animation at
// 1000/frameDelayMS frames per second.
//
// When ffmpeg is missing or exits nonzero, the first frame is encoded as a
// static WebP instead and the call still succeeds; the degradation is only
// visible in the log. The scratch directory is removed best-effort.
func Assemble(ctx context.Context, frames []*image.RGBA, frameDelayMS int, outputPath, ffmpegBin string, log Logger) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}

	log.Info("Assembling %d frame(s) -> %s", len(frames), filepath.Base(outputPath))

	scratch := filepath.Join(os.TempDir(), "ddsconv-frames-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return err
	}
	defer os.RemoveAll(scratch)

	for i, frame := range frames {
		path := filepath.Join(scratch, fmt.Sprintf(framePattern, i))
		if err := imaging.SavePNG(path, frame); err != nil {
			return fmt.Errorf("write intermediate frame: %w", err)
		}
	}

	framerate := 1000.0 / float64(frameDelayMS)
	args := buildFfmpegArgs(ffmpegBin, framerate, scratch, outputPath)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			log.Warn("ffmpeg not found; install ffmpeg for animated WebP support")
		} else {
			log.Warn("ffmpeg failed: %v", err)
			if s := stderr.String(); s != "" {
				log.Warn("ffmpeg output: %s", s)
			}
		}
		return writeStaticFallback(frames[0], outputPath, log)
	}

	return nil
}

// buildFfmpegArgs constructs the ffmpeg command line: a zero-padded PNG
// sequence in, libwebp with preserved alpha out, looping forever.
func buildFfmpegArgs(bin string, framerate float64, scratchDir, outputPath string) []string {
	return []string{
		bin,
		"-y",
		"-framerate", strconv.FormatFloat(framerate, 'f', -1, 64),
		"-i", filepath.Join(scratchDir, framePattern),
		"-c:v", "libwebp",
		"-lossless", "0",
		"-compression_level", strconv.Itoa(compressionLevel),
		"-q:v", strconv.Itoa(webpQuality),
		"-loop", "0",
		outputPath,
	}
}

// writeStaticFallback encodes only the first frame as a static WebP. The
// animation is lost but the asset remains usable; this is reported as
// success.
func writeStaticFallback(frame *image.RGBA, outputPath string, log Logger) error {
	data, err := webp.EncodeRGBA(frame, webpQuality)
	if err != nil {
		return fmt.Errorf("static WebP fallback: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("static WebP fallback: %w", err)
	}
	log.Warn("Wrote static WebP fallback (first frame only): %s", outputPath)
	return nil
}
