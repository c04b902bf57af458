package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/1mZ1kk4d0/nw-dds-converter/internal/config"
	"github.com/1mZ1kk4d0/nw-dds-converter/internal/display"
	"github.com/1mZ1kk4d0/nw-dds-converter/internal/logging"
	"github.com/1mZ1kk4d0/nw-dds-converter/internal/naming"
	"github.com/1mZ1kk4d0/nw-dds-converter/internal/texconv"
)

// Files smaller than this are placeholder or corrupt textures; they are
// skipped without invoking the converter.
const minFileSize = 128

// ConvertFunc converts one input file, writing <stem>.<format> into
// outputDir. Production wires texconv.Convert; tests substitute stubs.
type ConvertFunc func(ctx context.Context, inputPath, outputDir string) error

// Run is the top-level batch entry point for conversion mode. It discovers
// DDS files, resolves output paths, and converts them through texconv with
// bounded parallelism.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) RunStats {
	files, err := Discover(cfg.InputDir)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		return RunStats{Failed: 1}
	}

	if len(files) == 0 {
		log.Warn("No .dds files found in %s", cfg.InputDir)
		return RunStats{}
	}

	log.Info("Found %d DDS file(s)", len(files))

	convert := func(ctx context.Context, inputPath, outputDir string) error {
		return texconv.Convert(ctx, cfg.TexconvBin, cfg.Format, outputDir, inputPath)
	}
	return RunBatch(ctx, cfg, log, files, convert)
}

// RunBatch converts files with at most cfg.Concurrency conversions in
// flight. Per-file failures are isolated when cfg.ContinueOnError is set;
// otherwise the first failure stops admission of new work, in-flight
// conversions finish, and everything never admitted counts as Skipped.
func RunBatch(ctx context.Context, cfg *config.Config, log *logging.Logger, files []string, convert ConvertFunc) RunStats {
	resolver := naming.NewCollisionResolver()
	outputs := make([]string, len(files))
	for i, f := range files {
		out := naming.ResolveOutput(f, cfg.InputDir, cfg.OutputDir, cfg.StripSegments, cfg.Format)
		outputs[i] = resolver.Resolve(f, out)
	}

	stats := RunStats{Total: len(files)}

	if cfg.DryRun {
		log.Info("Dry run — files that would be processed:")
		for i, f := range files {
			log.Info("  %s -> %s", f, outputs[i])
		}
		stats.Converted = len(files)
		return stats
	}

	var converted, failed, skipped, done atomic.Int64
	var inBytes, outBytes atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for i := range files {
		input, output := files[i], outputs[i]
		g.Go(func() error {
			// Cooperative abort: work admitted after the first failure
			// (or SIGINT) is skipped, never started.
			if gctx.Err() != nil {
				skipped.Add(1)
				return nil
			}

			err := convertOne(gctx, cfg, log, input, output, convert, &converted, &skipped, &inBytes, &outBytes)
			n := done.Add(1)
			if err != nil {
				failed.Add(1)
				log.Error("[%d/%d] %s: %v", n, len(files), input, err)
				if !cfg.ContinueOnError {
					return err
				}
				return nil
			}
			log.Debug(cfg.Verbose, "[%d/%d] %s -> %s", n, len(files), input, output)
			return nil
		})
	}

	runErr := g.Wait()

	stats.Converted = int(converted.Load())
	stats.Failed = int(failed.Load())
	stats.Skipped = int(skipped.Load())
	stats.TotalInputBytes = inBytes.Load()
	stats.TotalOutputBytes = outBytes.Load()

	logSummary(log, &stats, runErr)
	return stats
}

// convertOne handles one file: validate size, create the target directory,
// run the conversion, and move the produced file onto its resolved output
// path when collision resolution renamed it.
func convertOne(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	input, output string,
	convert ConvertFunc,
	converted, skipped, inBytes, outBytes *atomic.Int64,
) error {
	fi, err := os.Stat(input)
	if err != nil {
		return err
	}
	if fi.Size() < minFileSize {
		log.Debug(cfg.Verbose, "Skipping very small file (%d B): %s", fi.Size(), input)
		skipped.Add(1)
		return nil
	}

	outputDir := filepath.Dir(output)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	// The converter names its output after the input stem. A collision-
	// resolved path differs, and converting in place would overwrite the
	// colliding file's output; such files convert in a private scratch
	// directory and are renamed onto the resolved path.
	convDir := outputDir
	produced := filepath.Join(outputDir, texconv.OutputName(input, cfg.Format))
	if produced != output {
		scratch, err := os.MkdirTemp(outputDir, ".ddsconv-")
		if err != nil {
			return err
		}
		defer os.RemoveAll(scratch)
		convDir = scratch
		produced = filepath.Join(scratch, texconv.OutputName(input, cfg.Format))
	}

	if err := convert(ctx, input, convDir); err != nil {
		return err
	}

	if produced != output {
		if err := os.Rename(produced, output); err != nil {
			return err
		}
	}

	converted.Add(1)
	inBytes.Add(fi.Size())
	if outInfo, err := os.Stat(output); err == nil {
		outBytes.Add(outInfo.Size())
	}
	return nil
}

func logSummary(log *logging.Logger, stats *RunStats, runErr error) {
	log.Info("==============================")
	log.Info("Done: %d converted, %d skipped, %d failed", stats.Converted, stats.Skipped, stats.Failed)

	if stats.Converted > 0 {
		log.Info("  Size delta: %s (input %s -> output %s)",
			display.FormatBytesWithSign(stats.SizeDelta()),
			display.FormatBytes(stats.TotalInputBytes),
			display.FormatBytes(stats.TotalOutputBytes))
	}

	switch {
	case runErr != nil:
		log.Error("Stopped after first error: %v", runErr)
	case stats.Failed > 0:
		log.Warn("Completed with %d error(s)", stats.Failed)
	default:
		log.Success("All files processed")
	}
}
