package pipeline

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/1mZ1kk4d0/nw-dds-converter/internal/animation"
	"github.com/1mZ1kk4d0/nw-dds-converter/internal/config"
	"github.com/1mZ1kk4d0/nw-dds-converter/internal/imaging"
	"github.com/1mZ1kk4d0/nw-dds-converter/internal/logging"
	"github.com/1mZ1kk4d0/nw-dds-converter/internal/sequence"
	"github.com/1mZ1kk4d0/nw-dds-converter/internal/sprite"
)

// RunAnimation is the batch entry point for animation mode. Sprite sheets
// (texture + descriptor pairs) take precedence; when none exist, loose image
// sequences are detected instead. Each asset's failure is isolated: the run
// continues with the remaining assets.
func RunAnimation(ctx context.Context, cfg *config.Config, log *logging.Logger) RunStats {
	log.Info("Animation mode: assembling %s animations from %s", cfg.AnimationFormat, cfg.InputDir)

	pairs, err := sequence.FindSpritePairs(cfg.InputDir)
	if err != nil {
		log.Error("Sprite sheet discovery failed: %v", err)
		return RunStats{Failed: 1}
	}

	if len(pairs) > 0 {
		return runSpriteSheets(ctx, cfg, log, pairs)
	}

	files, err := sequence.ScanImages(cfg.InputDir)
	if err != nil {
		log.Error("Image scan failed: %v", err)
		return RunStats{Failed: 1}
	}

	seqs := sequence.Detect(files)
	if len(seqs) == 0 {
		log.Warn("No image sequences found in %s", cfg.InputDir)
		log.Info("Sequence frames follow naming patterns like:")
		log.Info("  animation_001.png, animation_002.png")
		log.Info("  named_bg_1.dds, named_bg_2.dds")
		log.Info("  frame1.jpg, frame2.jpg")
		return RunStats{}
	}

	return runSequences(ctx, cfg, log, seqs)
}

// runSpriteSheets assembles one animation per texture/descriptor pair.
func runSpriteSheets(ctx context.Context, cfg *config.Config, log *logging.Logger, pairs []sequence.SpritePair) RunStats {
	log.Info("Found %d sprite sheet(s)", len(pairs))
	stats := RunStats{Total: len(pairs)}

	if cfg.DryRun {
		for _, p := range pairs {
			log.Info("  %s + %s -> %s", p.Texture, p.Descriptor, animationOutput(cfg, sequence.Stem(p.Texture)))
		}
		stats.Converted = len(pairs)
		return stats
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Error("Cannot create output directory: %v", err)
		stats.Failed = len(pairs)
		return stats
	}

	for _, pair := range pairs {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			stats.Skipped += stats.Total - stats.Converted - stats.Failed - stats.Skipped
			break
		}

		log.Info("Processing sprite sheet: %s", pair.Texture)
		if err := assembleSpriteSheet(ctx, cfg, log, pair); err != nil {
			log.Error("%s: %v", pair.Texture, err)
			stats.Failed++
			continue
		}
		stats.Converted++
	}

	logAnimationSummary(log, &stats)
	return stats
}

// assembleSpriteSheet parses the descriptor, extracts the cell frames from
// the decoded texture, and hands them to the assembler.
func assembleSpriteSheet(ctx context.Context, cfg *config.Config, log *logging.Logger, pair sequence.SpritePair) error {
	sheet, err := sprite.ParseFile(pair.Descriptor)
	if err != nil {
		return fmt.Errorf("descriptor %s: %w", pair.Descriptor, err)
	}
	log.Debug(cfg.Verbose, "Descriptor %s: %d cell(s)", pair.Descriptor, len(sheet.Cells))

	texture, err := imaging.Load(ctx, pair.Texture, cfg.TexconvBin)
	if err != nil {
		return err
	}

	frames := sprite.ExtractFrames(sheet, texture)
	log.Info("Extracted %d frame(s) from texture", len(frames))

	out := animationOutput(cfg, sequence.Stem(pair.Texture))
	return animation.Assemble(ctx, frames, cfg.FrameDelayMS, out, cfg.FfmpegBin, log)
}

// runSequences assembles one animation per detected sequence.
func runSequences(ctx context.Context, cfg *config.Config, log *logging.Logger, seqs []sequence.Sequence) RunStats {
	log.Info("Found %d sequence(s)", len(seqs))
	stats := RunStats{Total: len(seqs)}

	if cfg.DryRun {
		for _, s := range seqs {
			log.Info("  %d frame(s) -> %s", len(s.Files), sequenceOutput(cfg, s))
		}
		stats.Converted = len(seqs)
		return stats
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Error("Cannot create output directory: %v", err)
		stats.Failed = len(seqs)
		return stats
	}

	for _, seq := range seqs {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			stats.Skipped += stats.Total - stats.Converted - stats.Failed - stats.Skipped
			break
		}

		log.Info("Processing sequence %q with %d frame(s)", seq.Base, len(seq.Files))
		if err := assembleSequence(ctx, cfg, log, seq); err != nil {
			log.Error("%s: %v", seq.Base, err)
			stats.Failed++
			continue
		}
		stats.Converted++
	}

	logAnimationSummary(log, &stats)
	return stats
}

// assembleSequence loads every member frame in order and hands them to the
// assembler. DDS members are decoded through texconv by the loader.
func assembleSequence(ctx context.Context, cfg *config.Config, log *logging.Logger, seq sequence.Sequence) error {
	frames := make([]*image.RGBA, 0, len(seq.Files))
	for i, file := range seq.Files {
		log.Debug(cfg.Verbose, "  Frame %d: %s", i+1, file)
		frame, err := imaging.Load(ctx, file, cfg.TexconvBin)
		if err != nil {
			return err
		}
		frames = append(frames, frame)
	}

	return animation.Assemble(ctx, frames, cfg.FrameDelayMS, sequenceOutput(cfg, seq), cfg.FfmpegBin, log)
}

// animationOutput builds the output path for a named asset.
func animationOutput(cfg *config.Config, stem string) string {
	return filepath.Join(cfg.OutputDir, stem+"."+string(cfg.AnimationFormat))
}

// sequenceOutput names a sequence's animation after its first member's stem
// with any "_NNN" suffix removed (bare trailing digits are kept, matching
// how the sequence was discovered in the wild).
func sequenceOutput(cfg *config.Config, seq sequence.Sequence) string {
	return animationOutput(cfg, sequence.CleanBase(sequence.Stem(seq.Files[0])))
}

func logAnimationSummary(log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d assembled, %d skipped, %d failed", stats.Converted, stats.Skipped, stats.Failed)
	if stats.Failed == 0 && stats.Skipped == 0 {
		log.Success("All animations created")
	}
}
