package sprite

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Trailing-blank heuristic constants. Sheets exported by the upstream asset
// tool carry a spurious black 24th frame; the exact trigger (24 frames, 95%
// near-black or near-transparent pixels, channel threshold 10) must not be
// generalized.
const (
	blankTriggerFrames = 24
	blankPixelRatio    = 0.95
	channelThreshold   = 10
)

// ExtractFrames renders every cell of sheet against the decoded texture and
// returns one RGBA buffer per cell, in playback order. It never fails:
// degenerate (zero-area) cells are skipped, and source regions reaching
// outside the texture leave the affected pixels fully transparent.
//
// When extraction yields exactly 24 frames and the last one is mostly blank,
// that frame is dropped (see the heuristic constants above).
func ExtractFrames(sheet *Sheet, texture *image.RGBA) []*image.RGBA {
	bounds := texture.Bounds()
	texW, texH := bounds.Dx(), bounds.Dy()

	frames := make([]*image.RGBA, 0, len(sheet.Cells))
	for _, cell := range sheet.Cells {
		x1 := pixelCoord(cell.TopLeft.X, texW)
		y1 := pixelCoord(cell.TopLeft.Y, texH)
		x2 := pixelCoord(cell.BottomRight.X, texW)
		y2 := pixelCoord(cell.BottomRight.Y, texH)

		width := clampZero(x2 - x1)
		height := clampZero(y2 - y1)
		if width == 0 || height == 0 {
			continue
		}

		frame := image.NewRGBA(image.Rect(0, 0, width, height))
		// Draw clips against the texture bounds; uncovered destination
		// pixels stay zero (transparent black).
		xdraw.Draw(frame, frame.Bounds(), texture, image.Pt(bounds.Min.X+x1, bounds.Min.Y+y1), xdraw.Src)
		frames = append(frames, frame)
	}

	return dropTrailingBlank(frames)
}

// dropTrailingBlank applies the trailing-blank heuristic: exactly 24 frames
// with a mostly-blank 24th become 23 frames. Any other count is untouched.
func dropTrailingBlank(frames []*image.RGBA) []*image.RGBA {
	if len(frames) == blankTriggerFrames && mostlyBlank(frames[len(frames)-1]) {
		return frames[:len(frames)-1]
	}
	return frames
}

// mostlyBlank reports whether more than blankPixelRatio of the frame's pixels
// are near-transparent (alpha < 10) or near-black (r,g,b all < 10).
func mostlyBlank(frame *image.RGBA) bool {
	b := frame.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return false
	}

	empty := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := frame.Pix[frame.PixOffset(b.Min.X, y):frame.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			r, g, bl, a := row[i], row[i+1], row[i+2], row[i+3]
			if a < channelThreshold {
				empty++
			} else if r < channelThreshold && g < channelThreshold && bl < channelThreshold {
				empty++
			}
		}
	}
	return float64(empty)/float64(total) > blankPixelRatio
}

// pixelCoord maps a normalized coordinate to a pixel offset by truncation,
// clamped to zero for out-of-range negative input.
func pixelCoord(v float64, size int) int {
	p := int(v * float64(size))
	if p < 0 {
		return 0
	}
	return p
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
