package sprite

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestExtractFullTextureCell(t *testing.T) {
	red := color.RGBA{200, 10, 10, 255}
	tex := solidRGBA(100, 100, red)
	sheet := &Sheet{Cells: []Quad{{
		TopLeft:     Point{0, 0},
		BottomRight: Point{1, 1},
	}}}

	frames := ExtractFrames(sheet, tex)
	require.Len(t, frames, 1)
	assert.Equal(t, 100, frames[0].Bounds().Dx())
	assert.Equal(t, 100, frames[0].Bounds().Dy())
	assert.Equal(t, red, frames[0].RGBAAt(50, 50))
}

func TestExtractQuarterCells(t *testing.T) {
	// 2×2 texture, one distinct pixel per quadrant.
	tex := image.NewRGBA(image.Rect(0, 0, 2, 2))
	tex.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	tex.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	tex.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	tex.SetRGBA(1, 1, color.RGBA{255, 255, 0, 255})

	sheet := &Sheet{Cells: []Quad{
		{TopLeft: Point{0, 0}, BottomRight: Point{0.5, 0.5}},
		{TopLeft: Point{0.5, 0}, BottomRight: Point{1, 0.5}},
		{TopLeft: Point{0, 0.5}, BottomRight: Point{0.5, 1}},
		{TopLeft: Point{0.5, 0.5}, BottomRight: Point{1, 1}},
	}}

	frames := ExtractFrames(sheet, tex)
	require.Len(t, frames, 4)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, frames[0].RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, frames[1].RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, frames[2].RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 255, 0, 255}, frames[3].RGBAAt(0, 0))
}

func TestExtractSkipsDegenerateCells(t *testing.T) {
	tex := solidRGBA(10, 10, color.RGBA{255, 255, 255, 255})
	sheet := &Sheet{Cells: []Quad{
		{TopLeft: Point{0.5, 0}, BottomRight: Point{0.5, 1}},  // zero width
		{TopLeft: Point{0, 0.5}, BottomRight: Point{1, 0.5}},  // zero height
		{TopLeft: Point{0.8, 0.8}, BottomRight: Point{0.2, 0.2}}, // inverted
		{TopLeft: Point{0, 0}, BottomRight: Point{1, 1}},
	}}

	frames := ExtractFrames(sheet, tex)
	assert.Len(t, frames, 1)
}

func TestExtractOutOfBoundsIsTransparent(t *testing.T) {
	// Cell extends past the right/bottom edge of the texture; pixels beyond
	// the source stay fully transparent.
	tex := solidRGBA(10, 10, color.RGBA{255, 255, 255, 255})
	sheet := &Sheet{Cells: []Quad{{
		TopLeft:     Point{0.5, 0.5},
		BottomRight: Point{1.5, 1.5},
	}}}

	frames := ExtractFrames(sheet, tex)
	require.Len(t, frames, 1)
	frame := frames[0]
	assert.Equal(t, 10, frame.Bounds().Dx())
	assert.Equal(t, 10, frame.Bounds().Dy())
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, frame.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 0, 0, 0}, frame.RGBAAt(9, 9))
}

func TestDropTrailingBlank(t *testing.T) {
	opaque := func() *image.RGBA { return solidRGBA(4, 4, color.RGBA{128, 128, 128, 255}) }
	black := func() *image.RGBA { return solidRGBA(4, 4, color.RGBA{0, 0, 0, 255}) }
	clear := func() *image.RGBA { return image.NewRGBA(image.Rect(0, 0, 4, 4)) }

	build := func(n int, last *image.RGBA) []*image.RGBA {
		frames := make([]*image.RGBA, 0, n)
		for i := 0; i < n-1; i++ {
			frames = append(frames, opaque())
		}
		return append(frames, last)
	}

	t.Run("24 frames black last drops to 23", func(t *testing.T) {
		assert.Len(t, dropTrailingBlank(build(24, black())), 23)
	})

	t.Run("24 frames transparent last drops to 23", func(t *testing.T) {
		assert.Len(t, dropTrailingBlank(build(24, clear())), 23)
	})

	t.Run("24 frames visible last kept", func(t *testing.T) {
		assert.Len(t, dropTrailingBlank(build(24, opaque())), 24)
	})

	t.Run("23 frames untouched even when last is blank", func(t *testing.T) {
		assert.Len(t, dropTrailingBlank(build(23, black())), 23)
	})

	t.Run("25 frames untouched even when last is blank", func(t *testing.T) {
		assert.Len(t, dropTrailingBlank(build(25, black())), 25)
	})
}

func TestMostlyBlank(t *testing.T) {
	// Half-blank is below the 95% threshold.
	half := solidRGBA(10, 10, color.RGBA{255, 255, 255, 255})
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			half.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
		}
	}
	assert.False(t, mostlyBlank(half))

	// 96 of 100 blank pixels crosses it.
	mostly := solidRGBA(10, 10, color.RGBA{0, 0, 0, 255})
	for i := 0; i < 4; i++ {
		mostly.SetRGBA(i, 0, color.RGBA{255, 255, 255, 255})
	}
	assert.True(t, mostlyBlank(mostly))

	// Channel values at the threshold count as visible.
	at := solidRGBA(10, 10, color.RGBA{10, 10, 10, 255})
	assert.False(t, mostlyBlank(at))
}
