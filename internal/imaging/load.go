// Package imaging decodes source images into RGBA buffers and writes
// intermediate PNG frames. PNG and JPEG come from the standard library,
// BMP and WebP from golang.org/x/image. DDS has no Go decoder; those files
// take a round trip through texconv into a scratch directory first, keeping
// codec work delegated to external tooling.
package imaging

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/1mZ1kk4d0/nw-dds-converter/internal/texconv"
)

// Load decodes the image at path into an RGBA buffer. DDS input is converted
// to PNG through texconvBin before decoding.
func Load(ctx context.Context, path, texconvBin string) (*image.RGBA, error) {
	if strings.EqualFold(filepath.Ext(path), ".dds") {
		return loadDDS(ctx, path, texconvBin)
	}
	return DecodeFile(path)
}

// DecodeFile decodes any registered image format into RGBA.
func DecodeFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ToRGBA(img), nil
}

// loadDDS converts a DDS file to PNG in a scratch directory and decodes the
// result. The scratch directory is removed before returning.
func loadDDS(ctx context.Context, path, texconvBin string) (*image.RGBA, error) {
	scratch, err := os.MkdirTemp("", "ddsconv-decode-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(scratch)

	if err := texconv.Convert(ctx, texconvBin, "png", scratch, path); err != nil {
		return nil, err
	}
	return DecodeFile(filepath.Join(scratch, texconv.OutputName(path, "png")))
}

// ToRGBA returns img as *image.RGBA, copying only when the underlying type
// differs.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// SavePNG writes img to path as PNG, creating parent directories as needed.
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
