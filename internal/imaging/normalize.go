// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imaging provides the image post-processing shared by the render
// and extraction stages: width normalization and atomic PNG writes.
// Implements: prd001-rendering R3.4, prd002-batch-extraction R3.5;
//
//	docs/ARCHITECTURE § Figures.
package imaging

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	// Extraction backends emit images in their native embedded formats;
	// register the decoders NormalizeFile may meet.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Shrink scales img down to maxWidth, preserving aspect ratio. Images
// already within the cap (or a cap of zero) pass through unchanged.
// CatmullRom keeps line art and axis labels readable at reduced size.
func Shrink(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	ratio := float64(maxWidth) / float64(b.Dx())
	height := int(float64(b.Dy()) * ratio)
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	xdraw.CatmullRom.Scale(dst, dst.Rect, img, b, xdraw.Over, nil)
	return dst
}

// WritePNG encodes img to path atomically: bytes land in a temp file in
// the destination directory and are renamed into place only after a clean
// close, so an interrupted run leaves no partial figure.
func WritePNG(path string, img image.Image) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".figure-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}
	return nil
}

// NormalizeFile decodes src (png, jpeg, gif, bmp, or tiff), applies the
// width cap, and writes dest as PNG. Every figure leaves the pipeline as
// a PNG regardless of its embedded format.
func NormalizeFile(src, dest string, maxWidth int) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", src, err)
	}
	return WritePNG(dest, Shrink(img, maxWidth))
}
