// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render rasterizes PDF pages into figure files with pluggable
// backends.
// Implements: prd001-rendering (R1, R2, R3);
//
//	docs/ARCHITECTURE § Rendering.
package render

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/figure-engine/internal/imaging"
	"github.com/pdiddy/figure-engine/pkg/types"
)

// DefaultDPI is the rasterization resolution used when the config leaves
// DPI unset.
const DefaultDPI = 200

// Renderer rasterizes one page of a PDF into a bitmap. Different backends
// (go-fitz, pdftoppm) implement this interface.
type Renderer interface {
	// RenderPage renders the 1-based page at the given resolution.
	RenderPage(pdfPath string, page int, dpi float64) (image.Image, error)
}

// NewRenderer selects a backend. The zero value falls back to fitz, which
// needs no external binaries.
func NewRenderer(backend types.RenderBackend) (Renderer, error) {
	switch backend {
	case types.RenderFitz, "":
		return &FitzRenderer{}, nil
	case types.RenderPdftoppm:
		return NewPopplerRenderer()
	}
	return nil, fmt.Errorf("unknown render backend %q", backend)
}

// SaveFirstPage renders page one of the PDF and writes it to
// <cfg.OutputDir>/<problemID>-<kind>.png, creating the directory if
// absent. It returns the saved path. The whole page is saved as the
// figure; locating and cropping the figure region within the page is not
// attempted.
func SaveFirstPage(r Renderer, pdfPath, problemID string, kind types.ImageKind, cfg types.RenderConfig, w io.Writer) (string, error) {
	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = "image"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", outDir, err)
	}

	dpi := cfg.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	img, err := r.RenderPage(pdfPath, 1, dpi)
	if err != nil {
		return "", fmt.Errorf("rendering page 1 of %s: %w", pdfPath, err)
	}

	dest := filepath.Join(outDir, types.FigureName(problemID, kind))
	if err := imaging.WritePNG(dest, imaging.Shrink(img, cfg.MaxWidth)); err != nil {
		return "", err
	}

	fmt.Fprintf(w, "saved: %s\n", dest)
	return dest, nil
}
