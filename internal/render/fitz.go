// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// FitzRenderer rasterizes pages in-process through MuPDF (go-fitz). It is
// the default backend and needs no external binaries.
type FitzRenderer struct{}

// RenderPage opens the document and rasterizes the requested page at the
// given DPI.
func (FitzRenderer) RenderPage(pdfPath string, page int, dpi float64) (image.Image, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", pdfPath, err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("%s contains no pages", pdfPath)
	}
	if page < 1 || page > doc.NumPage() {
		return nil, fmt.Errorf("%s has no page %d (%d pages)", pdfPath, page, doc.NumPage())
	}

	img, err := doc.ImageDPI(page-1, dpi)
	if err != nil {
		return nil, fmt.Errorf("rasterizing page %d of %s: %w", page, pdfPath, err)
	}
	return img, nil
}
