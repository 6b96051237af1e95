// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"path/filepath"

	"github.com/pdiddy/figure-engine/internal/pdftool"
)

// runner is the subset of pdftool.Tool the extractor depends on, split
// out so tests can substitute a fake.
type runner interface {
	Name() string
	Available() error
	Run(args ...string) ([]byte, error)
}

// PdfimagesExtractor shells out to Poppler's pdfimages, which dumps one
// numbered file per embedded image. It is the default backend.
type PdfimagesExtractor struct {
	tool runner
}

// NewPdfimagesExtractor wires the Poppler binary. Availability is checked
// per run, so a missing install surfaces as the hint rather than at
// construction.
func NewPdfimagesExtractor() *PdfimagesExtractor {
	return &PdfimagesExtractor{tool: pdftool.Pdfimages()}
}

func (p *PdfimagesExtractor) Name() string { return "pdfimages" }

// Extract runs pdfimages -png, producing <destDir>/fig-NNN.png files in
// page order.
func (p *PdfimagesExtractor) Extract(pdfPath, destDir string) error {
	if err := p.tool.Available(); err != nil {
		return err
	}
	if _, err := p.tool.Run("-png", pdfPath, filepath.Join(destDir, "fig")); err != nil {
		return fmt.Errorf("extracting images from %s: %w", pdfPath, err)
	}
	return nil
}
