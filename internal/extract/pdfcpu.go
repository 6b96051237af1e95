// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PdfcpuExtractor extracts embedded images in-process through pdfcpu. It
// needs no external binaries but keeps each image's native format (jpg,
// tiff, png); the filing step re-encodes everything to PNG.
type PdfcpuExtractor struct{}

func (PdfcpuExtractor) Name() string { return "pdfcpu" }

// Extract walks every page and writes each embedded image into destDir.
func (PdfcpuExtractor) Extract(pdfPath, destDir string) error {
	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(pdfPath, destDir, nil, conf); err != nil {
		return fmt.Errorf("extracting images from %s: %w", pdfPath, err)
	}
	return nil
}
