// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/figure-engine/internal/pdftool"
)

// runner is the subset of pdftool.Tool the renderer depends on, split out
// so tests can substitute a fake.
type runner interface {
	Name() string
	Available() error
	Run(args ...string) ([]byte, error)
}

// PopplerRenderer rasterizes pages by shelling out to pdftoppm. It renders
// into a private temp directory and decodes the PNG the tool writes there.
type PopplerRenderer struct {
	tool runner
}

// NewPopplerRenderer verifies that pdftoppm is installed before returning.
// A missing binary comes back as a *pdftool.MissingToolError carrying the
// installation hint.
func NewPopplerRenderer() (*PopplerRenderer, error) {
	return newPopplerRenderer(pdftool.Pdftoppm())
}

func newPopplerRenderer(tool runner) (*PopplerRenderer, error) {
	if err := tool.Available(); err != nil {
		return nil, err
	}
	return &PopplerRenderer{tool: tool}, nil
}

// RenderPage runs pdftoppm -png -singlefile for the requested page and
// decodes the result.
func (p *PopplerRenderer) RenderPage(pdfPath string, page int, dpi float64) (image.Image, error) {
	tmpDir, err := os.MkdirTemp("", "figure-render-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	args := []string{
		"-png", "-singlefile",
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		"-r", strconv.Itoa(int(dpi)),
		pdfPath, prefix,
	}
	out, err := p.tool.Run(args...)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return nil, fmt.Errorf("rasterizing page %d of %s: %w: %s", page, pdfPath, err, msg)
		}
		return nil, fmt.Errorf("rasterizing page %d of %s: %w", page, pdfPath, err)
	}

	f, err := os.Open(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("reading %s output for %s: %w", p.tool.Name(), pdfPath, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s output for %s: %w", p.tool.Name(), pdfPath, err)
	}
	return img, nil
}
