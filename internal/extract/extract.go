// Package extract pulls embedded images out of problem-set PDFs and files
// them under the numbering convention.
// Implements: prd002-batch-extraction (R1, R2, R3, R4);
//
//	docs/ARCHITECTURE § Extraction.
package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/figure-engine/internal/imaging"
	"github.com/pdiddy/figure-engine/internal/pdftool"
	"github.com/pdiddy/figure-engine/pkg/types"
)

// manifestSuffix names the per-run record written next to the figures.
const manifestSuffix = "-figures.yaml"

// Extractor dumps every embedded image of a PDF into a directory.
// Different backends (pdfimages, pdfcpu) implement this interface.
type Extractor interface {
	// Name returns the backend name for status lines and manifests.
	Name() string

	// Extract writes one file per embedded image into destDir. Filenames
	// are backend-chosen; callers rely on lexicographic order only.
	Extract(pdfPath, destDir string) error
}

// NewExtractor selects a backend. The zero value falls back to pdfimages.
func NewExtractor(backend types.ExtractBackend) (Extractor, error) {
	switch backend {
	case types.ExtractPdfimages, "":
		return NewPdfimagesExtractor(), nil
	case types.ExtractPdfcpu:
		return &PdfcpuExtractor{}, nil
	}
	return nil, fmt.Errorf("unknown extract backend %q", backend)
}

// BatchResult holds the outcome of a batch extraction run.
type BatchResult struct {
	// Extracted is how many images the backend produced.
	Extracted int

	// Figures lists the renamed figures in extraction order.
	Figures []types.Figure

	// Leftover counts images beyond the last complete kind cycle.
	Leftover int
}

// Renamed returns the number of figures filed under the convention.
func (r BatchResult) Renamed() int { return len(r.Figures) }

// HasMismatch reports whether the image count broke the pairing cycle.
func (r BatchResult) HasMismatch() bool { return r.Leftover != 0 }

// Batch extracts every embedded image of pdfPath into a private temp
// directory, renames the results into cfg.OutputDir by the numbering
// policy, and writes a run manifest next to them. An unavailable or
// failing backend is reported on w and yields an empty result with a nil
// error; a PDF the backend cannot handle never aborts the caller.
func Batch(x Extractor, pdfPath string, num types.Numbering, policy Policy, cfg types.ExtractionConfig, w io.Writer) (BatchResult, error) {
	if len(policy.Kinds) == 0 {
		policy = DefaultPolicy()
	}

	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = "image"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating directory %s: %w", outDir, err)
	}

	tmpDir, err := os.MkdirTemp("", "figure-extract-*")
	if err != nil {
		return BatchResult{}, fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := x.Extract(pdfPath, tmpDir); err != nil {
		reportExtractFailure(w, x.Name(), err)
		return BatchResult{}, nil
	}

	names, err := collectImages(tmpDir)
	if err != nil {
		return BatchResult{}, err
	}

	fmt.Fprintf(w, "extracted: %d images from %s (%s)\n", len(names), filepath.Base(pdfPath), x.Name())

	result := BatchResult{Extracted: len(names), Leftover: policy.Remainder(len(names))}
	if result.Leftover != 0 {
		fmt.Fprintf(w, "warning: %d images do not divide into the %s cycle (%d left over); tail assignments are suspect\n",
			len(names), policy, result.Leftover)
	}

	start := num.Start
	if start <= 0 {
		start = 1
	}
	for i, name := range names {
		seq, kind := policy.Assign(i, start)
		id := types.NewProblemID(num.Month, num.Chapter, seq)
		destName := types.FigureName(id, kind)
		if err := imaging.NormalizeFile(filepath.Join(tmpDir, name), filepath.Join(outDir, destName), cfg.MaxWidth); err != nil {
			return result, fmt.Errorf("filing %s: %w", name, err)
		}
		result.Figures = append(result.Figures, types.Figure{ProblemID: id, Kind: kind, Seq: seq, File: destName})
		fmt.Fprintf(w, "renamed: %s -> %s\n", name, destName)
	}

	if len(result.Figures) == 0 {
		fmt.Fprintf(w, "\nBatch summary: nothing extracted\n")
		return result, nil
	}

	manifestPath, err := writeManifest(pdfPath, num, x.Name(), outDir, result.Figures)
	if err != nil {
		return result, err
	}
	fmt.Fprintf(w, "manifest: %s\n", manifestPath)

	first := result.Figures[0].Seq
	last := result.Figures[len(result.Figures)-1].Seq
	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d renamed (problems %03d-%03d)\n",
		result.Extracted, result.Renamed(), first, last)
	return result, nil
}

// reportExtractFailure prints the remediation hint for a missing tool, or
// the captured diagnostics for a failed run. Both outcomes leave the
// batch empty without failing the caller.
func reportExtractFailure(w io.Writer, name string, err error) {
	var missing *pdftool.MissingToolError
	if errors.As(err, &missing) {
		fmt.Fprintf(w, "%s unavailable: %s\n", missing.Tool, missing.Hint)
		return
	}
	var exit *pdftool.ExitError
	if errors.As(err, &exit) {
		fmt.Fprintf(w, "%s failed: %v\n", name, exit.Err)
		if msg := strings.TrimSpace(string(exit.Output)); msg != "" {
			fmt.Fprintln(w, msg)
		}
		return
	}
	fmt.Fprintf(w, "%s failed: %v\n", name, err)
}

// imageExts covers the formats the backends emit: pdfimages writes PNG
// under -png, pdfcpu keeps each image's embedded format.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// collectImages lists the image files a backend wrote, sorted
// lexicographically. Both backends number their output, so this order is
// extraction order.
func collectImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// writeManifest records the run as <pdf-base>-figures.yaml in outDir.
func writeManifest(pdfPath string, num types.Numbering, backend, outDir string, figures []types.Figure) (string, error) {
	m := types.Manifest{
		SourcePDF: pdfPath,
		Month:     num.Month,
		Chapter:   num.Chapter,
		Backend:   types.ExtractBackend(backend),
		CreatedAt: time.Now().UTC(),
		Figures:   figures,
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshaling manifest for %s: %w", pdfPath, err)
	}

	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	path := filepath.Join(outDir, base+manifestSuffix)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return path, nil
}
