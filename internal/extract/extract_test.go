// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/figure-engine/internal/pdftool"
	"github.com/pdiddy/figure-engine/pkg/types"
)

// fakeExtractor implements Extractor for testing. It writes canned image
// files into destDir, or fails with a configured error.
type fakeExtractor struct {
	files map[string]image.Image
	err   error
}

func (f *fakeExtractor) Name() string { return "fake" }

func (f *fakeExtractor) Extract(pdfPath, destDir string) error {
	if f.err != nil {
		return f.err
	}
	for name, img := range f.files {
		if err := writeImageFile(filepath.Join(destDir, name), img); err != nil {
			return err
		}
	}
	return nil
}

func writeImageFile(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if filepath.Ext(path) == ".jpg" {
		return jpeg.Encode(f, img, nil)
	}
	return png.Encode(f, img)
}

func smallImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	return img
}

func cannedImages(names ...string) map[string]image.Image {
	files := make(map[string]image.Image, len(names))
	for _, n := range names {
		files[n] = smallImage(8, 6)
	}
	return files
}

func TestBatch(t *testing.T) {
	outDir := t.TempDir()
	x := &fakeExtractor{files: cannedImages("fig-000.png", "fig-001.png", "fig-002.png", "fig-003.png")}
	num := types.Numbering{Month: "2026-01", Chapter: "1.1", Start: 1}
	cfg := types.ExtractionConfig{OutputDir: outDir}

	var log bytes.Buffer
	result, err := Batch(x, "problems.pdf", num, DefaultPolicy(), cfg, &log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Extracted != 4 {
		t.Errorf("extracted = %d, want 4", result.Extracted)
	}
	if result.Renamed() != 4 {
		t.Errorf("renamed = %d, want 4", result.Renamed())
	}
	if result.HasMismatch() {
		t.Error("HasMismatch should be false for an even count")
	}

	want := []string{
		"P-2026-01-1.1-001-question.png",
		"P-2026-01-1.1-001-analysis.png",
		"P-2026-01-1.1-002-question.png",
		"P-2026-01-1.1-002-analysis.png",
	}
	for i, name := range want {
		if result.Figures[i].File != name {
			t.Errorf("figure %d = %q, want %q", i, result.Figures[i].File, name)
		}
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected output file %s: %v", name, err)
		}
	}

	output := log.String()
	for _, line := range []string{"extracted: 4 images", "renamed: fig-000.png -> P-2026-01-1.1-001-question.png", "Batch summary:"} {
		if !strings.Contains(output, line) {
			t.Errorf("log output missing %q:\n%s", line, output)
		}
	}
	if strings.Contains(output, "warning:") {
		t.Errorf("even count should not warn:\n%s", output)
	}
}

func TestBatchWritesManifest(t *testing.T) {
	outDir := t.TempDir()
	x := &fakeExtractor{files: cannedImages("fig-000.png", "fig-001.png")}
	num := types.Numbering{Month: "2026-01", Chapter: "1.1", Start: 3}

	var log bytes.Buffer
	result, err := Batch(x, filepath.Join("scans", "mechanics.pdf"), num, DefaultPolicy(), types.ExtractionConfig{OutputDir: outDir}, &log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "mechanics-figures.yaml"))
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}
	var m types.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshaling manifest: %v", err)
	}

	if m.Month != "2026-01" || m.Chapter != "1.1" {
		t.Errorf("manifest numbering = %s/%s, want 2026-01/1.1", m.Month, m.Chapter)
	}
	if m.Backend != "fake" {
		t.Errorf("manifest backend = %q, want %q", m.Backend, "fake")
	}
	if len(m.Figures) != result.Renamed() {
		t.Errorf("manifest lists %d figures, want %d", len(m.Figures), result.Renamed())
	}
	if m.Figures[0].ProblemID != "P-2026-01-1.1-003" {
		t.Errorf("first figure ID = %q, want %q", m.Figures[0].ProblemID, "P-2026-01-1.1-003")
	}
	if m.CreatedAt.IsZero() {
		t.Error("manifest should record a creation time")
	}
}

func TestBatchMissingTool(t *testing.T) {
	outDir := t.TempDir()
	x := &fakeExtractor{err: &pdftool.MissingToolError{Tool: "pdfimages", Hint: "install poppler-utils"}}

	var log bytes.Buffer
	result, err := Batch(x, "problems.pdf", types.Numbering{Month: "2026-01", Chapter: "1.1"}, DefaultPolicy(), types.ExtractionConfig{OutputDir: outDir}, &log)
	if err != nil {
		t.Fatalf("missing tool must not fail the caller, got: %v", err)
	}
	if result.Extracted != 0 || result.Renamed() != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
	if !strings.Contains(log.String(), "install poppler-utils") {
		t.Errorf("log should carry the installation hint:\n%s", log.String())
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("missing tool left %d files in the output dir", len(entries))
	}
}

func TestBatchToolFailure(t *testing.T) {
	x := &fakeExtractor{err: &pdftool.ExitError{
		Tool:   "pdfimages",
		Output: []byte("Syntax Error: couldn't read xref table"),
		Err:    errors.New("exit status 1"),
	}}

	var log bytes.Buffer
	result, err := Batch(x, "bad.pdf", types.Numbering{Month: "2026-01", Chapter: "1.1"}, DefaultPolicy(), types.ExtractionConfig{OutputDir: t.TempDir()}, &log)
	if err != nil {
		t.Fatalf("tool failure must not fail the caller, got: %v", err)
	}
	if result.Renamed() != 0 {
		t.Errorf("renamed = %d, want 0", result.Renamed())
	}
	output := log.String()
	if !strings.Contains(output, "pdfimages failed") {
		t.Errorf("log should report the failure:\n%s", output)
	}
	if !strings.Contains(output, "Syntax Error") {
		t.Errorf("log should carry the captured diagnostics:\n%s", output)
	}
}

func TestBatchCountMismatch(t *testing.T) {
	outDir := t.TempDir()
	x := &fakeExtractor{files: cannedImages("fig-000.png", "fig-001.png", "fig-002.png", "fig-003.png", "fig-004.png")}
	num := types.Numbering{Month: "2026-01", Chapter: "1.1", Start: 1}

	var log bytes.Buffer
	result, err := Batch(x, "problems.pdf", num, DefaultPolicy(), types.ExtractionConfig{OutputDir: outDir}, &log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.HasMismatch() || result.Leftover != 1 {
		t.Errorf("leftover = %d, want 1", result.Leftover)
	}
	if !strings.Contains(log.String(), "warning:") {
		t.Errorf("odd count should surface a warning:\n%s", log.String())
	}
	// The tail image is still filed, flagged rather than dropped.
	if result.Figures[4].File != "P-2026-01-1.1-003-question.png" {
		t.Errorf("tail figure = %q, want %q", result.Figures[4].File, "P-2026-01-1.1-003-question.png")
	}
}

func TestBatchCustomPolicy(t *testing.T) {
	outDir := t.TempDir()
	x := &fakeExtractor{files: cannedImages("fig-000.png", "fig-001.png", "fig-002.png")}
	num := types.Numbering{Month: "2026-02", Chapter: "3.2", Start: 1}
	policy := Policy{Kinds: []types.ImageKind{types.KindQuestion}}

	var log bytes.Buffer
	result, err := Batch(x, "problems.pdf", num, policy, types.ExtractionConfig{OutputDir: outDir}, &log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"P-2026-02-3.2-001-question.png",
		"P-2026-02-3.2-002-question.png",
		"P-2026-02-3.2-003-question.png",
	}
	for i, name := range want {
		if result.Figures[i].File != name {
			t.Errorf("figure %d = %q, want %q", i, result.Figures[i].File, name)
		}
	}
	if result.HasMismatch() {
		t.Error("single-kind cycle should never mismatch")
	}
}

func TestBatchNoImages(t *testing.T) {
	outDir := t.TempDir()
	x := &fakeExtractor{files: map[string]image.Image{}}

	var log bytes.Buffer
	result, err := Batch(x, "empty.pdf", types.Numbering{Month: "2026-01", Chapter: "1.1"}, DefaultPolicy(), types.ExtractionConfig{OutputDir: outDir}, &log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Renamed() != 0 {
		t.Errorf("renamed = %d, want 0", result.Renamed())
	}
	if !strings.Contains(log.String(), "nothing extracted") {
		t.Errorf("log should report the empty run:\n%s", log.String())
	}
	if _, err := os.Stat(filepath.Join(outDir, "empty-figures.yaml")); !os.IsNotExist(err) {
		t.Error("an empty run should not write a manifest")
	}
}

func TestBatchNormalizesToPNG(t *testing.T) {
	outDir := t.TempDir()
	// pdfcpu-style output: native embedded formats, here a jpg.
	x := &fakeExtractor{files: map[string]image.Image{
		"im1-000.jpg": smallImage(600, 300),
		"im1-001.png": smallImage(8, 6),
	}}
	num := types.Numbering{Month: "2026-01", Chapter: "1.1", Start: 1}
	cfg := types.ExtractionConfig{OutputDir: outDir, MaxWidth: 300}

	var log bytes.Buffer
	result, err := Batch(x, "problems.pdf", num, DefaultPolicy(), cfg, &log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Renamed() != 2 {
		t.Fatalf("renamed = %d, want 2", result.Renamed())
	}

	f, err := os.Open(filepath.Join(outDir, "P-2026-01-1.1-001-question.png"))
	if err != nil {
		t.Fatalf("expected PNG output for the jpg source: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 150 {
		t.Errorf("normalized to %dx%d, want 300x150", b.Dx(), b.Dy())
	}
}
