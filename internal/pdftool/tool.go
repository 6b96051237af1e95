// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftool wraps the Poppler command-line utilities used as
// subprocess backends.
// Implements: prd001-rendering R5.2, prd002-batch-extraction R5.3
// (external tool contract);
//
//	docs/ARCHITECTURE § Backends.
package pdftool

import (
	"fmt"
	"os/exec"
)

const (
	binPdfimages = "pdfimages"
	binPdftoppm  = "pdftoppm"

	popplerHint = "install poppler-utils (apt install poppler-utils, brew install poppler)"
)

// MissingToolError reports that an external binary is not on PATH. Hint
// carries the installation instruction to show the user.
type MissingToolError struct {
	Tool string
	Hint string
}

func (e *MissingToolError) Error() string {
	return fmt.Sprintf("%s not found on PATH: %s", e.Tool, e.Hint)
}

// ExitError reports a nonzero exit from an external tool. Output preserves
// the combined stdout/stderr text for diagnostics.
type ExitError struct {
	Tool   string
	Output []byte
	Err    error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: %v", e.Tool, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunCaptured(name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunCaptured(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// Tool is one external PDF utility. The Poppler tools share the same
// logic; they differ only in binary name.
type Tool struct {
	bin  string
	hint string
	exec executor
}

func (t *Tool) Name() string { return t.bin }

// Available reports whether the binary exists on PATH. When it does not,
// the returned error is a *MissingToolError carrying the installation hint.
func (t *Tool) Available() error {
	if _, err := t.exec.LookPath(t.bin); err != nil {
		return &MissingToolError{Tool: t.bin, Hint: t.hint}
	}
	return nil
}

// Run executes the tool with the given arguments and returns its combined
// output. A nonzero exit comes back as a *ExitError with the output
// preserved; the output is returned in either case.
func (t *Tool) Run(args ...string) ([]byte, error) {
	out, err := t.exec.RunCaptured(t.bin, args...)
	if err != nil {
		return out, &ExitError{Tool: t.bin, Output: out, Err: err}
	}
	return out, nil
}

var defaultExec = &osExecutor{}

// Pdfimages returns the embedded-image extraction tool.
func Pdfimages() *Tool { return newTool(binPdfimages, defaultExec) }

// Pdftoppm returns the page-rasterization tool.
func Pdftoppm() *Tool { return newTool(binPdftoppm, defaultExec) }

func newTool(bin string, exec executor) *Tool {
	return &Tool{bin: bin, hint: popplerHint, exec: exec}
}
