// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// ImageKind tags a figure as accompanying the problem statement or its
// solution. Per prd001-rendering R2.2.
type ImageKind string

const (
	KindQuestion ImageKind = "question"
	KindAnalysis ImageKind = "analysis"
)

// Label returns the default alt text for the kind, used when a reference
// carries no explicit description.
func (k ImageKind) Label() string {
	if k == KindAnalysis {
		return "解析配图"
	}
	return "题目配图"
}

// ParseImageKind validates a kind string from a flag or config value.
func ParseImageKind(s string) (ImageKind, error) {
	switch ImageKind(s) {
	case KindQuestion, KindAnalysis:
		return ImageKind(s), nil
	}
	return "", fmt.Errorf("unknown image kind %q (want question or analysis)", s)
}

// DefaultProblemID is the placeholder identifier used when the caller has
// not assigned a real problem number yet.
const DefaultProblemID = "P-0000-00-0.0-000"

// NewProblemID builds a problem identifier from a year-month token
// (e.g. "2026-01"), a chapter token (e.g. "1.1"), and a sequence number:
// P-<month>-<chapter>-<seq>. Fields are formatted, not validated; the
// identifier is a naming convention, not an enforced schema.
func NewProblemID(month, chapter string, seq int) string {
	return fmt.Sprintf("P-%s-%s-%03d", month, chapter, seq)
}

// FigureName returns the conventional filename for a figure.
func FigureName(problemID string, kind ImageKind) string {
	return problemID + "-" + string(kind) + ".png"
}

// Figure records one extracted image filed under the numbering convention.
// Per prd002-batch-extraction R3.3.
type Figure struct {
	// ProblemID is the identifier the figure was filed under.
	ProblemID string `json:"problem_id" yaml:"problem_id"`

	// Kind is the figure's role within the problem.
	Kind ImageKind `json:"kind" yaml:"kind"`

	// Seq is the problem sequence number encoded in ProblemID.
	Seq int `json:"seq" yaml:"seq"`

	// File is the figure filename within the output directory.
	File string `json:"file" yaml:"file"`
}

// Manifest records one batch-extraction run. It is written next to the
// renamed figures as <pdf-base>-figures.yaml and later ingested into the
// catalog. Per prd004-catalog R1.2.
type Manifest struct {
	// SourcePDF is the path of the PDF the figures were extracted from.
	SourcePDF string `json:"source_pdf" yaml:"source_pdf"`

	// Month is the year-month token of the problem set (e.g. "2026-01").
	Month string `json:"month" yaml:"month"`

	// Chapter is the chapter token (e.g. "1.1").
	Chapter string `json:"chapter" yaml:"chapter"`

	// Backend identifies the extraction tool that produced the images.
	Backend ExtractBackend `json:"backend" yaml:"backend"`

	// CreatedAt is when the batch run finished.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Figures lists the renamed figures in extraction order.
	Figures []Figure `json:"figures" yaml:"figures"`
}

// Numbering carries the batch numbering inputs: which problem set a PDF
// belongs to and the sequence number of its first problem.
type Numbering struct {
	// Month is the year-month token (e.g. "2026-01").
	Month string `json:"month" yaml:"month"`

	// Chapter is the chapter token (e.g. "1.1").
	Chapter string `json:"chapter" yaml:"chapter"`

	// Start is the sequence number assigned to the first problem (default 1).
	Start int `json:"start" yaml:"start"`
}
