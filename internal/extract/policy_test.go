// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"testing"

	"github.com/pdiddy/figure-engine/pkg/types"
)

func TestPolicyAssign(t *testing.T) {
	def := DefaultPolicy()
	tests := []struct {
		name     string
		policy   Policy
		index    int
		start    int
		wantSeq  int
		wantKind types.ImageKind
	}{
		{name: "first image is the first question", policy: def, index: 0, start: 1, wantSeq: 1, wantKind: types.KindQuestion},
		{name: "second image is the first analysis", policy: def, index: 1, start: 1, wantSeq: 1, wantKind: types.KindAnalysis},
		{name: "third image starts the second problem", policy: def, index: 2, start: 1, wantSeq: 2, wantKind: types.KindQuestion},
		{name: "fourth image closes the second problem", policy: def, index: 3, start: 1, wantSeq: 2, wantKind: types.KindAnalysis},
		{name: "start offsets the sequence", policy: def, index: 0, start: 14, wantSeq: 14, wantKind: types.KindQuestion},
		{name: "offset carries across problems", policy: def, index: 5, start: 14, wantSeq: 16, wantKind: types.KindAnalysis},
		{
			name:     "question-only cycle advances every image",
			policy:   Policy{Kinds: []types.ImageKind{types.KindQuestion}},
			index:    2,
			start:    1,
			wantSeq:  3,
			wantKind: types.KindQuestion,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, kind := tt.policy.Assign(tt.index, tt.start)
			if seq != tt.wantSeq || kind != tt.wantKind {
				t.Errorf("Assign(%d, %d) = (%d, %q), want (%d, %q)",
					tt.index, tt.start, seq, kind, tt.wantSeq, tt.wantKind)
			}
		})
	}
}

func TestPolicyRenamingSequence(t *testing.T) {
	// Four images starting at problem 1 must file as 001-question,
	// 001-analysis, 002-question, 002-analysis.
	want := []string{
		"P-2026-01-1.1-001-question.png",
		"P-2026-01-1.1-001-analysis.png",
		"P-2026-01-1.1-002-question.png",
		"P-2026-01-1.1-002-analysis.png",
	}
	policy := DefaultPolicy()
	for i, wantName := range want {
		seq, kind := policy.Assign(i, 1)
		got := types.FigureName(types.NewProblemID("2026-01", "1.1", seq), kind)
		if got != wantName {
			t.Errorf("image %d filed as %q, want %q", i, got, wantName)
		}
	}
}

func TestPolicyRemainder(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		n      int
		want   int
	}{
		{name: "even count fills the default cycle", policy: DefaultPolicy(), n: 4, want: 0},
		{name: "odd count leaves one over", policy: DefaultPolicy(), n: 5, want: 1},
		{name: "zero images leave nothing over", policy: DefaultPolicy(), n: 0, want: 0},
		{name: "single-kind cycle never mismatches", policy: Policy{Kinds: []types.ImageKind{types.KindQuestion}}, n: 7, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.Remainder(tt.n); got != tt.want {
				t.Errorf("Remainder(%d) = %d, want %d", tt.n, got, tt.want)
			}
		})
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty string yields default", input: "", want: "question,analysis"},
		{name: "explicit pair", input: "question,analysis", want: "question,analysis"},
		{name: "question only", input: "question", want: "question"},
		{name: "whitespace tolerated", input: " question , analysis ", want: "question,analysis"},
		{name: "unknown kind rejected", input: "question,solution", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePolicy(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), "kind") {
					t.Errorf("error should mention the bad kind, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.String() != tt.want {
				t.Errorf("policy = %q, want %q", p, tt.want)
			}
		})
	}
}
