// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"

	"github.com/pdiddy/figure-engine/pkg/types"
)

// Policy is the kind cycle assigned to consecutive extracted images within
// one problem. The assignment is a convention about how problem-set PDFs
// are laid out, not a verified mapping; Remainder exposes when a PDF
// breaks it.
type Policy struct {
	Kinds []types.ImageKind
}

// DefaultPolicy expects each problem to contribute a question figure
// followed by an analysis figure.
func DefaultPolicy() Policy {
	return Policy{Kinds: []types.ImageKind{types.KindQuestion, types.KindAnalysis}}
}

// ParsePolicy builds a policy from a comma-separated kind list, e.g.
// "question,analysis". An empty string yields the default policy.
func ParsePolicy(s string) (Policy, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultPolicy(), nil
	}
	parts := strings.Split(s, ",")
	kinds := make([]types.ImageKind, 0, len(parts))
	for _, part := range parts {
		k, err := types.ParseImageKind(strings.TrimSpace(part))
		if err != nil {
			return Policy{}, fmt.Errorf("parsing kind cycle %q: %w", s, err)
		}
		kinds = append(kinds, k)
	}
	return Policy{Kinds: kinds}, nil
}

// Assign maps the index of an extracted image (in lexicographic file
// order) to its problem sequence number and kind. The sequence advances
// once per full cycle, starting at start.
func (p Policy) Assign(index, start int) (int, types.ImageKind) {
	n := len(p.Kinds)
	return start + index/n, p.Kinds[index%n]
}

// Remainder reports how many of n images fall outside the last complete
// cycle. Nonzero means the layout assumption does not hold for this PDF
// and the tail assignments are suspect.
func (p Policy) Remainder(n int) int {
	return n % len(p.Kinds)
}

func (p Policy) String() string {
	parts := make([]string, len(p.Kinds))
	for i, k := range p.Kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, ",")
}
