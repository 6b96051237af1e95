// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mdref formats Markdown image references for extracted figures.
// References always point into the document-relative image/ directory,
// independent of where a run actually wrote its files.
package mdref

import (
	"fmt"
	"strings"

	"github.com/pdiddy/figure-engine/pkg/types"
)

// refDir is the directory problem documents link figures from.
const refDir = "image"

// Ref returns the Markdown embed string for one figure:
// ![<alt>](image/<problemID>-<kind>.png). When desc is empty the alt text
// falls back to the kind's fixed label.
func Ref(problemID string, kind types.ImageKind, desc string) string {
	alt := desc
	if alt == "" {
		alt = kind.Label()
	}
	return fmt.Sprintf("![%s](%s/%s)", alt, refDir, types.FigureName(problemID, kind))
}

// Block joins default references for a whole batch, one per line, ready to
// paste into a problem document.
func Block(figures []types.Figure) string {
	refs := make([]string, 0, len(figures))
	for _, f := range figures {
		refs = append(refs, Ref(f.ProblemID, f.Kind, ""))
	}
	return strings.Join(refs, "\n")
}
