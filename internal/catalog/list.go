// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/figure-engine/pkg/types"
)

// ListOptions holds filters for catalog queries.
type ListOptions struct {
	// Month filters by year-month token (e.g. "2026-01").
	Month string

	// Chapter filters by chapter token (e.g. "1.1").
	Chapter string

	// Kind filters by figure kind.
	Kind types.ImageKind

	// Prefix filters by problem-ID prefix (e.g. "P-2026-01").
	Prefix string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// FigureRecord is a catalog row: the figure plus its run provenance.
type FigureRecord struct {
	types.Figure `yaml:",inline"`
	Manifest     string `json:"manifest" yaml:"manifest"`
	SourcePDF    string `json:"source_pdf" yaml:"source_pdf"`
	Month        string `json:"month" yaml:"month"`
	Chapter      string `json:"chapter" yaml:"chapter"`
	ExtractedAt  string `json:"extracted_at" yaml:"extracted_at"`
}

// List queries the catalog with the given filters, ordered by problem
// identifier. Within a problem the question figure sorts before the
// analysis figure.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]FigureRecord, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)

	qb.WriteString(
		`SELECT problem_id, kind, file, manifest, source_pdf, month, chapter, seq, extracted_at
		FROM figures
		WHERE 1=1`)

	if opts.Month != "" {
		qb.WriteString(` AND month = ?`)
		args = append(args, opts.Month)
	}

	if opts.Chapter != "" {
		qb.WriteString(` AND chapter = ?`)
		args = append(args, opts.Chapter)
	}

	if opts.Kind != "" {
		qb.WriteString(` AND kind = ?`)
		args = append(args, string(opts.Kind))
	}

	if opts.Prefix != "" {
		qb.WriteString(` AND problem_id LIKE ?`)
		args = append(args, opts.Prefix+"%")
	}

	// kind DESC puts "question" ahead of "analysis".
	qb.WriteString(` ORDER BY problem_id, kind DESC LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var records []FigureRecord
	for rows.Next() {
		var (
			r           FigureRecord
			kind        string
			sourcePDF   sql.NullString
			month       sql.NullString
			chapter     sql.NullString
			extractedAt sql.NullString
		)

		if err := rows.Scan(
			&r.ProblemID, &kind, &r.File, &r.Manifest,
			&sourcePDF, &month, &chapter, &r.Seq, &extractedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		r.Kind = types.ImageKind(kind)
		if sourcePDF.Valid {
			r.SourcePDF = sourcePDF.String
		}
		if month.Valid {
			r.Month = month.String
		}
		if chapter.Valid {
			r.Chapter = chapter.String
		}
		if extractedAt.Valid {
			r.ExtractedAt = extractedAt.String
		}

		records = append(records, r)
	}

	return records, rows.Err()
}
