// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists extracted figure records and answers queries
// over them.
// Implements: prd004-catalog (R1-R4);
//
//	docs/ARCHITECTURE § Catalog.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/figure-engine/pkg/types"
)

const (
	dbFile         = "figures.db"
	manifestSuffix = "-figures.yaml"
)

// Store manages the figure catalog SQLite database.
type Store struct {
	db         *sql.DB
	catalogDir string
	imageDir   string
	maxResults int
}

// NewStore opens or creates the catalog database at
// catalogDir/figures.db, creating the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.CatalogDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.CatalogDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	imageDir := cfg.ImageDir
	if imageDir == "" {
		imageDir = "image"
	}

	s := &Store{
		db:         db,
		catalogDir: cfg.CatalogDir,
		imageDir:   imageDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS figures (
			problem_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			file TEXT NOT NULL,
			manifest TEXT NOT NULL,
			source_pdf TEXT,
			month TEXT,
			chapter TEXT,
			seq INTEGER,
			extracted_at TEXT,
			PRIMARY KEY (problem_id, kind)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_figures_manifest ON figures(manifest)`,
		`CREATE INDEX IF NOT EXISTS idx_figures_set ON figures(month, chapter)`,
		`CREATE TABLE IF NOT EXISTS ingest_status (
			manifest TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from a catalog indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of manifests processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads figure manifests from the image directory and populates
// the database. It detects new, changed, and unchanged manifests by file
// modification time, so re-running after a batch only touches what that
// batch wrote. On success it refreshes export.yaml.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(s.imageDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading image directory %s: %w", s.imageDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), manifestSuffix) {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		name := strings.TrimSuffix(entry.Name(), manifestSuffix)
		path := filepath.Join(s.imageDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM ingest_status WHERE manifest = ?`, name,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		var m types.Manifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", name, err)
			summary.Failed++
			continue
		}

		if err := s.ingestManifest(ctx, name, &m, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d figures)\n", name, len(m.Figures))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d figures)\n", name, len(m.Figures))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	if summary.Indexed > 0 || summary.Updated > 0 {
		if err := s.ExportYAML(ctx, ListOptions{}); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

func (s *Store) ingestManifest(ctx context.Context, name string, m *types.Manifest, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// A changed manifest replaces everything it previously contributed,
	// so figures dropped from the file also drop from the catalog.
	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM figures WHERE manifest = ?`, name); err != nil {
			return fmt.Errorf("deleting old figures: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO figures (problem_id, kind, file, manifest, source_pdf, month, chapter, seq, extracted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	extractedAt := ""
	if !m.CreatedAt.IsZero() {
		extractedAt = m.CreatedAt.UTC().Format(time.RFC3339)
	}

	for _, f := range m.Figures {
		_, err := stmt.ExecContext(ctx,
			f.ProblemID, string(f.Kind), f.File, name,
			m.SourcePDF, m.Month, m.Chapter, f.Seq, extractedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting figure %s: %w", f.ProblemID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ingest_status (manifest, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(manifest) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		name, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating ingest status: %w", err)
	}

	return tx.Commit()
}
