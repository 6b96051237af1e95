// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// ExportYAML writes the catalog to catalogDir/export.yaml. It supports
// the same filters as List.
func (s *Store) ExportYAML(ctx context.Context, opts ListOptions) error {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.catalogDir, "export.yaml")
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the catalog to catalogDir/export.json. It supports
// the same filters as List.
func (s *Store) ExportJSON(ctx context.Context, opts ListOptions) error {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.catalogDir, "export.json")
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportRecords(ctx context.Context, opts ListOptions) ([]FigureRecord, error) {
	opts.MaxResults = exportLimit
	records, err := s.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	return records, nil
}
