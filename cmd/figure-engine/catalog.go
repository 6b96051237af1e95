// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/figure-engine/internal/catalog"
	"github.com/pdiddy/figure-engine/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the figure catalog (store, list, export)",
	Long: `Catalog manages a local SQLite index of extracted figures, built from
the manifests that batch writes next to its output. Use subcommands to
index manifests, query figures, or export.`,
}

// --- store subcommand ---

var catalogStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Ingest figure manifests into the catalog",
	Long: `Store reads figure manifests from the image directory, ingests them
into a SQLite database, and refreshes the export file. Unchanged
manifests are skipped on subsequent runs.`,
	RunE: runCatalogStore,
}

func runCatalogStore(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d manifest(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Query the catalog with filters",
	Long: `List queries the figure catalog by problem set (month, chapter), kind,
or problem-ID prefix. Results include the manifest each figure came
from, so a listing can be traced back to its extraction run.`,
	RunE: runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(context.Background(), listOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatListOutput(records, jsonOutput)
}

func formatListOutput(records []catalog.FigureRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No figures found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-22s  %-10s  %-36s  %-12s  %s\n",
		"Problem", "Kind", "File", "Set", "Manifest")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 96))

	for _, r := range records {
		fmt.Fprintf(os.Stdout, "%-22s  %-10s  %-36s  %-12s  %s\n",
			r.ProblemID, r.Kind, r.File, r.Month+"/"+r.Chapter, r.Manifest)
	}

	fmt.Fprintf(os.Stdout, "\n%d figures\n", len(records))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the full catalog (or a filtered subset) to export.yaml or
export.json in the catalog directory. Supports the same filter flags as
list for partial exports.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg := catalogConfig(cmd)
	store, err := catalog.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := listOptsFromFlags(cmd)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to", filepath.Join(cfg.CatalogDir, "export.yaml"))
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to", filepath.Join(cfg.CatalogDir, "export.json"))
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func catalogConfig(cmd *cobra.Command) types.CatalogConfig {
	catalogDir, _ := cmd.Flags().GetString("catalog-dir")
	if catalogDir == "" {
		catalogDir = "catalog"
	}
	imageDir, _ := cmd.Flags().GetString("image-dir")
	if imageDir == "" {
		imageDir = "image"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.CatalogConfig{
		CatalogDir: catalogDir,
		ImageDir:   imageDir,
		MaxResults: maxResults,
	}
}

func listOptsFromFlags(cmd *cobra.Command) catalog.ListOptions {
	month, _ := cmd.Flags().GetString("month")
	chapter, _ := cmd.Flags().GetString("chapter")
	kind, _ := cmd.Flags().GetString("kind")
	prefix, _ := cmd.Flags().GetString("prefix")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.ListOptions{
		Month:      month,
		Chapter:    chapter,
		Kind:       types.ImageKind(kind),
		Prefix:     prefix,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("catalog-dir", "catalog", "directory for the catalog database and exports")
	catalogCmd.PersistentFlags().String("image-dir", "image", "directory holding figures and their manifests")
	catalogCmd.PersistentFlags().Int("max-results", 50, "maximum number of query results")

	// List flags.
	catalogListCmd.Flags().String("month", "", "filter by year-month token (e.g. 2026-01)")
	catalogListCmd.Flags().String("chapter", "", "filter by chapter token (e.g. 1.1)")
	catalogListCmd.Flags().String("kind", "", "filter by figure kind: question or analysis")
	catalogListCmd.Flags().String("prefix", "", "filter by problem-ID prefix")
	catalogListCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogListCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("month", "", "filter by year-month token for partial export")
	catalogExportCmd.Flags().String("chapter", "", "filter by chapter token for partial export")
	catalogExportCmd.Flags().String("kind", "", "filter by kind for partial export")
	catalogExportCmd.Flags().String("prefix", "", "filter by problem-ID prefix for partial export")
	catalogExportCmd.Flags().Int("limit", 0, "maximum figures to export (0 = all)")

	// Wire subcommands.
	catalogCmd.AddCommand(catalogStoreCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
