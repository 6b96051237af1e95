package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/figure-engine/internal/extract"
	"github.com/pdiddy/figure-engine/internal/mdref"
	"github.com/pdiddy/figure-engine/pkg/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch <pdf>",
	Short: "Extract embedded images from a PDF and name them by problem",
	Long: `Batch runs an image-extraction backend over the PDF, then renames the
extracted images into the problem numbering for the given set: figures
cycle through the kind policy (question, analysis by default) and the
sequence number advances once per completed cycle.

A missing or failing extraction tool is reported and leaves the output
directory untouched; the command still exits 0. A manifest written next
to the figures records what the run produced.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("output-dir", "image", "directory for renamed figures and the manifest")
	batchCmd.Flags().String("month", "", "year-month token for problem IDs (e.g. 2026-01)")
	batchCmd.Flags().String("chapter", "", "chapter token for problem IDs (e.g. 1.1)")
	batchCmd.Flags().Int("start", 1, "starting sequence number")
	batchCmd.Flags().String("backend", "pdfimages", "extraction backend: pdfimages or pdfcpu")
	batchCmd.Flags().String("kinds", "", "kind cycle for renaming (default \"question,analysis\")")
	batchCmd.Flags().Int("max-width", 0, "shrink wider images to this width (0 = keep size)")
	batchCmd.Flags().Bool("refs", false, "print paste-ready Markdown references after renaming")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	month, _ := cmd.Flags().GetString("month")
	if month == "" {
		return fmt.Errorf("provide --month (e.g. 2026-01)")
	}
	chapter, _ := cmd.Flags().GetString("chapter")
	if chapter == "" {
		return fmt.Errorf("provide --chapter (e.g. 1.1)")
	}

	outputDir, _ := cmd.Flags().GetString("output-dir")
	start, _ := cmd.Flags().GetInt("start")
	backend, _ := cmd.Flags().GetString("backend")
	kinds, _ := cmd.Flags().GetString("kinds")
	maxWidth, _ := cmd.Flags().GetInt("max-width")
	printRefs, _ := cmd.Flags().GetBool("refs")

	policy := extract.DefaultPolicy()
	if kinds != "" {
		var err error
		policy, err = extract.ParsePolicy(kinds)
		if err != nil {
			return err
		}
	}

	x, err := extract.NewExtractor(types.ExtractBackend(backend))
	if err != nil {
		return err
	}

	cfg := types.ExtractionConfig{
		Backend:   types.ExtractBackend(backend),
		OutputDir: outputDir,
		MaxWidth:  maxWidth,
	}
	num := types.Numbering{Month: month, Chapter: chapter, Start: start}

	result, err := extract.Batch(x, args[0], num, policy, cfg, os.Stdout)
	if err != nil {
		return err
	}

	if printRefs && len(result.Figures) > 0 {
		fmt.Println()
		fmt.Println(mdref.Block(result.Figures))
	}
	return nil
}
