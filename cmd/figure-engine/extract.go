package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/figure-engine/internal/render"
	"github.com/pdiddy/figure-engine/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract <pdf> [output-dir] [problem-id]",
	Short: "Render the first page of a PDF as a problem figure",
	Long: `Extract renders page one of a PDF and saves it under the figure naming
convention <problem-id>-<kind>.png. The output directory defaults to
./image and the problem ID to a placeholder.

The whole first page stands in for the figure; nothing locates or crops
the figure region within the page. Use batch to pull embedded images.`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("kind", "question", "figure kind: question or analysis")
	extractCmd.Flags().Float64("dpi", 0, "rasterization resolution (0 = default 200)")
	extractCmd.Flags().String("backend", "fitz", "render backend: fitz or pdftoppm")
	extractCmd.Flags().Int("max-width", 0, "shrink wider renders to this width (0 = keep size)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	outputDir := "image"
	if len(args) > 1 {
		outputDir = args[1]
	}
	problemID := types.DefaultProblemID
	if len(args) > 2 {
		problemID = args[2]
	}

	kindFlag, _ := cmd.Flags().GetString("kind")
	kind, err := types.ParseImageKind(kindFlag)
	if err != nil {
		return err
	}
	dpi, _ := cmd.Flags().GetFloat64("dpi")
	backend, _ := cmd.Flags().GetString("backend")
	maxWidth, _ := cmd.Flags().GetInt("max-width")

	renderer, err := render.NewRenderer(types.RenderBackend(backend))
	if err != nil {
		return err
	}

	cfg := types.RenderConfig{
		Backend:   types.RenderBackend(backend),
		DPI:       dpi,
		OutputDir: outputDir,
		MaxWidth:  maxWidth,
	}
	_, err = render.SaveFirstPage(renderer, args[0], problemID, kind, cfg, os.Stdout)
	return err
}
