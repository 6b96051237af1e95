package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/figure-engine/internal/mdref"
	"github.com/pdiddy/figure-engine/pkg/types"
)

var refCmd = &cobra.Command{
	Use:   "ref <problem-id>",
	Short: "Print a Markdown reference for a problem figure",
	Long: `Ref builds the Markdown image-embed string for a figure, ready to paste
into a problem document. The alt text defaults to a fixed label per kind;
override it with --desc.`,
	Args: cobra.ExactArgs(1),
	RunE: runRef,
}

func init() {
	refCmd.Flags().String("kind", "question", "figure kind: question or analysis")
	refCmd.Flags().String("desc", "", "alt text override (default: fixed label per kind)")

	rootCmd.AddCommand(refCmd)
}

func runRef(cmd *cobra.Command, args []string) error {
	kindFlag, _ := cmd.Flags().GetString("kind")
	desc, _ := cmd.Flags().GetString("desc")

	kind, err := types.ParseImageKind(kindFlag)
	if err != nil {
		return err
	}

	fmt.Println(mdref.Ref(args[0], kind, desc))
	return nil
}
