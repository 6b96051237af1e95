// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the figure-engine CLI.
// Implements: prd001-rendering, prd002-batch-extraction, prd003-references,
//             prd004-catalog (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the figure-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "figure-engine",
	Short: "Figure extraction and naming for problem-set PDFs",
	Long: `figure-engine turns problem-set PDFs into named figure files. Every
figure carries a problem identifier and a kind tag (question or analysis),
so a document can embed it through a stable Markdown path.

Each stage is a subcommand: extract renders a placeholder figure from a
PDF's first page, batch pulls embedded images out of a PDF and names them
by problem, ref prints Markdown references, and catalog indexes what the
batches produced.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./figure-engine.yaml or ~/.config/figure-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("figure-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "figure-engine"))
		}
	}

	viper.SetEnvPrefix("FIGURE_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
