package main

import (
	"fmt"
	"os/exec"
)

// externalTools lists the Poppler binaries the extraction and render
// backends shell out to.
var externalTools = []string{"pdfimages", "pdftoppm"}

// Tools reports which external PDF tools are installed.
func Tools() error {
	missing := 0
	for _, bin := range externalTools {
		path, err := exec.LookPath(bin)
		if err != nil {
			fmt.Printf("  %-10s missing\n", bin)
			missing++
			continue
		}
		fmt.Printf("  %-10s %s\n", bin, path)
	}
	if missing > 0 {
		fmt.Printf("%d tool(s) missing: install poppler-utils for batch extraction and the pdftoppm backend.\n", missing)
	}
	return nil
}
