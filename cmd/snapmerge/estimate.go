// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/snapmerge/internal/convert"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate [emails...]",
	Short: "Estimate the PDF page count of .eml messages",
	Long: `Estimate computes, without rendering, how many pages each email message
would occupy in the merged output. The estimate uses the same line-wrapping
and pagination as the renderer, so it always matches the rendered count.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			pages, err := convert.EstimateEmailPages(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed:  %s (%v)\n", path, err)
				failed++
				continue
			}
			fmt.Printf("%s: %d page(s)\n", path, pages)
		}
		if failed > 0 {
			return fmt.Errorf("%d message(s) could not be estimated", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(estimateCmd)
}
