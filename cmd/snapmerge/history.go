// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/snapmerge/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent merge runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dir, err := dataDir()
		if err != nil {
			return err
		}
		store, err := history.Open(dir)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No recorded runs.")
			return nil
		}

		for _, r := range runs {
			fmt.Printf("%s  %s -> %s\n", r.StartedAt.Local().Format(time.DateTime), r.Input, r.Output)
			fmt.Printf("  found: %d, merged: %d, converted: %d, skipped: %d",
				r.TotalFound, r.MergedCount, r.ConvertedCount, r.SkippedCount)
			if r.OutputPages > 0 {
				fmt.Printf(", pages: %d", r.OutputPages)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")

	rootCmd.AddCommand(historyCmd)
}
