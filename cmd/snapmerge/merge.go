// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/snapmerge/internal/history"
	"github.com/pdiddy/snapmerge/internal/job"
	"github.com/pdiddy/snapmerge/internal/office"
	"github.com/pdiddy/snapmerge/pkg/types"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [folder | files...]",
	Short: "Merge documents into a single output PDF",
	Long: `Merge runs the pipeline end to end. With a single folder argument the
folder is discovered, filtered by the configured allow-lists, and sorted;
with multiple file arguments (or one file) the given order is used as-is.
Interrupting with Ctrl-C cancels the job after the current file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringP("output", "o", "", "output PDF path (required)")
	mergeCmd.Flags().String("report", "", "write the run report as YAML to this path")
	mergeCmd.Flags().Bool("recursive", true, "recurse into subfolders (folder mode)")
	mergeCmd.Flags().String("sort-by", "", "sort key: name, created, or modified")
	mergeCmd.Flags().Bool("desc", false, "sort in descending order")
	mergeCmd.Flags().Bool("no-history", false, "do not record this run in the history database")
	mergeCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	applyMergeFlags(cmd, &settings)

	output, _ := cmd.Flags().GetString("output")
	reportPath, _ := cmd.Flags().GetString("report")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	renderer, err := office.Detect()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; document inputs will be skipped\n", err)
		renderer = nil
	}

	runner := job.NewRunner(settings, renderer, os.Stderr)

	if !noHistory {
		if dir, err := dataDir(); err == nil {
			if store, err := history.Open(dir); err == nil {
				defer store.Close()
				runner.RecordHistory(store)
			} else {
				fmt.Fprintf(os.Stderr, "warning: history disabled: %v\n", err)
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cb := job.Callbacks{
		Status: func(text string) {
			fmt.Fprintln(os.Stderr, text)
		},
		MergeStart: func(total int) {
			fmt.Fprintf(os.Stderr, "Merging %d file(s)\n", total)
		},
	}

	var report *types.Report
	if len(args) == 1 && isDir(args[0]) {
		report, err = runner.Run(ctx, args[0], output, cb)
	} else {
		report, err = runner.RunFiles(ctx, args, output, cb)
	}

	if errors.Is(err, job.ErrCancelled) {
		fmt.Fprintln(os.Stderr, "Merge cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	printReport(report)

	if reportPath != "" {
		if err := writeReportYAML(report, reportPath); err != nil {
			return err
		}
	}
	return nil
}

// applyMergeFlags lets explicit flags override the config file.
func applyMergeFlags(cmd *cobra.Command, settings *types.Settings) {
	if cmd.Flags().Changed("recursive") {
		settings.IncludeSubfolders, _ = cmd.Flags().GetBool("recursive")
	}
	if cmd.Flags().Changed("sort-by") {
		key, _ := cmd.Flags().GetString("sort-by")
		settings.SortBy = types.SortKey(key)
	}
	if cmd.Flags().Changed("desc") {
		settings.SortDesc, _ = cmd.Flags().GetBool("desc")
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func printReport(r *types.Report) {
	fmt.Printf("Merged %d file(s) into %s\n", r.MergedCount, r.Output)
	fmt.Printf("  found: %d, converted: %d, skipped: %d\n", r.TotalFound, r.ConvertedCount, r.SkippedCount)
	if r.OutputPages > 0 {
		fmt.Printf("  output pages: %d\n", r.OutputPages)
	}
	for _, p := range r.Skipped {
		fmt.Printf("  skipped: %s\n", p)
	}
	for _, p := range r.MergeSkipped {
		fmt.Printf("  skipped at merge (unreadable/encrypted): %s\n", p)
	}
}

func writeReportYAML(r *types.Report, path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
