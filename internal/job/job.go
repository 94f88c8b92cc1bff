// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package job orchestrates one merge run: discovery, per-type conversion,
// PDF concatenation, progress reporting, and cooperative cancellation.
package job

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pdiddy/snapmerge/internal/convert"
	"github.com/pdiddy/snapmerge/internal/discover"
	"github.com/pdiddy/snapmerge/internal/history"
	"github.com/pdiddy/snapmerge/internal/merge"
	"github.com/pdiddy/snapmerge/internal/office"
	"github.com/pdiddy/snapmerge/internal/scratch"
	"github.com/pdiddy/snapmerge/pkg/types"
)

// ErrNoEligibleFiles is returned when filtering and conversion leave
// nothing to merge. An empty output would be meaningless, so this is
// job-fatal rather than a silently-empty PDF.
var ErrNoEligibleFiles = errors.New("no eligible files found")

// ErrCancelled is the distinguished cancellation signal. It is not an
// ordinary error: the caller asked for the stop.
var ErrCancelled = errors.New("job cancelled")

// ErrJobRunning is returned when a second job is started on a Runner that
// already has one active.
var ErrJobRunning = errors.New("job already running")

// State identifies where the orchestrator is in its run.
type State string

const (
	StateIdle        State = "idle"
	StateDiscovering State = "discovering"
	StateConverting  State = "converting"
	StateMerging     State = "merging"
	StateDone        State = "done"
	StateCancelled   State = "cancelled"
	StateFailed      State = "failed"
)

// Callbacks carries the observer hooks for one run. Any field may be nil.
// Conversion and merge progress are independent dimensions: Progress
// counts discovered files, MergeProgress counts merge-list entries.
type Callbacks struct {
	// Progress fires once per discovered file during conversion.
	Progress func(done, total int)

	// Status fires on discrete human-readable events.
	Status func(text string)

	// MergeStart fires once, with the merge-list length, before merging.
	MergeStart func(total int)

	// MergeProgress fires once per merge-list entry.
	MergeProgress func(done, total int)
}

// Runner drives merge jobs. At most one job is active per Runner; a
// second start request while one is running is rejected.
type Runner struct {
	settings types.Settings
	renderer office.Renderer
	log      io.Writer

	mu      sync.Mutex
	state   State
	active  bool
	history *history.Store
}

// NewRunner builds a Runner. renderer may be nil (document inputs are
// then skipped as unavailable); log receives per-file diagnostics and is
// owned by the caller.
func NewRunner(settings types.Settings, renderer office.Renderer, log io.Writer) *Runner {
	if log == nil {
		log = io.Discard
	}
	return &Runner{
		settings: settings,
		renderer: renderer,
		log:      log,
		state:    StateIdle,
	}
}

// RecordHistory makes the Runner persist each completed run's report.
func (r *Runner) RecordHistory(store *history.Store) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = store
}

// State returns the current orchestrator state.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Run executes a folder-based job: discover files under inputRoot, filter
// and sort them per the settings, then convert and merge.
func (r *Runner) Run(ctx context.Context, inputRoot, outputPDF string, cb Callbacks) (*types.Report, error) {
	if err := r.begin(); err != nil {
		return nil, err
	}

	job := r.settings.Job(inputRoot, outputPDF)

	files, err := discover.Discover(job.InputRoot, job.IncludeSubfolders)
	if err != nil {
		r.finish(StateFailed)
		return nil, err
	}
	files = discover.FilterSort(files, job.AllowedExts(), job.SortBy, job.SortDesc)

	return r.runCore(ctx, job, files, cb)
}

// RunFiles executes a manual-list job: the caller supplies the exact
// ordered file list and discovery/sort are skipped.
func (r *Runner) RunFiles(ctx context.Context, files []string, outputPDF string, cb Callbacks) (*types.Report, error) {
	if err := r.begin(); err != nil {
		return nil, err
	}

	// The input root is informational only in manual mode.
	baseDir := "."
	if len(files) > 0 {
		baseDir = filepath.Dir(files[0])
	} else if wd, err := os.Getwd(); err == nil {
		baseDir = wd
	}
	job := r.settings.Job(baseDir, outputPDF)

	return r.runCore(ctx, job, files, cb)
}

// begin claims the Runner for one job.
func (r *Runner) begin() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active {
		return ErrJobRunning
	}
	r.active = true
	r.state = StateDiscovering
	return nil
}

// finish releases the Runner into a terminal state.
func (r *Runner) finish(terminal State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = terminal
	r.active = false
}

func (r *Runner) setState(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = s
}

// runCore converts the ordered file list into the merge list, merges it,
// and builds the report. It owns the scratch directory for the run and
// removes it on every exit path.
func (r *Runner) runCore(ctx context.Context, job types.JobSettings, files []string, cb Callbacks) (*types.Report, error) {
	started := time.Now()
	total := len(files)
	emitStatus(cb, fmt.Sprintf("Discovered %d file(s) to process.", total))

	tmp, err := scratch.New()
	if err != nil {
		r.finish(StateFailed)
		return nil, err
	}
	defer tmp.Remove()

	imageConv := &convert.ImageConverter{
		MarginPts: job.ImageMarginPts,
		MaxDimPx:  job.MaxImageDimPx,
	}
	docConv := convert.NewDocumentConverter(r.renderer)
	emailConv := &convert.EmailConverter{}

	var toMerge, skipped []string
	converted := 0

	r.setState(StateConverting)
	for i, f := range files {
		name := filepath.Base(f)
		emitStatus(cb, fmt.Sprintf("Processing (%d/%d): %s", i+1, total, name))

		switch discover.Classify(f, job.Settings) {
		case discover.CategoryPDF:
			toMerge = append(toMerge, f)

		case discover.CategoryImage:
			res := imageConv.Convert(ctx, f, tmp.PDFPath(i, f))
			if r.absorb(res, f, cb, &toMerge, &skipped) {
				converted++
			}

		case discover.CategoryDocument:
			emitStatus(cb, "Converting document: "+name)
			res := docConv.Convert(ctx, f, tmp.PDFPath(i, f))
			if r.absorb(res, f, cb, &toMerge, &skipped) {
				converted++
				emitStatus(cb, "Converted: "+filepath.Base(res.Path))
			}

		case discover.CategoryEmail:
			res := emailConv.Convert(ctx, f, tmp.PDFPath(i, f))
			if r.absorb(res, f, cb, &toMerge, &skipped) {
				converted++
			}

		default:
			fmt.Fprintf(r.log, "skipped: %s (unsupported extension)\n", f)
			skipped = append(skipped, f)
		}

		// Every progress emission is also a cancellation checkpoint.
		emitProgress(cb.Progress, i+1, total)
		if ctx.Err() != nil {
			r.finish(StateCancelled)
			return nil, ErrCancelled
		}
	}

	if len(toMerge) == 0 {
		r.finish(StateFailed)
		return nil, ErrNoEligibleFiles
	}

	r.setState(StateMerging)
	emitStatus(cb, "Finalizing (writing PDF)")
	if cb.MergeStart != nil {
		cb.MergeStart(len(toMerge))
	}

	mergeSkipped, err := merge.Files(ctx, toMerge, job.OutputPDF, cb.Status, cb.MergeProgress)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			r.finish(StateCancelled)
			return nil, ErrCancelled
		}
		r.finish(StateFailed)
		return nil, err
	}
	for _, p := range mergeSkipped {
		fmt.Fprintf(r.log, "merge skipped: %s (unreadable or encrypted)\n", p)
	}

	report := &types.Report{
		Input:          job.InputRoot,
		Output:         job.OutputPDF,
		TotalFound:     total,
		MergedCount:    len(toMerge),
		ConvertedCount: converted,
		SkippedCount:   len(skipped),
		Skipped:        skipped,
		MergeSkipped:   mergeSkipped,
		StartedAt:      started,
		Duration:       time.Since(started),
	}

	if job.PageCount {
		if pages, err := merge.PageCount(job.OutputPDF); err == nil {
			report.OutputPages = pages
		} else {
			fmt.Fprintf(r.log, "warning: output page count failed: %v\n", err)
		}
	}

	r.recordRun(ctx, report)
	r.finish(StateDone)

	fmt.Fprintf(r.log, "merge complete: %d merged, %d converted, %d skipped (total: %d)\n",
		report.MergedCount, report.ConvertedCount, report.SkippedCount, report.TotalFound)
	return report, nil
}

// absorb folds one conversion result into the merge or skip lists,
// reporting success. Unavailable and Failed both skip and log; only
// Failed carries full error detail.
func (r *Runner) absorb(res convert.Result, input string, cb Callbacks, toMerge, skipped *[]string) bool {
	switch res.Status {
	case convert.StatusConverted:
		*toMerge = append(*toMerge, res.Path)
		return true

	case convert.StatusUnavailable:
		emitStatus(cb, "Can't convert "+filepath.Base(input))
		fmt.Fprintf(r.log, "skipped: %s (%s)\n", input, res.Reason)
		*skipped = append(*skipped, input)
		return false

	default:
		emitStatus(cb, "Can't convert "+filepath.Base(input))
		fmt.Fprintf(r.log, "failed:  %s (%v)\n", input, res.Err)
		*skipped = append(*skipped, input)
		return false
	}
}

// recordRun persists the report when a history store is attached.
// History failures never fail the job.
func (r *Runner) recordRun(ctx context.Context, report *types.Report) {
	r.mu.Lock()
	store := r.history
	r.mu.Unlock()
	if store == nil {
		return
	}
	if err := store.Record(ctx, *report); err != nil {
		fmt.Fprintf(r.log, "warning: history record failed: %v\n", err)
	}
}

func emitStatus(cb Callbacks, text string) {
	if cb.Status != nil {
		cb.Status(text)
	}
}

func emitProgress(cb func(done, total int), done, total int) {
	if cb != nil {
		cb(done, total)
	}
}
