package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// ConvertFunc converts the source file at path.
type ConvertFunc func(ctx context.Context, path string) (Output, error)

// Runner converts discovered files with a bounded pool of workers.
type Runner struct {
	// Convert handles one file. It must be safe for concurrent use.
	Convert ConvertFunc
}

// New creates a Runner around convert.
func New(convert ConvertFunc) *Runner {
	return &Runner{Convert: convert}
}

// Run discovers files under opts.Paths and converts them concurrently.
// A failing file does not stop the others; its error is kept in its
// FileOutcome. Outcomes are ordered by path regardless of completion order.
// When ctx is cancelled, files not yet started are left out of the result.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	var group errgroup.Group
	group.SetLimit(jobs)

	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			began := time.Now()
			out, err := r.Convert(ctx, path)
			if err == nil && out.Duration == 0 {
				out.Duration = time.Since(began)
			}

			outcomes[i] = FileOutcome{Path: path, Output: out, Error: err}
			done[i] = true
			return nil
		})
	}
	_ = group.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}
	result.Stats.Elapsed = time.Since(start)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}
