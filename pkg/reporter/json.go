package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yaklabco/gocmark/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON layout changes incompatibly.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	DryRun  bool             `json:"dryRun,omitempty"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path       string  `json:"path"`
	Output     string  `json:"output,omitempty"`
	Written    bool    `json:"written"`
	BytesIn    int     `json:"bytesIn"`
	BytesOut   int     `json:"bytesOut"`
	DurationMS float64 `json:"durationMs"`
	Error      string  `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int     `json:"filesDiscovered"`
	FilesConverted  int     `json:"filesConverted"`
	FilesUnchanged  int     `json:"filesUnchanged"`
	FilesFailed     int     `json:"filesFailed"`
	BytesIn         int64   `json:"bytesIn"`
	BytesOut        int64   `json:"bytesOut"`
	ElapsedMS       float64 `json:"elapsedMs"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		DryRun:  r.opts.DryRun,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path: relPath(r.opts.WorkingDir, file.Path),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		} else {
			out := file.Output
			fileResult.Output = relPath(r.opts.WorkingDir, out.Dest)
			fileResult.Written = out.Written
			fileResult.BytesIn = out.BytesIn
			fileResult.BytesOut = out.BytesOut
			fileResult.DurationMS = milliseconds(out.Duration)
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesConverted:  stats.FilesConverted,
		FilesUnchanged:  stats.FilesUnchanged,
		FilesFailed:     stats.FilesFailed,
		BytesIn:         stats.BytesIn,
		BytesOut:        stats.BytesOut,
		ElapsedMS:       milliseconds(stats.Elapsed),
	}

	return output
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
