package runner

import "time"

// Output describes the work done for one file.
type Output struct {
	// Dest is where the rendered file was (or would be) written.
	Dest string

	BytesIn  int
	BytesOut int

	// Written is false when the destination was already up to date or
	// nothing was written (dry run).
	Written bool

	// Duration is the time spent converting the file.
	Duration time.Duration
}

// FileOutcome is the result for one source file.
type FileOutcome struct {
	// Path is the source file.
	Path string

	// Output is valid when Error is nil.
	Output Output

	// Error is set if the file could not be converted.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of files found during discovery.
	FilesDiscovered int

	// FilesConverted counts files whose output was written.
	FilesConverted int

	// FilesUnchanged counts files whose output was already current.
	FilesUnchanged int

	// FilesFailed counts files that returned an error.
	FilesFailed int

	BytesIn  int64
	BytesOut int64

	// Elapsed is the wall time of the whole run.
	Elapsed time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesFailed > 0
}

// Failures returns the outcomes that carry an error.
func (r *Result) Failures() []FileOutcome {
	if r == nil {
		return nil
	}
	var failed []FileOutcome
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			failed = append(failed, outcome)
		}
	}
	return failed
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesFailed++
		return
	}

	if outcome.Output.Written {
		r.Stats.FilesConverted++
	} else {
		r.Stats.FilesUnchanged++
	}
	r.Stats.BytesIn += int64(outcome.Output.BytesIn)
	r.Stats.BytesOut += int64(outcome.Output.BytesOut)
}
