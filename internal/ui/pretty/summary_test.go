package pretty_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gocmark/internal/ui/pretty"
	"github.com/yaklabco/gocmark/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesDiscovered: 10,
		FilesConverted:  7,
		FilesUnchanged:  2,
		FilesFailed:     1,
		BytesIn:         2048,
		BytesOut:        512,
		Elapsed:         1500 * time.Millisecond,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files found:       10")
	assert.Contains(t, result, "Files converted:   7")
	assert.Contains(t, result, "Files unchanged:   2")
	assert.Contains(t, result, "Files failed:      1")
	assert.Contains(t, result, "Input:             2.0 KiB")
	assert.Contains(t, result, "Output:            512 B")
	assert.Contains(t, result, "Elapsed:           1.5s")
	assert.Contains(t, result, "Build finished with errors")
}

func TestFormatSummary_Success(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{FilesDiscovered: 3, FilesConverted: 3})

	assert.Contains(t, result, "Build succeeded")
	assert.NotContains(t, result, "Files failed:")
	assert.NotContains(t, result, "Files unchanged:")
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		stats  runner.Stats
		dryRun bool
		want   string
	}{
		{
			name:  "nothing found",
			stats: runner.Stats{},
			want:  "No Markdown files found\n",
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesDiscovered: 1, FilesConverted: 1, Elapsed: 3 * time.Millisecond},
			want:  "1 file converted in 3ms\n",
		},
		{
			name: "mixed",
			stats: runner.Stats{
				FilesDiscovered: 5, FilesConverted: 3, FilesUnchanged: 1, FilesFailed: 1,
				Elapsed: 250 * time.Microsecond,
			},
			want: "3 files converted, 1 unchanged, 1 failed in 250µs\n",
		},
		{
			name:   "dry run",
			stats:  runner.Stats{FilesDiscovered: 2, FilesConverted: 2, Elapsed: 2 * time.Second},
			dryRun: true,
			want:   "2 files would be written in 2s\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats, tt.dryRun))
		})
	}
}

func TestFormatBuildTable(t *testing.T) {
	styles := pretty.NewStyles(false)
	workDir := filepath.FromSlash("/work")

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: filepath.FromSlash("/work/a.md"),
				Output: runner.Output{
					Dest:     filepath.FromSlash("/work/out/a.html"),
					BytesOut: 42,
					Written:  true,
					Duration: time.Millisecond,
				},
			},
			{
				Path:   filepath.FromSlash("/work/b.md"),
				Output: runner.Output{Dest: filepath.FromSlash("/work/out/b.html")},
			},
			{
				Path:  filepath.FromSlash("/work/c.md"),
				Error: errors.New("permission denied"),
			},
		},
	}

	got := styles.FormatBuildTable(result, workDir, false)

	for _, want := range []string{
		"SOURCE", "OUTPUT", "STATUS",
		"a.md", filepath.FromSlash("out/a.html"), "written", "42 B", "1ms",
		"b.md", "unchanged",
		"c.md", "permission denied", "failed",
	} {
		assert.Contains(t, got, want)
	}

	dry := styles.FormatBuildTable(result, workDir, true)
	assert.Contains(t, dry, "would write")
}

func TestFormatBuildTable_Empty(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Empty(t, styles.FormatBuildTable(nil, "", false))
	assert.Empty(t, styles.FormatBuildTable(&runner.Result{}, "", false))
}
