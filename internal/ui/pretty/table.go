package pretty

import (
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/yaklabco/gocmark/pkg/runner"
)

// Build status labels.
const (
	statusWritten    = "written"
	statusUnchanged  = "unchanged"
	statusWouldWrite = "would write"
	statusFailed     = "failed"
)

// FormatBuildTable renders one row per file of a build run. Paths are shown
// relative to workDir when possible.
func (s *Styles) FormatBuildTable(result *runner.Result, workDir string, dryRun bool) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	writer := table.NewWriter()
	writer.SetStyle(table.StyleRounded)
	writer.AppendHeader(table.Row{"SOURCE", "OUTPUT", "STATUS", "SIZE", "TIME"})

	for _, outcome := range result.Files {
		source := s.FilePath.Render(relativeTo(workDir, outcome.Path))

		if outcome.Error != nil {
			writer.AppendRow(table.Row{
				source,
				s.Error.Render(outcome.Error.Error()),
				s.Failure.Render(statusFailed),
				"",
				"",
			})
			continue
		}

		out := outcome.Output
		writer.AppendRow(table.Row{
			source,
			s.Output.Render(relativeTo(workDir, out.Dest)),
			s.status(out.Written, dryRun),
			formatBytes(int64(out.BytesOut)),
			formatDuration(out.Duration),
		})
	}

	return writer.Render() + "\n"
}

func (s *Styles) status(written, dryRun bool) string {
	switch {
	case written && dryRun:
		return s.Warning.Render(statusWouldWrite)
	case written:
		return s.Success.Render(statusWritten)
	default:
		return s.Dim.Render(statusUnchanged)
	}
}

func relativeTo(base, path string) string {
	if base == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
