// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Tree dump
	BlockKind  lipgloss.Style
	InlineKind lipgloss.Style
	SourcePos  lipgloss.Style
	AttrKey    lipgloss.Style
	AttrValue  lipgloss.Style
	Literal    lipgloss.Style
	Guide      lipgloss.Style

	// Build output
	FilePath lipgloss.Style
	Output   lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		BlockKind:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		InlineKind: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		SourcePos:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		AttrKey:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		AttrValue:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Literal:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Guide:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		FilePath: lipgloss.NewStyle().Bold(true),
		Output:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		BlockKind:    plain,
		InlineKind:   plain,
		SourcePos:    plain,
		AttrKey:      plain,
		AttrValue:    plain,
		Literal:      plain,
		Guide:        plain,
		FilePath:     plain,
		Output:       plain,
		Error:        plain,
		Warning:      plain,
		SummaryTitle: plain,
		SummaryValue: plain,
		Success:      plain,
		Failure:      plain,
		Dim:          plain,
		Bold:         plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
