package cli

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gocmark/internal/ui/pretty"
)

// helpStyles colors the parts of a help page.
type helpStyles struct {
	command lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	meta    lipgloss.Style
	example lipgloss.Style
}

// newHelpStyles binds help styles to w. The renderer's color profile is
// fixed by colorEnabled, so "always" colors a pipe and "never" keeps a
// terminal plain.
func newHelpStyles(w io.Writer, colorEnabled bool) helpStyles {
	r := lipgloss.NewRenderer(w)
	if !colorEnabled {
		r.SetColorProfile(termenv.Ascii)
		plain := r.NewStyle()
		return helpStyles{plain, plain, plain, plain, plain, plain}
	}

	r.SetColorProfile(termenv.ANSI256)
	return helpStyles{
		command: r.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		heading: r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		name:    r.NewStyle().Foreground(lipgloss.Color("10")),
		flag:    r.NewStyle().Foreground(lipgloss.Color("12")),
		meta:    r.NewStyle().Foreground(lipgloss.Color("8")),
		example: r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

const usageTemplate = `{{ heading "Usage:" }}{{ if .Runnable }}
  {{ command .UseLine }}{{ end }}{{ if .HasAvailableSubCommands }}
  {{ command .CommandPath }} [command]{{ end }}
{{- if gt (len .Aliases) 0 }}

{{ heading "Aliases:" }}
  {{ join .Aliases ", " }}
{{- end }}
{{- if .HasExample }}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end }}
{{- if .HasAvailableSubCommands }}

{{ heading "Commands:" }}{{ range .Commands }}{{ if or .IsAvailableCommand (eq .Name "help") }}
  {{ name (pad .Name .NamePadding) }} {{ .Short }}{{ end }}{{ end }}
{{- end }}
{{- if .HasAvailableLocalFlags }}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end }}
{{- if .HasAvailableInheritedFlags }}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end }}
{{- if .HasAvailableSubCommands }}

Run "{{ command (print .CommandPath " [command] --help") }}" for details on a command.
{{- end }}
`

const helpTemplate = `{{ with or .Long .Short }}{{ trimLines . }}

{{ end }}` + usageTemplate

// installHelp routes help and usage output of root and its subcommands
// through the styled templates. Color is resolved when help is shown, once
// --color has been parsed, against the command's own output writer.
func installHelp(root *cobra.Command) {
	root.SetUsageFunc(func(cmd *cobra.Command) error {
		return renderHelp(cmd, "usage", usageTemplate)
	})
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		if err := renderHelp(cmd, "help", helpTemplate); err != nil {
			cmd.PrintErrln(err)
		}
	})
}

func renderHelp(cmd *cobra.Command, name, text string) error {
	out := cmd.OutOrStdout()
	styles := newHelpStyles(out, pretty.IsColorEnabled(colorMode(cmd), out))

	tmpl, err := template.New(name).Funcs(styles.funcs()).Parse(text)
	if err != nil {
		return fmt.Errorf("parse %s template: %w", name, err)
	}
	if err := tmpl.Execute(out, cmd); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

func (s helpStyles) funcs() template.FuncMap {
	return template.FuncMap{
		"command":   s.command.Render,
		"heading":   s.heading.Render,
		"name":      s.name.Render,
		"example":   s.example.Render,
		"flags":     s.flagUsages,
		"join":      strings.Join,
		"pad":       pad,
		"trimLines": trimLines,
	}
}

// reFlagLine splits a pflag usage line into indent, flag spec, the gap
// before the description, and the description.
var reFlagLine = regexp.MustCompile(`^(\s*)(-\S.*?)(\s{2,})(\S.*)$`)

// flagUsages styles pflag's aligned usage text. The original spacing is
// kept so descriptions stay aligned once escape codes are added.
func (s helpStyles) flagUsages(fs *pflag.FlagSet) string {
	lines := strings.Split(strings.TrimRight(fs.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		m := reFlagLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lines[i] = m[1] + s.flagSpec(m[2]) + m[3] + m[4]
	}
	return strings.Join(lines, "\n")
}

// flagSpec colors "-c, --config string": flag names in the flag style,
// the value type in the meta style.
func (s helpStyles) flagSpec(spec string) string {
	fields := strings.Fields(spec)
	for i, f := range fields {
		if !strings.HasPrefix(f, "-") {
			fields[i] = s.meta.Render(f)
			continue
		}
		if name, ok := strings.CutSuffix(f, ","); ok {
			fields[i] = s.flag.Render(name) + ","
		} else {
			fields[i] = s.flag.Render(f)
		}
	}
	return strings.Join(fields, " ")
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.Join(lines, "\n")
}
