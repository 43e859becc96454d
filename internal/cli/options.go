package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gocmark/internal/configloader"
	"github.com/yaklabco/gocmark/internal/logging"
	"github.com/yaklabco/gocmark/pkg/config"
)

// convertFlags holds the flags shared by commands that convert documents.
type convertFlags struct {
	format     string
	smart      bool
	safe       bool
	sourcepos  bool
	detectLang bool
	softbreak  string
	time       bool
}

func addConvertFlags(cmd *cobra.Command, flags *convertFlags) {
	cmd.Flags().StringVarP(&flags.format, "format", "t", "html", "output format: html, xml")
	cmd.Flags().BoolVar(&flags.smart, "smart", false, "use typographic quotes, dashes and ellipses")
	cmd.Flags().BoolVar(&flags.safe, "safe", false, "omit raw HTML and dangerous link schemes")
	cmd.Flags().BoolVar(&flags.sourcepos, "sourcepos", false, "annotate block elements with source positions")
	cmd.Flags().BoolVar(&flags.detectLang, "detect-lang", false, "guess the language of unlabeled fenced code")
	cmd.Flags().StringVar(&flags.softbreak, "softbreak", "", `HTML for soft line breaks (default "\n")`)
	cmd.Flags().BoolVar(&flags.time, "time", false, "log parse and render timings")
}

// apply copies explicitly set flags into cfg, so unset flags leave the
// file and environment layers alone.
func (f *convertFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = f.format
	}
	if changed("smart") {
		cfg.Smart = config.Bool(f.smart)
	}
	if changed("safe") {
		cfg.Safe = config.Bool(f.safe)
	}
	if changed("sourcepos") {
		cfg.Sourcepos = config.Bool(f.sourcepos)
	}
	if changed("detect-lang") {
		cfg.DetectLanguage = config.Bool(f.detectLang)
	}
	if changed("softbreak") {
		cfg.Softbreak = f.softbreak
	}
	cfg.Time = f.time
}

// loadConfig resolves the effective configuration with cli as the top layer.
func loadConfig(cmd *cobra.Command, cli *config.Config) (*config.Config, error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, &UsageError{Err: fmt.Errorf("load configuration: %w", err)}
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, result.LoadedFrom)
	}

	return result.Config, nil
}

// usageArgs wraps an argument validator so its failures exit with ExitUsage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}
