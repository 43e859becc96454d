package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gocmark/internal/logging"
	"github.com/yaklabco/gocmark/internal/ui/pretty"
	"github.com/yaklabco/gocmark/pkg/cmark"
	"github.com/yaklabco/gocmark/pkg/config"
)

func newTreeCommand() *cobra.Command {
	var smart, timings bool

	cmd := &cobra.Command{
		Use:   "tree [src]",
		Short: "Print the parsed document tree",
		Long: `Parse a Markdown document and print its tree: one node per line with
its kind, source span and attributes. Reads standard input when no
source is given.

Examples:
  gocmark tree README.md
  echo '*hi*' | gocmark tree`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := &config.Config{Time: timings}
			if cmd.Flags().Changed("smart") {
				cli.Smart = config.Bool(smart)
			}
			return runTree(cmd, args, cli)
		},
	}

	cmd.Flags().BoolVar(&smart, "smart", false, "use typographic quotes, dashes and ellipses")
	cmd.Flags().BoolVar(&timings, "time", false, "log parse timings")

	return cmd
}

func runTree(cmd *cobra.Command, args []string, cli *config.Config) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cfg, err := loadConfig(cmd, cli)
	if err != nil {
		return err
	}

	converter, err := cmark.New(cfg.ConverterOptions())
	if err != nil {
		return &UsageError{Err: err}
	}

	src := stdioPath
	if len(args) > 0 {
		src = args[0]
	}

	input, err := readSource(cmd, src)
	if err != nil {
		return err
	}

	doc, timings, err := converter.Parse(ctx, input)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
	if _, err := fmt.Fprint(out, styles.FormatTree(doc)); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}

	if cfg.Time {
		logTimings(logger, src, timings)
	}

	return nil
}
