package cli

import (
	"bytes"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gocmark/internal/logging"
	"github.com/yaklabco/gocmark/pkg/cmark"
	"github.com/yaklabco/gocmark/pkg/config"
	"github.com/yaklabco/gocmark/pkg/fsutil"
)

// stdioPath names standard input or output in place of a file.
const stdioPath = "-"

func newRenderCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "render [src] [dest]",
		Short: "Convert one Markdown document",
		Long: `Convert one Markdown document to HTML or XML.

The source defaults to standard input and the result goes to standard
output unless a destination is given. A destination file is written
atomically.

Examples:
  gocmark render README.md              Print README.md as HTML
  gocmark render README.md README.html  Write README.html
  cat doc.md | gocmark render --smart   Convert standard input
  gocmark render --format xml doc.md    Print the CommonMark XML tree`,
		Args: usageArgs(cobra.MaximumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	addConvertFlags(cmd, flags)

	return cmd
}

func runRender(cmd *cobra.Command, args []string, flags *convertFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cli := &config.Config{}
	flags.apply(cmd, cli)

	cfg, err := loadConfig(cmd, cli)
	if err != nil {
		return err
	}

	converter, err := cmark.New(cfg.ConverterOptions())
	if err != nil {
		return &UsageError{Err: err}
	}

	src, dest := stdioPath, stdioPath
	if len(args) > 0 {
		src = args[0]
	}
	if len(args) > 1 {
		dest = args[1]
	}

	input, err := readSource(cmd, src)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	timings, err := converter.Convert(ctx, input, &out)
	if err != nil {
		return err
	}

	if dest == stdioPath {
		if _, err := cmd.OutOrStdout().Write(out.Bytes()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	} else if err := fsutil.WriteAtomic(ctx, dest, out.Bytes(), 0); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}

	logger.Debug("rendered document",
		logging.FieldInput, src,
		logging.FieldOutput, dest,
		logging.FieldFormat, converter.Options().Format,
	)

	if cfg.Time {
		logTimings(logger, src, timings)
	}

	return nil
}

func logTimings(logger *log.Logger, path string, timings cmark.Timings) {
	logger.Info("timings",
		logging.FieldPath, path,
		logging.FieldLines, timings.Lines,
		logging.FieldBlock, timings.Block,
		logging.FieldInline, timings.Inline,
		logging.FieldRender, timings.Render,
		logging.FieldDuration, timings.Total(),
	)
}

// readSource returns the document at src, or standard input for "-".
func readSource(cmd *cobra.Command, src string) (io.Reader, error) {
	if src == stdioPath {
		return cmd.InOrStdin(), nil
	}

	content, _, err := fsutil.ReadFile(cmd.Context(), src)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(content), nil
}
