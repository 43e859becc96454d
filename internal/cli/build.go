package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gocmark/internal/logging"
	"github.com/yaklabco/gocmark/pkg/cmark"
	"github.com/yaklabco/gocmark/pkg/config"
	"github.com/yaklabco/gocmark/pkg/fsutil"
	"github.com/yaklabco/gocmark/pkg/reporter"
	"github.com/yaklabco/gocmark/pkg/runner"
)

type buildFlags struct {
	convert        convertFlags
	outDir         string
	jobs           int
	include        []string
	exclude        []string
	extensions     []string
	followSymlinks bool
	dryRun         bool
	quiet          bool
	report         string
	cpuprofile     string
	memprofile     string
}

func newBuildCommand() *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build [paths...]",
		Short: "Convert many Markdown files",
		Long:  buildLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, flags)
		},
	}

	addConvertFlags(cmd, &flags.convert)
	cmd.Flags().StringVarP(&flags.outDir, "out-dir", "o", "", "write outputs under this directory, mirroring the source tree")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = one per CPU)")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only convert files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "skip files and directories matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "source file extensions (default .md, .markdown)")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "report what would be written without writing")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "print only the one-line summary")
	cmd.Flags().StringVar(&flags.report, "report", "text", "report format: text, summary, json")

	// Profiling flags.
	cmd.Flags().StringVar(&flags.cpuprofile, "cpuprofile", "", "write CPU profile to file")
	cmd.Flags().StringVar(&flags.memprofile, "memprofile", "", "write memory profile to file")

	return cmd
}

const buildLongDescription = `Convert every Markdown file under the given paths.

By default, converts all .md and .markdown files in the current directory
and its subdirectories, writing each output next to its source. Paths may
be files, directories or doublestar glob patterns. Hidden files and
directories are skipped while walking. Outputs whose content would not
change are left untouched.

Examples:
  gocmark build                        Convert the current directory
  gocmark build docs -o site           Mirror docs/ into site/
  gocmark build --exclude 'vendor/**'  Skip vendored files
  gocmark build 'docs/**/*.md' -j 4    Convert matches with 4 workers
  gocmark build --dry-run              Show what would be written
  gocmark build --report json          Print a machine-readable report`

func (f *buildFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	f.convert.apply(cmd, cfg)

	changed := cmd.Flags().Changed
	if changed("out-dir") {
		cfg.Build.OutDir = f.outDir
	}
	if changed("jobs") {
		cfg.Build.Jobs = f.jobs
	}
	if changed("include") {
		cfg.Build.Include = f.include
	}
	if changed("exclude") {
		cfg.Build.Exclude = f.exclude
	}
	if changed("ext") {
		cfg.Build.Extensions = f.extensions
	}
	cfg.Build.FollowSymlinks = f.followSymlinks
	cfg.DryRun = f.dryRun
}

func runBuild(cmd *cobra.Command, args []string, flags *buildFlags) (err error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	stopProfiling, err := startProfiling(flags.cpuprofile, flags.memprofile)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, stopProfiling())
	}()

	format, err := reporter.ParseFormat(flags.report)
	if err != nil {
		return &UsageError{Err: err}
	}

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

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	outDir := cfg.Build.OutDir
	if outDir != "" && !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}

	convert := newBuildConverter(converter, workDir, outDir, cfg.DryRun)

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     cfg.Build.Extensions,
		IncludeGlobs:   cfg.Build.Include,
		ExcludeGlobs:   excludeOutputs(cfg.Build.Exclude, workDir, outDir),
		FollowSymlinks: cfg.Build.FollowSymlinks,
		Jobs:           cfg.Build.Jobs,
	}

	logger.Debug("starting build",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldFormat, converter.Options().Format,
		logging.FieldJobs, runOpts.Jobs,
		logging.FieldDryRun, cfg.DryRun,
	)

	result, err := runner.New(convert).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	for _, outcome := range result.Files {
		if outcome.Error != nil {
			logger.Error("conversion failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
			continue
		}
		logger.Debug("converted",
			logging.FieldInput, outcome.Path,
			logging.FieldOutput, outcome.Output.Dest,
			logging.FieldDuration, outcome.Output.Duration,
		)
	}

	stats := result.Stats
	logger.Debug("build finished",
		logging.FieldFilesDiscovered, stats.FilesDiscovered,
		logging.FieldFilesConverted, stats.FilesConverted,
		logging.FieldFilesUnchanged, stats.FilesUnchanged,
		logging.FieldFilesFailed, stats.FilesFailed,
		logging.FieldBytesIn, stats.BytesIn,
		logging.FieldBytesOut, stats.BytesOut,
		logging.FieldDuration, stats.Elapsed,
	)
	if cfg.Time {
		logger.Info("timings",
			logging.FieldFiles, stats.FilesDiscovered,
			logging.FieldDuration, stats.Elapsed,
		)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:     cmd.OutOrStdout(),
		Format:     format,
		Color:      colorMode(cmd),
		ShowFiles:  !flags.quiet,
		DryRun:     cfg.DryRun,
		WorkingDir: workDir,
	})
	if err != nil {
		return err
	}
	if err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if result.HasFailures() {
		return ErrConversionFailed
	}
	return nil
}

// newBuildConverter returns the per-file conversion used by the runner.
func newBuildConverter(converter *cmark.Converter, workDir, outDir string, dryRun bool) runner.ConvertFunc {
	ext := converter.Options().Format.Extension()

	return func(ctx context.Context, path string) (runner.Output, error) {
		dest, err := fsutil.OutputPath(path, workDir, outDir, ext)
		if err != nil {
			return runner.Output{}, err
		}

		var result cmark.FileResult
		if dryRun {
			result, err = converter.PreviewFile(ctx, path, dest)
		} else {
			result, err = converter.ConvertFile(ctx, path, dest)
		}
		if err != nil {
			return runner.Output{Dest: dest}, err
		}

		return runner.Output{
			Dest:     dest,
			BytesIn:  result.BytesIn,
			BytesOut: result.BytesOut,
			Written:  result.Written,
			Duration: result.Timings.Total(),
		}, nil
	}
}

// excludeOutputs keeps an output directory inside the working tree out of
// discovery, so rebuilding never picks up its own results.
func excludeOutputs(exclude []string, workDir, outDir string) []string {
	if outDir == "" {
		return exclude
	}

	rel, err := filepath.Rel(workDir, outDir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return exclude
	}

	return append(append([]string(nil), exclude...), filepath.ToSlash(rel)+"/**")
}
