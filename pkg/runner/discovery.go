package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover expands opts.Paths into a sorted, deduplicated list of absolute
// Markdown file paths. A path that does not exist but contains glob
// metacharacters is expanded as a doublestar pattern. Hidden files and
// directories found while walking are skipped.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		opts:       opts,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		seen:       make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}
		if err := d.add(ctx, input); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

type discoverer struct {
	opts       Options
	workDir    string
	extensions []string
	seen       map[string]struct{}
	files      []string
}

func (d *discoverer) add(ctx context.Context, input string) error {
	absPath := input
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(d.workDir, absPath)
	}
	absPath = filepath.Clean(absPath)

	info, err := os.Stat(absPath)
	if errors.Is(err, fs.ErrNotExist) && hasMeta(input) {
		return d.addPattern(absPath)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}

	if info.IsDir() {
		return d.walk(ctx, absPath)
	}
	// Explicit files skip the hidden-name check.
	d.consider(absPath)
	return nil
}

func (d *discoverer) addPattern(pattern string) error {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("expand pattern %s: %w", pattern, err)
	}
	for _, match := range matches {
		d.consider(match)
	}
	return nil
}

func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && (isHidden(entry.Name()) || d.excluded(path)) {
				return filepath.SkipDir
			}
			return nil
		}
		if isHidden(entry.Name()) {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				// Broken or inaccessible symlink.
				return nil //nolint:nilerr // skipped on purpose
			}
			if target.IsDir() {
				if !d.opts.FollowSymlinks {
					return nil
				}
				// Walk the resolved target; WalkDir does not follow links.
				resolved, err := filepath.EvalSymlinks(path)
				if err != nil {
					return nil //nolint:nilerr // skipped on purpose
				}
				return d.walk(ctx, resolved)
			}
		}

		d.consider(path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// consider records path when it passes the extension and glob filters.
func (d *discoverer) consider(path string) {
	if !hasExtension(path, d.extensions) || d.excluded(path) {
		return
	}
	if len(d.opts.IncludeGlobs) > 0 && !matchAny(d.opts.IncludeGlobs, d.rel(path)) {
		return
	}
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discoverer) excluded(path string) bool {
	return matchAny(d.opts.ExcludeGlobs, d.rel(path))
}

// rel returns path relative to the working directory in slash form.
func (d *discoverer) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// matchAny reports whether rel matches one of patterns. Patterns without a
// slash also match against the base name, so "*.draft.md" works anywhere.
func matchAny(patterns []string, rel string) bool {
	base := rel[strings.LastIndexByte(rel, '/')+1:]
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return true
			}
		}
	}
	return false
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}
