// Package runner converts many Markdown files concurrently.
package runner

// Options controls file discovery and concurrency.
type Options struct {
	// Paths are files, directories or doublestar patterns to process.
	// Empty means the working directory.
	Paths []string

	// WorkingDir resolves relative Paths and anchors the include and
	// exclude globs. Empty means the process working directory.
	WorkingDir string

	// Extensions are the source extensions, lowercase with a leading dot.
	// Empty means DefaultExtensions().
	Extensions []string

	// IncludeGlobs, when set, keep only files matching one of them.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs bounds the number of concurrent conversions.
	// 0 or negative means runtime.NumCPU().
	Jobs int
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
