package fsutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputPath maps a source file to its output file with extension ext.
// With an empty outDir the output sits next to the source. Otherwise the
// source's path relative to baseDir is recreated under outDir; sources
// outside baseDir keep only their file name.
func OutputPath(src, baseDir, outDir, ext string) (string, error) {
	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + ext
	if outDir == "" {
		return filepath.Join(filepath.Dir(src), name), nil
	}

	rel := name
	if baseDir != "" {
		r, err := filepath.Rel(baseDir, filepath.Dir(src))
		if err != nil {
			return "", fmt.Errorf("output path for %s: %w", src, err)
		}
		if r != ".." && !strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			rel = filepath.Join(r, name)
		}
	}

	return filepath.Join(outDir, rel), nil
}
