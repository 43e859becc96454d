// Package config defines the configuration types for gocmark.
// These types are pure data structures; loading, merging and validation
// live in internal/configloader.
package config

import (
	"github.com/yaklabco/gocmark/pkg/cmark"
	"github.com/yaklabco/gocmark/pkg/render"
)

// BuildConfig controls batch conversion with "gocmark build".
type BuildConfig struct {
	// Extensions are the source file extensions, lowercase with a leading dot.
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty" validate:"dive,startswith=."`

	// Include and Exclude are doublestar glob patterns relative to the
	// working directory.
	Include []string `mapstructure:"include" yaml:"include,omitempty"`
	Exclude []string `mapstructure:"exclude" yaml:"exclude,omitempty"`

	// OutDir receives the rendered files, mirroring the source layout.
	// Empty writes each output next to its source.
	OutDir string `mapstructure:"out_dir" yaml:"out_dir,omitempty"`

	// Jobs is the number of parallel workers; 0 means one per CPU.
	Jobs int `mapstructure:"jobs" yaml:"jobs,omitempty" validate:"min=0,max=256"`

	// FollowSymlinks traverses symlinked directories during discovery.
	FollowSymlinks bool `mapstructure:"follow_symlinks" yaml:"follow_symlinks,omitempty"`
}

// Config is the root configuration structure.
//
// Boolean options are pointers so a later layer can switch off what an
// earlier one switched on; nil means "not set here".
type Config struct {
	// Format is the output format: html or xml.
	Format string `mapstructure:"format" yaml:"format,omitempty" validate:"omitempty,oneof=html xml"`

	Smart          *bool `mapstructure:"smart" yaml:"smart,omitempty"`
	Safe           *bool `mapstructure:"safe" yaml:"safe,omitempty"`
	Sourcepos      *bool `mapstructure:"sourcepos" yaml:"sourcepos,omitempty"`
	DetectLanguage *bool `mapstructure:"detect_language" yaml:"detect_language,omitempty"`

	// Softbreak is the HTML written for soft line breaks. Empty means a newline.
	Softbreak string `mapstructure:"softbreak" yaml:"softbreak,omitempty"`

	// Build configures batch conversion.
	Build BuildConfig `mapstructure:"build" yaml:"build,omitempty"`

	// CLI-level options (not persisted to config files).

	// Time logs phase timings after each conversion.
	Time bool `mapstructure:"-" yaml:"-"`

	// DryRun lists what build would write without writing it.
	DryRun bool `mapstructure:"-" yaml:"-"`
}

// DefaultExtensions returns the Markdown extensions converted by default.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Format: string(render.FormatHTML),
		Build: BuildConfig{
			Extensions: DefaultExtensions(),
		},
	}
}

// Bool returns a pointer to b, for filling optional boolean fields.
func Bool(b bool) *bool {
	return &b
}

// enabled reports whether an optional flag is set to true.
func enabled(b *bool) bool {
	return b != nil && *b
}

// ConverterOptions returns the converter settings described by c.
func (c *Config) ConverterOptions() cmark.Options {
	opts := cmark.DefaultOptions()
	if c == nil {
		return opts
	}

	if c.Format != "" {
		opts.Format = render.Format(c.Format)
	}
	if c.Softbreak != "" {
		opts.Softbreak = c.Softbreak
	}
	opts.Smart = enabled(c.Smart)
	opts.Safe = enabled(c.Safe)
	opts.Sourcepos = enabled(c.Sourcepos)
	opts.DetectLanguage = enabled(c.DetectLanguage)

	return opts
}
