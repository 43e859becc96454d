package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gocmark/pkg/config"
)

// envVarPrefix is the prefix for all gocmark environment variables.
const envVarPrefix = "GOCMARK_"

// envVar describes one supported environment variable.
type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

// envVars lists the supported variables in documentation order.
var envVars = []envVar{
	{"FORMAT", "Output format: html or xml", func(cfg *config.Config, v string) error {
		cfg.Format = v
		return nil
	}},
	{"SMART", "Typographic punctuation: true or false", boolEnv(func(c *config.Config) **bool { return &c.Smart })},
	{"SAFE", "Omit raw HTML and unsafe links: true or false", boolEnv(func(c *config.Config) **bool { return &c.Safe })},
	{"SOURCEPOS", "Add source positions: true or false", boolEnv(func(c *config.Config) **bool { return &c.Sourcepos })},
	{"DETECT_LANGUAGE", "Guess code block languages: true or false", boolEnv(func(c *config.Config) **bool { return &c.DetectLanguage })},
	{"SOFTBREAK", "HTML written for soft line breaks", func(cfg *config.Config, v string) error {
		cfg.Softbreak = v
		return nil
	}},
	{"JOBS", "Number of parallel build workers (0 = auto)", func(cfg *config.Config, v string) error {
		jobs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		cfg.Build.Jobs = jobs
		return nil
	}},
	{"OUT_DIR", "Output directory for build", func(cfg *config.Config, v string) error {
		cfg.Build.OutDir = v
		return nil
	}},
	{"EXCLUDE", "Comma-separated exclude globs for build", func(cfg *config.Config, v string) error {
		cfg.Build.Exclude = parseSliceValue(v)
		return nil
	}},
}

func boolEnv(field func(*config.Config) **bool) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		*field(cfg) = config.Bool(b)
		return nil
	}
}

// LoadFromEnv applies GOCMARK_* environment overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.LookupEnv)
}

func loadFromEnv(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	for _, ev := range envVars {
		name := envVarPrefix + ev.suffix
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// parseSliceValue splits a comma-separated list, dropping empty elements.
func parseSliceValue(value string) []string {
	var result []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns the supported environment variables with descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envVars))
	for _, ev := range envVars {
		vars[envVarPrefix+ev.suffix] = ev.description
	}
	return vars
}

// EnvVarNames returns the supported variable names in a stable order.
func EnvVarNames() []string {
	names := make([]string, 0, len(envVars))
	for _, ev := range envVars {
		names = append(names, envVarPrefix+ev.suffix)
	}
	slices.Sort(names)
	return names
}
