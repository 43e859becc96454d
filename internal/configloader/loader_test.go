package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gocmark/pkg/config"
)

// newProject creates a temp directory marked as a VCS root so the upward
// config search never leaves it.
func newProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(newProject(t)))
	require.NoError(t, err)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".gocmark.yml"), "format: xml\nsmart: true\nbuild:\n  out_dir: site\n")

	// Search starts in a subdirectory and walks up.
	sub := filepath.Join(dir, "docs", "guide")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := Load(context.Background(), isolated(sub))
	require.NoError(t, err)

	assert.Equal(t, "xml", result.Config.Format)
	require.NotNil(t, result.Config.Smart)
	assert.True(t, *result.Config.Smart)
	assert.Equal(t, "site", result.Config.Build.OutDir)
	assert.Equal(t, config.DefaultExtensions(), result.Config.Build.Extensions, "defaults survive the merge")
	assert.Equal(t, []string{filepath.Join(dir, ".gocmark.yml")}, result.LoadedFrom)
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".gocmark.yml"), "safe: true\nformat: xml\n")
	explicit := filepath.Join(dir, "custom.yml")
	writeFile(t, explicit, "safe: false\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	require.NotNil(t, result.Config.Safe)
	assert.False(t, *result.Config.Safe, "a later layer can switch a flag off")
	assert.Equal(t, "xml", result.Config.Format)
	assert.Len(t, result.LoadedFrom, 2)
}

func TestLoad_ExplicitMissing(t *testing.T) {
	t.Parallel()

	opts := isolated(newProject(t))
	opts.ExplicitPath = filepath.Join(t.TempDir(), "nope.yml")

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load explicit config")
}

func TestLoad_CLITakesPrecedence(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".gocmark.yml"), "format: xml\nbuild:\n  jobs: 2\n")

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{Format: "html", Time: true}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "html", result.Config.Format)
	assert.Equal(t, 2, result.Config.Build.Jobs)
	assert.True(t, result.Config.Time)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"unknown format", "format: pdf\n", "format"},
		{"negative jobs", "build:\n  jobs: -1\n", "build.jobs"},
		{"extension without dot", "build:\n  extensions: [md]\n", "build.extensions[0]"},
		{"bad glob", "build:\n  exclude: [\"[unclosed\"]\n", "build.exclude[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := newProject(t)
			path := filepath.Join(dir, ".gocmark.yml")
			writeFile(t, path, tt.content)

			_, err := Load(context.Background(), isolated(dir))
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, path, verr.FilePath)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".gocmark.yml"), "format: [unterminated\n")

	_, err := Load(context.Background(), isolated(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load project config")
}

func TestLoadFromEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"GOCMARK_FORMAT":    "xml",
		"GOCMARK_SMART":     "1",
		"GOCMARK_SAFE":      "false",
		"GOCMARK_JOBS":      "3",
		"GOCMARK_EXCLUDE":   " vendor/** , ,node_modules/** ",
		"GOCMARK_SOFTBREAK": " ",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := config.NewConfig()
	require.NoError(t, loadFromEnv(cfg, lookup))

	assert.Equal(t, "xml", cfg.Format)
	assert.True(t, *cfg.Smart)
	assert.False(t, *cfg.Safe)
	assert.Nil(t, cfg.Sourcepos)
	assert.Equal(t, 3, cfg.Build.Jobs)
	assert.Equal(t, []string{"vendor/**", "node_modules/**"}, cfg.Build.Exclude)
	assert.Equal(t, " ", cfg.Softbreak)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Parallel()

	lookup := func(key string) (string, bool) {
		if key == "GOCMARK_SMART" {
			return "maybe", true
		}
		return "", false
	}

	err := loadFromEnv(config.NewConfig(), lookup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOCMARK_SMART")
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Len(t, vars, len(EnvVarNames()))
	assert.Contains(t, vars, "GOCMARK_FORMAT")
	assert.IsNonDecreasing(t, EnvVarNames())
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MergeAll())

	merged := MergeAll(
		config.NewConfig(),
		&config.Config{Smart: config.Bool(true), Build: config.BuildConfig{Include: []string{"docs/**"}}},
		&config.Config{Smart: config.Bool(false), Build: config.BuildConfig{Jobs: 8}},
	)

	assert.Equal(t, "html", merged.Format)
	assert.False(t, *merged.Smart)
	assert.Equal(t, []string{"docs/**"}, merged.Build.Include)
	assert.Equal(t, 8, merged.Build.Jobs)
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Format = "xml"
	cfg.Softbreak = "<br />"

	result := ValidateWithFile(cfg, "x.yml")
	assert.True(t, result.Valid())
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "x.yml", result.Warnings[0].FilePath)
	assert.Contains(t, result.AllMessages()[0], "softbreak")
	assert.NoError(t, result.Err())
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".gocmark.yml"), "format: xml\n")
	inner := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(inner, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), inner)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestFindProjectConfig_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindProjectConfig(ctx, t.TempDir())
	assert.True(t, errors.Is(err, context.Canceled))
}
