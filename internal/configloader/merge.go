package configloader

import "github.com/yaklabco/gocmark/pkg/config"

// merge combines two configurations, with override taking precedence:
//   - strings and ints override when non-zero
//   - optional booleans override when non-nil
//   - slices replace the base slice when non-nil
//   - CLI-only booleans are sticky once true
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Softbreak != "" {
		result.Softbreak = override.Softbreak
	}
	if override.Smart != nil {
		result.Smart = override.Smart
	}
	if override.Safe != nil {
		result.Safe = override.Safe
	}
	if override.Sourcepos != nil {
		result.Sourcepos = override.Sourcepos
	}
	if override.DetectLanguage != nil {
		result.DetectLanguage = override.DetectLanguage
	}

	result.Build = mergeBuild(base.Build, override.Build)

	result.Time = base.Time || override.Time
	result.DryRun = base.DryRun || override.DryRun

	return &result
}

func mergeBuild(base, override config.BuildConfig) config.BuildConfig {
	result := base

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Include != nil {
		result.Include = override.Include
	}
	if override.Exclude != nil {
		result.Exclude = override.Exclude
	}
	if override.OutDir != "" {
		result.OutDir = override.OutDir
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.FollowSymlinks {
		result.FollowSymlinks = true
	}

	return result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
