package manifest

// FilterConfig controls which source files the module resolver considers
// part of the crate.
type FilterConfig struct {
	ExcludePatterns       []string
	IncludePatterns       []string
	ExcludeTestFiles      bool
	ExcludeTestsDirectory bool
	ExcludeCfgTest        bool
}

// DefaultFilterConfig returns the all-included preset: every flag false,
// every pattern list empty.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{}
}

// NoTestsFilterConfig returns the "no-tests" preset: all three exclusion
// flags enabled.
func NoTestsFilterConfig() FilterConfig {
	return FilterConfig{
		ExcludeTestFiles:      true,
		ExcludeTestsDirectory: true,
		ExcludeCfgTest:        true,
	}
}
