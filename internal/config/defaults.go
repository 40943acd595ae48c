package config

// DefaultConfig returns the built-in rules configuration used when no
// rules document can be read. It covers the common stacks with minimal
// globs so the engine never halts for absent configuration.
func DefaultConfig() *RuleConfig {
	return &RuleConfig{
		Global: GlobalConfig{Always: []string{}},
		Stacks: map[string]StackConfig{
			"react": {
				Globs: []string{"<root>/src/**/*.tsx", "<root>/src/**/*.ts"},
			},
			"angular": {
				Globs: []string{"<root>/src/**/*.ts", "<root>/src/**/*.html"},
			},
			"vue": {
				Globs: []string{"<root>/src/**/*.vue", "<root>/src/**/*.ts"},
			},
			"laravel": {
				Globs: []string{"<root>/app/**/*.php", "<root>/routes/**/*.php"},
			},
			"nestjs": {
				Globs: []string{"<root>/src/**/*.ts"},
			},
		},
	}
}
