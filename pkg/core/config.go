package core

// LintConfig holds lint rule configuration as it appears in .leaplint.yaml.
type LintConfig struct {
	// Rules maps rule ID to its activation, written the same way as in
	// an eslintrc file: a level ("error", "warn", "off", 0, 1, 2) or a
	// list whose first element is the level and whose tail is the rule's
	// options, e.g. [error, never] or [2, {var: always}].
	Rules map[string]any `koanf:"rules"`

	// Disabled contains rule IDs to disable
	Disabled []string `koanf:"disabled"`

	// Severity maps rule ID to severity override (error, warning, info, hint)
	Severity map[string]string `koanf:"severity"`
}

// DocsConfig controls where diagnostic documentation links point to.
type DocsConfig struct {
	BaseURL string `koanf:"base_url"`
}
