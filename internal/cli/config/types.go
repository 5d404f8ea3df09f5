// Package config provides configuration management for the leaplint CLI.
//
// The shared lint configuration types are defined in pkg/core and
// re-exported here via type aliases for convenience.
package config

import "github.com/leapstack-labs/leaplint/pkg/core"

// LintConfig is an alias for the shared lint configuration.
// This allows CLI code to use config.LintConfig without importing pkg/core.
type LintConfig = core.LintConfig

// DocsConfig is an alias for the shared docs configuration.
// This allows CLI code to use config.DocsConfig without importing pkg/core.
type DocsConfig = core.DocsConfig

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool        `koanf:"verbose"`
	LogLevel     string      `koanf:"log_level"`
	OutputFormat string      `koanf:"output"`
	Include      []string    `koanf:"include"`
	Ignore       []string    `koanf:"ignore"`
	Jobs         int         `koanf:"jobs"`
	MaxWarnings  int         `koanf:"max_warnings"`
	Lint         *LintConfig `koanf:"lint"`
	Docs         *DocsConfig `koanf:"docs"`

	// ProjectRoot is the directory holding the config file, or the working
	// directory when none was found.
	ProjectRoot string `koanf:"-"`
}

// GetLintConfig returns the lint section, never nil.
func (c *Config) GetLintConfig() *LintConfig {
	if c.Lint == nil {
		return &LintConfig{}
	}
	return c.Lint
}

// Default configuration values.
const (
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel    = "warn"
	DefaultMaxWarnings = -1 // no limit
	EnvPrefix          = "LEAPLINT_"
)

// ConfigFileNames are searched, in order, in each candidate directory.
var ConfigFileNames = []string{".leaplint.yaml", ".leaplint.yml", "leaplint.yaml"}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		LogLevel:     DefaultLogLevel,
		OutputFormat: DefaultOutput,
		MaxWarnings:  DefaultMaxWarnings,
	}
}
