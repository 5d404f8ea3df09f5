package lint

import (
	"errors"
	"fmt"
	"sort"

	"github.com/leapstack-labs/leaplint/pkg/core"
)

// RuleSetting is one rule's entry in a Config.
type RuleSetting struct {
	ID      string
	Enabled bool

	// Severity is only meaningful when HasSeverity is set; otherwise the
	// rule's default severity applies.
	Severity    core.Severity
	HasSeverity bool

	// Options are the raw options handed to the rule's resolver.
	Options []any
}

// ParseRuleSetting parses a rule entry written as a level ("error", "warn",
// "off", 0, 1, 2) or as a list whose head is the level and whose tail is
// the rule's options.
func ParseRuleSetting(id string, raw any) (RuleSetting, error) {
	setting := RuleSetting{ID: id}

	var level any
	switch v := raw.(type) {
	case []any:
		if len(v) == 0 {
			return setting, &ConfigError{RuleID: id, Err: fmt.Errorf("%w: empty rule entry", core.ErrInvalidSeverity)}
		}
		level = v[0]
		setting.Options = append([]any(nil), v[1:]...)
	case []string:
		if len(v) == 0 {
			return setting, &ConfigError{RuleID: id, Err: fmt.Errorf("%w: empty rule entry", core.ErrInvalidSeverity)}
		}
		level = v[0]
		for _, opt := range v[1:] {
			setting.Options = append(setting.Options, opt)
		}
	default:
		level = raw
	}

	lv, err := core.ParseRuleLevel(level)
	if err != nil {
		return setting, &ConfigError{RuleID: id, Err: err}
	}
	setting.Enabled = lv.Enabled
	setting.Severity = lv.Severity
	setting.HasSeverity = lv.Enabled
	return setting, nil
}

// ConfigError describes an invalid rule configuration entry.
type ConfigError struct {
	RuleID string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration for rule %q: %v", e.RuleID, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Config controls which rules run, at which severity, with which options.
//
// By default every registered rule runs at its default severity, and the
// configured rules are activated first in the order they were configured.
// An exclusive Config runs only the rules it names.
type Config struct {
	settings  map[string]*RuleSetting
	order     []string
	exclusive bool

	// DisabledRules contains rule IDs that should not run.
	DisabledRules map[string]bool

	// SeverityOverrides maps rule IDs to custom severity levels.
	SeverityOverrides map[string]core.Severity

	errs []*ConfigError
}

// NewConfig creates a new lint configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		settings:          make(map[string]*RuleSetting),
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]core.Severity),
	}
}

// Set stores a rule setting. A rule that is set again keeps its position.
func (c *Config) Set(s RuleSetting) *Config {
	if _, ok := c.settings[s.ID]; !ok {
		c.order = append(c.order, s.ID)
	}
	cp := s
	cp.Options = append([]any(nil), s.Options...)
	c.settings[s.ID] = &cp
	return c
}

// SetRule parses and stores a raw rule entry. An invalid entry is kept on
// the config and returned; the linter reports it as a configuration problem.
func (c *Config) SetRule(id string, raw any) error {
	setting, err := ParseRuleSetting(id, raw)
	if err != nil {
		var cerr *ConfigError
		if !errors.As(err, &cerr) {
			cerr = &ConfigError{RuleID: id, Err: err}
		}
		c.errs = append(c.errs, cerr)
		return cerr
	}
	c.Set(setting)
	return nil
}

// Enable turns a rule on at its default severity, keeping any options.
func (c *Config) Enable(id string) *Config {
	delete(c.DisabledRules, id)
	if s, ok := c.settings[id]; ok {
		s.Enabled = true
		return c
	}
	return c.Set(RuleSetting{ID: id, Enabled: true})
}

// Disable disables a rule by ID.
func (c *Config) Disable(id string) *Config {
	c.DisabledRules[id] = true
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(id string, severity core.Severity) *Config {
	c.SeverityOverrides[id] = severity
	return c
}

// SetRuleOptions sets the raw options for a rule, enabling it if needed.
func (c *Config) SetRuleOptions(id string, opts ...any) *Config {
	if _, ok := c.settings[id]; !ok {
		c.Set(RuleSetting{ID: id, Enabled: true})
	}
	c.settings[id].Options = append([]any(nil), opts...)
	return c
}

// Exclusive restricts the run to the rules named in the config.
func (c *Config) Exclusive() *Config {
	c.exclusive = true
	return c
}

// IsExclusive reports whether only configured rules run.
func (c *Config) IsExclusive() bool {
	return c.exclusive
}

// IsDisabled checks if a rule is disabled.
func (c *Config) IsDisabled(id string) bool {
	if c.DisabledRules[id] {
		return true
	}
	if s, ok := c.settings[id]; ok {
		return !s.Enabled
	}
	return c.exclusive
}

// GetSeverity returns the effective severity for a rule.
func (c *Config) GetSeverity(id string, defaultSev core.Severity) core.Severity {
	if sev, ok := c.SeverityOverrides[id]; ok {
		return sev
	}
	if s, ok := c.settings[id]; ok && s.HasSeverity {
		return s.Severity
	}
	return defaultSev
}

// GetRuleOptions returns the raw options configured for a rule.
func (c *Config) GetRuleOptions(id string) []any {
	if s, ok := c.settings[id]; ok {
		return s.Options
	}
	return nil
}

// Setting returns a copy of the setting stored for id.
func (c *Config) Setting(id string) (RuleSetting, bool) {
	s, ok := c.settings[id]
	if !ok {
		return RuleSetting{}, false
	}
	return *s, true
}

// Settings returns the configured rules in configuration order.
func (c *Config) Settings() []RuleSetting {
	out := make([]RuleSetting, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.settings[id])
	}
	return out
}

// Errors returns the entries rejected by SetRule or ConfigFromCore.
func (c *Config) Errors() []*ConfigError {
	return c.errs
}

// ConfigFromCore builds a Config from the file-level lint configuration.
// Rule entries are applied in sorted ID order so activation is stable.
func ConfigFromCore(lc *core.LintConfig) *Config {
	cfg := NewConfig()
	if lc == nil {
		return cfg
	}

	ids := make([]string, 0, len(lc.Rules))
	for id := range lc.Rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		_ = cfg.SetRule(id, lc.Rules[id])
	}

	for _, id := range lc.Disabled {
		cfg.Disable(id)
	}

	sevIDs := make([]string, 0, len(lc.Severity))
	for id := range lc.Severity {
		sevIDs = append(sevIDs, id)
	}
	sort.Strings(sevIDs)
	for _, id := range sevIDs {
		sev, ok := core.ParseSeverity(lc.Severity[id])
		if !ok {
			cfg.errs = append(cfg.errs, &ConfigError{
				RuleID: id,
				Err:    fmt.Errorf("%w: %q", core.ErrInvalidSeverity, lc.Severity[id]),
			})
			continue
		}
		cfg.SetSeverity(id, sev)
	}
	return cfg
}
