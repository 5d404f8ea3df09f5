package lint

import (
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/core"
)

// Activation is a rule bound to its resolved severity and options.
type Activation struct {
	Rule     Rule
	Severity core.Severity
	Options  any
}

// ID returns the activated rule's ID.
func (a *Activation) ID() string {
	return a.Rule.ID()
}

// Activate resolves cfg against reg. Configured rules come first in
// configuration order; unless cfg is exclusive, the remaining registered
// rules follow in registration order. Rules whose entries or options are
// invalid are left out and reported as configuration problems.
func Activate(cfg *Config, reg *Registry) ([]*Activation, []Problem) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if reg == nil {
		reg = defaultRegistry
	}

	var (
		activations []*Activation
		problems    []Problem
		seen        = make(map[string]bool)
	)

	for _, cerr := range cfg.Errors() {
		seen[cerr.RuleID] = true
		problems = append(problems, configProblem(cerr))
	}

	activate := func(rule Rule) {
		id := rule.ID()
		seen[id] = true
		if cfg.IsDisabled(id) {
			return
		}
		opts, err := resolveOptions(rule, cfg.GetRuleOptions(id))
		if err != nil {
			problems = append(problems, configProblem(&ConfigError{RuleID: id, Err: err}))
			return
		}
		activations = append(activations, &Activation{
			Rule:     rule,
			Severity: cfg.GetSeverity(id, rule.DefaultSeverity()),
			Options:  opts,
		})
	}

	for _, s := range cfg.Settings() {
		if seen[s.ID] {
			continue
		}
		rule, ok := reg.Get(s.ID)
		if !ok {
			seen[s.ID] = true
			problems = append(problems, configProblem(&ConfigError{
				RuleID: s.ID,
				Err:    fmt.Errorf("%w: %s", core.ErrUnknownRule, s.ID),
			}))
			continue
		}
		activate(rule)
	}

	if !cfg.IsExclusive() {
		for _, rule := range reg.All() {
			if !seen[rule.ID()] {
				activate(rule)
			}
		}
	}

	return activations, problems
}

func resolveOptions(rule Rule, raw []any) (opts any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: option resolver panicked: %v", ErrInvalidOptions, r)
		}
	}()
	return rule.ResolveOptions(raw)
}

func configProblem(cerr *ConfigError) Problem {
	return Problem{
		Kind:    ProblemConfig,
		RuleID:  cerr.RuleID,
		Message: cerr.Err.Error(),
		Err:     cerr,
	}
}
