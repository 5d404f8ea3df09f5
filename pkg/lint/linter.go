package lint

import (
	"errors"
	"log/slog"
	"time"

	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/parser"
)

// Recorder observes a lint run. Implementations must be safe for
// concurrent use when one Linter serves several goroutines.
type Recorder interface {
	ObserveHandler(ruleID string, d time.Duration)
	ObserveDiagnostic(ruleID string, severity core.Severity)
	ObserveProblem(kind ProblemKind)
}

type noopRecorder struct{}

func (noopRecorder) ObserveHandler(string, time.Duration)    {}
func (noopRecorder) ObserveDiagnostic(string, core.Severity) {}
func (noopRecorder) ObserveProblem(ProblemKind)              {}

// Option configures a Linter.
type Option func(*Linter)

// WithRegistry selects the rule registry. The default registry is used otherwise.
func WithRegistry(r *Registry) Option {
	return func(l *Linter) { l.registry = r }
}

// WithLogger sets the logger used for engine events.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithRecorder attaches a Recorder. Handler timing is only measured when
// a recorder is attached.
func WithRecorder(rec Recorder) Option {
	return func(l *Linter) {
		if rec != nil {
			l.recorder = rec
			l.timed = true
		}
	}
}

// Linter runs a fixed set of activated rules over analyzed units.
// Activation happens once in New; Lint may be called concurrently.
type Linter struct {
	registry *Registry
	logger   *slog.Logger
	recorder Recorder
	timed    bool

	activations    []*Activation
	configProblems []Problem
}

// New activates cfg against the registry.
func New(cfg *Config, opts ...Option) *Linter {
	l := &Linter{
		registry: defaultRegistry,
		logger:   slog.New(slog.DiscardHandler),
		recorder: noopRecorder{},
	}
	for _, opt := range opts {
		opt(l)
	}

	l.activations, l.configProblems = Activate(cfg, l.registry)
	for _, p := range l.configProblems {
		l.recorder.ObserveProblem(p.Kind)
		l.logger.Warn("rule configuration rejected", "rule", p.RuleID, "error", p.Message)
	}
	l.logger.Debug("rules activated", "count", len(l.activations))
	return l
}

// Activations returns the active rules in dispatch order.
func (l *Linter) Activations() []*Activation {
	return l.activations
}

// ConfigProblems returns the configuration problems found during activation.
// They are reported once per run, not per unit.
func (l *Linter) ConfigProblems() []Problem {
	return l.configProblems
}

// Result holds the outcome of linting one unit.
type Result struct {
	Filename    string
	Diagnostics []Diagnostic
	Problems    []Problem
}

// ErrorCount returns the number of error diagnostics.
func (r *Result) ErrorCount() int {
	return r.count(core.SeverityError)
}

// WarningCount returns the number of warning diagnostics.
func (r *Result) WarningCount() int {
	return r.count(core.SeverityWarning)
}

func (r *Result) count(sev core.Severity) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// HasProblems reports whether the unit produced crash or parse problems.
func (r *Result) HasProblems() bool {
	return len(r.Problems) > 0
}

// Lint runs every activated rule over prog in a single traversal.
func (l *Linter) Lint(prog *core.Program) *Result {
	collector := NewCollector()
	d := newDispatcher(prog.Filename, collector, l.recorder, l.logger, l.timed)
	for _, a := range l.activations {
		d.add(newRuleContext(a, prog, collector, l.recorder, l.logger))
	}
	d.run(prog.Root)

	return &Result{
		Filename:    prog.Filename,
		Diagnostics: collector.Diagnostics(),
		Problems:    collector.Problems(),
	}
}

// LintSource parses src and lints it. A syntax error becomes a parse Problem.
func (l *Linter) LintSource(filename, src string) *Result {
	prog, err := parser.Parse(filename, src)
	if err != nil {
		p := Problem{
			Kind:     ProblemParse,
			Filename: filename,
			Message:  err.Error(),
			Err:      err,
		}
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			p.Pos = perr.Pos
			p.Message = perr.Message
		}
		l.recorder.ObserveProblem(ProblemParse)
		return &Result{Filename: filename, Problems: []Problem{p}}
	}
	return l.Lint(prog)
}
