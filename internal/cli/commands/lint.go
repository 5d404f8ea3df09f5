package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leaplint/internal/cli/config"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/internal/discover"
	"github.com/leapstack-labs/leaplint/internal/metrics"
	"github.com/leapstack-labs/leaplint/internal/watch"
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	_ "github.com/leapstack-labs/leaplint/pkg/lint/rules" // register rules
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format        string   // Output format: text, markdown, json
	Rules         []string // Inline rule settings, e.g. "one-var: [error, never]"
	Disable       []string // Rule IDs to disable
	Only          bool     // Run only configured rules
	Severity      string   // Minimum severity: error, warning, info, hint
	MaxWarnings   int      // Fail when warnings exceed this count; -1 disables
	Jobs          int      // Files linted in parallel; 0 means GOMAXPROCS
	StrictConfig  bool     // Abort before linting on configuration problems
	Timing        bool     // Print per-rule handler timing
	MetricsFile   string   // Write Prometheus metrics to this file
	Watch         bool     // Re-lint on file changes
	Ignore        []string // Ignore patterns
	Stdin         bool     // Lint source read from stdin
	StdinFilename string   // Filename reported for stdin source
}

// ErrLintFailed is returned when the run found errors, problems or too many
// warnings.
var ErrLintFailed = errors.New("lint issues found")

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Run lint rules on JavaScript files",
		Long: `Analyze JavaScript files for potential issues.

Every registered rule runs unless it is disabled. Rules are configured in
.leaplint.yaml under lint.rules, using the same shape as an eslintrc file:
a level (off, warn, error, 0, 1, 2) or a list of level and options.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint the current directory
  leaplint lint

  # Lint specific paths
  leaplint lint src lib/util.js

  # Configure a rule inline
  leaplint lint --rule 'one-var: [error, never]'

  # Only run rules named on the command line or in the config file
  leaplint lint --only --rule 'one-var: error'

  # Output as JSON
  leaplint lint --format json

  # Lint source from an editor buffer
  cat app.js | leaplint lint --stdin --stdin-filename app.js

  # Show which rules are slow
  leaplint lint --timing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringArrayVar(&opts.Rules, "rule", nil, "Rule setting as YAML, e.g. 'one-var: [error, never]'")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().BoolVar(&opts.Only, "only", false, "Run only rules that are explicitly configured")
	cmd.Flags().StringVar(&opts.Severity, "severity", "warning", "Minimum severity: error, warning, info, hint")
	cmd.Flags().IntVar(&opts.MaxWarnings, "max-warnings", config.DefaultMaxWarnings, "Number of warnings to trigger a failing exit (-1 for no limit)")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "Files linted in parallel (0 = number of CPUs)")
	cmd.Flags().BoolVar(&opts.StrictConfig, "strict-config", false, "Abort when the rule configuration has problems")
	cmd.Flags().BoolVar(&opts.Timing, "timing", false, "Print time spent in each rule")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run on file changes")
	cmd.Flags().StringSliceVar(&opts.Ignore, "ignore", nil, "Ignore files matching these patterns")
	cmd.Flags().BoolVar(&opts.Stdin, "stdin", false, "Lint source read from stdin")
	cmd.Flags().StringVar(&opts.StdinFilename, "stdin-filename", "<stdin>", "Filename used for stdin source")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("severity", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"error", "warning", "info", "hint"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// lintRun holds what one lint pass needs.
type lintRun struct {
	opts      *LintOptions
	cfg       *config.Config
	r         *output.Renderer
	linter    *lint.Linter
	collector *metrics.Collector
	severity  core.Severity
	jobs      int
	maxWarn   int
	ignore    []string
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	cmdCtx := NewCommandContext(cmd, opts.Format)
	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger

	if opts.Stdin && opts.Watch {
		return fmt.Errorf("--stdin cannot be combined with --watch")
	}

	severity, ok := core.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid --severity %q: expected error, warning, info or hint", opts.Severity)
	}

	if cfg.Docs != nil && cfg.Docs.BaseURL != "" {
		lint.SetDocsBaseURL(cfg.Docs.BaseURL)
	}

	lintCfg, err := buildLintConfig(cfg, opts)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector(nil)
	linterOpts := []lint.Option{lint.WithLogger(logger)}
	if opts.Timing || opts.MetricsFile != "" {
		linterOpts = append(linterOpts, lint.WithRecorder(collector))
	}
	linter := lint.New(lintCfg, linterOpts...)

	run := &lintRun{
		opts:      opts,
		cfg:       cfg,
		r:         cmdCtx.Renderer,
		linter:    linter,
		collector: collector,
		severity:  severity,
		jobs:      resolveJobs(cmd, cfg, opts),
		maxWarn:   maxWarnings(cmd, cfg, opts),
		ignore:    append(append([]string{}, cfg.Ignore...), opts.Ignore...),
	}

	if opts.StrictConfig && len(linter.ConfigProblems()) > 0 {
		renderLintResults(run.r, &lintReport{configProblems: linter.ConfigProblems()}, nil)
		return fmt.Errorf("invalid configuration: %d problems", len(linter.ConfigProblems()))
	}

	var report *lintReport
	if opts.Stdin {
		report, err = run.lintStdin(cmd.InOrStdin())
	} else {
		var files []string
		files, err = discover.Files(args, discover.Options{Include: cfg.Include, Ignore: run.ignore})
		if err != nil {
			return err
		}
		if len(files) == 0 && !opts.Watch {
			return discover.ErrNoFiles
		}
		report, err = run.lintFiles(cmd.Context(), files)
	}
	if err != nil {
		return err
	}

	failErr := run.finish(report, true)

	if opts.Watch {
		return run.watch(cmd.Context(), args)
	}
	return failErr
}

// buildLintConfig merges the file configuration with command-line overrides.
func buildLintConfig(cfg *config.Config, opts *LintOptions) (*lint.Config, error) {
	lintCfg := lint.ConfigFromCore(cfg.GetLintConfig())

	for _, spec := range opts.Rules {
		settings, err := parseRuleFlag(spec)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(settings))
		for id := range settings {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			// Invalid settings are kept on lintCfg and surface as config problems.
			_ = lintCfg.SetRule(id, settings[id])
		}
	}

	for _, id := range opts.Disable {
		if id = strings.TrimSpace(id); id != "" {
			lintCfg.Disable(id)
		}
	}

	if opts.Only {
		lintCfg.Exclusive()
	}
	return lintCfg, nil
}

// parseRuleFlag decodes a --rule value such as "one-var: [error, never]".
func parseRuleFlag(spec string) (map[string]any, error) {
	var settings map[string]any
	if err := yaml.Unmarshal([]byte(spec), &settings); err != nil {
		return nil, fmt.Errorf("invalid --rule %q: %w", spec, err)
	}
	if len(settings) == 0 {
		return nil, fmt.Errorf("invalid --rule %q: expected 'rule-id: setting'", spec)
	}
	return settings, nil
}

func resolveJobs(cmd *cobra.Command, cfg *config.Config, opts *LintOptions) int {
	jobs := cfg.Jobs
	if cmd.Flags().Changed("jobs") {
		jobs = opts.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return jobs
}

func maxWarnings(cmd *cobra.Command, cfg *config.Config, opts *LintOptions) int {
	if cmd.Flags().Changed("max-warnings") {
		return opts.MaxWarnings
	}
	return cfg.MaxWarnings
}

// lintReport collects the results of one pass.
type lintReport struct {
	results        []*lint.Result
	configProblems []lint.Problem
	filesAnalyzed  int
}

func (run *lintRun) lintFiles(ctx context.Context, files []string) (*lintReport, error) {
	results := make([]*lint.Result, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(run.jobs)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			res := run.linter.LintSource(file, string(src))
			run.collector.RecordFile(res)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &lintReport{
		results:        results,
		configProblems: run.linter.ConfigProblems(),
		filesAnalyzed:  len(files),
	}, nil
}

func (run *lintRun) lintStdin(in io.Reader) (*lintReport, error) {
	src, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	res := run.linter.LintSource(run.opts.StdinFilename, string(src))
	run.collector.RecordFile(res)
	return &lintReport{
		results:        []*lint.Result{res},
		configProblems: run.linter.ConfigProblems(),
		filesAnalyzed:  1,
	}, nil
}

// finish renders report, writes metrics and decides the outcome.
func (run *lintRun) finish(report *lintReport, withTiming bool) error {
	var timing []output.RuleTiming
	if run.opts.Timing && withTiming {
		timings, err := run.collector.Timings()
		if err != nil {
			return err
		}
		timing = ruleTimings(timings)
	}

	filtered := filterBySeverity(report.results, run.severity)
	summary := renderLintResults(run.r, &lintReport{
		results:        filtered,
		configProblems: report.configProblems,
		filesAnalyzed:  report.filesAnalyzed,
	}, timing)

	if run.opts.MetricsFile != "" {
		if err := run.collector.WriteTextfile(run.opts.MetricsFile); err != nil {
			return err
		}
	}

	if summary.Errors > 0 || summary.Problems > 0 {
		return ErrLintFailed
	}
	if limit := run.maxWarn; limit >= 0 && summary.Warnings > limit {
		return fmt.Errorf("%w: too many warnings (%d, maximum %d)", ErrLintFailed, summary.Warnings, limit)
	}
	return nil
}

// watch re-lints changed files until the command context is cancelled.
func (run *lintRun) watch(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	w, err := watch.New(paths)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()
	w.Logger = config.GetLogger(ctx)

	run.r.Errorf("Watching for changes...\n")
	err = w.Run(ctx, func(ctx context.Context, changed []string) error {
		var files []string
		for _, f := range changed {
			if _, statErr := os.Stat(f); statErr == nil && !discover.Match(run.ignore, f) {
				files = append(files, f)
			}
		}
		if len(files) == 0 {
			return nil
		}
		report, err := run.lintFiles(ctx, files)
		if err != nil {
			return err
		}
		_ = run.finish(report, false)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func ruleTimings(timings []metrics.RuleTiming) []output.RuleTiming {
	var total float64
	for _, t := range timings {
		total += t.Total.Seconds()
	}
	rows := make([]output.RuleTiming, 0, len(timings))
	for _, t := range timings {
		row := output.RuleTiming{
			RuleID:  t.RuleID,
			Calls:   t.Calls,
			TotalMS: float64(t.Total.Microseconds()) / 1000,
		}
		if total > 0 {
			row.Relative = t.Total.Seconds() / total * 100
		}
		rows = append(rows, row)
	}
	return rows
}

func filterBySeverity(results []*lint.Result, threshold core.Severity) []*lint.Result {
	filtered := make([]*lint.Result, 0, len(results))
	for _, r := range results {
		var diags []lint.Diagnostic
		for _, d := range r.Diagnostics {
			if d.Severity <= threshold {
				diags = append(diags, d)
			}
		}
		filtered = append(filtered, &lint.Result{
			Filename:    r.Filename,
			Diagnostics: diags,
			Problems:    r.Problems,
		})
	}
	return filtered
}

func summarize(report *lintReport) output.LintSummary {
	summary := output.LintSummary{
		FilesAnalyzed: report.filesAnalyzed,
		Problems:      len(report.configProblems),
	}
	for _, res := range report.results {
		summary.TotalIssues += len(res.Diagnostics)
		summary.Problems += len(res.Problems)
		for _, d := range res.Diagnostics {
			switch d.Severity {
			case core.SeverityError:
				summary.Errors++
			case core.SeverityWarning:
				summary.Warnings++
			case core.SeverityInfo:
				summary.Info++
			case core.SeverityHint:
				summary.Hints++
			}
		}
	}
	return summary
}

func toLintProblem(p lint.Problem) output.LintProblem {
	return output.LintProblem{
		Kind:    string(p.Kind),
		RuleID:  p.RuleID,
		File:    p.Filename,
		Line:    p.Pos.Line,
		Column:  p.Pos.Column,
		Message: p.Message,
	}
}

func allProblems(report *lintReport) []lint.Problem {
	problems := append([]lint.Problem{}, report.configProblems...)
	for _, res := range report.results {
		problems = append(problems, res.Problems...)
	}
	return problems
}

func renderLintResults(r *output.Renderer, report *lintReport, timing []output.RuleTiming) output.LintSummary {
	summary := summarize(report)
	problems := allProblems(report)

	if r.EffectiveMode() == output.ModeJSON {
		jsonOutput := output.LintOutput{
			Summary: summary,
			Files:   []output.LintFileResult{},
			Timing:  timing,
		}
		for _, res := range report.results {
			if len(res.Diagnostics) == 0 {
				continue
			}
			fileResult := output.LintFileResult{Path: res.Filename}
			for _, d := range res.Diagnostics {
				fileResult.Diagnostics = append(fileResult.Diagnostics, output.LintDiagnostic{
					RuleID:           d.RuleID,
					Severity:         d.Severity.String(),
					Message:          d.Message,
					Line:             d.Pos.Line,
					Column:           d.Pos.Column,
					EndLine:          d.EndPos.Line,
					EndColumn:        d.EndPos.Column,
					NodeType:         string(d.NodeType),
					DocumentationURL: d.DocumentationURL,
				})
			}
			jsonOutput.Files = append(jsonOutput.Files, fileResult)
		}
		for _, p := range problems {
			jsonOutput.Problems = append(jsonOutput.Problems, toLintProblem(p))
		}
		_ = r.JSON(jsonOutput)
		return summary
	}

	if len(problems) > 0 {
		r.Println(r.Styles().Error.Render("Problems"))
		for _, p := range problems {
			r.Printf("  %s\n", p.String())
		}
		r.Println("")
	}

	for _, res := range report.results {
		if len(res.Diagnostics) == 0 {
			continue
		}
		r.Println(r.Styles().ModelPath.Render(res.Filename))
		for _, d := range res.Diagnostics {
			sevStyle := severityStyle(r, d.Severity)
			r.Printf("  %s  %s  %s  %s\n",
				r.Styles().Muted.Render(fmt.Sprintf("%-5s", d.Pos.String())),
				sevStyle,
				r.Styles().Bold.Render(d.RuleID),
				d.Message,
			)
		}
		r.Println("")
	}

	if len(timing) > 0 {
		rows := make([][]any, 0, len(timing))
		for _, t := range timing {
			rows = append(rows, []any{t.RuleID, t.Calls, fmt.Sprintf("%.3f", t.TotalMS), fmt.Sprintf("%.1f%%", t.Relative)})
		}
		r.Table([]string{"Rule", "Calls", "Time (ms)", "Relative"}, rows)
		r.Println("")
	}

	if summary.TotalIssues == 0 && summary.Problems == 0 {
		r.Success(fmt.Sprintf("No lint issues found in %d files", summary.FilesAnalyzed))
		return summary
	}

	summaryParts := []string{fmt.Sprintf("%d issues", summary.TotalIssues)}
	if summary.Errors > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Info > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d info", summary.Info))
	}
	if summary.Hints > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d hints", summary.Hints))
	}
	if summary.Problems > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d problems", summary.Problems))
	}
	r.Printf("Summary: %s in %d files\n", strings.Join(summaryParts, ", "), summary.FilesAnalyzed)

	return summary
}

func severityStyle(r *output.Renderer, sev core.Severity) string {
	switch sev {
	case core.SeverityError:
		return r.Styles().Error.Render("error  ")
	case core.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	case core.SeverityInfo:
		return r.Styles().Info.Render("info   ")
	case core.SeverityHint:
		return r.Styles().Muted.Render("hint   ")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}
