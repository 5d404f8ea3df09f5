// Package metrics records lint run statistics in a Prometheus registry.
//
// A Collector implements lint.Recorder, so passing it to lint.WithRecorder
// enables per-rule handler timing. The same registry backs the --timing
// report and the --metrics-file textfile export.
//
// Metrics:
//   - leaplint_rule_handler_duration_seconds: handler run time by rule
//   - leaplint_diagnostics_total: reported violations by rule and severity
//   - leaplint_problems_total: run problems by kind
//   - leaplint_files_total: linted files by status
package metrics

import (
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

const namespace = "leaplint"

// File statuses for RecordFile.
const (
	FileClean    = "clean"
	FileFailed   = "failed"
	FileProblems = "problems"
)

// Collector owns the lint metrics and the registry they are registered in.
type Collector struct {
	registry *prometheus.Registry

	handlerDuration *prometheus.HistogramVec
	diagnostics     *prometheus.CounterVec
	problems        *prometheus.CounterVec
	files           *prometheus.CounterVec
}

var _ lint.Recorder = (*Collector)(nil)

// NewCollector creates a collector and registers its metrics. If registry is
// nil a fresh registry is used.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		handlerDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rule_handler_duration_seconds",
				Help:      "Time spent in rule handlers in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10), // 1µs to 262ms
			},
			[]string{"rule_id"},
		),
		diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "diagnostics_total",
				Help:      "Total number of reported violations",
			},
			[]string{"rule_id", "severity"},
		),
		problems: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "problems_total",
				Help:      "Total number of configuration, crash and parse problems",
			},
			[]string{"kind"},
		),
		files: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_total",
				Help:      "Total number of linted files",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(c.handlerDuration, c.diagnostics, c.problems, c.files)
	return c
}

// Registry returns the registry the metrics live in.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveHandler records one handler invocation.
func (c *Collector) ObserveHandler(ruleID string, d time.Duration) {
	c.handlerDuration.WithLabelValues(ruleID).Observe(d.Seconds())
}

// ObserveDiagnostic counts one reported violation.
func (c *Collector) ObserveDiagnostic(ruleID string, sev core.Severity) {
	c.diagnostics.WithLabelValues(ruleID, sev.String()).Inc()
}

// ObserveProblem counts one run problem.
func (c *Collector) ObserveProblem(kind lint.ProblemKind) {
	c.problems.WithLabelValues(string(kind)).Inc()
}

// RecordFile counts a linted file by outcome.
func (c *Collector) RecordFile(res *lint.Result) {
	status := FileClean
	switch {
	case res.HasProblems():
		status = FileProblems
	case len(res.Diagnostics) > 0:
		status = FileFailed
	}
	c.files.WithLabelValues(status).Inc()
}

// RuleTiming is the accumulated handler time of one rule.
type RuleTiming struct {
	RuleID string
	Calls  uint64
	Total  time.Duration
}

// Timings returns per-rule handler totals, slowest first.
func (c *Collector) Timings() ([]RuleTiming, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	var timings []RuleTiming
	for _, mf := range families {
		if mf.GetName() != namespace+"_rule_handler_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			h := m.GetHistogram()
			if h == nil {
				continue
			}
			timings = append(timings, RuleTiming{
				RuleID: labelValue(m, "rule_id"),
				Calls:  h.GetSampleCount(),
				Total:  time.Duration(h.GetSampleSum() * float64(time.Second)),
			})
		}
	}

	sort.SliceStable(timings, func(i, j int) bool {
		if timings[i].Total != timings[j].Total {
			return timings[i].Total > timings[j].Total
		}
		return timings[i].RuleID < timings[j].RuleID
	})
	return timings, nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

// WriteTextfile writes the registry in the Prometheus text format, for the
// node_exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
