package output

// LintOutput is the JSON document written by `leaplint lint --format json`.
type LintOutput struct {
	Summary  LintSummary      `json:"summary"`
	Files    []LintFileResult `json:"files"`
	Problems []LintProblem    `json:"problems,omitempty"`
	Timing   []RuleTiming     `json:"timing,omitempty"`
}

// LintSummary counts diagnostics by severity.
type LintSummary struct {
	FilesAnalyzed int `json:"files_analyzed"`
	TotalIssues   int `json:"total_issues"`
	Errors        int `json:"errors"`
	Warnings      int `json:"warnings"`
	Info          int `json:"info"`
	Hints         int `json:"hints"`
	Problems      int `json:"problems"`
}

// LintFileResult holds the diagnostics of one file.
type LintFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []LintDiagnostic `json:"diagnostics"`
}

// LintDiagnostic is one reported violation.
type LintDiagnostic struct {
	RuleID           string `json:"rule_id"`
	Severity         string `json:"severity"`
	Message          string `json:"message"`
	Line             int    `json:"line"`
	Column           int    `json:"column"`
	EndLine          int    `json:"end_line,omitempty"`
	EndColumn        int    `json:"end_column,omitempty"`
	NodeType         string `json:"node_type,omitempty"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

// LintProblem is a configuration, crash or parse problem.
type LintProblem struct {
	Kind    string `json:"kind"`
	RuleID  string `json:"rule_id,omitempty"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Message string `json:"message"`
}

// RuleTiming is one row of the --timing report.
type RuleTiming struct {
	RuleID   string  `json:"rule_id"`
	Calls    uint64  `json:"calls"`
	TotalMS  float64 `json:"total_ms"`
	Relative float64 `json:"relative"`
}
