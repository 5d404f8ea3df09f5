package lint

// Collector accumulates the diagnostics and problems of one analyzed unit
// in the order they are produced.
type Collector struct {
	diagnostics []Diagnostic
	problems    []Problem
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends a diagnostic.
func (c *Collector) Add(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
}

// AddProblem appends a problem.
func (c *Collector) AddProblem(p Problem) {
	c.problems = append(c.problems, p)
}

// Diagnostics returns a copy of the collected diagnostics.
func (c *Collector) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), c.diagnostics...)
}

// Problems returns a copy of the collected problems.
func (c *Collector) Problems() []Problem {
	return append([]Problem(nil), c.problems...)
}

// Len returns the number of collected diagnostics.
func (c *Collector) Len() int {
	return len(c.diagnostics)
}
