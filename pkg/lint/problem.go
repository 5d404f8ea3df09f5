package lint

import (
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/token"
)

// ProblemKind separates problems with the run itself from rule violations.
type ProblemKind string

// Problem kinds.
const (
	ProblemConfig ProblemKind = "config" // a rule's configuration was rejected
	ProblemCrash  ProblemKind = "crash"  // a rule failed while analyzing a unit
	ProblemParse  ProblemKind = "parse"  // the unit could not be parsed
)

// Problem is a failure of the lint run. Problems are never mixed into the
// diagnostics a rule reports.
type Problem struct {
	Kind     ProblemKind
	RuleID   string
	Filename string
	Pos      token.Position
	Message  string
	Err      error
}

func (p Problem) String() string {
	loc := p.Filename
	if p.Pos.IsValid() {
		if loc != "" {
			loc += ":"
		}
		loc += p.Pos.String()
	}
	switch {
	case loc != "" && p.RuleID != "":
		return fmt.Sprintf("%s: %s [%s]: %s", loc, p.Kind, p.RuleID, p.Message)
	case loc != "":
		return fmt.Sprintf("%s: %s: %s", loc, p.Kind, p.Message)
	case p.RuleID != "":
		return fmt.Sprintf("%s [%s]: %s", p.Kind, p.RuleID, p.Message)
	default:
		return fmt.Sprintf("%s: %s", p.Kind, p.Message)
	}
}
