package core

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// Severity
// =============================================================================

// Severity indicates the importance of a lint diagnostic.
type Severity int

// Severity levels for diagnostics.
const (
	// SeverityError indicates a critical issue that should be fixed.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
	// SeverityHint indicates a suggestion for improvement.
	SeverityHint
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name so JSON output stays readable.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityWarning and false if invalid.
// "warn" is accepted as an alias of "warning".
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, true
	case "warning", "warn":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	case "hint":
		return SeverityHint, true
	default:
		return SeverityWarning, false
	}
}

// RuleLevel is the activation level attached to a configured rule.
// It combines the on/off switch with the reported severity.
type RuleLevel struct {
	Enabled  bool
	Severity Severity
}

// ParseRuleLevel accepts the level notations used in rule configuration:
// the numbers 0, 1 and 2, the strings "off", "warn" and "error", and any
// severity name understood by ParseSeverity.
func ParseRuleLevel(v any) (RuleLevel, error) {
	switch lv := v.(type) {
	case int:
		return levelFromNumber(lv)
	case int64:
		return levelFromNumber(int(lv))
	case uint64:
		return levelFromNumber(int(lv))
	case float64:
		if lv != float64(int(lv)) {
			return RuleLevel{}, fmt.Errorf("%w: %v", ErrInvalidSeverity, lv)
		}
		return levelFromNumber(int(lv))
	case string:
		s := strings.ToLower(strings.TrimSpace(lv))
		if s == "off" {
			return RuleLevel{}, nil
		}
		if n, err := strconv.Atoi(s); err == nil {
			return levelFromNumber(n)
		}
		if sev, ok := ParseSeverity(s); ok {
			return RuleLevel{Enabled: true, Severity: sev}, nil
		}
	}
	return RuleLevel{}, fmt.Errorf("%w: %v", ErrInvalidSeverity, v)
}

func levelFromNumber(n int) (RuleLevel, error) {
	switch n {
	case 0:
		return RuleLevel{}, nil
	case 1:
		return RuleLevel{Enabled: true, Severity: SeverityWarning}, nil
	case 2:
		return RuleLevel{Enabled: true, Severity: SeverityError}, nil
	default:
		return RuleLevel{}, fmt.Errorf("%w: %d", ErrInvalidSeverity, n)
	}
}

// =============================================================================
// RuleInfo
// =============================================================================

// RuleInfo provides metadata about a lint rule for documentation/tooling.
// This is a DTO (Data Transfer Object) - it carries data without behavior.
type RuleInfo struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Group           string     `json:"group"`
	Description     string     `json:"description"`
	DefaultSeverity Severity   `json:"default_severity"`
	ConfigKeys      []string   `json:"config_keys,omitempty"`
	NodeTypes       []NodeType `json:"node_types,omitempty"`

	// Documentation fields
	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
	Fix         string `json:"fix,omitempty"`
}
