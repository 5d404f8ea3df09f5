// Package output renders CLI results as styled text, markdown or JSON.
//
// The effective mode is chosen once per renderer: auto resolves to text on
// a terminal and to markdown when output is piped, so scripted callers and
// agents get plain, parseable output.
package output

import "strings"

// OutputMode selects how results are rendered.
type OutputMode string

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Mode parses a mode name. Unknown or empty names yield ModeAuto.
func Mode(s string) OutputMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return ModeText
	case "markdown", "md":
		return ModeMarkdown
	case "json":
		return ModeJSON
	default:
		return ModeAuto
	}
}

// Resolve turns ModeAuto into a concrete mode.
func (m OutputMode) Resolve(isTTY bool) OutputMode {
	if m != ModeAuto {
		return m
	}
	if isTTY {
		return ModeText
	}
	return ModeMarkdown
}
