package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by text output.
type Styles struct {
	Header1   lipgloss.Style
	Header2   lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Success   lipgloss.Style
	ModelPath lipgloss.Style
}

// newStyles builds styles bound to r so colours follow r's profile.
func newStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Underline(true),
		Header2:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Bold:      r.NewStyle().Bold(true),
		Muted:     r.NewStyle().Foreground(lipgloss.Color("8")),
		Error:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Warning:   r.NewStyle().Foreground(lipgloss.Color("11")),
		Info:      r.NewStyle().Foreground(lipgloss.Color("12")),
		Success:   r.NewStyle().Foreground(lipgloss.Color("10")),
		ModelPath: r.NewStyle().Underline(true),
	}
}
