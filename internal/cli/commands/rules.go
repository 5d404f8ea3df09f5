package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	_ "github.com/leapstack-labs/leaplint/pkg/lint/rules" // register rules
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Verbose bool   // Show full documentation
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List all available lint rules with their documentation.

Rules are organized by group (e.g., style, possible-errors).
Use --verbose to see full documentation including examples and fix guidance.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  leaplint rules

  # Show details for a specific rule
  leaplint rules one-var

  # List rules in the style group
  leaplint rules --group style

  # Show full documentation
  leaplint rules -V

  # Output as JSON
  leaplint rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	r := NewCommandContext(cmd, opts.Format).Renderer

	// Get all rules
	rules := lint.AllRules()

	// Apply filters
	rules = filterRulesByOptions(rules, opts)

	// Sort by group, then ID
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Group != rules[j].Group {
			return rules[i].Group < rules[j].Group
		}
		return rules[i].ID < rules[j].ID
	})

	mode := r.EffectiveMode()
	switch mode {
	case output.ModeJSON:
		return listRulesJSON(r, rules)
	case output.ModeMarkdown:
		return listRulesMarkdown(r, rules, opts.Verbose)
	default:
		return listRulesText(r, rules, opts.Verbose)
	}
}

func filterRulesByOptions(rules []core.RuleInfo, opts *RulesOptions) []core.RuleInfo {
	if opts.Group == "" {
		return rules
	}

	var filtered []core.RuleInfo
	for _, r := range rules {
		if r.Group == opts.Group {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	r := NewCommandContext(cmd, opts.Format).Renderer

	// Find the rule
	rules := lint.AllRules()
	var rule *core.RuleInfo
	for _, ri := range rules {
		if ri.ID == ruleID {
			rule = &ri
			break
		}
	}

	if rule == nil {
		return fmt.Errorf("rule %q not found", ruleID)
	}

	mode := r.EffectiveMode()
	switch mode {
	case output.ModeJSON:
		return showRuleJSON(r, rule)
	case output.ModeMarkdown:
		return showRuleMarkdown(r, rule)
	default:
		return showRuleText(r, rule)
	}
}

// listRulesText outputs rules in styled text format.
func listRulesText(r *output.Renderer, rules []core.RuleInfo, verbose bool) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Lint Rules (%d)", len(rules))))
	r.Println("")

	currentGroup := ""

	for _, rule := range rules {
		// Group header
		if rule.Group != currentGroup {
			currentGroup = rule.Group
			r.Println(styles.Header2.Render(output.Title(currentGroup)))
		}

		// Rule line
		severityStyle := getSeverityStyle(styles, rule.DefaultSeverity)
		r.Printf("  %s  %s - %s\n",
			styles.Bold.Render(rule.ID),
			rule.Description,
			severityStyle.Render(rule.DefaultSeverity.String()),
		)

		if verbose {
			if rule.Rationale != "" {
				r.Println(styles.Muted.Render("      Why: " + truncateOneLine(rule.Rationale, 80)))
			}
			if len(rule.ConfigKeys) > 0 {
				r.Println(styles.Muted.Render("      Options: " + strings.Join(rule.ConfigKeys, ", ")))
			}
			r.Println("")
		}
	}

	r.Println("")
	r.Println(styles.Muted.Render("Use 'leaplint rules <rule-id>' for detailed documentation"))
	r.Println("")

	return nil
}

// listRulesMarkdown outputs rules in markdown format.
func listRulesMarkdown(r *output.Renderer, rules []core.RuleInfo, verbose bool) error {
	r.Println(output.FormatHeader(1, "Lint Rules"))
	r.Println("")

	currentGroup := ""

	for _, rule := range rules {
		if rule.Group != currentGroup {
			currentGroup = rule.Group
			r.Println(output.FormatHeader(2, output.Title(currentGroup)))
			r.Println("")
		}

		r.Printf("- **%s** - %s (`%s`)\n", rule.ID, rule.Description, rule.DefaultSeverity.String())
		if verbose && rule.Rationale != "" {
			r.Println("  > " + rule.Rationale)
		}
	}

	r.Println("")
	return nil
}

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Rules []core.RuleInfo `json:"rules"`
	Count struct {
		ByGroup map[string]int `json:"by_group"`
		Total   int            `json:"total"`
	} `json:"count"`
}

// listRulesJSON outputs rules in JSON format.
func listRulesJSON(r *output.Renderer, rules []core.RuleInfo) error {
	jsonOutput := RulesJSONOutput{
		Rules: rules,
	}
	jsonOutput.Count.ByGroup = make(map[string]int)
	for _, rule := range rules {
		jsonOutput.Count.ByGroup[rule.Group]++
	}
	jsonOutput.Count.Total = len(rules)

	return r.JSON(jsonOutput)
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, rule *core.RuleInfo) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(rule.ID))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Name"), rule.Name)
	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), rule.Group)
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), rule.DefaultSeverity.String())
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println(styles.Bold.Render("Bad Example"))
		for _, line := range strings.Split(rule.BadExample, "\n") {
			r.Println(styles.Muted.Render("  " + line))
		}
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println(styles.Bold.Render("Good Example"))
		for _, line := range strings.Split(rule.GoodExample, "\n") {
			r.Println(styles.Success.Render("  " + line))
		}
		r.Println("")
	}

	if rule.Fix != "" {
		r.Println(styles.Bold.Render("How to Fix"))
		r.Println("  " + rule.Fix)
		r.Println("")
	}

	if len(rule.ConfigKeys) > 0 {
		r.Println(styles.Bold.Render("Configuration"))
		r.Printf("  Options: %s\n", strings.Join(rule.ConfigKeys, ", "))
		r.Println("")
	}

	r.Printf("  %s: %s\n", styles.Bold.Render("Docs"), lint.BuildDocURL(rule.ID))

	return nil
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, rule *core.RuleInfo) error {
	r.Printf("# %s - %s\n\n", rule.ID, rule.Name)
	r.Printf("**Group:** %s | **Severity:** `%s`\n\n", rule.Group, rule.DefaultSeverity.String())
	r.Println(rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println("## Why This Matters")
		r.Println("")
		r.Println(rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println("## Bad Example")
		r.Println("")
		r.Println("```js")
		r.Println(rule.BadExample)
		r.Println("```")
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println("## Good Example")
		r.Println("")
		r.Println("```js")
		r.Println(rule.GoodExample)
		r.Println("```")
		r.Println("")
	}

	if rule.Fix != "" {
		r.Println("## How to Fix")
		r.Println("")
		r.Println(rule.Fix)
		r.Println("")
	}

	if len(rule.ConfigKeys) > 0 {
		r.Println("## Configuration")
		r.Println("")
		r.Printf("Options: `%s`\n", strings.Join(rule.ConfigKeys, "`, `"))
		r.Println("")
	}

	r.Println(output.FormatKeyValue("Docs", lint.BuildDocURL(rule.ID)))
	return nil
}

// showRuleJSON displays detailed rule info in JSON format.
func showRuleJSON(r *output.Renderer, rule *core.RuleInfo) error {
	return r.JSON(rule)
}

// Helper functions

func getSeverityStyle(styles *output.Styles, sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return styles.Error
	case core.SeverityWarning:
		return styles.Warning
	case core.SeverityInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}

func truncateOneLine(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
