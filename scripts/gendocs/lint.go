package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	_ "github.com/leapstack-labs/leaplint/pkg/lint/rules"
)

// groupDescriptions provides human-readable descriptions for rule groups.
var groupDescriptions = map[string]string{
	"possible-errors": "Rules about code that is likely wrong.",
	"best-practices":  "Rules about constructs that are legal but error-prone.",
	"style":           "Rules about declaration layout and consistency.",
}

// generateLintDocs generates all lint documentation files.
func generateLintDocs(outDir string) error {
	log.Printf("Generating lint docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rules := lint.GetAllRules()

	if err := generateLintIndex(outDir, len(rules)); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	if err := generateRulesPage(outDir, rules); err != nil {
		return err
	}
	log.Printf("  Generated rules.md")

	return nil
}

// generateLintIndex generates the main linting overview page.
func generateLintIndex(outDir string, count int) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Linting", "JavaScript lint rules for leaplint")
	w.GeneratedMarker()

	w.Header(1, "Linting")
	w.Paragraph(fmt.Sprintf("leaplint ships **%d rules**. Each file is parsed once and walked once; "+
		"every enabled rule receives enter and exit events for the node types it subscribes to.", count))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Aliases", "Description"},
		[][]string{
			{InlineCode("error"), InlineCode("2"), "Fails the run"},
			{InlineCode("warning"), InlineCode("warn") + ", " + InlineCode("1"), "Reported; fails only past --max-warnings"},
			{InlineCode("off"), InlineCode("0"), "Rule does not run"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph("Rules are configured in `.leaplint.yaml` the same way as in an eslintrc file:")
	w.CodeBlock("yaml", `lint:
  rules:
    one-var: off                    # disable rule
    other-rule: warn                # default options, warning severity
    third-rule: [error, never]      # severity followed by options`)

	w.Header(2, "Problems")
	w.Paragraph("Configuration errors, rule crashes and parse errors are reported as problems, " +
		"separately from violations. A crashing rule stops for the rest of that file; other rules keep running.")

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateRulesPage generates the rules documentation page.
func generateRulesPage(outDir string, rules []lint.Rule) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Lint Rules", "JavaScript lint rules for leaplint")
	w.GeneratedMarker()

	w.Header(1, "Lint Rules")

	grouped := groupRulesByGroup(rules)
	groups := make([]string, 0, len(grouped))
	for group := range grouped {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	for _, group := range groups {
		// Write group header with anchor
		w.Line(fmt.Sprintf("## %s {#%s}", output.Title(group), group))
		w.Newline()

		if desc, ok := groupDescriptions[group]; ok {
			w.Paragraph(desc)
		}

		for _, rule := range grouped[group] {
			writeRuleDoc(w, rule)
		}
	}

	return os.WriteFile(filepath.Join(outDir, "rules.md"), w.Bytes(), 0600)
}

// groupRulesByGroup organizes rules by their Group field.
func groupRulesByGroup(rules []lint.Rule) map[string][]lint.Rule {
	grouped := make(map[string][]lint.Rule)
	for _, r := range rules {
		grouped[r.Group()] = append(grouped[r.Group()], r)
	}
	// Sort rules within each group by ID
	for group := range grouped {
		sort.Slice(grouped[group], func(i, j int) bool {
			return grouped[group][i].ID() < grouped[group][j].ID()
		})
	}
	return grouped
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule lint.Rule) {
	// Rule header with anchor: ### one-var {#one-var}
	w.Line(fmt.Sprintf("### %s {#%s}", rule.ID(), rule.ID()))
	w.Newline()

	w.Line(fmt.Sprintf("**Severity:** %s", InlineCode(rule.DefaultSeverity().String())))
	w.Newline()

	w.Paragraph(cleanDescription(rule.Description()))

	if rationale := rule.Rationale(); rationale != "" {
		w.Header(4, "Why This Matters")
		w.Paragraph(strings.TrimSpace(rationale))
	}

	if badExample := rule.BadExample(); badExample != "" {
		w.Header(4, "Bad")
		w.CodeBlock("js", badExample)
	}

	if goodExample := rule.GoodExample(); goodExample != "" {
		w.Header(4, "Good")
		w.CodeBlock("js", goodExample)
	}

	if fix := rule.Fix(); fix != "" {
		w.Header(4, "How to Fix")
		w.Paragraph(strings.TrimSpace(fix))
	}

	if configKeys := rule.ConfigKeys(); len(configKeys) > 0 {
		w.Header(4, "Configuration")
		w.Paragraph(fmt.Sprintf("This rule accepts the following configuration options: %s",
			InlineCode(strings.Join(configKeys, ", "))))
	}

	// Horizontal rule between rules for readability
	w.Line("---")
	w.Newline()
}
