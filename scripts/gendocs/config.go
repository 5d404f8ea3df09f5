package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
}

// getConfigSchema returns the .leaplint.yaml fields.
// This mirrors internal/cli/config/types.go Config.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		{Name: "output", Type: "string", Default: "auto", Description: "Output format: auto, text, markdown, json"},
		{Name: "log_level", Type: "string", Default: "warn", Description: "Log level: debug, info, warn, error"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Verbose output (debug logging)"},
		{Name: "include", Type: "[]string", Description: "Only lint files matching these patterns"},
		{Name: "ignore", Type: "[]string", Description: "Skip files and directories matching these patterns"},
		{Name: "jobs", Type: "int", Default: "0", Description: "Files linted in parallel (0 = number of CPUs)"},
		{Name: "max_warnings", Type: "int", Default: "-1", Description: "Fail when warnings exceed this count (-1 = no limit)"},
		{Name: "lint.rules", Type: "map[string]any", Description: "Rule activations: a level or [level, options...]"},
		{Name: "lint.disabled", Type: "[]string", Description: "Rule IDs to disable"},
		{Name: "lint.severity", Type: "map[string]string", Description: "Severity overrides by rule ID"},
		{Name: "docs.base_url", Type: "string", Default: "https://leaplint.dev/docs/rules", Description: "Base URL of rule documentation links"},
	}
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "leaplint configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("leaplint reads `.leaplint.yaml`, `.leaplint.yml` or `leaplint.yaml`, searching upward from the working directory. " +
		"Every field can also be set with a `LEAPLINT_` environment variable; command-line flags take precedence over both.")

	var rows [][]string
	for _, f := range getConfigSchema() {
		defVal := f.Default
		if defVal == "" {
			defVal = "-"
		}
		rows = append(rows, []string{InlineCode(f.Name), f.Type, InlineCode(defVal), f.Description})
	}
	w.Table([]string{"Field", "Type", "Default", "Description"}, rows)

	w.Header(2, "Example")
	w.CodeBlock("yaml", `ignore:
  - "dist/**"
lint:
  rules:
    one-var: [error, {var: always, let: never}]
  severity:
    one-var: warning`)

	if err := os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated configuration.md")
	return nil
}
