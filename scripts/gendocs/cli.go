package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/leaplint/internal/cli"
	"github.com/leapstack-labs/leaplint/internal/cli/config"
)

// generateCLIDocs writes index.md and one page per leaplint command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rootCmd := cli.NewRootCmd()
	commands := visibleCommands(rootCmd)

	if err := generateCLIIndex(rootCmd, commands, outDir); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md")

	for _, cmd := range commands {
		if err := generateCommandPage(cmd, outDir); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
		log.Printf("  Generated %s.md", cmd.Name())
	}
	return nil
}

func visibleCommands(rootCmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range rootCmd.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "__complete" {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

func generateCLIIndex(rootCmd *cobra.Command, commands []*cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("CLI Reference", "Running leaplint from the command line")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("`leaplint` walks the given paths for `.js` and `.cjs` files, parses each one and " +
		"runs every active rule over its syntax tree in a single pass. Diagnostics, parse failures " +
		"and rule configuration problems are reported together at the end of the run.")

	w.Header(2, "Quick Start")
	w.CodeBlock("bash", `go install github.com/leapstack-labs/leaplint/cmd/leaplint@latest

# Lint the current directory with every rule at its default severity
leaplint lint

# Turn one rule into an error and pass it options
leaplint lint --rule 'one-var: [error, {var: always, let: never}]' src`)

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range commands {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Rule Settings")
	w.Paragraph("A rule setting is a level or a list whose first item is the level and whose " +
		"remaining items are the rule's options. Levels are `off`, `warn` and `error`, or `0`, `1` and `2`. " +
		"The same shape is accepted by `--rule` and by `lint.rules` in `.leaplint.yaml`:")
	w.CodeBlock("yaml", `lint:
  rules:
    one-var: [error, never]`)
	w.Paragraph("An unknown rule ID or an option the rule rejects does not stop the run. " +
		"It is reported as a configuration problem and the rule stays inactive; pass `--strict-config` to abort instead.")

	w.Header(2, "Global Options")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	w.Header(2, "Environment Variables")
	w.Paragraph(fmt.Sprintf("Top-level settings can be given as `%s<NAME>` variables. "+
		"They override the config file and are overridden by flags.", config.EnvPrefix))
	w.Table([]string{"Variable", "Setting"}, envRows())

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "No errors, no problems and warnings within `--max-warnings`"},
		{InlineCode("1"), "An error diagnostic, a parse or configuration problem, or too many warnings"},
		{InlineCode("2"), "The run could not start: bad flags, an unreadable config file or no files to lint"},
	})

	w.Header(2, "Editor Integration")
	w.Paragraph("Editors can lint an unsaved buffer by piping it to stdin. " +
		"Use `--format json` for positions an editor can map back to the buffer.")
	w.CodeBlock("bash", "leaplint lint --stdin --stdin-filename src/app.js --format json < buffer.js")

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// envRows lists the config fields that have an environment variable.
func envRows() [][]string {
	var rows [][]string
	for _, f := range getConfigSchema() {
		if strings.Contains(f.Name, ".") {
			continue
		}
		name := config.EnvPrefix + strings.ToUpper(f.Name)
		rows = append(rows, []string{InlineCode(name), InlineCode(f.Name)})
	}
	return rows
}

func generateCommandPage(cmd *cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, "leaplint "+cmd.Name())
	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	w.Paragraph(desc)

	w.Header(2, "Usage")
	w.CodeBlock("bash", usageLine(cmd))

	if len(cmd.Aliases) > 0 {
		w.Header(2, "Aliases")
		w.BulletList(codeList(cmd.Aliases))
	}

	if cmd.HasSubCommands() {
		w.Header(2, "Subcommands")
		var rows [][]string
		for _, sub := range cmd.Commands() {
			if sub.Hidden {
				continue
			}
			rows = append(rows, []string{InlineCode(sub.Name()), cleanDescription(sub.Short)})
		}
		w.Table([]string{"Subcommand", "Description"}, rows)
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}

	if cmd.HasInheritedFlags() {
		w.Paragraph("The [global options](/cli/#global-options) also apply.")
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}

	return os.WriteFile(filepath.Join(outDir, cmd.Name()+".md"), w.Bytes(), 0600)
}

func usageLine(cmd *cobra.Command) string {
	if cmd.HasSubCommands() {
		return fmt.Sprintf("leaplint %s <subcommand> [flags]", cmd.Name())
	}
	line := cmd.UseLine()
	if !strings.HasPrefix(line, "leaplint") {
		line = "leaplint " + line
	}
	return line
}

func codeList(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = InlineCode(s)
	}
	return out
}

// writeFlagsTable writes one row per visible flag.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			name = InlineCode("-"+f.Shorthand) + ", " + name
		}
		def := f.DefValue
		switch f.Value.Type() {
		case "bool":
			def = ""
		case "stringSlice", "stringArray":
			if def == "[]" {
				def = ""
			}
		}
		if def != "" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{name, def, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Flag", "Default", "Description"}, rows)
}

// dedent strips the indentation shared by every non-blank line.
func dedent(text string) string {
	lines := strings.Split(text, "\n")
	indent := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if n := len(line) - len(trimmed); indent < 0 || n < indent {
			indent = n
		}
	}
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
