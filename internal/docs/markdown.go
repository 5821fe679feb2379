package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MarkdownGenerator generates Markdown reference pages
type MarkdownGenerator struct {
	config *Config
}

// NewMarkdownGenerator creates a new Markdown generator
func NewMarkdownGenerator(config *Config) *MarkdownGenerator {
	return &MarkdownGenerator{
		config: config,
	}
}

// Generate writes the index plus one page per rule
func (g *MarkdownGenerator) Generate(ref *Reference) error {
	outputDir := filepath.Join(g.config.OutputDir, "markdown")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := g.generateIndex(ref, outputDir); err != nil {
		return err
	}

	for _, rule := range ref.Rules {
		if err := g.generateRulePage(rule, outputDir); err != nil {
			return err
		}
	}

	return nil
}

// generateIndex generates the index/README file
func (g *MarkdownGenerator) generateIndex(ref *Reference, outputDir string) error {
	var buf strings.Builder

	buf.WriteString("# Aabhalint Rule Reference\n\n")
	buf.WriteString("Checks applied to decorator metadata on Aabha class declarations.\n\n")
	if ref.ToolVersion != "" {
		buf.WriteString(fmt.Sprintf("**Version:** %s\n\n", ref.ToolVersion))
	}

	// Rule table
	buf.WriteString("## Rules\n\n")
	buf.WriteString("| Rule | Severity | Fixable | Applies to | Description |\n")
	buf.WriteString("|------|----------|---------|------------|-------------|\n")
	for _, rule := range ref.Rules {
		fixable := "No"
		if rule.Fixable {
			fixable = "Yes"
		}
		kinds := "all kinds"
		if !rule.AppliesToAll() {
			kinds = "@" + strings.Join(rule.Kinds, ", @")
		}
		buf.WriteString(fmt.Sprintf("| [`%s`](%s.md) | %s | %s | %s | %s |\n",
			rule.ID, rule.ID, rule.Severity, fixable, kinds, rule.Description))
	}
	buf.WriteString("\n")

	// Decorator vocabulary
	buf.WriteString("## Decorator Vocabulary\n\n")
	buf.WriteString("The documented fields per decorator kind. The `unknown-field` rule\n")
	buf.WriteString("flags anything outside this table.\n\n")
	buf.WriteString("| Decorator | Fields | Inspected by |\n")
	buf.WriteString("|-----------|--------|--------------|\n")
	for _, kind := range ref.Kinds {
		buf.WriteString(fmt.Sprintf("| `@%s` | %s | %d rules |\n",
			kind.Name, "`"+strings.Join(kind.Fields, "`, `")+"`", len(kind.Rules)))
	}
	buf.WriteString("\n")

	// Configuration pointer
	buf.WriteString("## Configuration\n\n")
	buf.WriteString("Every rule can be disabled or reclassified in `.aabhalint.yml`:\n\n")
	buf.WriteString("```yaml\nrules:\n  context-description:\n    enabled: true\n    severity: problem\n    options:\n      minLength: 20\n```\n")

	outputPath := filepath.Join(outputDir, "README.md")
	return os.WriteFile(outputPath, []byte(buf.String()), 0644)
}

// generateRulePage generates the page for a single rule
func (g *MarkdownGenerator) generateRulePage(rule *RuleDoc, outputDir string) error {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("# %s\n\n", rule.ID))
	buf.WriteString(fmt.Sprintf("> %s\n\n", capitalize(rule.Description)))

	buf.WriteString(fmt.Sprintf("- **Severity:** %s\n", rule.Severity))
	if rule.Fixable {
		buf.WriteString("- **Fixable:** some findings carry an automatic fix (`aabhalint fix`)\n")
	} else {
		buf.WriteString("- **Fixable:** no\n")
	}
	if rule.AppliesToAll() {
		buf.WriteString("- **Applies to:** every decorator kind\n")
	} else {
		buf.WriteString(fmt.Sprintf("- **Applies to:** @%s\n", strings.Join(rule.Kinds, ", @")))
	}
	buf.WriteString("\n")

	buf.WriteString("## Messages\n\n")
	buf.WriteString("| ID | Template |\n")
	buf.WriteString("|----|----------|\n")
	for _, message := range rule.Messages {
		buf.WriteString(fmt.Sprintf("| `%s` | %s |\n", message.ID, escapeTableCell(message.Template)))
	}
	buf.WriteString("\n")

	buf.WriteString("## Configuration\n\n")
	buf.WriteString("```yaml\nrules:\n")
	buf.WriteString(fmt.Sprintf("  %s:\n", rule.ID))
	buf.WriteString("    enabled: true\n")
	buf.WriteString(fmt.Sprintf("    severity: %s\n", rule.Severity))
	buf.WriteString("```\n")

	outputPath := filepath.Join(outputDir, rule.ID+".md")
	return os.WriteFile(outputPath, []byte(buf.String()), 0644)
}

// escapeTableCell keeps message templates from breaking table markup
func escapeTableCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
