package docs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMarkdownGenerator_Generate(t *testing.T) {
	tmpDir := t.TempDir()

	config := &Config{
		ToolVersion: "1.0.0",
		OutputDir:   tmpDir,
	}

	generator := NewMarkdownGenerator(config)
	ref := BuildReference(testCatalog(), "1.0.0")

	if err := generator.Generate(ref); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Verify README was created
	readmePath := filepath.Join(tmpDir, "markdown", "README.md")
	if _, err := os.Stat(readmePath); os.IsNotExist(err) {
		t.Fatal("README.md was not created")
	}

	// Verify per-rule pages were created
	for _, name := range []string{"context-description.md", "declaration-name.md"} {
		if _, err := os.Stat(filepath.Join(tmpDir, "markdown", name)); os.IsNotExist(err) {
			t.Fatalf("%s was not created", name)
		}
	}

	readmeContent, err := os.ReadFile(readmePath)
	if err != nil {
		t.Fatalf("Failed to read README: %v", err)
	}

	readme := string(readmeContent)
	if !strings.Contains(readme, "# Aabhalint Rule Reference") {
		t.Error("README should contain the title")
	}
	if !strings.Contains(readme, "1.0.0") {
		t.Error("README should contain the version")
	}
	if !strings.Contains(readme, "[`context-description`](context-description.md)") {
		t.Error("README should link to rule pages")
	}
	if !strings.Contains(readme, "## Decorator Vocabulary") {
		t.Error("README should document the vocabulary")
	}
	if !strings.Contains(readme, "`@Context`") {
		t.Error("README vocabulary should list decorator kinds")
	}
}

func TestMarkdownGenerator_RulePage(t *testing.T) {
	tmpDir := t.TempDir()
	outputDir := filepath.Join(tmpDir, "markdown")
	os.MkdirAll(outputDir, 0755)

	generator := NewMarkdownGenerator(&Config{OutputDir: tmpDir})
	ref := BuildReference(testCatalog(), "dev")

	if err := generator.generateRulePage(ref.Rules[0], outputDir); err != nil {
		t.Fatalf("generateRulePage failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(outputDir, "context-description.md"))
	if err != nil {
		t.Fatalf("Failed to read page: %v", err)
	}

	page := string(content)
	if !strings.Contains(page, "# context-description") {
		t.Error("Page should have the rule ID as title")
	}
	if !strings.Contains(page, "**Severity:** problem") {
		t.Error("Page should state the severity")
	}
	if !strings.Contains(page, "@Context") {
		t.Error("Page should name the inspected kind")
	}
	if !strings.Contains(page, "`missingDescription`") {
		t.Error("Page should list message IDs")
	}
	if !strings.Contains(page, "## Configuration") {
		t.Error("Page should show a configuration snippet")
	}
	if !strings.Contains(page, "aabhalint fix") {
		t.Error("Fixable rule page should mention the fix command")
	}
}

func TestMarkdownGenerator_EscapesTemplatePipes(t *testing.T) {
	tmpDir := t.TempDir()
	outputDir := filepath.Join(tmpDir, "markdown")
	os.MkdirAll(outputDir, 0755)

	generator := NewMarkdownGenerator(&Config{OutputDir: tmpDir})
	rule := &RuleDoc{
		ID:       "sample-rule",
		Severity: "problem",
		Messages: []*MessageDoc{
			{ID: "badValue", Template: "expected one of a | b | c"},
		},
	}

	if err := generator.generateRulePage(rule, outputDir); err != nil {
		t.Fatalf("generateRulePage failed: %v", err)
	}

	content, _ := os.ReadFile(filepath.Join(outputDir, "sample-rule.md"))
	if !strings.Contains(string(content), `a \| b \| c`) {
		t.Error("Pipes in templates should be escaped in table cells")
	}
}
