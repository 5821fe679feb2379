package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aabha-lang/aabhalint/internal/cli/config"
	"github.com/aabha-lang/aabhalint/internal/report"
)

const cleanSource = "@Context({ name: 'Orders', description: 'Order intake and fulfillment for retail teams.' })\nclass Orders {}\n"

const missingDescriptionSource = "@Context({ name: 'Orders' })\nclass Orders {}\n"

const badNameSource = "@Context({ name: 'Orders', description: 'Order intake and fulfillment for retail teams.' })\nclass order_intake {}\n"

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestNewLintCommand(t *testing.T) {
	cmd := NewLintCommand()

	for flag, def := range map[string]string{
		"format":  "",
		"fix":     "false",
		"fail-on": "problem",
		"cache":   "true",
	} {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			t.Errorf("expected flag --%s to be registered", flag)
			continue
		}
		if f.DefValue != def {
			t.Errorf("flag --%s default = %q, want %q", flag, f.DefValue, def)
		}
	}
}

func TestLintCommandCleanFile(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "orders.aabha", cleanSource)

	out, _, err := runCommand(t, "lint", dir, "--no-color")
	if err != nil {
		t.Fatalf("expected clean run, got error: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "no problems found") {
		t.Errorf("expected clean summary, got:\n%s", out)
	}
}

func TestLintCommandFailsOnProblems(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "orders.aabha", missingDescriptionSource)

	out, _, err := runCommand(t, "lint", dir, "--no-color")
	if err == nil {
		t.Fatal("expected an error for a file with problems")
	}
	if !strings.Contains(err.Error(), "1 problem") {
		t.Errorf("error = %q, want problem count", err.Error())
	}
	if !strings.Contains(out, "context-description") {
		t.Errorf("report missing the violated rule:\n%s", out)
	}
}

func TestLintCommandFailOnNever(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "orders.aabha", missingDescriptionSource)

	if _, _, err := runCommand(t, "lint", dir, "--no-color", "--fail-on", "never"); err != nil {
		t.Fatalf("--fail-on never must not fail: %v", err)
	}
}

func TestLintCommandFailOnSuggestion(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "orders.aabha", badNameSource)

	// Suggestions pass the default threshold
	if _, _, err := runCommand(t, "lint", dir, "--no-color"); err != nil {
		t.Fatalf("suggestions must pass --fail-on problem: %v", err)
	}

	if _, _, err := runCommand(t, "lint", dir, "--no-color", "--fail-on", "suggestion"); err == nil {
		t.Fatal("expected --fail-on suggestion to fail on a suggestion")
	}
}

func TestLintCommandJSONFormat(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "orders.aabha", missingDescriptionSource)

	out, _, err := runCommand(t, "lint", dir, "--format", "json", "--fail-on", "never")
	if err != nil {
		t.Fatalf("lint failed: %v", err)
	}

	var payload struct {
		Status  string         `json:"status"`
		Summary report.Summary `json:"summary"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if payload.Status != "problems" {
		t.Errorf("status = %q, want problems", payload.Status)
	}
	if payload.Summary.Problems != 1 {
		t.Errorf("problems = %d, want 1", payload.Summary.Problems)
	}
}

func TestLintCommandFix(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "orders.aabha", missingDescriptionSource)

	// With the fix applied the re-lint is clean, so the default
	// threshold passes.
	if _, _, err := runCommand(t, "lint", dir, "--no-color", "--fix"); err != nil {
		t.Fatalf("lint --fix failed: %v", err)
	}

	fixed, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixed file: %v", err)
	}
	if !strings.Contains(string(fixed), "description:") {
		t.Errorf("fix did not insert a description:\n%s", fixed)
	}
}

func TestLintCommandNoFiles(t *testing.T) {
	dir := t.TempDir()

	_, _, err := runCommand(t, "lint", dir)
	if err == nil || !strings.Contains(err.Error(), "no .aabha files") {
		t.Fatalf("expected a no-files error, got %v", err)
	}
}

func TestLintCommandUnknownFailOn(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "orders.aabha", cleanSource)

	_, _, err := runCommand(t, "lint", dir, "--fail-on", "warning")
	if err == nil || !strings.Contains(err.Error(), "fail-on") {
		t.Fatalf("expected an unknown threshold error, got %v", err)
	}
}

func TestFailOn(t *testing.T) {
	tests := []struct {
		name      string
		threshold string
		summary   report.Summary
		wantError bool
	}{
		{"clean passes problem", "problem", report.Summary{}, false},
		{"problem fails problem", "problem", report.Summary{Problems: 1}, true},
		{"syntax error counts as problem", "problem", report.Summary{SyntaxErrors: 1}, true},
		{"suggestion passes problem", "problem", report.Summary{Suggestions: 3}, false},
		{"suggestion fails suggestion", "suggestion", report.Summary{Suggestions: 1}, true},
		{"problem fails suggestion", "suggestion", report.Summary{Problems: 1}, true},
		{"never always passes", "never", report.Summary{Problems: 9, Suggestions: 9}, false},
		{"empty means problem", "", report.Summary{Problems: 1}, true},
		{"unknown threshold errors", "warning", report.Summary{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := failOn(tt.threshold, tt.summary)
			if (err != nil) != tt.wantError {
				t.Errorf("failOn(%q, %+v) error = %v, wantError %v", tt.threshold, tt.summary, err, tt.wantError)
			}
		})
	}
}

func TestCollectFilesExcludes(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "orders.aabha", cleanSource)
	writeFixture(t, dir, "orders_generated.aabha", cleanSource)

	cfg := &config.Config{Exclude: []string{"*_generated.aabha"}}

	files, err := collectFiles(cfg, []string{dir})
	if err != nil {
		t.Fatalf("collectFiles: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file after excludes, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "orders.aabha" {
		t.Errorf("kept the wrong file: %s", files[0])
	}
}

func TestWarnUnknownRules(t *testing.T) {
	cfg := &config.Config{
		Rules: map[string]config.RuleConfig{
			"metric-unts": {},
		},
	}

	var buf bytes.Buffer
	warnUnknownRules(&buf, cfg, true)

	if !strings.Contains(buf.String(), "metric-unts") {
		t.Errorf("warning missing the unknown name:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "metric-unit") {
		t.Errorf("warning missing the suggestion:\n%s", buf.String())
	}
}
