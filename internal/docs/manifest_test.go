package docs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestManifestGenerator_Generate(t *testing.T) {
	tmpDir := t.TempDir()

	generator := NewManifestGenerator(&Config{OutputDir: tmpDir})
	ref := BuildReference(testCatalog(), "1.0.0")

	if err := generator.Generate(ref); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "rules.json"))
	if err != nil {
		t.Fatalf("rules.json was not created: %v", err)
	}

	var m struct {
		Tool    string `json:"tool"`
		Version string `json:"version"`
		Rules   []struct {
			ID       string   `json:"id"`
			Kinds    []string `json:"kinds"`
			Severity string   `json:"severity"`
			Fixable  bool     `json:"fixable"`
			Messages []struct {
				ID       string `json:"id"`
				Template string `json:"template"`
			} `json:"messages"`
		} `json:"rules"`
		Kinds []struct {
			Name   string   `json:"name"`
			Fields []string `json:"fields"`
		} `json:"kinds"`
	}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}

	if m.Tool != "aabhalint" || m.Version != "1.0.0" {
		t.Errorf("tool = %q, version = %q", m.Tool, m.Version)
	}
	if len(m.Rules) != 2 {
		t.Fatalf("rules = %d", len(m.Rules))
	}

	rule := m.Rules[0]
	if rule.ID != "context-description" || rule.Severity != "problem" || !rule.Fixable {
		t.Errorf("rule = %+v", rule)
	}
	if len(rule.Kinds) != 1 || rule.Kinds[0] != "Context" {
		t.Errorf("kinds = %v", rule.Kinds)
	}
	if len(rule.Messages) != 2 || rule.Messages[0].ID != "emptyDescription" {
		t.Errorf("messages = %v", rule.Messages)
	}

	// Catalog-wide rules omit the kinds key entirely
	if m.Rules[1].Kinds != nil {
		t.Errorf("declaration-name kinds = %v, want absent", m.Rules[1].Kinds)
	}

	if len(m.Kinds) == 0 {
		t.Fatal("manifest should carry the decorator vocabulary")
	}
	if m.Kinds[0].Name == "" || len(m.Kinds[0].Fields) == 0 {
		t.Errorf("kind = %+v", m.Kinds[0])
	}
}

func TestManifestGenerator_Deterministic(t *testing.T) {
	tmpDir := t.TempDir()
	generator := NewManifestGenerator(&Config{OutputDir: tmpDir})
	ref := BuildReference(testCatalog(), "dev")

	if err := generator.Generate(ref); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	first, _ := os.ReadFile(filepath.Join(tmpDir, "rules.json"))

	if err := generator.Generate(ref); err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}
	second, _ := os.ReadFile(filepath.Join(tmpDir, "rules.json"))

	if string(first) != string(second) {
		t.Error("manifest output should be byte-stable across runs")
	}
}
