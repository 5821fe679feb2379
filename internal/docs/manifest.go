package docs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestGenerator generates the machine-readable rule manifest. Editor
// integrations and CI tooling consume it instead of scraping the pages.
type ManifestGenerator struct {
	config *Config
}

// NewManifestGenerator creates a new manifest generator
func NewManifestGenerator(config *Config) *ManifestGenerator {
	return &ManifestGenerator{
		config: config,
	}
}

// manifest is the wire form of the reference. Keys are snake_case, like
// the JSON report output.
type manifest struct {
	Tool    string         `json:"tool"`
	Version string         `json:"version"`
	Rules   []manifestRule `json:"rules"`
	Kinds   []manifestKind `json:"kinds"`
}

type manifestRule struct {
	ID          string            `json:"id"`
	Description string            `json:"description"`
	Kinds       []string          `json:"kinds,omitempty"`
	Severity    string            `json:"severity"`
	Fixable     bool              `json:"fixable"`
	Messages    []manifestMessage `json:"messages"`
}

type manifestMessage struct {
	ID       string `json:"id"`
	Template string `json:"template"`
}

type manifestKind struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
	Rules  []string `json:"rules"`
}

// Generate writes rules.json into the output directory
func (g *ManifestGenerator) Generate(ref *Reference) error {
	if err := os.MkdirAll(g.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	m := manifest{
		Tool:    "aabhalint",
		Version: ref.ToolVersion,
		Rules:   make([]manifestRule, 0, len(ref.Rules)),
		Kinds:   make([]manifestKind, 0, len(ref.Kinds)),
	}

	for _, rule := range ref.Rules {
		mr := manifestRule{
			ID:          rule.ID,
			Description: rule.Description,
			Kinds:       rule.Kinds,
			Severity:    rule.Severity,
			Fixable:     rule.Fixable,
			Messages:    make([]manifestMessage, 0, len(rule.Messages)),
		}
		for _, message := range rule.Messages {
			mr.Messages = append(mr.Messages, manifestMessage{
				ID:       message.ID,
				Template: message.Template,
			})
		}
		m.Rules = append(m.Rules, mr)
	}

	for _, kind := range ref.Kinds {
		m.Kinds = append(m.Kinds, manifestKind{
			Name:   kind.Name,
			Fields: kind.Fields,
			Rules:  kind.Rules,
		})
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	outputPath := filepath.Join(g.config.OutputDir, "rules.json")
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}
