// Package docs renders the aabhalint rule reference. It builds a
// render-ready view of the live rule registry and writes it out as
// Markdown pages, a standalone HTML site, or a machine-readable JSON
// manifest.
package docs

import (
	"github.com/aabha-lang/aabhalint/internal/lint"
)

// Generator orchestrates reference generation across output formats
type Generator struct {
	config *Config
}

// Config holds configuration for reference generation
type Config struct {
	// ToolVersion is stamped into page footers and the manifest
	ToolVersion string

	// OutputDir is the base directory for generated files
	OutputDir string

	// Formats specifies which formats to generate
	Formats []Format
}

// Format represents a reference output format
type Format string

const (
	// FormatMarkdown generates Markdown pages
	FormatMarkdown Format = "markdown"

	// FormatHTML generates a standalone HTML site
	FormatHTML Format = "html"

	// FormatJSON generates a machine-readable manifest
	FormatJSON Format = "json"
)

// ParseFormat maps a format name to its constant. Unrecognized names
// return false.
func ParseFormat(name string) (Format, bool) {
	switch Format(name) {
	case FormatMarkdown, FormatHTML, FormatJSON:
		return Format(name), true
	default:
		return "", false
	}
}

// Reference is the extracted, render-ready view of the rule catalog
type Reference struct {
	// ToolVersion is the aabhalint version the reference was built from
	ToolVersion string

	// Rules holds one entry per registered rule, in registry order
	Rules []*RuleDoc

	// Kinds holds the decorator vocabulary, one entry per kind
	Kinds []*KindDoc
}

// RuleDoc describes a single rule for rendering
type RuleDoc struct {
	// ID is the stable kebab-case rule identifier
	ID string

	// Description is the one-line rule summary
	Description string

	// Kinds lists the decorator kinds the rule inspects; empty means all
	Kinds []string

	// Severity is the default severity class (problem or suggestion)
	Severity string

	// Fixable indicates whether any finding may carry an automatic fix
	Fixable bool

	// Messages lists the rule's message templates, sorted by ID
	Messages []*MessageDoc
}

// MessageDoc is one message template of a rule
type MessageDoc struct {
	// ID is the camelCase message identifier
	ID string

	// Template is the message text with {{name}} substitution slots
	Template string
}

// KindDoc describes one decorator kind of the vocabulary
type KindDoc struct {
	// Name is the decorator kind, e.g. "Context"
	Name string

	// Fields lists the documented fields of the kind
	Fields []string

	// Rules lists the IDs of rules that inspect the kind
	Rules []string
}

// NewGenerator creates a reference generator
func NewGenerator(config *Config) *Generator {
	return &Generator{config: config}
}

// Generate builds the reference from the given rule catalog and writes
// every configured format
func (g *Generator) Generate(rules []*lint.Rule) error {
	ref := BuildReference(rules, g.config.ToolVersion)

	for _, format := range g.config.Formats {
		switch format {
		case FormatMarkdown:
			if err := NewMarkdownGenerator(g.config).Generate(ref); err != nil {
				return err
			}
		case FormatHTML:
			if err := NewHTMLGenerator(g.config).Generate(ref); err != nil {
				return err
			}
		case FormatJSON:
			if err := NewManifestGenerator(g.config).Generate(ref); err != nil {
				return err
			}
		}
	}

	return nil
}
