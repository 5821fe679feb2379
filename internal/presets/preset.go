// Package presets ships named rule configurations for 'aabhalint init'.
// A preset is a block of per-rule overrides rendered straight into the
// generated .aabhalint.yml; the linter never consults it again after the
// file is written.
package presets

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/lint/rules"
)

// Preset is a named set of rule overrides
type Preset struct {
	Name        string
	Description string
	Settings    []RuleSetting
}

// RuleSetting overrides one rule. Nil Enabled, empty Severity, and empty
// Options each mean "leave the registry value alone".
type RuleSetting struct {
	RuleID   string
	Enabled  *bool
	Severity lint.Severity
	Options  map[string]interface{}
}

// Validate checks that the preset is complete and every setting targets a
// registered rule
func (p *Preset) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("preset name is required")
	}
	if p.Description == "" {
		return fmt.Errorf("preset description is required")
	}

	seen := make(map[string]bool)
	for _, setting := range p.Settings {
		if rules.ByID(setting.RuleID) == nil {
			return fmt.Errorf("unknown rule %q", setting.RuleID)
		}
		if seen[setting.RuleID] {
			return fmt.Errorf("rule %q listed twice", setting.RuleID)
		}
		seen[setting.RuleID] = true

		if setting.Severity != "" && !lint.ValidSeverity(setting.Severity) {
			return fmt.Errorf("invalid severity %q for rule %q", setting.Severity, setting.RuleID)
		}
		if setting.Enabled == nil && setting.Severity == "" && len(setting.Options) == 0 {
			return fmt.Errorf("rule %q changes nothing", setting.RuleID)
		}
	}

	return nil
}

// RenderRules writes the preset as the rules section of a .aabhalint.yml.
// A preset with no settings renders a commented scaffold instead, so the
// generated file still shows where tuning goes.
func (p *Preset) RenderRules() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Preset %q: %s.\n", p.Name, p.Description)
	b.WriteString("# Per-rule tuning. Run 'aabhalint rules' for the full table.\n")

	if len(p.Settings) == 0 {
		b.WriteString("# rules:\n")
		b.WriteString("#   context-description:\n")
		b.WriteString("#     severity: problem\n")
		b.WriteString("#     options:\n")
		b.WriteString("#       minLength: 20\n")
		b.WriteString("#   journey-persona:\n")
		b.WriteString("#     enabled: false\n")
		return b.String()
	}

	b.WriteString("rules:\n")
	for _, setting := range p.Settings {
		fmt.Fprintf(&b, "  %s:\n", setting.RuleID)
		if setting.Enabled != nil {
			fmt.Fprintf(&b, "    enabled: %t\n", *setting.Enabled)
		}
		if setting.Severity != "" {
			fmt.Fprintf(&b, "    severity: %s\n", setting.Severity)
		}
		if len(setting.Options) > 0 {
			b.WriteString("    options:\n")
			keys := make([]string, 0, len(setting.Options))
			for key := range setting.Options {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(&b, "      %s: %v\n", key, setting.Options[key])
			}
		}
	}

	return b.String()
}
