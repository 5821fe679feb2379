package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aabha-lang/aabhalint/internal/cli/config"
	"github.com/aabha-lang/aabhalint/internal/cli/ui"
	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/lint/rules"
)

// NewRulesCommand creates the rules command
func NewRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List registered lint rules",
		Long: `List every registered rule with its decorator kinds, effective
severity, and whether its findings carry fixes. Severities reflect the
loaded configuration; disabled rules show as off.

With a rule ID, show that rule's details including its message catalog.`,
		Example: `  # The full rule table
  aabhalint rules

  # One rule in detail
  aabhalint rules metric-thresholds`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRules,
	}
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	plain := noColor || cfg.Output.NoColor
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		return showRule(cmd, cfg, args[0], plain)
	}

	ui.Header(out, fmt.Sprintf("Registered rules (%d)", len(rules.All)), plain)

	table := ui.NewTable(out, []string{"ID", "KINDS", "SEVERITY", "FIX", "DESCRIPTION"}, plain)
	for _, rule := range rules.All {
		table.AddRow(rule.ID, kindList(rule), effectiveSeverity(cfg, rule), fixMark(rule), rule.Description)
	}
	table.Render()

	return nil
}

func showRule(cmd *cobra.Command, cfg *config.Config, id string, plain bool) error {
	rule := rules.ByID(id)
	if rule == nil {
		ui.PrintError(cmd.ErrOrStderr(), fmt.Sprintf("unknown rule %q", id), ui.Suggest(id, rules.IDs()), plain)
		return fmt.Errorf("unknown rule %q", id)
	}

	out := cmd.OutOrStdout()
	ui.Header(out, rule.ID, plain)

	table := ui.NewKeyValueTable(out, plain)
	table.AddRow("Description", rule.Description)
	table.AddRow("Kinds", kindList(rule))
	table.AddRow("Severity", effectiveSeverity(cfg, rule))
	table.AddRow("Fixable", fixMark(rule))
	table.Render()

	if len(rule.Messages) > 0 {
		fmt.Fprintln(out)
		ids := make([]string, 0, len(rule.Messages))
		for messageID := range rule.Messages {
			ids = append(ids, messageID)
		}
		sort.Strings(ids)

		messages := ui.NewTable(out, []string{"MESSAGE", "TEMPLATE"}, plain)
		for _, messageID := range ids {
			messages.AddRow(messageID, rule.Messages[messageID])
		}
		messages.Render()
	}

	return nil
}

func kindList(rule *lint.Rule) string {
	if len(rule.Kinds) == 0 {
		return "all"
	}
	return strings.Join(rule.Kinds, ", ")
}

// effectiveSeverity folds the config override into the registry default.
// Disabled rules render as "off".
func effectiveSeverity(cfg *config.Config, rule *lint.Rule) string {
	severity := string(rule.Severity)
	if override, ok := cfg.Rules[rule.ID]; ok {
		if override.Enabled != nil && !*override.Enabled {
			return "off"
		}
		if override.Severity != "" {
			severity = override.Severity
		}
	}
	return severity
}

func fixMark(rule *lint.Rule) string {
	if rule.Fixable {
		return "yes"
	}
	return "-"
}
