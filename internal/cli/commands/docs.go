package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aabha-lang/aabhalint/internal/cli/ui"
	"github.com/aabha-lang/aabhalint/internal/docs"
	"github.com/aabha-lang/aabhalint/internal/lint/rules"
)

var (
	docsFormat string
	docsOut    string
)

// NewDocsCommand creates the docs command
func NewDocsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate the rule reference",
		Long: `Generate the rule reference from the registered rule catalog.

Output formats:
  - markdown: index plus one page per rule
  - html: standalone browsable site
  - json: machine-readable manifest for editor and CI integrations

The reference always reflects the compiled-in catalog; configuration
overrides like disabled rules do not change the generated pages.`,
		Example: `  # Markdown pages under docs/
  aabhalint docs

  # Everything, somewhere else
  aabhalint docs --format markdown,html,json --out build/reference`,
		RunE: runDocs,
	}

	cmd.Flags().StringVar(&docsFormat, "format", "markdown", "Output format(s): markdown, html, json (comma-separated)")
	cmd.Flags().StringVar(&docsOut, "out", "docs", "Output directory")

	return cmd
}

func runDocs(cmd *cobra.Command, args []string) error {
	start := time.Now()

	formats, err := parseDocsFormats(docsFormat)
	if err != nil {
		return err
	}

	generator := docs.NewGenerator(&docs.Config{
		ToolVersion: Version,
		OutputDir:   docsOut,
		Formats:     formats,
	})
	if err := generator.Generate(rules.All); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ui.PrintSuccess(out, fmt.Sprintf("Rule reference generated in %v", time.Since(start).Round(time.Millisecond)), noColor)
	ui.PrintHint(out, fmt.Sprintf("output: %s", docsOut), noColor)
	return nil
}

// parseDocsFormats validates the comma-separated format list
func parseDocsFormats(value string) ([]docs.Format, error) {
	formats := make([]docs.Format, 0)
	for _, part := range strings.Split(value, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		format, ok := docs.ParseFormat(name)
		if !ok {
			return nil, fmt.Errorf("unknown format %q (expected markdown, html, or json)", name)
		}
		formats = append(formats, format)
	}
	if len(formats) == 0 {
		formats = append(formats, docs.FormatMarkdown)
	}
	return formats, nil
}
