package lint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/aabha-lang/aabhalint/internal/lang/lexer"
	"github.com/aabha-lang/aabhalint/internal/lang/parser"
	"github.com/aabha-lang/aabhalint/internal/meta"
)

// RuleOverride carries per-rule configuration merged in at engine build
// time: enable/disable, severity reclassification, and rule options.
type RuleOverride struct {
	Enabled  *bool
	Severity Severity
	Options  Options
}

// ruleState is a rule plus its effective configuration
type ruleState struct {
	rule     *Rule
	severity Severity
	options  Options
}

// Engine runs the configured rule set over source files. Engines are
// immutable after construction and safe for concurrent use; all per-file
// state lives on the stack of LintSource.
type Engine struct {
	rules []*ruleState
}

// NewEngine builds an engine from a rule table and per-rule overrides.
// Rules are ordered by ID so diagnostic order is reproducible regardless
// of table order.
func NewEngine(rules []*Rule, overrides map[string]RuleOverride) *Engine {
	states := make([]*ruleState, 0, len(rules))

	for _, rule := range rules {
		override := overrides[rule.ID]

		if override.Enabled != nil && !*override.Enabled {
			continue
		}

		severity := rule.Severity
		if override.Severity != "" && ValidSeverity(override.Severity) {
			severity = override.Severity
		}

		options := override.Options
		if options == nil {
			options = Options{}
		}

		states = append(states, &ruleState{
			rule:     rule,
			severity: severity,
			options:  options,
		})
	}

	sort.Slice(states, func(i, j int) bool {
		return states[i].rule.ID < states[j].rule.ID
	})

	return &Engine{rules: states}
}

// Rules returns the enabled rules in evaluation order
func (e *Engine) Rules() []*Rule {
	rules := make([]*Rule, len(e.rules))
	for i, state := range e.rules {
		rules[i] = state.rule
	}
	return rules
}

// RuleCount returns the number of enabled rules
func (e *Engine) RuleCount() int {
	return len(e.rules)
}

// FileResult aggregates everything one lint pass produced for one file
type FileResult struct {
	File        string              `json:"file"`
	Checksum    string              `json:"checksum"`
	LexErrors   []lexer.LexError    `json:"lex_errors,omitempty"`
	ParseErrors []parser.ParseError `json:"parse_errors,omitempty"`
	Diagnostics []Diagnostic        `json:"diagnostics"`
	Internal    []string            `json:"internal,omitempty"`
}

// HasSyntaxErrors reports whether the file failed to lex or parse cleanly
func (r *FileResult) HasSyntaxErrors() bool {
	return len(r.LexErrors) > 0 || len(r.ParseErrors) > 0
}

// Count returns the number of diagnostics with the given severity
func (r *FileResult) Count(severity Severity) int {
	count := 0
	for i := range r.Diagnostics {
		if r.Diagnostics[i].Severity == severity {
			count++
		}
	}
	return count
}

// FixableCount returns the number of diagnostics carrying a fix
func (r *FileResult) FixableCount() int {
	count := 0
	for i := range r.Diagnostics {
		if r.Diagnostics[i].HasFix() {
			count++
		}
	}
	return count
}

// LintSource lints one file's source text. Diagnostics come out in
// declaration order, then decorator order, then rule order; the pass is a
// pure function of the source text, so concurrent calls with the same
// input produce identical results.
func (e *Engine) LintSource(file, source string) *FileResult {
	result := &FileResult{
		File:        file,
		Checksum:    Checksum(source),
		Diagnostics: make([]Diagnostic, 0),
	}

	tokens, lexErrors := lexer.New(source).ScanTokens()
	result.LexErrors = lexErrors

	program, parseErrors := parser.New(tokens).Parse()
	result.ParseErrors = parseErrors

	for _, class := range program.Classes {
		for _, record := range meta.Extract(class) {
			for _, state := range e.rules {
				if !state.rule.AppliesTo(record.Kind) {
					continue
				}
				e.runRule(state, record, file, source, result)
			}
		}
	}

	return result
}

// runRule evaluates one rule against one record. A panicking rule is
// isolated: sibling rules and declarations still run.
func (e *Engine) runRule(state *ruleState, record *meta.Record, file, source string, result *FileResult) {
	defer func() {
		if r := recover(); r != nil {
			result.Internal = append(result.Internal,
				fmt.Sprintf("rule %s panicked on @%s (%s): %v",
					state.rule.ID, record.Kind, record.ClassName, r))
		}
	}()

	ctx := &Context{
		File:     file,
		Source:   source,
		Options:  state.options,
		rule:     state.rule,
		severity: state.severity,
		sink:     &result.Diagnostics,
	}

	state.rule.Check(ctx, record)
}

// Checksum computes the SHA-256 content hash used as the cache key for a
// source text
func Checksum(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}
