package lint

import (
	"strings"

	"github.com/aabha-lang/aabhalint/internal/meta"
)

// CheckFunc evaluates one metadata record and reports violations through
// the context. Implementations must be stateless and must tolerate absent
// or wrong-shaped fields without failing.
type CheckFunc func(ctx *Context, record *meta.Record)

// Rule describes one validation unit. Rules are plain data: the registry
// is a static table of descriptors and the engine drives their Check
// functions.
type Rule struct {
	ID          string            // Stable kebab-case identifier
	Description string            // One-line human description
	Kinds       []string          // Decorator kinds inspected; empty means all
	Messages    map[string]string // MessageID -> template with {{name}} slots
	Fixable     bool              // Whether any message may carry a fix
	Severity    Severity          // Default severity class
	Check       CheckFunc
}

// AppliesTo reports whether the rule inspects the given decorator kind
func (r *Rule) AppliesTo(kind string) bool {
	if len(r.Kinds) == 0 {
		return true
	}
	for _, k := range r.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Options holds per-rule configuration supplied at registry build time
// (minimum lengths, naming patterns). Typed getters fall back to defaults
// on absent or wrong-shaped entries, mirroring how rules read fields.
type Options map[string]interface{}

// lookup resolves an option key exactly first, then lowercased: viper
// folds map keys to lower case when options come from a config file,
// while code-built option maps keep their spelling.
func (o Options) lookup(key string) (interface{}, bool) {
	if value, ok := o[key]; ok {
		return value, true
	}
	value, ok := o[strings.ToLower(key)]
	return value, ok
}

// String returns a string option or the default
func (o Options) String(key, def string) string {
	if value, ok := o.lookup(key); ok {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return def
}

// Int returns an integer option or the default
func (o Options) Int(key string, def int) int {
	value, ok := o.lookup(key)
	if !ok {
		return def
	}
	switch n := value.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

// Bool returns a boolean option or the default
func (o Options) Bool(key string, def bool) bool {
	if value, ok := o.lookup(key); ok {
		if b, ok := value.(bool); ok {
			return b
		}
	}
	return def
}

// Strings returns a string-list option, or nil when the option is absent
// or wrong-shaped. Config loaders deliver YAML sequences as []interface{},
// so both representations are accepted; non-string elements are dropped.
func (o Options) Strings(key string) []string {
	value, ok := o.lookup(key)
	if !ok {
		return nil
	}
	switch list := value.(type) {
	case []string:
		return list
	case []interface{}:
		strs := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				strs = append(strs, s)
			}
		}
		return strs
	default:
		return nil
	}
}

// Context is the reporting surface handed to a rule while it evaluates
// records from a single file.
type Context struct {
	File    string  // Path of the file being linted
	Source  string  // Full source text, for fix computation
	Options Options // Effective options for this rule

	rule     *Rule
	severity Severity
	sink     *[]Diagnostic
}

// Report emits a diagnostic anchored at the record's decorator
func (c *Context) Report(record *meta.Record, messageID string, data map[string]string) {
	c.ReportFix(record, messageID, data, nil)
}

// ReportFix emits a diagnostic carrying a fix. A nil or empty edit list
// degrades to a plain diagnostic.
func (c *Context) ReportFix(record *meta.Record, messageID string, data map[string]string, fix []TextEdit) {
	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["kind"]; !ok {
		data["kind"] = record.Kind
	}
	if _, ok := data["class"]; !ok {
		data["class"] = record.ClassName
	}

	template, ok := c.rule.Messages[messageID]
	if !ok {
		template = messageID
	}

	*c.sink = append(*c.sink, Diagnostic{
		RuleID:    c.rule.ID,
		MessageID: messageID,
		Severity:  c.severity,
		Message:   renderMessage(template, data),
		Data:      data,
		Location: Location{
			File:   c.File,
			Line:   record.Node.Loc.Line,
			Column: record.Node.Loc.Column,
			Start:  record.Node.Span.Start,
			End:    record.Node.Span.End,
		},
		Fix: fix,
	})
}

// Data builds a substitution map from alternating key/value pairs
func Data(pairs ...string) map[string]string {
	data := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		data[pairs[i]] = pairs[i+1]
	}
	return data
}
