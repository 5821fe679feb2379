package lint

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aabha-lang/aabhalint/internal/meta"
)

// Combinators turn the recurring predicate shapes into data. Most rules in
// the catalog are compositions of these builders; hand-written Check
// functions exist only for genuinely bespoke invariants.

// All composes check functions, running them in order
func All(checks ...CheckFunc) CheckFunc {
	return func(ctx *Context, record *meta.Record) {
		for _, check := range checks {
			check(ctx, record)
		}
	}
}

// RequireField reports missingID when the field is wholly absent
func RequireField(field, missingID string) CheckFunc {
	return func(ctx *Context, record *meta.Record) {
		if !record.Has(field) {
			ctx.Report(record, missingID, Data("field", field))
		}
	}
}

// RequireString reports missingID when the field is absent or not a
// string, and emptyID when it is a blank string. Wrong-shaped values
// count as absent.
func RequireString(field, missingID, emptyID string) CheckFunc {
	return func(ctx *Context, record *meta.Record) {
		value, ok := record.GetString(field)
		if !ok {
			ctx.Report(record, missingID, Data("field", field))
			return
		}
		if strings.TrimSpace(value) == "" {
			ctx.Report(record, emptyID, Data("field", field))
		}
	}
}

// RequireStringFix behaves like RequireString and attaches an insert fix
// for the missing case and a replacement fix for the empty case.
func RequireStringFix(field, missingID, emptyID, placeholder string) CheckFunc {
	return func(ctx *Context, record *meta.Record) {
		value, ok := record.GetString(field)
		if !ok {
			fix := InsertFieldFix(ctx, record, field, quoteString(placeholder))
			ctx.ReportFix(record, missingID, Data("field", field), fix)
			return
		}
		if strings.TrimSpace(value) == "" {
			fix := ReplaceFieldFix(ctx, record, field, quoteString(placeholder))
			ctx.ReportFix(record, emptyID, Data("field", field), fix)
		}
	}
}

// RequireMinLength reports shortID when the field is a non-blank string
// shorter than the configured minimum. The minimum comes from the rule
// option named by optionKey, falling back to defaultMin. Length is
// measured in characters, not bytes.
func RequireMinLength(field, optionKey string, defaultMin int, shortID string) CheckFunc {
	return func(ctx *Context, record *meta.Record) {
		value, ok := record.GetString(field)
		if !ok || strings.TrimSpace(value) == "" {
			return
		}
		min := ctx.Options.Int(optionKey, defaultMin)
		if length := utf8.RuneCountInString(value); length < min {
			ctx.Report(record, shortID, Data(
				"field", field,
				"length", strconv.Itoa(length),
				"min", strconv.Itoa(min),
			))
		}
	}
}

// RequireMaxLength reports longID when the field is a string longer than
// the configured maximum
func RequireMaxLength(field, optionKey string, defaultMax int, longID string) CheckFunc {
	return func(ctx *Context, record *meta.Record) {
		value, ok := record.GetString(field)
		if !ok {
			return
		}
		max := ctx.Options.Int(optionKey, defaultMax)
		if length := utf8.RuneCountInString(value); length > max {
			ctx.Report(record, longID, Data(
				"field", field,
				"length", strconv.Itoa(length),
				"max", strconv.Itoa(max),
			))
		}
	}
}

// RequireNonEmptyList reports missingID when the field is absent or not a
// list, and emptyID when the list has no evaluable elements.
func RequireNonEmptyList(field, missingID, emptyID string) CheckFunc {
	return func(ctx *Context, record *meta.Record) {
		list, ok := record.GetList(field)
		if !ok {
			ctx.Report(record, missingID, Data("field", field))
			return
		}
		if len(list.Items) == 0 {
			ctx.Report(record, emptyID, Data("field", field))
		}
	}
}

// RequireRef reports missingID when the field is absent or not a symbolic
// reference
func RequireRef(field, missingID string) CheckFunc {
	return func(ctx *Context, record *meta.Record) {
		if _, ok := record.GetRef(field); !ok {
			ctx.Report(record, missingID, Data("field", field))
		}
	}
}

// RequireWhenEquals makes a field required only when a discriminator field
// holds a specific string value. The required field is satisfied by any
// present, non-empty value. emptyID may be empty when the rule does not
// model the presence/emptiness distinction.
func RequireWhenEquals(discriminator, equals, field, missingID, emptyID string) CheckFunc {
	return func(ctx *Context, record *meta.Record) {
		disc, ok := record.GetString(discriminator)
		if !ok || disc != equals {
			return
		}

		value, present := record.Fields.Get(field)
		if !present {
			ctx.Report(record, missingID, Data(
				"field", field,
				"discriminator", discriminator,
				"value", equals,
			))
			return
		}
		if emptyID != "" && isEmptyValue(value) {
			ctx.Report(record, emptyID, Data(
				"field", field,
				"discriminator", discriminator,
				"value", equals,
			))
		}
	}
}

// Order directs an ordering check across numeric subfields
type Order int

const (
	// OrderSkip means the record does not determine an order; check nothing
	OrderSkip Order = iota
	// OrderAscending requires strictly increasing values
	OrderAscending
	// OrderDescending requires strictly decreasing values
	OrderDescending
)

// RequireOrdering validates that the named numeric subfields of a nested
// mapping are strictly monotonic. The orientation is derived per record,
// typically from a direction field. Records with the mapping or any
// subfield missing are left to presence checks.
func RequireOrdering(mapField string, keys []string, orient func(*meta.Record) Order, messageID string) CheckFunc {
	return func(ctx *Context, record *meta.Record) {
		fields, ok := record.GetMap(mapField)
		if !ok {
			return
		}

		values := make([]float64, 0, len(keys))
		for _, key := range keys {
			value, present := fields.Get(key)
			if !present {
				return
			}
			number, isNumber := value.(*meta.NumberValue)
			if !isNumber {
				return
			}
			values = append(values, number.Val)
		}

		order := orient(record)
		if order == OrderSkip {
			return
		}

		for i := 1; i < len(values); i++ {
			violated := false
			switch order {
			case OrderAscending:
				violated = values[i] <= values[i-1]
			case OrderDescending:
				violated = values[i] >= values[i-1]
			}
			if violated {
				ctx.Report(record, messageID, Data(
					"field", mapField,
					"keys", strings.Join(keys, ", "),
					"values", formatValues(values),
				))
				return
			}
		}
	}
}

// isEmptyValue reports whether a present value counts as empty: a blank
// string or a list with no elements. Other shapes are never empty.
func isEmptyValue(value meta.Value) bool {
	switch v := value.(type) {
	case *meta.StringValue:
		return strings.TrimSpace(v.Val) == ""
	case *meta.ListValue:
		return len(v.Items) == 0
	default:
		return false
	}
}

// formatValues renders numbers for message substitution
func formatValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}
