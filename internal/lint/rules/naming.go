package rules

import (
	"regexp"

	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/meta"
	utilstrings "github.com/aabha-lang/aabhalint/internal/util/strings"
)

const defaultNamePattern = `^[A-Z][A-Za-z0-9]*$`

var compiledDefaultName = regexp.MustCompile(defaultNamePattern)

var declarationName = &lint.Rule{
	ID:          "declaration-name",
	Description: "recommend PascalCase names for annotated declarations",
	Severity:    lint.SeveritySuggestion,
	Messages: map[string]string{
		"invalidName":      "class name '{{class}}' does not match the naming pattern {{pattern}}",
		"preferPascalCase": "class name '{{class}}' should be PascalCase; consider '{{suggestion}}'",
	},
	Check: checkDeclarationName,
}

func checkDeclarationName(ctx *lint.Context, record *meta.Record) {
	// A class can carry several annotations; report the name once, anchored
	// at the first recognized one.
	if !firstRecognizedDecorator(record) {
		return
	}

	pattern := ctx.Options.String("pattern", defaultNamePattern)
	name := compiledDefaultName
	if pattern != defaultNamePattern {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			// Bad configuration falls back to the default pattern.
			pattern = defaultNamePattern
		} else {
			name = compiled
		}
	}

	if name.MatchString(record.ClassName) {
		return
	}

	// Under the default pattern, offer the PascalCase rendering when one
	// exists. Custom patterns get the generic message.
	if pattern == defaultNamePattern {
		suggestion := utilstrings.ToPascalCase(record.ClassName)
		if suggestion != record.ClassName && compiledDefaultName.MatchString(suggestion) {
			ctx.Report(record, "preferPascalCase", lint.Data("suggestion", suggestion))
			return
		}
	}
	ctx.Report(record, "invalidName", lint.Data("pattern", pattern))
}

func firstRecognizedDecorator(record *meta.Record) bool {
	for _, decorator := range record.Class.Decorators {
		if meta.IsDomainDecorator(decorator.Name) {
			return decorator == record.Node
		}
	}
	return false
}

var descriptionLength = &lint.Rule{
	ID:          "description-length",
	Description: "keep descriptions within configurable length bounds",
	Kinds: []string{
		meta.KindBusinessInitiative,
		meta.KindExpectation,
		meta.KindJourney,
		meta.KindMetric,
		meta.KindStrategy,
	},
	Severity: lint.SeveritySuggestion,
	Messages: map[string]string{
		"shortDescription": "'description' on @{{kind}} '{{class}}' is too short ({{length}} characters, minimum {{min}})",
		"longDescription":  "'description' on @{{kind}} '{{class}}' is too long ({{length}} characters, maximum {{max}})",
	},
	Check: lint.All(
		lint.RequireMinLength("description", "min", 10, "shortDescription"),
		lint.RequireMaxLength("description", "max", 500, "longDescription"),
	),
}
