// Package strings holds identifier case conversions shared by the rule
// catalog and the editor tooling.
package strings

import (
	"strings"
	"unicode"
)

// ToPascalCase renders an identifier in PascalCase. Underscore-separated
// segments are joined with their first letter capitalized (branch_customer
// -> BranchCustomer); a bare lowerCamel name just gains its leading capital
// (branchCustomer -> BranchCustomer). Digits pass through unchanged.
func ToPascalCase(s string) string {
	var result strings.Builder
	upperNext := true

	for _, r := range s {
		if r == '_' {
			upperNext = true
			continue
		}
		if upperNext && unicode.IsLetter(r) {
			result.WriteRune(unicode.ToUpper(r))
			upperNext = false
			continue
		}
		result.WriteRune(r)
		upperNext = false
	}
	return result.String()
}
