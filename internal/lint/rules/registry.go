// Package rules holds the lint rule catalog. The registry is a static
// write-once table of rule descriptors; the engine reads it at startup and
// never mutates it.
package rules

import "github.com/aabha-lang/aabhalint/internal/lint"

// All is the complete rule table, ordered by rule ID
var All = []*lint.Rule{
	actionTrigger,
	behaviorClauses,
	collaborationParticipants,
	contextDescription,
	contextLayerPattern,
	declarationName,
	descriptionLength,
	expectationDependencies,
	initiativeSponsor,
	interactionEndpoints,
	journeyPersona,
	journeyStages,
	metricThresholds,
	metricUnit,
	personaGoals,
	stakeholderConcerns,
	strategyHorizon,
	unknownField,
	witnessObserves,
}

// ByID returns the rule with the given identifier, or nil
func ByID(id string) *lint.Rule {
	for _, rule := range All {
		if rule.ID == id {
			return rule
		}
	}
	return nil
}

// IDs returns every registered rule identifier in table order
func IDs() []string {
	ids := make([]string, len(All))
	for i, rule := range All {
		ids[i] = rule.ID
	}
	return ids
}
