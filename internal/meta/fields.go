package meta

// knownFields lists the fields each decorator kind commonly carries. The
// table feeds editor completion, the rules documentation, and the
// unknown-field vocabulary check.
var knownFields = map[string][]string{
	KindAction:             {"name", "description", "mode", "trigger", "outcome"},
	KindBehavior:           {"name", "description", "given", "when", "then"},
	KindBusinessInitiative: {"name", "description", "sponsor", "target", "horizon"},
	KindCollaboration:      {"name", "description", "participants", "coordinator"},
	KindContext:            {"name", "description", "layer", "pattern"},
	KindExpectation:        {"name", "description", "dependsOn", "criteria"},
	KindInteraction:        {"name", "description", "from", "to", "channel"},
	KindJourney:            {"name", "description", "persona", "stages"},
	KindMetric:             {"name", "description", "unit", "direction", "thresholds"},
	KindPersona:            {"name", "description", "goals", "frustrations"},
	KindStakeholder:        {"name", "description", "concerns", "influence"},
	KindStrategy:           {"name", "description", "horizon", "initiatives"},
	KindWitness:            {"name", "description", "observes", "evidence"},
}

// KnownFields returns the commonly used fields of a decorator kind, or
// nil for unrecognized kinds
func KnownFields(kind string) []string {
	return knownFields[kind]
}
