package presets

// NewRecommendedPreset creates the default preset. It carries no overrides:
// the registry severities and option defaults already are the recommended
// configuration.
func NewRecommendedPreset() *Preset {
	return &Preset{
		Name:        "recommended",
		Description: "the registry defaults",
	}
}
