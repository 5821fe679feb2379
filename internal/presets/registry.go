package presets

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages the available presets
type Registry struct {
	presets map[string]*Preset
	mutex   sync.RWMutex
}

// NewRegistry creates an empty preset registry
func NewRegistry() *Registry {
	return &Registry{
		presets: make(map[string]*Preset),
	}
}

// Register adds a preset to the registry
func (r *Registry) Register(preset *Preset) error {
	if err := preset.Validate(); err != nil {
		return fmt.Errorf("invalid preset: %w", err)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.presets[preset.Name]; exists {
		return fmt.Errorf("preset %s already registered", preset.Name)
	}

	r.presets[preset.Name] = preset
	return nil
}

// Get retrieves a preset by name
func (r *Registry) Get(name string) (*Preset, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	preset, exists := r.presets[name]
	if !exists {
		return nil, fmt.Errorf("preset %s not found", name)
	}

	return preset, nil
}

// List returns all registered presets sorted by name
func (r *Registry) List() []*Preset {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	presets := make([]*Preset, 0, len(r.presets))
	for _, preset := range r.presets {
		presets = append(presets, preset)
	}
	sort.Slice(presets, func(i, j int) bool {
		return presets[i].Name < presets[j].Name
	})

	return presets
}

// Names returns the registered preset names sorted alphabetically
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Exists checks if a preset is registered
func (r *Registry) Exists(name string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	_, exists := r.presets[name]
	return exists
}

// Builtin returns a registry preloaded with the shipped presets
func Builtin() (*Registry, error) {
	registry := NewRegistry()

	for _, preset := range []*Preset{
		NewRecommendedPreset(),
		NewStrictPreset(),
		NewRelaxedPreset(),
	} {
		if err := registry.Register(preset); err != nil {
			return nil, fmt.Errorf("failed to register preset %s: %w", preset.Name, err)
		}
	}

	return registry, nil
}
