package registry

import (
	"sort"

	"github.com/specialistvlad/circuitprobe/internal/catalog"
	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/config"
)

// Module is the interface that all component libraries implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered behaviors and manifest definitions for a
// single application instance.
type Registry struct {
	behaviors   map[string]circuit.Behavior
	definitions []*config.ComponentDefinition
	byName      map[catalog.Name]*config.ComponentDefinition
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		behaviors: make(map[string]circuit.Behavior),
		byName:    make(map[catalog.Name]*config.ComponentDefinition),
	}
}

// PopulateDefinitionsFromModel copies the manifest definitions of model into
// the registry. The first definition of a name wins lookups; duplicates are
// reported by ValidateRegistry.
func (r *Registry) PopulateDefinitionsFromModel(model *config.Model) {
	for _, def := range model.Components {
		r.definitions = append(r.definitions, def)
		n := catalog.Name{Category: def.Category, Name: def.Name}
		if _, exists := r.byName[n]; !exists {
			r.byName[n] = def
		}
	}
}

// Definition returns the manifest definition of an exact (category, name).
func (r *Registry) Definition(category, name string) (*config.ComponentDefinition, bool) {
	def, ok := r.byName[catalog.Name{Category: category, Name: name}]
	return def, ok
}

// Definitions returns every definition in load order.
func (r *Registry) Definitions() []*config.ComponentDefinition {
	return r.definitions
}

// Descriptors converts the definitions into catalog descriptors.
func (r *Registry) Descriptors() []catalog.Descriptor {
	out := make([]catalog.Descriptor, 0, len(r.definitions))
	for _, def := range r.definitions {
		out = append(out, catalog.Descriptor{
			Kind:        def.Kind,
			Category:    def.Category,
			Name:        def.Name,
			Description: def.Description,
			Properties:  circuit.Properties(def.Properties).Clone(),
		})
	}
	return out
}

// Kinds returns the registered behavior kinds, sorted.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.behaviors))
	for k := range r.behaviors {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
