package registry

import (
	"fmt"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/config"
)

// Validator is implemented by behaviors whose properties need checking
// beyond the bit width.
type Validator interface {
	Validate(props circuit.Properties) error
}

// Instantiate creates a detached component of the catalog type (category,
// name). Its properties are the manifest defaults overlaid with overrides,
// and its ports come from the kind's behavior. An empty id lets the board
// assign one on placement.
func (r *Registry) Instantiate(category, name, id string, overrides circuit.Properties) (*circuit.Component, error) {
	def, ok := r.Definition(category, name)
	if !ok {
		return nil, fmt.Errorf("unknown component %q/%q", category, name)
	}
	if def.Kind == circuit.KindSubcircuit {
		return nil, fmt.Errorf("component %q/%q references a board and must be built from a document", category, name)
	}
	b, ok := r.behaviors[def.Kind]
	if !ok {
		return nil, fmt.Errorf("component %q/%q: no behavior registered for kind %q", category, name, def.Kind)
	}

	identifying := r.identifyingKeys(def.Kind)
	props := circuit.Properties(def.Properties).Clone()
	for k, v := range overrides {
		if identifying[k] && !v.RawEquals(def.Properties[k]) {
			return nil, fmt.Errorf("component %q/%q: property %q selects the component type and cannot be overridden", category, name, k)
		}
		props[k] = v
	}
	if bits := props.Bits(); bits < 1 || bits > 64 {
		return nil, fmt.Errorf("component %q/%q: bits must be between 1 and 64, got %d", category, name, bits)
	}
	if v, ok := b.(Validator); ok {
		if err := v.Validate(props); err != nil {
			return nil, fmt.Errorf("component %q/%q: %w", category, name, err)
		}
	}
	return circuit.NewComponent(id, def.Kind, props, b.Ports(props)), nil
}

// identifyingKeys returns the properties that tell the definitions of kind
// apart: carried by all of them with pairwise distinct defaults. Changing
// one would turn an instance into a different catalog type.
func (r *Registry) identifyingKeys(kind string) map[string]bool {
	var group []*config.ComponentDefinition
	for _, d := range r.definitions {
		if d.Kind == kind {
			group = append(group, d)
		}
	}
	if len(group) < 2 {
		return nil
	}
	keys := make(map[string]bool)
	for k := range group[0].Properties {
		if distinctDefaults(group, k) {
			keys[k] = true
		}
	}
	return keys
}

func distinctDefaults(group []*config.ComponentDefinition, key string) bool {
	for i, a := range group {
		va, ok := a.Properties[key]
		if !ok {
			return false
		}
		for _, b := range group[i+1:] {
			if vb, ok := b.Properties[key]; !ok || va.RawEquals(vb) {
				return false
			}
		}
	}
	return true
}
