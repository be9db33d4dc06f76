package registry

import (
	"fmt"
	"log/slog"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
)

// RegisterKind registers the Go behavior of a component kind.
func (r *Registry) RegisterKind(kind string, b circuit.Behavior) {
	if kind == circuit.KindSubcircuit {
		panic("the subcircuit kind is built in and cannot be registered")
	}
	if _, exists := r.behaviors[kind]; exists {
		panic(fmt.Sprintf("behavior for kind '%s' already registered", kind))
	}
	slog.Debug("Registering component behavior.", "kind", kind)
	r.behaviors[kind] = b
}

// Behavior returns the behavior registered for kind.
func (r *Registry) Behavior(kind string) (circuit.Behavior, bool) {
	b, ok := r.behaviors[kind]
	return b, ok
}
