package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/circuitprobe/internal/catalog"
	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// ValidateRegistry performs a strict parity check between manifests and Go code.
// Every manifest kind needs a behavior, every name must be unique, and every
// definition must produce a sane port layout from its default properties.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	seen := make(map[catalog.Name]string)
	used := make(map[string]bool)
	for _, def := range r.definitions {
		n := catalog.Name{Category: def.Category, Name: def.Name}
		if src, dup := seen[n]; dup {
			errs = append(errs, fmt.Sprintf("component '%s' defined twice (%s and %s)", n, src, def.Source))
			continue
		}
		seen[n] = def.Source

		if bits, ok := def.Properties[circuit.PropBits]; ok {
			if _, err := convert.Convert(bits, cty.Number); err != nil {
				errs = append(errs, fmt.Sprintf("component '%s': property 'bits' must be a number, got %s", n, bits.Type().FriendlyName()))
			}
		}

		if def.Kind == circuit.KindSubcircuit {
			continue
		}
		b, ok := r.behaviors[def.Kind]
		if !ok {
			errs = append(errs, fmt.Sprintf("component '%s': manifest declares kind '%s', but no Go behavior is registered for it", n, def.Kind))
			continue
		}
		used[def.Kind] = true

		if v, ok := b.(Validator); ok {
			if err := v.Validate(circuit.Properties(def.Properties)); err != nil {
				errs = append(errs, fmt.Sprintf("component '%s': default properties: %v", n, err))
			}
		}

		ports := make(map[string]bool)
		for _, spec := range b.Ports(circuit.Properties(def.Properties)) {
			if ports[spec.Name] {
				errs = append(errs, fmt.Sprintf("component '%s': behavior declares port '%s' twice", n, spec.Name))
			}
			ports[spec.Name] = true
			if spec.Width < 1 || spec.Width > 64 {
				errs = append(errs, fmt.Sprintf("component '%s': port '%s' has width %d", n, spec.Name, spec.Width))
			}
		}
	}

	for _, kind := range r.Kinds() {
		if !used[kind] {
			logger.Warn("Go behavior is registered but no manifest references its kind.", "kind", kind)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
