package builder

import (
	"fmt"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/config"
	"github.com/specialistvlad/circuitprobe/internal/registry"
)

// newComponent creates the detached component a block describes.
func newComponent(cc *config.Component, built map[string]*circuit.Board, r *registry.Registry) (*circuit.Component, error) {
	def, ok := r.Definition(cc.Category, cc.Name)
	if !ok {
		return nil, fmt.Errorf("component %q: unknown type %q/%q", cc.ID, cc.Category, cc.Name)
	}
	if def.Kind != circuit.KindSubcircuit {
		c, err := r.Instantiate(cc.Category, cc.Name, cc.ID, circuit.Properties(cc.Attributes))
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", cc.ID, err)
		}
		return c, nil
	}

	ref, ok := subcircuitRef(cc)
	if !ok {
		return nil, fmt.Errorf("component %q: subcircuit attribute is required", cc.ID)
	}
	child, ok := built[ref]
	if !ok {
		return nil, fmt.Errorf("component %q: board %q is not built yet", cc.ID, ref)
	}
	props := circuit.Properties(def.Properties).Clone()
	for k, v := range cc.Attributes {
		props[k] = v
	}
	return circuit.NewSubcircuit(cc.ID, props, child), nil
}

// place puts c on b at the block's coordinates, or on the first free cell
// scanning rows top to bottom when none are given.
func place(b *circuit.Board, c *circuit.Component, cc *config.Component) error {
	switch {
	case cc.X != nil && cc.Y != nil:
		c.X, c.Y = *cc.X, *cc.Y
	case cc.X != nil || cc.Y != nil:
		return fmt.Errorf("component %q: x and y must be given together", cc.ID)
	default:
		c.X, c.Y = freeCell(b, c.W, c.H)
	}
	return b.AddComponent(c)
}

func freeCell(b *circuit.Board, w, h int) (int, int) {
	stepX, stepY := w+1, h+1
	for y := 0; ; y += stepY {
		for x := 0; x == 0 || x+w <= b.Width; x += stepX {
			if b.IsValidLocation(x, y, w, h) {
				return x, y
			}
		}
	}
}
