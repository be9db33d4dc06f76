package builder

import (
	"fmt"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// subcircuitRef returns the board name a component block references, if any.
func subcircuitRef(cc *config.Component) (string, bool) {
	v, ok := cc.Attributes[circuit.PropSubcircuit]
	if !ok || v.IsNull() || !v.IsKnown() {
		return "", false
	}
	sv, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", false
	}
	return sv.AsString(), true
}

// boardOrder sorts boards so that referenced boards come first. It uses a
// depth-first search with temporary and permanent marks; meeting a
// temporarily marked board means a reference cycle.
func boardOrder(boards []*config.Board) ([]*config.Board, error) {
	byName := make(map[string]*config.Board, len(boards))
	for _, b := range boards {
		if _, dup := byName[b.Name]; dup {
			return nil, fmt.Errorf("duplicate board name %q", b.Name)
		}
		byName[b.Name] = b
	}

	var order []*config.Board
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(b *config.Board) error
	visit = func(b *config.Board) error {
		if permanent[b.Name] {
			return nil
		}
		if temporary[b.Name] {
			return fmt.Errorf("board %q references itself through its subcircuits", b.Name)
		}
		temporary[b.Name] = true
		for _, cc := range b.Components {
			ref, ok := subcircuitRef(cc)
			if !ok {
				continue
			}
			child, exists := byName[ref]
			if !exists {
				return fmt.Errorf("board %q: component %q references unknown board %q", b.Name, cc.ID, ref)
			}
			if err := visit(child); err != nil {
				return err
			}
		}
		delete(temporary, b.Name)
		permanent[b.Name] = true
		order = append(order, b)
		return nil
	}

	for _, b := range boards {
		if err := visit(b); err != nil {
			return nil, err
		}
	}
	return order, nil
}
