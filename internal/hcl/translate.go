package hcl

import (
	"context"
	"fmt"

	"github.com/specialistvlad/circuitprobe/internal/config"
	"github.com/specialistvlad/circuitprobe/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// translateComponentDefinition converts a manifest entry into the agnostic model.
func (l *Loader) translateComponentDefinition(ctx context.Context, s *componentDefinition, filename string) (*config.ComponentDefinition, error) {
	if s.Kind == "" {
		return nil, fmt.Errorf("%s: component %q/%q: kind must not be empty", filename, s.Category, s.Name)
	}
	props, err := objectAttributes(s.Properties)
	if err != nil {
		return nil, fmt.Errorf("%s: component %q/%q: properties: %w", filename, s.Category, s.Name, err)
	}
	ctxlog.FromContext(ctx).Debug("Translated component definition.", "category", s.Category, "name", s.Name, "kind", s.Kind)
	return &config.ComponentDefinition{
		Category:    s.Category,
		Name:        s.Name,
		Kind:        s.Kind,
		Description: s.Description,
		Properties:  props,
		Source:      filename,
	}, nil
}

// translateBoard converts a board block, evaluating every component attribute.
func (l *Loader) translateBoard(ctx context.Context, s *boardBlock, filename string) (*config.Board, error) {
	b := &config.Board{
		Name:   s.Name,
		Source: filename,
	}
	if s.Canvas != nil {
		b.Width = s.Canvas.Width
		b.Height = s.Canvas.Height
	}

	for _, c := range s.Components {
		attrs, diags := c.Remain.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("%s: board %q: component %q/%q: %w", filename, s.Name, c.Category, c.Name, diags)
		}
		values := make(map[string]cty.Value, len(attrs))
		for name, attr := range attrs {
			v, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("%s: board %q: component %q attribute %q: %w", filename, s.Name, c.ID, name, diags)
			}
			values[name] = v
		}
		b.Components = append(b.Components, &config.Component{
			Category:   c.Category,
			Name:       c.Name,
			ID:         c.ID,
			X:          c.X,
			Y:          c.Y,
			Attributes: values,
		})
	}

	for _, w := range s.Wires {
		if len(w.Connect) < 2 {
			return nil, fmt.Errorf("%s: board %q: a wire must connect at least two ports, got %v", filename, s.Name, w.Connect)
		}
		b.Wires = append(b.Wires, &config.Wire{Connect: w.Connect})
	}

	ctxlog.FromContext(ctx).Debug("Translated board.", "board", s.Name, "components", len(b.Components), "wires", len(b.Wires))
	return b, nil
}

// objectAttributes flattens an object or map value into its attributes.
func objectAttributes(v cty.Value) (map[string]cty.Value, error) {
	out := make(map[string]cty.Value)
	if v.IsNull() {
		return out, nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("value is not known")
	}
	ty := v.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("expected an object, got %s", ty.FriendlyName())
	}
	for k, attr := range v.AsValueMap() {
		out[k] = attr
	}
	return out, nil
}
