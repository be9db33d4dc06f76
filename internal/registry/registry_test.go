package registry

import (
	"context"
	"testing"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type wireBehavior struct{ ports []string }

func (w wireBehavior) Ports(props circuit.Properties) []circuit.PortSpec {
	specs := make([]circuit.PortSpec, len(w.ports))
	for i, name := range w.ports {
		specs[i] = circuit.PortSpec{Name: name, Width: props.Bits()}
	}
	return specs
}

func (wireBehavior) Evaluate(circuit.Eval) {}

func def(category, name, kind string, props map[string]cty.Value) *config.ComponentDefinition {
	return &config.ComponentDefinition{Category: category, Name: name, Kind: kind, Properties: props, Source: "test.hcl"}
}

func TestRegisterKind_Panics(t *testing.T) {
	r := New()
	r.RegisterKind("tunnel", wireBehavior{ports: []string{"io"}})

	assert.Panics(t, func() { r.RegisterKind("tunnel", wireBehavior{}) }, "duplicate kind")
	assert.Panics(t, func() { r.RegisterKind(circuit.KindSubcircuit, wireBehavior{}) }, "reserved kind")
}

func TestValidateRegistry(t *testing.T) {
	testCases := []struct {
		name    string
		defs    []*config.ComponentDefinition
		wantErr string
	}{
		{
			name: "in sync",
			defs: []*config.ComponentDefinition{
				def("Wiring", "Tunnel", "tunnel", map[string]cty.Value{"bits": cty.NumberIntVal(4)}),
				def("Circuits", "Subcircuit", circuit.KindSubcircuit, nil),
			},
		},
		{
			name:    "kind without behavior",
			defs:    []*config.ComponentDefinition{def("Wiring", "Splitter", "splitter", nil)},
			wantErr: "no Go behavior is registered",
		},
		{
			name: "duplicate name",
			defs: []*config.ComponentDefinition{
				def("Wiring", "Tunnel", "tunnel", nil),
				def("Wiring", "Tunnel", "tunnel", nil),
			},
			wantErr: "defined twice",
		},
		{
			name:    "bits not a number",
			defs:    []*config.ComponentDefinition{def("Wiring", "Tunnel", "tunnel", map[string]cty.Value{"bits": cty.True})},
			wantErr: "property 'bits' must be a number",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := New()
			r.RegisterKind("tunnel", wireBehavior{ports: []string{"io"}})
			r.PopulateDefinitionsFromModel(&config.Model{Components: tc.defs})

			err := r.ValidateRegistry(context.Background())
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestInstantiate(t *testing.T) {
	r := New()
	r.RegisterKind("tunnel", wireBehavior{ports: []string{"io"}})
	r.PopulateDefinitionsFromModel(&config.Model{Components: []*config.ComponentDefinition{
		def("Wiring", "Tunnel", "tunnel", map[string]cty.Value{"bits": cty.NumberIntVal(1), "label": cty.StringVal("")}),
		def("Circuits", "Subcircuit", circuit.KindSubcircuit, nil),
	}})

	c, err := r.Instantiate("Wiring", "Tunnel", "t1", circuit.Properties{
		"label": cty.StringVal("sum"),
		"bits":  cty.NumberIntVal(8),
	})
	require.NoError(t, err)
	assert.Equal(t, "t1", c.ID)
	assert.Equal(t, "tunnel", c.Kind)
	assert.Equal(t, "sum", c.Label())
	require.Len(t, c.Ports(), 1)
	assert.Equal(t, 8, c.Port(0).Width)

	d, ok := r.Definition("Wiring", "Tunnel")
	require.True(t, ok)
	assert.Equal(t, "", circuit.Properties(d.Properties).Label(), "manifest defaults must not change")

	_, err = r.Instantiate("Wiring", "Nope", "", nil)
	assert.Error(t, err)
	_, err = r.Instantiate("Circuits", "Subcircuit", "", nil)
	assert.Error(t, err)
	_, err = r.Instantiate("Wiring", "Tunnel", "", circuit.Properties{"bits": cty.NumberIntVal(65)})
	assert.Error(t, err)

	descs := r.Descriptors()
	require.Len(t, descs, 2)
	assert.Equal(t, "Tunnel", descs[0].Name)
}

func TestInstantiate_IdentifyingProperties(t *testing.T) {
	r := New()
	r.RegisterKind("pin", wireBehavior{ports: []string{"io"}})
	r.PopulateDefinitionsFromModel(&config.Model{Components: []*config.ComponentDefinition{
		def("Wiring", "Input Pin", "pin", map[string]cty.Value{"bits": cty.NumberIntVal(1), "direction": cty.StringVal("input")}),
		def("Wiring", "Output Pin", "pin", map[string]cty.Value{"bits": cty.NumberIntVal(1), "direction": cty.StringVal("output")}),
	}})

	assert.Equal(t, map[string]bool{"direction": true}, r.identifyingKeys("pin"))
	assert.Nil(t, r.identifyingKeys("tunnel"))

	_, err := r.Instantiate("Wiring", "Input Pin", "a", circuit.Properties{"direction": cty.StringVal("output")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `property "direction" selects the component type`)

	c, err := r.Instantiate("Wiring", "Input Pin", "a", circuit.Properties{
		"direction": cty.StringVal("input"),
		"bits":      cty.NumberIntVal(4),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, c.Bits())
}
