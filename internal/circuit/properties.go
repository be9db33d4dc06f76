package circuit

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Well-known property keys.
const (
	PropLabel      = "label"
	PropBits       = "bits"
	PropDirection  = "direction"
	PropSubcircuit = "subcircuit"
)

// Pin directions, as stored in the direction property.
const (
	DirectionInput  = "input"
	DirectionOutput = "output"
)

// Properties is the attribute set of a component or descriptor.
type Properties map[string]cty.Value

// Clone returns a shallow copy; cty values are immutable.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Keys returns the property keys in sorted order.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the raw value for key.
func (p Properties) Get(key string) (cty.Value, bool) {
	v, ok := p[key]
	return v, ok
}

// String returns key converted to a string, or "" when absent or not convertible.
func (p Properties) String(key string) string {
	v, ok := p[key]
	if !ok || v.IsNull() || !v.IsKnown() {
		return ""
	}
	sv, err := convert.Convert(v, cty.String)
	if err != nil {
		return ""
	}
	return sv.AsString()
}

// Int returns key converted to an int, or def when absent or not convertible.
func (p Properties) Int(key string, def int) int {
	v, ok := p[key]
	if !ok || v.IsNull() || !v.IsKnown() {
		return def
	}
	nv, err := convert.Convert(v, cty.Number)
	if err != nil {
		return def
	}
	var n int
	if err := gocty.FromCtyValue(nv, &n); err != nil {
		return def
	}
	return n
}

// Bool returns key converted to a bool, or def when absent or not convertible.
func (p Properties) Bool(key string, def bool) bool {
	v, ok := p[key]
	if !ok || v.IsNull() || !v.IsKnown() {
		return def
	}
	bv, err := convert.Convert(v, cty.Bool)
	if err != nil {
		return def
	}
	return bv.True()
}

// Label returns the optional label, "" when unset.
func (p Properties) Label() string {
	return p.String(PropLabel)
}

// Bits returns the declared bit width, 1 when unset.
func (p Properties) Bits() int {
	return p.Int(PropBits, 1)
}
