// Package catalog maps between the human-facing (category, name) of a
// component type and the internal handle that identifies live components of
// that type.
//
// Several descriptors may share a Go kind (all gates are kind "gate", both
// pin directions are kind "pin"). For such kinds the catalog picks a
// discriminator: the first property key, in sorted order, that every
// descriptor of the kind carries and whose default value differs between
// all of them. A kind with a single descriptor needs no discriminator.
package catalog

import (
	"fmt"
	"sort"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/names"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Descriptor is one entry of the component catalog.
type Descriptor struct {
	Kind        string
	Category    string
	Name        string
	Description string
	Properties  circuit.Properties
}

// Name is the human-facing identity of a component type.
type Name struct {
	Category string
	Name     string
}

func (n Name) String() string {
	return n.Category + "/" + n.Name
}

// Handle identifies a component type internally. Value holds the rendered
// discriminator value so handles stay comparable.
type Handle struct {
	Kind          string
	Discriminator string
	Value         string
}

// Matches reports whether c is a live instance of the type h identifies.
func (h Handle) Matches(c *circuit.Component) bool {
	if c == nil || c.Kind != h.Kind {
		return false
	}
	if h.Discriminator == "" {
		return true
	}
	v, ok := c.Props.Get(h.Discriminator)
	if !ok {
		return false
	}
	rendered, err := render(v)
	if err != nil {
		return false
	}
	return rendered == h.Value
}

func (h Handle) String() string {
	if h.Discriminator == "" {
		return h.Kind
	}
	return fmt.Sprintf("%s[%s=%s]", h.Kind, h.Discriminator, h.Value)
}

// CatalogError reports a catalog that cannot be built, or a live component
// the catalog cannot identify.
type CatalogError struct {
	Kind   string
	Reason string
}

func (e *CatalogError) Error() string {
	if e.Kind == "" {
		return "catalog: " + e.Reason
	}
	return fmt.Sprintf("catalog: kind %q: %s", e.Kind, e.Reason)
}

// Catalog is immutable once built.
type Catalog struct {
	handleByName map[Name]Handle
	nameByHandle map[Handle]Name
	handles      map[string][]Handle
	descriptors  map[Name]Descriptor

	categories map[string]string
	names      map[string]string
}

// Build creates a catalog from descs. Two descriptors with the same
// category and name are an error, as is a shared kind whose descriptors
// cannot be told apart by any common property.
func Build(descs []Descriptor) (*Catalog, error) {
	c := &Catalog{
		handleByName: make(map[Name]Handle),
		nameByHandle: make(map[Handle]Name),
		handles:      make(map[string][]Handle),
		descriptors:  make(map[Name]Descriptor),
		categories:   make(map[string]string),
		names:        make(map[string]string),
	}

	var kinds []string
	byKind := make(map[string][]Descriptor)
	for _, d := range descs {
		n := Name{Category: d.Category, Name: d.Name}
		if _, dup := c.descriptors[n]; dup {
			return nil, &CatalogError{Kind: d.Kind, Reason: fmt.Sprintf("duplicate component %s", n)}
		}
		c.descriptors[n] = d
		if _, seen := byKind[d.Kind]; !seen {
			kinds = append(kinds, d.Kind)
		}
		byKind[d.Kind] = append(byKind[d.Kind], d)
	}

	for _, kind := range kinds {
		group := byKind[kind]
		key := ""
		if len(group) > 1 {
			var err error
			key, err = discriminator(kind, group)
			if err != nil {
				return nil, err
			}
		}
		for _, d := range group {
			h := Handle{Kind: kind, Discriminator: key}
			if key != "" {
				rendered, err := render(d.Properties[key])
				if err != nil {
					return nil, &CatalogError{Kind: kind, Reason: fmt.Sprintf("property %q of %s: %v", key, Name{d.Category, d.Name}, err)}
				}
				h.Value = rendered
			}
			n := Name{Category: d.Category, Name: d.Name}
			c.handleByName[n] = h
			c.nameByHandle[h] = n
			c.handles[kind] = append(c.handles[kind], h)
			c.categories[names.Canonical(d.Category)] = d.Category
			c.names[names.Canonical(d.Name)] = d.Name
		}
	}

	// Every descriptor must resolve back to itself through the live-component path.
	for n, d := range c.descriptors {
		live := circuit.NewComponent("", d.Kind, d.Properties, nil)
		got, err := c.NameOf(live)
		if err != nil {
			return nil, err
		}
		if got != n {
			return nil, &CatalogError{Kind: d.Kind, Reason: fmt.Sprintf("%s resolves to %s", n, got)}
		}
	}
	return c, nil
}

// discriminator picks the property key separating every descriptor of kind.
func discriminator(kind string, group []Descriptor) (string, error) {
	common := make(map[string]int)
	for _, d := range group {
		for _, k := range d.Properties.Keys() {
			common[k]++
		}
	}
	var keys []string
	for k, n := range common {
		if n == len(group) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		if distinct(group, key) {
			return key, nil
		}
	}
	return "", &CatalogError{Kind: kind, Reason: fmt.Sprintf("no common property distinguishes its %d descriptors", len(group))}
}

func distinct(group []Descriptor, key string) bool {
	for i := range group {
		for j := i + 1; j < len(group); j++ {
			if group[i].Properties[key].RawEquals(group[j].Properties[key]) {
				return false
			}
		}
	}
	return true
}

// render turns a discriminator value into a comparable string. The type is
// part of the rendering, so 1 and "1" stay distinct.
func render(v cty.Value) (string, error) {
	if v.IsNull() {
		return "null", nil
	}
	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return "", err
	}
	return v.Type().FriendlyName() + ":" + string(b), nil
}

// HandleOf returns the handle of the type c is an instance of.
func (c *Catalog) HandleOf(comp *circuit.Component) (Handle, error) {
	var found []Handle
	for _, h := range c.handles[comp.Kind] {
		if h.Matches(comp) {
			found = append(found, h)
		}
	}
	if len(found) != 1 {
		return Handle{}, &CatalogError{Kind: comp.Kind, Reason: fmt.Sprintf("number of handle matches for %s is %d, not 1", comp, len(found))}
	}
	return found[0], nil
}

// NameOf returns the catalog name of the type c is an instance of.
func (c *Catalog) NameOf(comp *circuit.Component) (Name, error) {
	h, err := c.HandleOf(comp)
	if err != nil {
		return Name{}, err
	}
	return c.nameByHandle[h], nil
}

// Lookup returns the handle for an exact (category, name) pair.
func (c *Catalog) Lookup(category, name string) (Handle, error) {
	h, ok := c.handleByName[Name{Category: category, Name: name}]
	if !ok {
		return Handle{}, fmt.Errorf("no component %s/%s in catalog", category, name)
	}
	return h, nil
}

// Descriptor returns the descriptor registered under n.
func (c *Catalog) Descriptor(n Name) (Descriptor, bool) {
	d, ok := c.descriptors[n]
	return d, ok
}

// Category returns the declared spelling of a category, matched canonically.
func (c *Catalog) Category(s string) (string, bool) {
	v, ok := c.categories[names.Canonical(s)]
	return v, ok
}

// ComponentName returns the declared spelling of a component name, matched
// canonically.
func (c *Catalog) ComponentName(s string) (string, bool) {
	v, ok := c.names[names.Canonical(s)]
	return v, ok
}

// Names returns every catalog name, sorted by category then name.
func (c *Catalog) Names() []Name {
	out := make([]Name, 0, len(c.handleByName))
	for n := range c.handleByName {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// InCategory returns the handles of every type filed under category.
func (c *Catalog) InCategory(category string) []Handle {
	var out []Handle
	for _, n := range c.Names() {
		if n.Category == category {
			out = append(out, c.handleByName[n])
		}
	}
	return out
}

// Named returns the handles of every type called name, in any category.
func (c *Catalog) Named(name string) []Handle {
	var out []Handle
	for _, n := range c.Names() {
		if n.Name == name {
			out = append(out, c.handleByName[n])
		}
	}
	return out
}
