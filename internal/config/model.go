package config

import "github.com/zclconf/go-cty/cty"

// Model is the unified, format-agnostic representation of everything a set
// of configuration files declares.
type Model struct {
	Components []*ComponentDefinition
	Boards     []*Board
}

// Merge appends the content of other to m.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Components = append(m.Components, other.Components...)
	m.Boards = append(m.Boards, other.Boards...)
}

// --- Manifest Models ---

// ComponentDefinition is the format-agnostic representation of one
// component manifest entry.
type ComponentDefinition struct {
	Category    string
	Name        string
	Kind        string
	Description string
	Properties  map[string]cty.Value
	Source      string
}

// --- Board Models ---

// Board is one named circuit of a document.
type Board struct {
	Name       string
	Width      int
	Height     int
	Components []*Component
	Wires      []*Wire
	Source     string
}

// Component is one placed instance inside a board. Attributes holds every
// property written on the instance; catalog defaults are applied later.
type Component struct {
	Category   string
	Name       string
	ID         string
	X, Y       *int
	Attributes map[string]cty.Value
}

// Wire joins ports written as "component.port" or "component.port[i]".
type Wire struct {
	Connect []string
}
