package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot is used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Components []*componentDefinition `hcl:"component,block"`
	Boards     []*boardBlock          `hcl:"board,block"`
	Remain     hcl.Body               `hcl:",remain"`
}

// --- Manifest Schemas ---

// componentDefinition is one entry of a component manifest.
type componentDefinition struct {
	Category    string    `hcl:"category,label"`
	Name        string    `hcl:"name,label"`
	Kind        string    `hcl:"kind"`
	Description string    `hcl:"description,optional"`
	Properties  cty.Value `hcl:"properties,optional"`
}

// --- Board Schemas ---

// boardBlock is a named circuit inside a document.
type boardBlock struct {
	Name       string            `hcl:"name,label"`
	Canvas     *canvasBlock      `hcl:"canvas,block"`
	Components []*componentBlock `hcl:"component,block"`
	Wires      []*wireBlock      `hcl:"wire,block"`
}

type canvasBlock struct {
	Width  int `hcl:"width,optional"`
	Height int `hcl:"height,optional"`
}

// componentBlock is a placed instance. Every attribute other than the
// reserved ones is kept as a property override.
type componentBlock struct {
	Category string   `hcl:"category,label"`
	Name     string   `hcl:"name,label"`
	ID       string   `hcl:"id,optional"`
	X        *int     `hcl:"x,optional"`
	Y        *int     `hcl:"y,optional"`
	Remain   hcl.Body `hcl:",remain"`
}

type wireBlock struct {
	Connect []string `hcl:"connect"`
}
