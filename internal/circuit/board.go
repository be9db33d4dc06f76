package circuit

import (
	"fmt"
	"strconv"
)

// Default canvas size, in grid units, of a board that declares none.
const (
	DefaultCanvasWidth  = 64
	DefaultCanvasHeight = 48
)

// Board is a named, mutable graph of components (a "subcircuit").
type Board struct {
	Name   string
	Width  int
	Height int

	components []*Component
	byID       map[string]*Component
	version    uint64
	doc        *Document
	nextID     int
}

// NewBoard returns an empty board. Non-positive canvas sizes take the defaults.
func NewBoard(name string, width, height int) *Board {
	if width <= 0 {
		width = DefaultCanvasWidth
	}
	if height <= 0 {
		height = DefaultCanvasHeight
	}
	return &Board{
		Name:   name,
		Width:  width,
		Height: height,
		byID:   make(map[string]*Component),
	}
}

// Components returns the components in listing order.
func (b *Board) Components() []*Component {
	out := make([]*Component, len(b.components))
	copy(out, b.components)
	return out
}

// Component returns the component with the given id, or nil.
func (b *Board) Component(id string) *Component {
	return b.byID[id]
}

// Document returns the document owning the board, nil while detached.
func (b *Board) Document() *Document { return b.doc }

// Version changes whenever components are added or ports change links.
func (b *Board) Version() uint64 { return b.version }

// AddComponent places c on the board. Ids are unique per board.
func (b *Board) AddComponent(c *Component) error {
	if c.board != nil {
		return fmt.Errorf("component %s is already on board %q", c.ID, c.board.Name)
	}
	if c.ID == "" {
		c.ID = b.FreshID(c.Kind)
	}
	if _, exists := b.byID[c.ID]; exists {
		return fmt.Errorf("board %q already has a component with id %q", b.Name, c.ID)
	}
	c.board = b
	b.components = append(b.components, c)
	b.byID[c.ID] = c
	b.version++
	return nil
}

// FreshID returns an id starting with prefix that no component uses yet.
func (b *Board) FreshID(prefix string) string {
	for {
		b.nextID++
		id := prefix + "#" + strconv.Itoa(b.nextID)
		if _, exists := b.byID[id]; !exists {
			return id
		}
	}
}

// IsValidLocation reports whether a w*h footprint at (x, y) is on the
// non-negative grid and overlaps no component. Locations outside the canvas
// are valid; the canvas only bounds what is visible.
func (b *Board) IsValidLocation(x, y, w, h int) bool {
	if x < 0 || y < 0 {
		return false
	}
	for _, c := range b.components {
		if x < c.X+c.W && c.X < x+w && y < c.Y+c.H && c.Y < y+h {
			return false
		}
	}
	return true
}

// Links returns every distinct link reachable from the board's ports, in
// component listing order.
func (b *Board) Links() []*Link {
	seen := make(map[*Link]struct{})
	var out []*Link
	for _, c := range b.components {
		for _, p := range c.ports {
			if p.link == nil {
				continue
			}
			if _, ok := seen[p.link]; ok {
				continue
			}
			seen[p.link] = struct{}{}
			out = append(out, p.link)
		}
	}
	return out
}

// Document is a loaded circuit file: a set of uniquely named boards.
type Document struct {
	Path string

	boards []*Board
	byName map[string]*Board
}

// NewDocument returns an empty document.
func NewDocument(path string) *Document {
	return &Document{Path: path, byName: make(map[string]*Board)}
}

// AddBoard registers b under its name.
func (d *Document) AddBoard(b *Board) error {
	if _, exists := d.byName[b.Name]; exists {
		return fmt.Errorf("document already has a board named %q", b.Name)
	}
	if b.doc != nil && b.doc != d {
		return fmt.Errorf("board %q belongs to another document", b.Name)
	}
	b.doc = d
	d.boards = append(d.boards, b)
	d.byName[b.Name] = b
	return nil
}

// Board returns the board with exactly this name.
func (d *Document) Board(name string) (*Board, bool) {
	b, ok := d.byName[name]
	return b, ok
}

// Boards returns the boards in declaration order.
func (d *Document) Boards() []*Board {
	out := make([]*Board, len(d.boards))
	copy(out, d.boards)
	return out
}

// BoardsByName returns a copy of the name to board map.
func (d *Document) BoardsByName() map[string]*Board {
	out := make(map[string]*Board, len(d.byName))
	for k, v := range d.byName {
		out[k] = v
	}
	return out
}
