package circuit

import "fmt"

// Kinds the model itself needs to recognise. Every other kind is opaque here
// and only gets meaning from its registered Behavior.
const (
	KindPin        = "pin"
	KindSubcircuit = "subcircuit"
)

// Default footprint of a component on the board grid.
const (
	DefaultWidth  = 2
	DefaultHeight = 2
)

// PortSpec declares one port of a component kind.
type PortSpec struct {
	Name  string
	Width int
}

// Behavior is the Go side of a component kind: its port layout and how it
// turns input values into driven output values.
type Behavior interface {
	Ports(props Properties) []PortSpec
	Evaluate(ev Eval)
}

// Eval is the view of one component during one evaluation pass.
type Eval interface {
	Component() *Component
	State() *State
	Input(port int) Value
	Drive(port int, v Value)
}

// Port is a connection point of a component. It is on at most one link.
type Port struct {
	Name  string
	Width int

	index int
	owner *Component
	link  *Link
}

// Component returns the component owning the port.
func (p *Port) Component() *Component { return p.owner }

// Index returns the position of the port on its component.
func (p *Port) Index() int { return p.index }

// Link returns the link the port is on, or nil.
func (p *Port) Link() *Link { return p.link }

func (p *Port) String() string {
	if p.owner == nil {
		return p.Name
	}
	return p.owner.ID + "." + p.Name
}

// Component is a node of a board graph.
type Component struct {
	ID    string
	Kind  string
	Props Properties

	X, Y int
	W, H int

	ports []*Port
	board *Board

	// set only for subcircuit components
	child   *Board
	subPins []*Component
}

// NewComponent creates a detached component with one port per spec.
func NewComponent(id, kind string, props Properties, specs []PortSpec) *Component {
	if props == nil {
		props = Properties{}
	}
	c := &Component{
		ID:    id,
		Kind:  kind,
		Props: props,
		W:     DefaultWidth,
		H:     DefaultHeight,
	}
	c.ports = make([]*Port, len(specs))
	for i, spec := range specs {
		c.ports[i] = &Port{Name: spec.Name, Width: spec.Width, index: i, owner: c}
	}
	return c
}

// NewSubcircuit creates a component instantiating child. Its ports mirror
// the pins of child, in listing order, as they are at creation time.
func NewSubcircuit(id string, props Properties, child *Board) *Component {
	if props == nil {
		props = Properties{}
	}
	var specs []PortSpec
	var pins []*Component
	for _, comp := range child.Components() {
		if comp.Kind != KindPin {
			continue
		}
		name := comp.Label()
		if name == "" {
			name = comp.ID
		}
		specs = append(specs, PortSpec{Name: name, Width: comp.Bits()})
		pins = append(pins, comp)
	}
	c := NewComponent(id, KindSubcircuit, props, specs)
	c.child = child
	c.subPins = pins
	return c
}

// Board returns the board the component is placed on.
func (c *Component) Board() *Board { return c.board }

// Ports returns the component's ports in declaration order.
func (c *Component) Ports() []*Port { return c.ports }

// Port returns port i, or nil when out of range.
func (c *Component) Port(i int) *Port {
	if i < 0 || i >= len(c.ports) {
		return nil
	}
	return c.ports[i]
}

// PortByName returns the port called name, or nil.
func (c *Component) PortByName(name string) *Port {
	for _, p := range c.ports {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Label returns the label property.
func (c *Component) Label() string { return c.Props.Label() }

// Bits returns the declared bit width.
func (c *Component) Bits() int { return c.Props.Bits() }

// IsSubcircuit reports whether the component references another board.
func (c *Component) IsSubcircuit() bool { return c.Kind == KindSubcircuit }

// Subcircuit returns the referenced board of a subcircuit component.
func (c *Component) Subcircuit() *Board { return c.child }

// SubcircuitPin returns the pin inside the referenced board that port i
// stands for.
func (c *Component) SubcircuitPin(i int) *Component {
	if i < 0 || i >= len(c.subPins) {
		return nil
	}
	return c.subPins[i]
}

// IsInputPin reports whether the component is a pin driven from outside.
func (c *Component) IsInputPin() bool {
	return c.Kind == KindPin && c.Props.String(PropDirection) == DirectionInput
}

func (c *Component) String() string {
	if label := c.Label(); label != "" {
		return fmt.Sprintf("%s %q (%s)", c.Kind, label, c.ID)
	}
	return fmt.Sprintf("%s (%s)", c.Kind, c.ID)
}
