package circuit

// State is the live signal state of one instantiation of a board.
type State struct {
	board    *Board
	parent   *State
	values   map[*Link]Value
	scratch  map[*Component]any
	children map[*Component]*State
}

// NewState returns a fresh top-level state for b.
func NewState(b *Board) *State {
	return &State{
		board:    b,
		values:   make(map[*Link]Value),
		scratch:  make(map[*Component]any),
		children: make(map[*Component]*State),
	}
}

// Board returns the topology this state instantiates.
func (s *State) Board() *Board { return s.board }

// Parent returns the state of the enclosing board, nil at top level.
func (s *State) Parent() *State { return s.parent }

// Child returns the state of the board instantiated by sub within s,
// creating it on first use. It returns nil for non-subcircuit components.
func (s *State) Child(sub *Component) *State {
	if !sub.IsSubcircuit() || sub.child == nil {
		return nil
	}
	if child, ok := s.children[sub]; ok {
		return child
	}
	child := NewState(sub.child)
	child.parent = s
	s.children[sub] = child
	return child
}

// LinkValue returns the value last settled on l.
func (s *State) LinkValue(l *Link) Value {
	if l == nil {
		return Floating(0)
	}
	if v, ok := s.values[l]; ok {
		return v
	}
	return Floating(l.width)
}

// SetLinkValue records the settled value of l.
func (s *State) SetLinkValue(l *Link, v Value) {
	s.values[l] = v
}

// PortValue returns the value seen by p; unconnected ports float.
func (s *State) PortValue(p *Port) Value {
	if p.link == nil {
		return Floating(p.Width)
	}
	return s.LinkValue(p.link)
}

// Scratch returns the per-component data stored for c.
func (s *State) Scratch(c *Component) any {
	return s.scratch[c]
}

// SetScratch stores per-component data for c.
func (s *State) SetScratch(c *Component, v any) {
	s.scratch[c] = v
}

// PinValue returns the value pin drives in s, zero until set.
func (s *State) PinValue(pin *Component) Value {
	if v, ok := s.scratch[pin].(Value); ok {
		return v
	}
	return ValueOf(0, pin.Bits())
}

// SetPinValue sets the value pin drives in s.
func (s *State) SetPinValue(pin *Component, v Value) {
	s.scratch[pin] = v
}

// Reset forgets every value and scratch entry, recursively.
func (s *State) Reset() {
	s.values = make(map[*Link]Value)
	s.scratch = make(map[*Component]any)
	for _, child := range s.children {
		child.Reset()
	}
}

// BoardContext identifies one live instantiation of a board. Two contexts
// are equal when both the board and the state are the same objects.
type BoardContext struct {
	Board *Board
	State *State
}

// ContextOf returns the context of state s.
func ContextOf(s *State) BoardContext {
	return BoardContext{Board: s.board, State: s}
}
