package harness

import (
	"context"
	"fmt"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/library"
	"github.com/specialistvlad/circuitprobe/internal/names"
	"github.com/specialistvlad/circuitprobe/internal/resolve"
	"github.com/specialistvlad/circuitprobe/internal/walker"
)

// InputPin is a pin the test drives.
type InputPin struct {
	pin   *circuit.Component
	state *circuit.State
	sub   *Subcircuit
}

// Component returns the underlying pin.
func (p *InputPin) Component() *circuit.Component { return p.pin }

// Set drives v, truncated to the pin width, and settles the simulation.
func (p *InputPin) Set(ctx context.Context, v uint64) error {
	p.state.SetPinValue(p.pin, circuit.ValueOf(v, p.pin.Bits()))
	return p.sub.Step(ctx)
}

// OutputPin is a pin the test reads.
type OutputPin struct {
	pin   *circuit.Component
	state *circuit.State
}

// Component returns the underlying pin.
func (p *OutputPin) Component() *circuit.Component { return p.pin }

// Get returns the settled value on the pin.
func (p *OutputPin) Get() (uint64, error) {
	return read(p.state.PortValue(p.pin.Port(0)))
}

// GetSext returns the settled value sign-extended from the pin width.
func (p *OutputPin) GetSext() (int64, error) {
	v, err := p.Get()
	if err != nil {
		return 0, err
	}
	return Sext(v, p.pin.Bits()), nil
}

// InputPin finds the input pin selected by ref. Input pins inside nested
// boards are driven by their parents, so a recursive ref is rejected.
func (s *Subcircuit) InputPin(ctx context.Context, ref Ref) (*InputPin, error) {
	if ref.Recursive {
		return nil, &resolve.LookupError{Err: resolve.ErrDirection, Board: s.board.Name, Msg: fmt.Sprintf(
			"can't recursively locate input pin %s; setting it would fight the parent board driving it", labelOf(ref))}
	}
	m, err := s.lookup(ctx, ref, "Wiring", "Input Pin")
	if err != nil {
		return nil, err
	}
	return &InputPin{pin: m.Component, state: m.At.State, sub: s}, nil
}

// OutputPin finds the output pin selected by ref.
func (s *Subcircuit) OutputPin(ctx context.Context, ref Ref) (*OutputPin, error) {
	m, err := s.lookup(ctx, ref, "Wiring", "Output Pin")
	if err != nil {
		return nil, err
	}
	return &OutputPin{pin: m.Component, state: m.At.State}, nil
}

// SnitchTunnel taps the net of the tunnel labelled label placed directly
// on the board, returning an output pin that follows its value. Tunnels
// sharing a label share a net, so the first one found stands for all.
func (s *Subcircuit) SnitchTunnel(ctx context.Context, label string, bits int) (*OutputPin, error) {
	want := names.Canonical(label)
	var tunnel *circuit.Component
	err := walker.Walk(circuit.ContextOf(s.state), false, false, func(_ circuit.BoardContext, c *circuit.Component) error {
		if c.Kind == library.KindTunnel && names.Canonical(c.Label()) == want {
			tunnel = c
			return walker.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if tunnel == nil {
		return nil, &resolve.LookupError{Err: resolve.ErrNotFound, Board: s.board.Name, Msg: fmt.Sprintf(
			"no tunnel found in board %q with label %q", s.board.Name, label)}
	}
	if actual := tunnel.Bits(); actual != bits {
		return nil, &resolve.LookupError{Err: resolve.ErrBitWidth, Board: s.board.Name, Msg: fmt.Sprintf(
			"tunnel %q in board %q should have %d bits, not %d", label, s.board.Name, bits, actual)}
	}

	port := tunnel.Port(0)
	link := port.Link()
	if link == nil {
		link = circuit.NewLink(port.Width)
		if err := link.Join(port); err != nil {
			return nil, err
		}
	}
	pin, err := s.surgeon.Tap(ctx, s.board, link)
	if err != nil {
		return nil, err
	}
	return &OutputPin{pin: pin, state: s.state}, nil
}
