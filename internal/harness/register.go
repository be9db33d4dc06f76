package harness

import (
	"context"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/library"
)

// Register is a register left in the circuit.
type Register struct {
	reg   *circuit.Component
	state *circuit.State
	sub   *Subcircuit
}

// Component returns the underlying register.
func (r *Register) Component() *circuit.Component { return r.reg }

// Q returns the latched value.
func (r *Register) Q() uint64 {
	return library.RegisterValue(r.state, r.reg)
}

// MockRegister is a register cut out of the circuit. Q drives what the
// register would output; the rest observe what is fed into it.
type MockRegister struct {
	Q   *InputPin
	D   *OutputPin
	En  *OutputPin
	Clk *OutputPin
	Rst *OutputPin
}

// Register finds the register selected by ref.
func (s *Subcircuit) Register(ctx context.Context, ref Ref) (*Register, error) {
	m, err := s.lookup(ctx, ref, "Memory", "Register")
	if err != nil {
		return nil, err
	}
	return &Register{reg: m.Component, state: m.At.State, sub: s}, nil
}

// Mock replaces every port of the register with a pin.
func (r *Register) Mock(ctx context.Context) (*MockRegister, error) {
	m, err := r.sub.surgeon.MockRegister(ctx, r.reg)
	if err != nil {
		return nil, err
	}
	out := func(pin *circuit.Component) *OutputPin {
		return &OutputPin{pin: pin, state: r.state}
	}
	return &MockRegister{
		Q:   &InputPin{pin: m.Q, state: r.state, sub: r.sub},
		D:   out(m.D),
		En:  out(m.En),
		Clk: out(m.Clk),
		Rst: out(m.Rst),
	}, nil
}

// MockRegister finds the register selected by ref and mocks it.
func (s *Subcircuit) MockRegister(ctx context.Context, ref Ref) (*MockRegister, error) {
	r, err := s.Register(ctx, ref)
	if err != nil {
		return nil, err
	}
	return r.Mock(ctx)
}
