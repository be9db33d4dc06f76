package surgery

import (
	"context"
	"fmt"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/ctxlog"
	"github.com/specialistvlad/circuitprobe/internal/library"
)

// MockedRegister is a register whose five ports were replaced by pins. Q is
// an input pin standing in for the register output; the others observe
// what the surrounding logic feeds the register.
type MockedRegister struct {
	Register *circuit.Component

	Q   *circuit.Component
	D   *circuit.Component
	En  *circuit.Component
	Clk *circuit.Component
	Rst *circuit.Component
}

// MockRegister substitutes every port of reg. It performs no search; reg
// must already be the resolved register.
func (s *Surgeon) MockRegister(ctx context.Context, reg *circuit.Component) (*MockedRegister, error) {
	if reg.Kind != library.KindRegister {
		return nil, fmt.Errorf("mock register: %s is not a register", reg)
	}
	m := &MockedRegister{Register: reg}
	slots := []struct {
		port  string
		input bool
		pin   **circuit.Component
	}{
		{library.RegisterOut, true, &m.Q},
		{library.RegisterIn, false, &m.D},
		{library.RegisterEnable, false, &m.En},
		{library.RegisterClock, false, &m.Clk},
		{library.RegisterReset, false, &m.Rst},
	}
	for _, slot := range slots {
		port := reg.PortByName(slot.port)
		if port == nil {
			return nil, fmt.Errorf("mock register: %s has no port %q", reg, slot.port)
		}
		pin, err := s.Substitute(ctx, port, slot.input)
		if err != nil {
			return nil, fmt.Errorf("mock register: %w", err)
		}
		*slot.pin = pin
	}
	ctxlog.FromContext(ctx).Debug("Mocked register.", "board", reg.Board().Name, "register", reg.ID)
	return m, nil
}

// MockPulser replaces the output of a clock or button with an input pin so
// tests decide when it pulses.
func (s *Surgeon) MockPulser(ctx context.Context, c *circuit.Component) (*circuit.Component, error) {
	if c.Kind != library.KindClock && c.Kind != library.KindButton {
		return nil, fmt.Errorf("mock pulser: %s is neither a clock nor a button", c)
	}
	port := c.Port(0)
	if port == nil {
		return nil, fmt.Errorf("mock pulser: %s has no ports", c)
	}
	pin, err := s.Substitute(ctx, port, true)
	if err != nil {
		return nil, fmt.Errorf("mock pulser: %w", err)
	}
	return pin, nil
}
