package harness

import (
	"context"
	"fmt"
)

// Pulser is a mocked clock or button.
type Pulser struct {
	pin *InputPin
}

// Pulse drives a full low, high, low cycle.
func (p *Pulser) Pulse(ctx context.Context) error {
	for _, v := range []uint64{0, 1, 0} {
		if err := p.pin.Set(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

// Pin returns the input pin standing in for the pulser.
func (p *Pulser) Pin() *InputPin { return p.pin }

// Clock is a mocked clock.
type Clock struct{ Pulser }

// Tick pulses the clock once.
func (c *Clock) Tick(ctx context.Context) error { return c.Pulse(ctx) }

// TickUntil ticks until stop reports true, failing once more than max ticks
// did not satisfy it. It returns the number of ticks taken.
func (c *Clock) TickUntil(ctx context.Context, max int, stop func() (bool, error)) (int, error) {
	for n := 0; ; n++ {
		done, err := stop()
		if err != nil {
			return n, err
		}
		if done {
			return n, nil
		}
		if n >= max {
			return n, fmt.Errorf("clock ticked %d times without reaching the stop condition", max)
		}
		if err := c.Tick(ctx); err != nil {
			return n, err
		}
	}
}

// Button is a mocked button.
type Button struct{ Pulser }

// Press pushes the button once.
func (b *Button) Press(ctx context.Context) error { return b.Pulse(ctx) }

func (s *Subcircuit) mockPulser(ctx context.Context, ref Ref, category, name string) (*InputPin, error) {
	m, err := s.lookup(ctx, ref, category, name)
	if err != nil {
		return nil, err
	}
	pin, err := s.surgeon.MockPulser(ctx, m.Component)
	if err != nil {
		return nil, err
	}
	return &InputPin{pin: pin, state: m.At.State, sub: s}, nil
}

// Clock finds the clock selected by ref and mocks it. Clocks are rarely
// labelled, so ref is usually Ref{Only: true}.
func (s *Subcircuit) Clock(ctx context.Context, ref Ref) (*Clock, error) {
	pin, err := s.mockPulser(ctx, ref, "Wiring", "Clock")
	if err != nil {
		return nil, err
	}
	return &Clock{Pulser{pin: pin}}, nil
}

// Button finds the button selected by ref and mocks it.
func (s *Subcircuit) Button(ctx context.Context, ref Ref) (*Button, error) {
	pin, err := s.mockPulser(ctx, ref, "Input/Output", "Button")
	if err != nil {
		return nil, err
	}
	return &Button{Pulser{pin: pin}}, nil
}
