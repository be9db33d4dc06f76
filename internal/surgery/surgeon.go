package surgery

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Catalog names of the synthetic pins.
const (
	PinCategory   = "Wiring"
	InputPinName  = "Input Pin"
	OutputPinName = "Output Pin"
)

// placementStep is the diagonal offset between placement probes.
const placementStep = 32

// Factory creates detached components by catalog name.
type Factory interface {
	Instantiate(category, name, id string, overrides circuit.Properties) (*circuit.Component, error)
}

// Surgeon performs link-level surgery using pins made by a Factory.
type Surgeon struct {
	factory Factory
}

// New returns a surgeon creating its pins through f.
func New(f Factory) *Surgeon {
	return &Surgeon{factory: f}
}

// Detach takes port off its link and returns that link, which keeps the
// remaining participants. An unconnected port yields a fresh empty link of
// the port's width.
func (s *Surgeon) Detach(port *circuit.Port) *circuit.Link {
	l := port.Link()
	if l == nil {
		return circuit.NewLink(port.Width)
	}
	l.Leave(port)
	return l
}

// Splice creates a pin as wide as link, places it on board and joins its
// port to link. An input pin drives the link; an output pin observes it.
// Placement probes diagonally outward from the far corner of the canvas.
func (s *Surgeon) Splice(ctx context.Context, board *circuit.Board, link *circuit.Link, input bool) (*circuit.Component, error) {
	if board == nil {
		return nil, errors.New("splice: no board to place the pin on")
	}
	name := OutputPinName
	if input {
		name = InputPinName
	}
	pin, err := s.factory.Instantiate(PinCategory, name, "", circuit.Properties{
		circuit.PropBits: cty.NumberIntVal(int64(link.Width())),
	})
	if err != nil {
		return nil, fmt.Errorf("splice on board %q: %w", board.Name, err)
	}

	pin.X, pin.Y = board.Width, board.Height
	for {
		pin.X += placementStep
		pin.Y += placementStep
		if board.IsValidLocation(pin.X, pin.Y, pin.W, pin.H) {
			break
		}
	}
	// Join while the pin is still detached so a failure leaves the board as it was.
	if err := link.Join(pin.Port(0)); err != nil {
		return nil, fmt.Errorf("splice on board %q: %w", board.Name, err)
	}
	if err := board.AddComponent(pin); err != nil {
		link.Leave(pin.Port(0))
		return nil, fmt.Errorf("splice on board %q: %w", board.Name, err)
	}

	ctxlog.FromContext(ctx).Debug("Spliced synthetic pin.",
		"board", board.Name, "pin", pin.ID, "input", input, "bits", link.Width(), "x", pin.X, "y", pin.Y)
	return pin, nil
}

// Substitute replaces port with a synthetic pin. The port's former
// neighbours now share a link with the pin, and port ends up unconnected.
func (s *Surgeon) Substitute(ctx context.Context, port *circuit.Port, input bool) (*circuit.Component, error) {
	owner := port.Component()
	if owner == nil || owner.Board() == nil {
		return nil, fmt.Errorf("substitute: port %s is not on a board", port)
	}
	pin, err := s.Splice(ctx, owner.Board(), s.Detach(port), input)
	if err != nil {
		return nil, fmt.Errorf("substitute %s: %w", port, err)
	}
	return pin, nil
}

// Tap adds an output pin to link without disturbing its participants.
func (s *Surgeon) Tap(ctx context.Context, board *circuit.Board, link *circuit.Link) (*circuit.Component, error) {
	return s.Splice(ctx, board, link, false)
}
