package sim

import (
	"fmt"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
)

// evaluation implements circuit.Eval for one component at a time during a
// pass. Inputs read the previous pass; drives are merged per net.
type evaluation struct {
	comp   *circuit.Component
	state  *circuit.State
	nl     *netlist
	drives map[int]circuit.Value
	err    error
}

var _ circuit.Eval = (*evaluation)(nil)

func (e *evaluation) Component() *circuit.Component { return e.comp }

func (e *evaluation) State() *circuit.State { return e.state }

func (e *evaluation) Input(port int) circuit.Value {
	p := e.comp.Port(port)
	if p == nil {
		return circuit.Floating(0)
	}
	return e.state.PortValue(p)
}

// Drive merges v into the net of port. Floating drives never conflict.
func (e *evaluation) Drive(port int, v circuit.Value) {
	p := e.comp.Port(port)
	if p == nil || p.Link() == nil || e.err != nil {
		return
	}
	n := e.nl.netOf[p.Link()]
	prev, ok := e.drives[n]
	switch {
	case !ok || !prev.Defined:
		e.drives[n] = v
	case v.Defined && !prev.Equal(v):
		e.err = fmt.Errorf("%w: board %q: %s drives %s onto a net already driven with %s",
			ErrShortCircuit, e.state.Board().Name, p, v, prev)
	}
}
