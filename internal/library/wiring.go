package library

import (
	"fmt"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
)

// pin drives its set value when it faces inward; output pins only listen.
type pin struct{}

func (pin) Validate(props circuit.Properties) error {
	switch d := props.String(circuit.PropDirection); d {
	case circuit.DirectionInput, circuit.DirectionOutput:
		return nil
	default:
		return fmt.Errorf("direction must be %q or %q, got %q", circuit.DirectionInput, circuit.DirectionOutput, d)
	}
}

func (pin) Ports(props circuit.Properties) []circuit.PortSpec {
	return []circuit.PortSpec{{Name: "io", Width: props.Bits()}}
}

func (pin) Evaluate(ev circuit.Eval) {
	c := ev.Component()
	if c.IsInputPin() {
		ev.Drive(0, ev.State().PinValue(c))
	}
}

type constant struct{}

func (constant) Ports(props circuit.Properties) []circuit.PortSpec {
	return []circuit.PortSpec{{Name: "out", Width: props.Bits()}}
}

func (constant) Evaluate(ev circuit.Eval) {
	c := ev.Component()
	ev.Drive(0, circuit.ValueOf(uint64(c.Props.Int("value", 0)), c.Bits()))
}

// passive covers kinds that never drive: tunnels, probes and text. port is
// empty for kinds without any port.
type passive struct {
	port string
}

func (p passive) Ports(props circuit.Properties) []circuit.PortSpec {
	if p.port == "" {
		return nil
	}
	return []circuit.PortSpec{{Name: p.port, Width: props.Bits()}}
}

func (passive) Evaluate(circuit.Eval) {}

// pulser is a clock or button at rest. Tests drive them by substituting an
// input pin for their output.
type pulser struct{}

func (pulser) Ports(circuit.Properties) []circuit.PortSpec {
	return []circuit.PortSpec{{Name: "out", Width: 1}}
}

func (pulser) Evaluate(ev circuit.Eval) {
	ev.Drive(0, circuit.ValueOf(0, 1))
}
