package library

import (
	"fmt"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
)

const propFunction = "function"

type gate struct{}

func gateInputs(props circuit.Properties) int {
	if props.String(propFunction) == "not" {
		return 1
	}
	return props.Int("inputs", 2)
}

func (gate) Validate(props circuit.Properties) error {
	switch fn := props.String(propFunction); fn {
	case "and", "or", "nand", "nor", "xor", "xnor", "not":
	default:
		return fmt.Errorf("unknown gate function %q", fn)
	}
	if n := gateInputs(props); n < 1 || n > 32 {
		return fmt.Errorf("gate inputs must be between 1 and 32, got %d", n)
	}
	return nil
}

func (gate) Ports(props circuit.Properties) []circuit.PortSpec {
	bits := props.Bits()
	n := gateInputs(props)
	specs := make([]circuit.PortSpec, 0, n+1)
	for i := 0; i < n; i++ {
		specs = append(specs, circuit.PortSpec{Name: fmt.Sprintf("in[%d]", i), Width: bits})
	}
	return append(specs, circuit.PortSpec{Name: "out", Width: bits})
}

// Evaluate folds the inputs bitwise. Any floating input floats the output.
func (gate) Evaluate(ev circuit.Eval) {
	c := ev.Component()
	bits := c.Bits()
	n := gateInputs(c.Props)
	fn := c.Props.String(propFunction)

	var acc uint64
	for i := 0; i < n; i++ {
		in := ev.Input(i)
		if !in.Defined {
			ev.Drive(n, circuit.Floating(bits))
			return
		}
		switch {
		case i == 0:
			acc = in.Bits
		case fn == "and" || fn == "nand":
			acc &= in.Bits
		case fn == "or" || fn == "nor":
			acc |= in.Bits
		case fn == "xor" || fn == "xnor":
			acc ^= in.Bits
		}
	}
	switch fn {
	case "nand", "nor", "xnor", "not":
		acc = ^acc
	}
	ev.Drive(n, circuit.ValueOf(acc, bits))
}
