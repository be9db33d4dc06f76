package library

import "github.com/specialistvlad/circuitprobe/internal/circuit"

// Register port names, in port order.
const (
	RegisterIn     = "d"
	RegisterEnable = "en"
	RegisterClock  = "clk"
	RegisterReset  = "rst"
	RegisterOut    = "q"
)

type registerState struct {
	value uint64
	clk   bool
}

// register latches d on a rising clock edge unless en is low. A high rst
// clears it immediately.
type register struct{}

func (register) Ports(props circuit.Properties) []circuit.PortSpec {
	bits := props.Bits()
	return []circuit.PortSpec{
		{Name: RegisterIn, Width: bits},
		{Name: RegisterEnable, Width: 1},
		{Name: RegisterClock, Width: 1},
		{Name: RegisterReset, Width: 1},
		{Name: RegisterOut, Width: bits},
	}
}

func (register) Evaluate(ev circuit.Eval) {
	c := ev.Component()
	s, _ := ev.State().Scratch(c).(*registerState)
	if s == nil {
		s = &registerState{}
		ev.State().SetScratch(c, s)
	}

	d, en, clk, rst := ev.Input(0), ev.Input(1), ev.Input(2), ev.Input(3)
	high := clk.Defined && clk.Bits == 1
	switch {
	case rst.Defined && rst.Bits == 1:
		s.value = 0
	case high && !s.clk && !(en.Defined && en.Bits == 0) && d.Defined:
		s.value = d.Bits
	}
	s.clk = high
	ev.Drive(4, circuit.ValueOf(s.value, c.Bits()))
}

// RegisterValue returns the value latched by register c in st.
func RegisterValue(st *circuit.State, c *circuit.Component) uint64 {
	if s, ok := st.Scratch(c).(*registerState); ok {
		return s.value
	}
	return 0
}
