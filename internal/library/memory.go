package library

import (
	"fmt"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/memimage"
)

const (
	propAddressBits = "address_bits"
	propContents    = "contents"

	maxAddressBits = 24
)

type memoryState struct {
	words []uint64
	clk   bool
}

func addressBits(props circuit.Properties) int {
	return props.Int(propAddressBits, 8)
}

// Size is the number of words memory c holds.
func Size(c *circuit.Component) int {
	return 1 << uint(addressBits(c.Props))
}

func validateMemory(props circuit.Properties) error {
	if ab := addressBits(props); ab < 1 || ab > maxAddressBits {
		return fmt.Errorf("address_bits must be between 1 and %d, got %d", maxAddressBits, ab)
	}
	return nil
}

// IsMemory reports whether c is a RAM or ROM.
func IsMemory(c *circuit.Component) bool {
	return c.Kind == KindRAM || c.Kind == KindROM
}

// memoryOf returns the contents of c in st, creating them on first use. A
// ROM starts from its contents property.
func memoryOf(st *circuit.State, c *circuit.Component) *memoryState {
	if m, ok := st.Scratch(c).(*memoryState); ok {
		return m
	}
	m := &memoryState{words: make([]uint64, Size(c))}
	if c.Kind == KindROM {
		// Validate already rejected unparseable or oversized contents.
		words, _ := memimage.Parse(c.Props.String(propContents), len(m.words))
		copy(m.words, words)
	}
	st.SetScratch(c, m)
	return m
}

func checkAddress(c *circuit.Component, m *memoryState, address int) error {
	if address < 0 || address >= len(m.words) {
		return fmt.Errorf("address %#x out of range for %s with %d words", address, c, len(m.words))
	}
	return nil
}

// Load reads one word of memory c in st.
func Load(st *circuit.State, c *circuit.Component, address int) (uint64, error) {
	if !IsMemory(c) {
		return 0, fmt.Errorf("%s is not a memory", c)
	}
	m := memoryOf(st, c)
	if err := checkAddress(c, m, address); err != nil {
		return 0, err
	}
	return m.words[address], nil
}

// Store writes one word of memory c in st, truncated to the word width.
func Store(st *circuit.State, c *circuit.Component, address int, value uint64) error {
	if !IsMemory(c) {
		return fmt.Errorf("%s is not a memory", c)
	}
	m := memoryOf(st, c)
	if err := checkAddress(c, m, address); err != nil {
		return err
	}
	m.words[address] = value & circuit.Mask(c.Bits())
	return nil
}

// StoreImage writes words from address 0 onwards.
func StoreImage(st *circuit.State, c *circuit.Component, words []uint64) error {
	for i, w := range words {
		if err := Store(st, c, i, w); err != nil {
			return err
		}
	}
	return nil
}

// ram reads data_out from address while load is not low and writes data_in
// on a rising clock edge while store is high. A high clear zeroes it.
type ram struct{}

func (ram) Validate(props circuit.Properties) error { return validateMemory(props) }

func (ram) Ports(props circuit.Properties) []circuit.PortSpec {
	return []circuit.PortSpec{
		{Name: "address", Width: addressBits(props)},
		{Name: "data_in", Width: props.Bits()},
		{Name: "store", Width: 1},
		{Name: "load", Width: 1},
		{Name: "clk", Width: 1},
		{Name: "clear", Width: 1},
		{Name: "data_out", Width: props.Bits()},
	}
}

func (ram) Evaluate(ev circuit.Eval) {
	c := ev.Component()
	m := memoryOf(ev.State(), c)
	addr, in, store, load, clk, clear := ev.Input(0), ev.Input(1), ev.Input(2), ev.Input(3), ev.Input(4), ev.Input(5)

	high := clk.Defined && clk.Bits == 1
	switch {
	case clear.Defined && clear.Bits == 1:
		for i := range m.words {
			m.words[i] = 0
		}
	case high && !m.clk && store.Defined && store.Bits == 1 && addr.Defined && in.Defined:
		m.words[addr.Bits] = in.Bits
	}
	m.clk = high

	if (load.Defined && load.Bits == 0) || !addr.Defined {
		ev.Drive(6, circuit.Floating(c.Bits()))
		return
	}
	ev.Drive(6, circuit.ValueOf(m.words[addr.Bits], c.Bits()))
}

// rom drives data from address while enable is not low.
type rom struct{}

func (rom) Validate(props circuit.Properties) error {
	if err := validateMemory(props); err != nil {
		return err
	}
	size := 1 << uint(addressBits(props))
	if _, err := memimage.Parse(props.String(propContents), size); err != nil {
		return fmt.Errorf("contents of a %d word ROM: %w", size, err)
	}
	return nil
}

func (rom) Ports(props circuit.Properties) []circuit.PortSpec {
	return []circuit.PortSpec{
		{Name: "address", Width: addressBits(props)},
		{Name: "enable", Width: 1},
		{Name: "data", Width: props.Bits()},
	}
}

func (rom) Evaluate(ev circuit.Eval) {
	c := ev.Component()
	m := memoryOf(ev.State(), c)
	addr, enable := ev.Input(0), ev.Input(1)
	if (enable.Defined && enable.Bits == 0) || !addr.Defined {
		ev.Drive(2, circuit.Floating(c.Bits()))
		return
	}
	ev.Drive(2, circuit.ValueOf(m.words[addr.Bits], c.Bits()))
}
