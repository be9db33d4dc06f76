package harness

import (
	"context"
	"fmt"
	"io"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/library"
	"github.com/specialistvlad/circuitprobe/internal/memimage"
)

// MemoryKind selects RAM or ROM.
type MemoryKind int

const (
	RAM MemoryKind = iota
	ROM
)

func (k MemoryKind) String() string {
	if k == ROM {
		return "ROM"
	}
	return "RAM"
}

// Memory gives direct access to the words of a RAM or ROM.
type Memory struct {
	mem   *circuit.Component
	state *circuit.State
}

// Component returns the underlying memory.
func (m *Memory) Component() *circuit.Component { return m.mem }

// Load reads the word at address.
func (m *Memory) Load(address int) (uint64, error) {
	return library.Load(m.state, m.mem, address)
}

// Store writes the word at address.
func (m *Memory) Store(address int, value uint64) error {
	return library.Store(m.state, m.mem, address, value)
}

// LoadImage stores a memory image, in the same run-length hex format as a
// ROM's contents property, from address 0 onwards. Images larger than the
// memory are rejected.
func (m *Memory) LoadImage(r io.Reader) error {
	words, err := memimage.Read(r, library.Size(m.mem))
	if err != nil {
		return fmt.Errorf("loading image into %s: %w", m.mem, err)
	}
	return library.StoreImage(m.state, m.mem, words)
}

// Memory finds the memory of the given kind selected by ref.
func (s *Subcircuit) Memory(ctx context.Context, ref Ref, kind MemoryKind) (*Memory, error) {
	m, err := s.lookup(ctx, ref, "Memory", kind.String())
	if err != nil {
		return nil, err
	}
	return &Memory{mem: m.Component, state: m.At.State}, nil
}
