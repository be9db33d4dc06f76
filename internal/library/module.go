package library

import (
	_ "embed"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/registry"
)

// ManifestName is the diagnostic file name of the embedded manifest.
const ManifestName = "library/catalog.hcl"

// Manifest is the HCL manifest describing every built-in component type.
//
//go:embed catalog.hcl
var Manifest []byte

// Kinds of the built-in behaviors.
const (
	KindConstant = "constant"
	KindTunnel   = "tunnel"
	KindProbe    = "probe"
	KindText     = "text"
	KindGate     = "gate"
	KindRegister = "register"
	KindClock    = "clock"
	KindButton   = "button"
	KindRAM      = "ram"
	KindROM      = "rom"
)

// Module registers the built-in behaviors.
type Module struct{}

// Register implements registry.Module.
func (Module) Register(r *registry.Registry) {
	r.RegisterKind(circuit.KindPin, pin{})
	r.RegisterKind(KindConstant, constant{})
	r.RegisterKind(KindTunnel, passive{port: "io"})
	r.RegisterKind(KindProbe, passive{port: "in"})
	r.RegisterKind(KindText, passive{})
	r.RegisterKind(KindGate, gate{})
	r.RegisterKind(KindRegister, register{})
	r.RegisterKind(KindClock, pulser{})
	r.RegisterKind(KindButton, pulser{})
	r.RegisterKind(KindRAM, ram{})
	r.RegisterKind(KindROM, rom{})
}
