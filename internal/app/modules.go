package app

import (
	"github.com/specialistvlad/circuitprobe/internal/library"
	"github.com/specialistvlad/circuitprobe/internal/registry"
)

// coreModules is the definitive list of all component behaviors compiled
// into the circuitprobe binary.
var coreModules = []registry.Module{
	library.Module{},
}
