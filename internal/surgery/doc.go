// Package surgery rewrites the wiring of a live board before simulation:
// it detaches ports from their links and splices synthetic pins in their
// place, so tests can drive or observe a net directly.
//
// All mutations are permanent for the lifetime of the document and must be
// finished before the simulator steps the affected boards.
package surgery
