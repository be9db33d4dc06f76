// Package harness is the API grading tests are written against. It opens a
// board of a circuit document, finds its pins, registers, memories, clocks
// and buttons by label, and drives and reads them through the simulator.
//
// Lookups and mocks rewrite the live graph, so a fixture should finish all
// of them before it first sets an input.
package harness
