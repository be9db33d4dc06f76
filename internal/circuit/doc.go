// Package circuit holds the in-memory model of a loaded circuit document:
// boards, their components and ports, the links (buses) joining ports, and
// the per-instantiation simulation state of each board.
//
// A Board is a topology. A State is one live instantiation of that topology;
// the same board placed twice as a subcircuit has one topology and two states.
// The pair of the two is a BoardContext, the unit every traversal works on.
//
// Links have no owner. A port joins or leaves a link; a link whose last
// participant has left is simply no longer reachable from any port.
package circuit
