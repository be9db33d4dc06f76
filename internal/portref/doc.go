// Package portref parses the textual port references used by wire blocks.
//
// A reference names a component by id and one of its ports, optionally
// with an index for ports that come in numbered groups:
//
//	a.io
//	x1.in[0]
package portref
