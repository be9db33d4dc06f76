// Package sim settles the signal values of built documents.
//
// It is a small fixed-point simulator: each pass evaluates every behavior
// of a board against the values of the previous pass, merges what they
// drive per net, and repeats until no net changes. Nets are links joined by
// tunnels that share a label and width. Subcircuit instances are settled
// in their own child states.
package sim
