// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It parses component manifests and board documents and
// translates them into the format-agnostic config.Model.
//
// A manifest entry looks like:
//
//	component "Wiring" "Input Pin" {
//	  kind       = "pin"
//	  properties = { label = "", bits = 1, direction = "input" }
//	}
//
// A board document looks like:
//
//	board "full adder" {
//	  component "Wiring" "Input Pin" {
//	    id    = "a"
//	    label = "a"
//	  }
//	  wire {
//	    connect = ["a.io", "x1.in[0]"]
//	  }
//	}
package hcl
