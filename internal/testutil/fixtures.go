package testutil

// FullAdder declares a one-bit full adder and a two-bit ripple adder built
// from two instances of it.
const FullAdder = `
board "full adder" {
  component "Wiring" "Input Pin" {
    id    = "a"
    label = "a"
  }
  component "Wiring" "Input Pin" {
    id    = "b"
    label = "b"
  }
  component "Wiring" "Input Pin" {
    id    = "cin"
    label = "cin"
  }
  component "Wiring" "Output Pin" {
    id    = "sum"
    label = "sum"
  }
  component "Wiring" "Output Pin" {
    id    = "cout"
    label = "cout"
  }
  component "Gates" "XOR" {
    id = "x1"
  }
  component "Gates" "XOR" {
    id = "x2"
  }
  component "Gates" "AND" {
    id = "and1"
  }
  component "Gates" "AND" {
    id = "and2"
  }
  component "Gates" "OR" {
    id = "or1"
  }

  wire {
    connect = ["a.io", "x1.in[0]", "and1.in[0]"]
  }
  wire {
    connect = ["b.io", "x1.in[1]", "and1.in[1]"]
  }
  wire {
    connect = ["x1.out", "x2.in[0]", "and2.in[0]"]
  }
  wire {
    connect = ["cin.io", "x2.in[1]", "and2.in[1]"]
  }
  wire {
    connect = ["x2.out", "sum.io"]
  }
  wire {
    connect = ["and1.out", "or1.in[0]"]
  }
  wire {
    connect = ["and2.out", "or1.in[1]"]
  }
  wire {
    connect = ["or1.out", "cout.io"]
  }
}

board "adder2" {
  canvas {
    width  = 40
    height = 30
  }

  component "Wiring" "Input Pin" {
    id    = "a0"
    label = "a0"
  }
  component "Wiring" "Input Pin" {
    id    = "a1"
    label = "a1"
  }
  component "Wiring" "Input Pin" {
    id    = "b0"
    label = "b0"
  }
  component "Wiring" "Input Pin" {
    id    = "b1"
    label = "b1"
  }
  component "Wiring" "Output Pin" {
    id    = "s0"
    label = "s0"
  }
  component "Wiring" "Output Pin" {
    id    = "s1"
    label = "s1"
  }
  component "Wiring" "Output Pin" {
    id    = "carry"
    label = "carry"
  }
  component "Wiring" "Constant" {
    id = "zero"
  }
  component "Circuits" "Subcircuit" {
    id         = "fa0"
    subcircuit = "full adder"
  }
  component "Circuits" "Subcircuit" {
    id         = "fa1"
    subcircuit = "full adder"
  }

  wire {
    connect = ["a0.io", "fa0.a"]
  }
  wire {
    connect = ["b0.io", "fa0.b"]
  }
  wire {
    connect = ["zero.out", "fa0.cin"]
  }
  wire {
    connect = ["fa0.sum", "s0.io"]
  }
  wire {
    connect = ["fa0.cout", "fa1.cin"]
  }
  wire {
    connect = ["a1.io", "fa1.a"]
  }
  wire {
    connect = ["b1.io", "fa1.b"]
  }
  wire {
    connect = ["fa1.sum", "s1.io"]
  }
  wire {
    connect = ["fa1.cout", "carry.io"]
  }
}
`

// Tunnels routes an input through a pair of tunnels into an inverter.
const Tunnels = `
board "tunnels" {
  component "Wiring" "Input Pin" {
    id    = "x"
    label = "x"
    bits  = 4
  }
  component "Wiring" "Tunnel" {
    id    = "t_in"
    label = "bus"
    bits  = 4
  }
  component "Wiring" "Tunnel" {
    id    = "t_out"
    label = "bus"
    bits  = 4
  }
  component "Gates" "NOT" {
    id   = "inv"
    bits = 4
  }
  component "Wiring" "Output Pin" {
    id    = "y"
    label = "y"
    bits  = 4
  }

  wire {
    connect = ["x.io", "t_in.io"]
  }
  wire {
    connect = ["t_out.io", "inv.in[0]"]
  }
  wire {
    connect = ["inv.out", "y.io"]
  }
}
`

// Sequential holds a register clocked by a clock and cleared by a button,
// and a ROM addressed by an input pin.
const Sequential = `
board "sequential" {
  component "Wiring" "Input Pin" {
    id    = "next"
    label = "next"
    bits  = 4
  }
  component "Wiring" "Clock" {
    id = "clk"
  }
  component "Input/Output" "Button" {
    id    = "reset"
    label = "reset"
  }
  component "Memory" "Register" {
    id    = "r"
    label = "state"
    bits  = 4
  }
  component "Wiring" "Output Pin" {
    id    = "value"
    label = "value"
    bits  = 4
  }
  component "Wiring" "Input Pin" {
    id    = "addr"
    label = "addr"
    bits  = 4
  }
  component "Memory" "ROM" {
    id           = "rom"
    label        = "program"
    address_bits = 4
    contents     = "3-11 22 ff"
  }
  component "Wiring" "Output Pin" {
    id    = "data"
    label = "data"
    bits  = 8
  }

  wire {
    connect = ["next.io", "r.d"]
  }
  wire {
    connect = ["clk.out", "r.clk"]
  }
  wire {
    connect = ["reset.out", "r.rst"]
  }
  wire {
    connect = ["r.q", "value.io"]
  }
  wire {
    connect = ["addr.io", "rom.address"]
  }
  wire {
    connect = ["rom.data", "data.io"]
  }
}
`
