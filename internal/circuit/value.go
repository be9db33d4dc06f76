package circuit

import "fmt"

// Value is the signal carried by a link: a fixed-width bit vector that is
// either fully defined or floating.
type Value struct {
	Width   int
	Bits    uint64
	Defined bool
}

// Mask returns the bit mask covering width bits.
func Mask(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	if width <= 0 {
		return 0
	}
	return (uint64(1) << uint(width)) - 1
}

// ValueOf returns a defined value of the given width, truncating bits.
func ValueOf(bits uint64, width int) Value {
	return Value{Width: width, Bits: bits & Mask(width), Defined: true}
}

// Floating returns an undefined value of the given width.
func Floating(width int) Value {
	return Value{Width: width}
}

// Equal reports whether v and o carry the same signal.
func (v Value) Equal(o Value) bool {
	if v.Width != o.Width || v.Defined != o.Defined {
		return false
	}
	return !v.Defined || v.Bits == o.Bits
}

// Bit returns bit i of a defined value.
func (v Value) Bit(i int) bool {
	return v.Bits&(uint64(1)<<uint(i)) != 0
}

func (v Value) String() string {
	if !v.Defined {
		return fmt.Sprintf("x(%d)", v.Width)
	}
	return fmt.Sprintf("%#x(%d)", v.Bits, v.Width)
}
