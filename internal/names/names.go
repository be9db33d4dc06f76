// Package names canonicalizes free-text board names, component labels and
// category names so that cosmetic differences do not affect lookups.
package names

import "strings"

// Canonical lowercases s and drops every character outside [0-9a-z], so
// "1-Bit Adder!", "1 bit   adder" and "1BITADDER" all become "1bitadder".
func Canonical(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// Equal reports whether a and b are the same name after canonicalization.
func Equal(a, b string) bool {
	return Canonical(a) == Canonical(b)
}
