package portref

import (
	"fmt"
	"regexp"
	"strconv"
)

// refRegex matches `component.port` or `component.port[index]`.
var refRegex = regexp.MustCompile(`^([a-zA-Z0-9_#-]+)\.([a-zA-Z_][a-zA-Z0-9_]*)(?:\[(\d+)\])?$`)

// Ref is the structured form of a port reference.
type Ref struct {
	Component string
	Port      string
	Index     int // -1 indicates no index is present.
}

// New creates a reference without an index.
func New(component, port string) Ref {
	return Ref{Component: component, Port: port, Index: -1}
}

// NewWithIndex creates a reference to a numbered port.
func NewWithIndex(component, port string, index int) Ref {
	return Ref{Component: component, Port: port, Index: index}
}

// HasIndex returns true if the reference has an explicit index.
func (r Ref) HasIndex() bool {
	return r.Index != -1
}

// PortName is the port name as components declare it, index included.
func (r Ref) PortName() string {
	if !r.HasIndex() {
		return r.Port
	}
	return fmt.Sprintf("%s[%d]", r.Port, r.Index)
}

func (r Ref) String() string {
	return r.Component + "." + r.PortName()
}

// Parse creates a Ref from its string representation.
func Parse(raw string) (Ref, error) {
	if raw == "" {
		return Ref{}, fmt.Errorf("port reference cannot be empty")
	}
	m := refRegex.FindStringSubmatch(raw)
	if m == nil {
		return Ref{}, fmt.Errorf("invalid port reference %q, want component.port or component.port[index]", raw)
	}
	if m[3] == "" {
		return New(m[1], m[2]), nil
	}
	index, err := strconv.Atoi(m[3])
	if err != nil {
		// Unreachable due to regex `\d+`
		return Ref{}, fmt.Errorf("internal error parsing index: %w", err)
	}
	return NewWithIndex(m[1], m[2], index), nil
}
