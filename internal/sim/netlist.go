package sim

import (
	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/library"
)

// netlist groups the links of one board into nets.
type netlist struct {
	version uint64
	netOf   map[*circuit.Link]int
	nets    [][]*circuit.Link
}

type tunnelKey struct {
	label string
	width int
}

// buildNetlist unions every link of b with the links of same-named tunnels.
func buildNetlist(b *circuit.Board) *netlist {
	links := b.Links()
	index := make(map[*circuit.Link]int, len(links))
	parent := make([]int, len(links))
	for i, l := range links {
		index[l] = i
		parent[i] = i
	}

	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	firstTunnel := make(map[tunnelKey]int)
	for _, c := range b.Components() {
		if c.Kind != library.KindTunnel || c.Label() == "" {
			continue
		}
		l := c.Port(0).Link()
		if l == nil {
			continue
		}
		key := tunnelKey{label: c.Label(), width: l.Width()}
		if first, ok := firstTunnel[key]; ok {
			union(first, index[l])
			continue
		}
		firstTunnel[key] = index[l]
	}

	nl := &netlist{version: b.Version(), netOf: make(map[*circuit.Link]int, len(links))}
	rootNet := make(map[int]int)
	for i, l := range links {
		r := find(i)
		n, ok := rootNet[r]
		if !ok {
			n = len(nl.nets)
			rootNet[r] = n
			nl.nets = append(nl.nets, nil)
		}
		nl.nets[n] = append(nl.nets[n], l)
		nl.netOf[l] = n
	}
	return nl
}

func (nl *netlist) width(n int) int {
	return nl.nets[n][0].Width()
}
