package builder

import (
	"fmt"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/config"
	"github.com/specialistvlad/circuitprobe/internal/portref"
)

// wire joins the ports of every wire block, merging links that share a port.
func wire(b *circuit.Board, wires []*config.Wire) error {
	for _, w := range wires {
		ports := make([]*circuit.Port, 0, len(w.Connect))
		for _, raw := range w.Connect {
			p, err := resolvePort(b, raw)
			if err != nil {
				return err
			}
			ports = append(ports, p)
		}

		var target *circuit.Link
		for _, p := range ports {
			if p.Link() != nil {
				target = p.Link()
				break
			}
		}
		if target == nil {
			target = circuit.NewLink(ports[0].Width)
		}

		for _, p := range ports {
			if err := merge(target, p); err != nil {
				return fmt.Errorf("wire %v: %w", w.Connect, err)
			}
		}
	}
	return nil
}

// merge puts p on target. When p is on another link, that whole link moves
// over.
func merge(target *circuit.Link, p *circuit.Port) error {
	old := p.Link()
	if old == target {
		return nil
	}
	if old == nil {
		return target.Join(p)
	}
	if old.Width() != target.Width() {
		return fmt.Errorf("port %s carries %d bits but the wire carries %d", p, old.Width(), target.Width())
	}
	for _, q := range old.Participants() {
		old.Leave(q)
		if err := target.Join(q); err != nil {
			return err
		}
	}
	return nil
}

func resolvePort(b *circuit.Board, raw string) (*circuit.Port, error) {
	ref, err := portref.Parse(raw)
	if err != nil {
		return nil, err
	}
	c := b.Component(ref.Component)
	if c == nil {
		return nil, fmt.Errorf("wire references unknown component %q", ref.Component)
	}
	p := c.PortByName(ref.PortName())
	if p == nil {
		return nil, fmt.Errorf("component %s has no port %q", c, ref.PortName())
	}
	return p, nil
}
