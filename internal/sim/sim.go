package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/ctxlog"
)

// MaxIterations bounds the passes of one settle.
const MaxIterations = 1000

var (
	// ErrShortCircuit means two components drive different defined values
	// onto the same net.
	ErrShortCircuit = errors.New("short circuit")
	// ErrOscillation means a board did not settle within MaxIterations.
	ErrOscillation = errors.New("circuit does not settle")
)

// Behaviors looks up the Go behavior of a component kind.
type Behaviors interface {
	Behavior(kind string) (circuit.Behavior, bool)
}

// Simulator owns the top-level states of a document and settles them.
type Simulator struct {
	doc       *circuit.Document
	behaviors Behaviors
	roots     map[*circuit.Board]*circuit.State
	order     []*circuit.State
	netlists  map[*circuit.Board]*netlist
}

// New returns a simulator for doc.
func New(doc *circuit.Document, behaviors Behaviors) *Simulator {
	return &Simulator{
		doc:       doc,
		behaviors: behaviors,
		roots:     make(map[*circuit.Board]*circuit.State),
		netlists:  make(map[*circuit.Board]*netlist),
	}
}

// Document returns the simulated document.
func (s *Simulator) Document() *circuit.Document { return s.doc }

// Root returns the top-level state of b, creating it on first use.
func (s *Simulator) Root(b *circuit.Board) *circuit.State {
	if st, ok := s.roots[b]; ok {
		return st
	}
	st := circuit.NewState(b)
	s.roots[b] = st
	s.order = append(s.order, st)
	return st
}

// Reset clears every value of every top-level state.
func (s *Simulator) Reset() {
	for _, st := range s.order {
		st.Reset()
	}
}

// StepAll settles every top-level state.
func (s *Simulator) StepAll(ctx context.Context) error {
	for _, st := range s.order {
		if err := s.Settle(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// Settle evaluates st until its values stop changing.
func (s *Simulator) Settle(ctx context.Context, st *circuit.State) error {
	for i := 1; i <= MaxIterations; i++ {
		changed, err := s.pass(ctx, st)
		if err != nil {
			return err
		}
		if !changed {
			ctxlog.FromContext(ctx).Debug("Board settled.", "board", st.Board().Name, "passes", i)
			return nil
		}
	}
	return fmt.Errorf("%w: board %q changed on each of %d passes", ErrOscillation, st.Board().Name, MaxIterations)
}

func (s *Simulator) netlist(b *circuit.Board) *netlist {
	nl, ok := s.netlists[b]
	if !ok || nl.version != b.Version() {
		nl = buildNetlist(b)
		s.netlists[b] = nl
	}
	return nl
}

// pass runs one evaluation of st and reports whether any net changed.
func (s *Simulator) pass(ctx context.Context, st *circuit.State) (bool, error) {
	b := st.Board()
	nl := s.netlist(b)
	ev := &evaluation{state: st, nl: nl, drives: make(map[int]circuit.Value)}

	for _, c := range b.Components() {
		ev.comp = c
		if c.IsSubcircuit() {
			if err := s.evaluateSubcircuit(ctx, ev); err != nil {
				return false, err
			}
		} else {
			beh, ok := s.behaviors.Behavior(c.Kind)
			if !ok {
				return false, fmt.Errorf("board %q: no behavior for %s", b.Name, c)
			}
			beh.Evaluate(ev)
		}
		if ev.err != nil {
			return false, ev.err
		}
	}

	changed := false
	for n, links := range nl.nets {
		v, ok := ev.drives[n]
		if !ok {
			v = circuit.Floating(nl.width(n))
		}
		if !st.LinkValue(links[0]).Equal(v) {
			changed = true
		}
		for _, l := range links {
			st.SetLinkValue(l, v)
		}
	}
	return changed, nil
}

// evaluateSubcircuit feeds the instance's input pins from the parent ports,
// settles the child state and drives the parent ports from its output pins.
func (s *Simulator) evaluateSubcircuit(ctx context.Context, ev *evaluation) error {
	sub := ev.comp
	child := ev.state.Child(sub)
	for i, p := range sub.Ports() {
		if pin := sub.SubcircuitPin(i); pin.IsInputPin() {
			child.SetPinValue(pin, ev.state.PortValue(p))
		}
	}
	if err := s.Settle(ctx, child); err != nil {
		return fmt.Errorf("in %s: %w", sub, err)
	}
	for i := range sub.Ports() {
		if pin := sub.SubcircuitPin(i); !pin.IsInputPin() {
			ev.Drive(i, child.PortValue(pin.Port(0)))
		}
	}
	return nil
}
