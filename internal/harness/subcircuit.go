package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/circuitprobe/internal/app"
	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/ctxlog"
	"github.com/specialistvlad/circuitprobe/internal/resolve"
	"github.com/specialistvlad/circuitprobe/internal/sim"
	"github.com/specialistvlad/circuitprobe/internal/surgery"
)

// ErrFloating is returned when a read sees an undefined value.
var ErrFloating = errors.New("at least one output bit is floating (undefined); is the output pin connected to anything?")

// Subcircuit is the board under test together with its simulator.
type Subcircuit struct {
	name     string
	board    *circuit.Board
	sim      *sim.Simulator
	state    *circuit.State
	resolver *resolve.Resolver
	surgeon  *surgery.Surgeon
}

// Open loads the document at path and attaches to its board named board.
func Open(ctx context.Context, a *app.App, path, board string) (*Subcircuit, error) {
	doc, err := a.OpenDocument(ctx, path)
	if err != nil {
		return nil, err
	}
	return Attach(ctx, a, doc, board)
}

// Attach returns the subcircuit for the board of doc whose normalized name
// equals board.
func Attach(ctx context.Context, a *app.App, doc *circuit.Document, board string) (*Subcircuit, error) {
	b, err := resolve.ResolveBoard(doc, board)
	if err != nil {
		return nil, err
	}
	s := sim.New(doc, a.Registry())
	st := s.Root(b)
	ctxlog.FromContext(ctx).Debug("Attached to board.", "requested", board, "board", b.Name)
	return &Subcircuit{
		name:     board,
		board:    b,
		sim:      s,
		state:    st,
		resolver: resolve.New(a.Catalog(), circuit.ContextOf(st)),
		surgeon:  surgery.New(a.Registry()),
	}, nil
}

// Name returns the board name exactly as requested.
func (s *Subcircuit) Name() string { return s.name }

// Board returns the board under test.
func (s *Subcircuit) Board() *circuit.Board { return s.board }

// State returns the live state of the board under test.
func (s *Subcircuit) State() *circuit.State { return s.state }

// Simulator returns the simulator driving the board.
func (s *Subcircuit) Simulator() *sim.Simulator { return s.sim }

// Resolver returns the resolver rooted at the board.
func (s *Subcircuit) Resolver() *resolve.Resolver { return s.resolver }

// Step settles the simulation.
func (s *Subcircuit) Step(ctx context.Context) error {
	return s.sim.StepAll(ctx)
}

// Reset forgets every value, latched register and memory word.
func (s *Subcircuit) Reset() {
	s.sim.Reset()
}

// PinCount returns the number of input and output pins placed directly on
// the board.
func (s *Subcircuit) PinCount(ctx context.Context) (int, error) {
	counts, err := s.resolver.CountMatches(ctx, []string{"Input Pin", "Output Pin"}, false, false)
	if err != nil {
		return 0, err
	}
	return counts["Input Pin"] + counts["Output Pin"], nil
}

// CountComponents counts components by name; see resolve.Resolver.CountMatches.
func (s *Subcircuit) CountComponents(ctx context.Context, names []string, inverse, recursive bool) (map[string]int, error) {
	return s.resolver.CountMatches(ctx, names, inverse, recursive)
}

// Ref selects one component of the subcircuit.
type Ref struct {
	// Label is compared after normalization.
	Label string
	// Only ignores Label: the component must be the only one of its kind.
	Only bool
	// Bits, when positive, is the width the component must declare.
	Bits      int
	Recursive bool
}

func (r Ref) query(category, name string) resolve.Query {
	q := resolve.Query{Category: category, Name: name, Bits: r.Bits, Recursive: r.Recursive}
	if !r.Only {
		q.Label = resolve.Label(r.Label)
	}
	return q
}

func (s *Subcircuit) lookup(ctx context.Context, ref Ref, category, name string) (resolve.Match, error) {
	return s.resolver.LookupOne(ctx, ref.query(category, name))
}

func read(v circuit.Value) (uint64, error) {
	if !v.Defined {
		return 0, ErrFloating
	}
	return v.Bits, nil
}

// Sext sign-extends the low bits of v.
func Sext(v uint64, bits int) int64 {
	if bits <= 0 || bits >= 64 {
		return int64(v)
	}
	shift := uint(64 - bits)
	return int64(v<<shift) >> shift
}

func labelOf(ref Ref) string {
	if ref.Only {
		return "(only instance)"
	}
	return fmt.Sprintf("%q", ref.Label)
}
