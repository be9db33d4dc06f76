// Package walker traverses the components of a board and, optionally, of
// the boards its subcircuits instantiate.
package walker

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
)

// ErrStop may be returned by a VisitFunc to end the walk early. Walk then
// returns nil.
var ErrStop = errors.New("walker: stop")

// ErrRecursiveBoard reports a board that instantiates itself, directly or
// through other boards.
var ErrRecursiveBoard = errors.New("recursive board reference")

// VisitFunc is called for every non-subcircuit component reached. at is the
// live instantiation the component belongs to.
type VisitFunc func(at circuit.BoardContext, c *circuit.Component) error

// Walk visits the components of start in listing order. When recursive is
// set, subcircuit components are descended into using the child state of
// the calling context; otherwise they are skipped. Without revisit, a board
// entered once through a subcircuit is not entered again anywhere else in
// the same walk.
func Walk(start circuit.BoardContext, recursive, revisit bool, visit VisitFunc) error {
	w := &walk{
		recursive: recursive,
		revisit:   revisit,
		visit:     visit,
		visited:   make(map[string]bool),
		path:      map[*circuit.Board]bool{start.Board: true},
	}
	err := w.board(start)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

type walk struct {
	recursive bool
	revisit   bool
	visit     VisitFunc

	visited map[string]bool
	path    map[*circuit.Board]bool
}

func (w *walk) board(at circuit.BoardContext) error {
	for _, c := range at.Board.Components() {
		if !c.IsSubcircuit() {
			if err := w.visit(at, c); err != nil {
				return err
			}
			continue
		}
		if !w.recursive {
			continue
		}

		child := c.Subcircuit()
		if child == nil || w.visited[child.Name] {
			continue
		}
		if w.path[child] {
			return fmt.Errorf("%w: board %q reached again through %s", ErrRecursiveBoard, child.Name, c)
		}
		if !w.revisit {
			w.visited[child.Name] = true
		}

		var state *circuit.State
		if at.State != nil {
			state = at.State.Child(c)
		}
		w.path[child] = true
		err := w.board(circuit.BoardContext{Board: child, State: state})
		delete(w.path, child)
		if err != nil {
			return err
		}
	}
	return nil
}
