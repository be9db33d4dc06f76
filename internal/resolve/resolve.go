// Package resolve finds components inside a board, and boards inside a
// document, by human-facing names with strict cardinality rules.
package resolve

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/circuitprobe/internal/catalog"
	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/ctxlog"
	"github.com/specialistvlad/circuitprobe/internal/names"
	"github.com/specialistvlad/circuitprobe/internal/walker"
)

// Resolver answers lookups rooted at one live board instantiation. It holds
// no state of its own; every call reads the current graph.
type Resolver struct {
	cat   *catalog.Catalog
	start circuit.BoardContext
}

// New returns a resolver searching from start.
func New(cat *catalog.Catalog, start circuit.BoardContext) *Resolver {
	return &Resolver{cat: cat, start: start}
}

// Start returns the context lookups are rooted at.
func (r *Resolver) Start() circuit.BoardContext { return r.start }

// Catalog returns the catalog names are resolved against.
func (r *Resolver) Catalog() *catalog.Catalog { return r.cat }

// At returns a resolver rooted at another context, sharing the catalog.
func (r *Resolver) At(at circuit.BoardContext) *Resolver {
	if at == r.start {
		return r
	}
	return &Resolver{cat: r.cat, start: at}
}

// Match is one component found by a lookup, with the instantiation it
// lives in.
type Match struct {
	At        circuit.BoardContext
	Component *circuit.Component
}

// Query selects the single component LookupOne must find.
type Query struct {
	Category string
	Name     string
	// Label filters by normalized label; nil means "the only one of its kind".
	Label *string
	// Bits, when positive, is the exact width the match must declare.
	Bits      int
	Recursive bool
}

// Label is a convenience for building a Query label.
func Label(s string) *string { return &s }

func (q Query) criteria() string {
	if q.Label == nil {
		return ""
	}
	return fmt.Sprintf(" labelled %q", *q.Label)
}

func scope(recursive bool) string {
	if recursive {
		return " (and its children)"
	}
	return ""
}

// LookupOne finds exactly one component of the queried type. The walk
// revisits shared boards so that every instance counts towards ambiguity.
func (r *Resolver) LookupOne(ctx context.Context, q Query) (Match, error) {
	logger := ctxlog.FromContext(ctx).With("board", r.start.Board.Name, "category", q.Category, "name", q.Name)
	board := r.start.Board.Name

	h, err := r.cat.Lookup(q.Category, q.Name)
	if err != nil {
		return Match{}, &LookupError{Err: ErrUnknownName, Board: board, Msg: fmt.Sprintf("unknown component type %s/%s", q.Category, q.Name)}
	}
	var want string
	if q.Label != nil {
		want = names.Canonical(*q.Label)
	}

	var matches []Match
	err = walker.Walk(r.start, q.Recursive, true, func(at circuit.BoardContext, c *circuit.Component) error {
		if !h.Matches(c) {
			return nil
		}
		if q.Label != nil && names.Canonical(c.Label()) != want {
			return nil
		}
		matches = append(matches, Match{At: at, Component: c})
		return nil
	})
	if err != nil {
		return Match{}, err
	}
	logger.Debug("Lookup walk complete.", "matches", len(matches), "recursive", q.Recursive)

	switch {
	case len(matches) > 1:
		return Match{}, &LookupError{Err: ErrAmbiguous, Board: board, Msg: fmt.Sprintf(
			"board %q%s contains %d %ss%s, expected 1", board, scope(q.Recursive), len(matches), q.Name, q.criteria())}
	case len(matches) == 0:
		return Match{}, &LookupError{Err: ErrNotFound, Board: board, Msg: fmt.Sprintf(
			"board %q%s contains no %ss%s", board, scope(q.Recursive), q.Name, q.criteria())}
	}

	m := matches[0]
	if q.Bits > 0 {
		if actual := m.Component.Bits(); actual != q.Bits {
			return Match{}, &LookupError{Err: ErrBitWidth, Board: m.At.Board.Name, Msg: fmt.Sprintf(
				"board %q has %s%s with %d bits, but expected %d bits", m.At.Board.Name, q.Name, q.criteria(), actual, q.Bits)}
		}
	}
	return m, nil
}

// Matches returns, keyed by component name, every component whose category
// or name is among criteria, or, with inverse, every component whose is
// not. Each board is walked at most once.
func (r *Resolver) Matches(ctx context.Context, criteria []string, inverse, recursive bool) (map[string][]Match, error) {
	categories := make(map[string]bool)
	components := make(map[string]bool)
	var unknown []string
	for _, s := range criteria {
		category, isCategory := r.cat.Category(s)
		name, isName := r.cat.ComponentName(s)
		if isCategory {
			categories[category] = true
		}
		if isName {
			components[name] = true
		}
		if !isCategory && !isName {
			unknown = append(unknown, s)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &LookupError{Err: ErrUnknownName, Board: r.start.Board.Name, Msg: fmt.Sprintf(
			"unknown component/category names: %s", strings.Join(unknown, ", "))}
	}

	out := make(map[string][]Match)
	err := walker.Walk(r.start, recursive, false, func(at circuit.BoardContext, c *circuit.Component) error {
		n, err := r.cat.NameOf(c)
		if err != nil {
			return err
		}
		match := categories[n.Category] || components[n.Name]
		if match != inverse {
			out[n.Name] = append(out[n.Name], Match{At: at, Component: c})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Component scan complete.", "board", r.start.Board.Name, "names", len(out), "inverse", inverse, "recursive", recursive)
	return out, nil
}

// CountMatches is Matches reduced to a count per component name.
func (r *Resolver) CountMatches(ctx context.Context, criteria []string, inverse, recursive bool) (map[string]int, error) {
	found, err := r.Matches(ctx, criteria, inverse, recursive)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(found))
	for name, ms := range found {
		counts[name] = len(ms)
	}
	return counts, nil
}

// ResolveBoard finds the one board of doc whose normalized name equals the
// normalized requested name.
func ResolveBoard(doc *circuit.Document, requested string) (*circuit.Board, error) {
	want := names.Canonical(requested)
	var found []*circuit.Board
	for _, b := range doc.Boards() {
		if names.Canonical(b.Name) == want {
			found = append(found, b)
		}
	}
	switch len(found) {
	case 0:
		return nil, &LookupError{Err: ErrNotFound, Msg: fmt.Sprintf(
			"no boards match the name %q; double-check the names of all your boards", requested)}
	case 1:
		return found[0], nil
	default:
		return nil, &LookupError{Err: ErrAmbiguous, Msg: fmt.Sprintf(
			"more than one board has the name %q; can't continue deterministically", requested)}
	}
}
