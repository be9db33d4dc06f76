package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/config"
	"github.com/specialistvlad/circuitprobe/internal/ctxlog"
	"github.com/specialistvlad/circuitprobe/internal/registry"
)

// Build constructs a complete document from model. path is recorded on the
// document for diagnostics.
func Build(ctx context.Context, path string, model *config.Model, r *registry.Registry) (*circuit.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting document construction.", "path", path, "boards", len(model.Boards))

	order, err := boardOrder(model.Boards)
	if err != nil {
		return nil, err
	}
	logger.Debug("Build: Board ordering complete.", "order", boardNames(order))

	boards := make(map[string]*circuit.Board, len(model.Boards))
	for _, cb := range order {
		b, err := buildBoard(ctx, cb, boards, r)
		if err != nil {
			return nil, fmt.Errorf("board %q (%s): %w", cb.Name, cb.Source, err)
		}
		boards[cb.Name] = b
	}

	doc := circuit.NewDocument(path)
	for _, cb := range model.Boards {
		if err := doc.AddBoard(boards[cb.Name]); err != nil {
			return nil, err
		}
	}

	logger.Info("Build: Document construction successful.", "path", path, "boards", len(model.Boards))
	return doc, nil
}

func buildBoard(ctx context.Context, cb *config.Board, built map[string]*circuit.Board, r *registry.Registry) (*circuit.Board, error) {
	logger := ctxlog.FromContext(ctx).With("board", cb.Name)

	width, height := cb.Width, cb.Height
	if width <= 0 {
		width = circuit.DefaultCanvasWidth
	}
	if height <= 0 {
		height = circuit.DefaultCanvasHeight
	}
	b := circuit.NewBoard(cb.Name, width, height)

	for _, cc := range cb.Components {
		c, err := newComponent(cc, built, r)
		if err != nil {
			return nil, err
		}
		if err := place(b, c, cc); err != nil {
			return nil, err
		}
	}
	logger.Debug("Build: Components created.", "count", len(b.Components()))

	if err := wire(b, cb.Wires); err != nil {
		return nil, err
	}
	logger.Debug("Build: Wiring complete.", "links", len(b.Links()))
	return b, nil
}

func boardNames(boards []*config.Board) []string {
	out := make([]string, len(boards))
	for i, b := range boards {
		out[i] = b.Name
	}
	return out
}
