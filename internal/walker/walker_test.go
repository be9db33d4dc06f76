package walker

import (
	"errors"
	"testing"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adderContext(t *testing.T) circuit.BoardContext {
	t.Helper()
	env := testutil.Build(t, testutil.FullAdder)
	return circuit.ContextOf(circuit.NewState(env.Board(t, "adder2")))
}

func TestWalk_Counts(t *testing.T) {
	testCases := []struct {
		name      string
		recursive bool
		revisit   bool
		want      int
	}{
		{name: "top level only", recursive: false, revisit: false, want: 8},
		{name: "recursive, each board once", recursive: true, revisit: false, want: 18},
		{name: "recursive, every instance", recursive: true, revisit: true, want: 28},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			start := adderContext(t)
			n := 0
			err := Walk(start, tc.recursive, tc.revisit, func(circuit.BoardContext, *circuit.Component) error {
				n++
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, n)
		})
	}
}

func TestWalk_ChildStatesPerInstance(t *testing.T) {
	start := adderContext(t)

	var contexts []circuit.BoardContext
	err := Walk(start, true, true, func(at circuit.BoardContext, c *circuit.Component) error {
		if c.Label() == "sum" {
			contexts = append(contexts, at)
		}
		return nil
	})
	require.NoError(t, err)
	require.Len(t, contexts, 2)

	fa0 := start.Board.Component("fa0")
	fa1 := start.Board.Component("fa1")
	assert.Same(t, start.State.Child(fa0), contexts[0].State)
	assert.Same(t, start.State.Child(fa1), contexts[1].State)
	assert.False(t, contexts[0] == contexts[1], "same board, different instantiations")
	assert.Same(t, contexts[0].Board, contexts[1].Board)
}

func TestWalk_ListingOrder(t *testing.T) {
	start := adderContext(t)
	var ids []string
	require.NoError(t, Walk(start, false, false, func(_ circuit.BoardContext, c *circuit.Component) error {
		ids = append(ids, c.ID)
		return nil
	}))
	assert.Equal(t, []string{"a0", "a1", "b0", "b1", "s0", "s1", "carry", "zero"}, ids)
}

func TestWalk_StopAndErrors(t *testing.T) {
	start := adderContext(t)

	n := 0
	err := Walk(start, true, true, func(circuit.BoardContext, *circuit.Component) error {
		n++
		if n == 3 {
			return ErrStop
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	boom := errors.New("boom")
	err = Walk(start, true, true, func(circuit.BoardContext, *circuit.Component) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestWalk_RecursiveBoard(t *testing.T) {
	b := circuit.NewBoard("loop", 10, 10)
	require.NoError(t, b.AddComponent(circuit.NewComponent("p", circuit.KindPin, nil, []circuit.PortSpec{{Name: "io", Width: 1}})))
	require.NoError(t, b.AddComponent(circuit.NewSubcircuit("self", nil, b)))

	for _, revisit := range []bool{false, true} {
		err := Walk(circuit.ContextOf(circuit.NewState(b)), true, revisit, func(circuit.BoardContext, *circuit.Component) error {
			return nil
		})
		assert.ErrorIs(t, err, ErrRecursiveBoard)
	}

	err := Walk(circuit.ContextOf(circuit.NewState(b)), false, false, func(circuit.BoardContext, *circuit.Component) error {
		return nil
	})
	assert.NoError(t, err, "non-recursive walks never descend")
}

func TestWalk_NilState(t *testing.T) {
	start := adderContext(t)
	start.State = nil
	n := 0
	require.NoError(t, Walk(start, true, true, func(at circuit.BoardContext, _ *circuit.Component) error {
		assert.Nil(t, at.State)
		n++
		return nil
	}))
	assert.Equal(t, 28, n)
}
