package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/circuitprobe/internal/catalog"
	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func resolverFor(t *testing.T, env *testutil.Env, board string) *Resolver {
	t.Helper()
	return New(env.Catalog, circuit.ContextOf(circuit.NewState(env.Board(t, board))))
}

const sumBoards = `
board "inner" {
  component "Wiring" "Output Pin" {
    id    = "s"
    label = "SUM"
  }
}

board "solo" {
  component "Wiring" "Output Pin" {
    id    = "sum"
    label = "sum"
  }
}

board "doubled" {
  component "Wiring" "Output Pin" {
    id    = "sum"
    label = "sum"
  }
  component "Wiring" "Output Pin" {
    id    = "sum2"
    label = "Sum!"
  }
}

board "nested" {
  component "Wiring" "Output Pin" {
    id    = "sum"
    label = "sum"
  }
  component "Circuits" "Subcircuit" {
    id         = "child"
    subcircuit = "inner"
  }
}
`

func TestLookupOne_Uniqueness(t *testing.T) {
	env := testutil.Build(t, sumBoards)
	ctx := context.Background()
	q := Query{Category: "Wiring", Name: "Output Pin", Label: Label("sum"), Bits: 1}

	m, err := resolverFor(t, env, "solo").LookupOne(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "sum", m.Component.ID)

	_, err = resolverFor(t, env, "doubled").LookupOne(ctx, q)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguous)
	assert.Equal(t, `board "doubled" contains 2 Output Pins labelled "sum", expected 1`, err.Error())

	nested := resolverFor(t, env, "nested")
	m, err = nested.LookupOne(ctx, q)
	require.NoError(t, err, "non-recursive lookups ignore nested boards")
	assert.Equal(t, "sum", m.Component.ID)

	q.Recursive = true
	_, err = nested.LookupOne(ctx, q)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguous)
	assert.Contains(t, err.Error(), "(and its children) contains 2 Output Pins")
}

func TestLookupOne_Errors(t *testing.T) {
	env := testutil.Build(t, testutil.FullAdder)
	ctx := context.Background()
	r := resolverFor(t, env, "full adder")

	testCases := []struct {
		name    string
		query   Query
		wantErr error
		wantMsg string
	}{
		{
			name:    "bit width",
			query:   Query{Category: "Wiring", Name: "Input Pin", Label: Label("a"), Bits: 8},
			wantErr: ErrBitWidth,
			wantMsg: `board "full adder" has Input Pin labelled "a" with 1 bits, but expected 8 bits`,
		},
		{
			name:    "not found",
			query:   Query{Category: "Wiring", Name: "Input Pin", Label: Label("d")},
			wantErr: ErrNotFound,
			wantMsg: `board "full adder" contains no Input Pins labelled "d"`,
		},
		{
			name:    "only one of its kind, but three",
			query:   Query{Category: "Wiring", Name: "Input Pin"},
			wantErr: ErrAmbiguous,
			wantMsg: `board "full adder" contains 3 Input Pins, expected 1`,
		},
		{
			name:    "unknown type",
			query:   Query{Category: "Wiring", Name: "Flux Capacitor"},
			wantErr: ErrUnknownName,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.LookupOne(ctx, tc.query)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			var lookupErr *LookupError
			require.True(t, errors.As(err, &lookupErr))
			assert.Equal(t, "full adder", lookupErr.Board)
			if tc.wantMsg != "" {
				assert.Equal(t, tc.wantMsg, err.Error())
			}
		})
	}
}

func TestLookupOne_LabelsAreNormalized(t *testing.T) {
	env := testutil.Build(t, testutil.FullAdder)
	r := resolverFor(t, env, "full adder")

	m, err := r.LookupOne(context.Background(), Query{Category: "Wiring", Name: "Input Pin", Label: Label(" C-In "), Bits: 1})
	require.NoError(t, err)
	assert.Equal(t, "cin", m.Component.ID)
	assert.Equal(t, r.Start(), m.At)
}

func TestLookupOne_OnlyOfItsKind(t *testing.T) {
	env := testutil.Build(t, testutil.FullAdder)
	r := resolverFor(t, env, "adder2")

	m, err := r.LookupOne(context.Background(), Query{Category: "Wiring", Name: "Constant"})
	require.NoError(t, err)
	assert.Equal(t, "zero", m.Component.ID)
}

func TestLookupOne_RecursiveMatchCarriesChildState(t *testing.T) {
	env := testutil.Build(t, sumBoards+`
board "wrapper" {
  component "Circuits" "Subcircuit" {
    id         = "only"
    subcircuit = "inner"
  }
}
`)
	r := resolverFor(t, env, "wrapper")
	q := Query{Category: "Wiring", Name: "Output Pin", Label: Label("sum")}

	_, err := r.LookupOne(context.Background(), q)
	assert.ErrorIs(t, err, ErrNotFound)

	q.Recursive = true
	m, err := r.LookupOne(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, "s", m.Component.ID)
	assert.Equal(t, "inner", m.At.Board.Name)
	assert.Same(t, r.Start().State.Child(r.Start().Board.Component("only")), m.At.State)
}

func TestCountMatches(t *testing.T) {
	env := testutil.Build(t, testutil.FullAdder)
	ctx := context.Background()
	r := resolverFor(t, env, "adder2")

	testCases := []struct {
		name      string
		criteria  []string
		inverse   bool
		recursive bool
		want      map[string]int
	}{
		{
			name:     "pins by name",
			criteria: []string{"Input Pin", "Output Pin"},
			want:     map[string]int{"Input Pin": 4, "Output Pin": 3},
		},
		{
			name:      "gates by category, each board once",
			criteria:  []string{"Gates"},
			recursive: true,
			want:      map[string]int{"XOR": 2, "AND": 2, "OR": 1},
		},
		{
			name:     "inverse at top level skips subcircuits",
			criteria: []string{"Wiring"},
			inverse:  true,
			want:     map[string]int{},
		},
		{
			name:      "inverse recursive",
			criteria:  []string{"wiring"},
			inverse:   true,
			recursive: true,
			want:      map[string]int{"XOR": 2, "AND": 2, "OR": 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.CountMatches(ctx, tc.criteria, tc.inverse, tc.recursive)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("CountMatches() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCountMatches_UnknownNames(t *testing.T) {
	env := testutil.Build(t, testutil.FullAdder)
	r := resolverFor(t, env, "adder2")

	_, err := r.CountMatches(context.Background(), []string{"Input Pin", "Flux", "Bogus"}, false, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownName)
	assert.Equal(t, "unknown component/category names: Bogus, Flux", err.Error())
}

func TestCountMatches_UnidentifiableComponent(t *testing.T) {
	env := testutil.Build(t, testutil.FullAdder)
	b := circuit.NewBoard("odd", 10, 10)
	require.NoError(t, b.AddComponent(circuit.NewComponent("a", circuit.KindPin, circuit.Properties{
		"direction": cty.StringVal("in"),
		"label":     cty.StringVal("a"),
	}, []circuit.PortSpec{{Name: "io", Width: 1}})))
	r := New(env.Catalog, circuit.ContextOf(circuit.NewState(b)))

	_, err := r.CountMatches(context.Background(), []string{"Input Pin"}, false, false)
	require.Error(t, err)
	var catErr *catalog.CatalogError
	assert.True(t, errors.As(err, &catErr))
	var lookupErr *LookupError
	assert.False(t, errors.As(err, &lookupErr))
}

func TestResolveBoard(t *testing.T) {
	env := testutil.Build(t, testutil.FullAdder+`
board "1-bit adder" {
}
board "1 bit adder!" {
}
`)

	b, err := ResolveBoard(env.Doc, "Full-Adder")
	require.NoError(t, err)
	assert.Equal(t, "full adder", b.Name)

	b, err = ResolveBoard(env.Doc, "ADDER 2")
	require.NoError(t, err)
	assert.Equal(t, "adder2", b.Name)

	_, err = ResolveBoard(env.Doc, "1BITADDER")
	assert.ErrorIs(t, err, ErrAmbiguous)
	assert.Contains(t, err.Error(), "can't continue deterministically")

	_, err = ResolveBoard(env.Doc, "half adder")
	assert.ErrorIs(t, err, ErrNotFound)
}
