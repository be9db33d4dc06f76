package builder_test

import (
	"context"
	"testing"

	"github.com/specialistvlad/circuitprobe/internal/builder"
	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/hcl"
	"github.com/specialistvlad/circuitprobe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_FullAdder(t *testing.T) {
	env := testutil.Build(t, testutil.FullAdder)

	boards := env.Doc.Boards()
	require.Len(t, boards, 2)
	assert.Equal(t, "full adder", boards[0].Name)
	assert.Equal(t, "adder2", boards[1].Name)

	fa := env.Board(t, "full adder")
	assert.Equal(t, circuit.DefaultCanvasWidth, fa.Width)
	assert.Len(t, fa.Components(), 10)
	assert.Len(t, fa.Links(), 8)

	a := fa.Component("a")
	require.NotNil(t, a)
	assert.True(t, a.IsInputPin())
	assert.Equal(t, 3, a.Port(0).Link().Len(), "a feeds x1 and and1")

	adder := env.Board(t, "adder2")
	assert.Equal(t, 40, adder.Width)
	assert.Equal(t, 30, adder.Height)

	fa0 := adder.Component("fa0")
	require.NotNil(t, fa0)
	require.True(t, fa0.IsSubcircuit())
	assert.Same(t, fa, fa0.Subcircuit())

	var portNames []string
	for _, p := range fa0.Ports() {
		portNames = append(portNames, p.Name)
	}
	assert.Equal(t, []string{"a", "b", "cin", "sum", "cout"}, portNames)
	assert.True(t, fa0.PortByName("cout").Link().Contains(adder.Component("fa1").PortByName("cin")))
}

func TestBuild_PlacesWithoutOverlap(t *testing.T) {
	env := testutil.Build(t, testutil.FullAdder)
	comps := env.Board(t, "full adder").Components()
	for i, c := range comps {
		for _, o := range comps[i+1:] {
			overlap := c.X < o.X+o.W && o.X < c.X+c.W && c.Y < o.Y+o.H && o.Y < c.Y+c.H
			assert.False(t, overlap, "%s overlaps %s", c, o)
		}
	}
}

func TestBuild_MergesWiresSharingAPort(t *testing.T) {
	env := testutil.Build(t, `
board "b" {
  component "Wiring" "Tunnel" {
    id = "t1"
  }
  component "Wiring" "Tunnel" {
    id = "t2"
  }
  component "Wiring" "Probe" {
    id = "p"
  }
  component "Wiring" "Probe" {
    id = "q"
  }
  wire {
    connect = ["t1.io", "p.in"]
  }
  wire {
    connect = ["t2.io", "q.in"]
  }
  wire {
    connect = ["p.in", "q.in"]
  }
}
`)
	b := env.Board(t, "b")
	links := b.Links()
	require.Len(t, links, 1)
	assert.Equal(t, 4, links[0].Len())
}

func TestBuild_Errors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{
			name: "unknown component type",
			src: `
board "b" {
  component "Wiring" "Flux Capacitor" {
    id = "f"
  }
}`,
		},
		{
			name: "unknown board reference",
			src: `
board "b" {
  component "Circuits" "Subcircuit" {
    id         = "s"
    subcircuit = "missing"
  }
}`,
		},
		{
			name: "self reference",
			src: `
board "b" {
  component "Circuits" "Subcircuit" {
    id         = "s"
    subcircuit = "c"
  }
}
board "c" {
  component "Circuits" "Subcircuit" {
    id         = "s"
    subcircuit = "b"
  }
}`,
		},
		{
			name: "width mismatch",
			src: `
board "b" {
  component "Wiring" "Input Pin" {
    id   = "a"
    bits = 4
  }
  component "Wiring" "Output Pin" {
    id = "y"
  }
  wire {
    connect = ["a.io", "y.io"]
  }
}`,
		},
		{
			name: "unknown port",
			src: `
board "b" {
  component "Wiring" "Input Pin" {
    id = "a"
  }
  component "Wiring" "Output Pin" {
    id = "y"
  }
  wire {
    connect = ["a.out", "y.io"]
  }
}`,
		},
		{
			name: "x without y",
			src: `
board "b" {
  component "Wiring" "Input Pin" {
    id = "a"
    x  = 3
  }
}`,
		},
		{
			name: "duplicate id",
			src: `
board "b" {
  component "Wiring" "Input Pin" {
    id = "a"
  }
  component "Wiring" "Output Pin" {
    id = "a"
  }
}`,
		},
		{
			name: "duplicate board",
			src: `
board "b" {
}
board "b" {
}`,
		},
	}

	reg := testutil.Registry(t)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			model, err := hcl.NewLoader().LoadSource(context.Background(), "test.hcl", []byte(tc.src))
			require.NoError(t, err)
			_, err = builder.Build(context.Background(), "test.hcl", model, reg)
			assert.Error(t, err)
		})
	}
}

func TestBuild_KeepsDeclaredType(t *testing.T) {
	testCases := []struct {
		name     string
		block    string
		wantName string
		wantErr  string
	}{
		{
			name:    "input pin turned output",
			block:   `component "Wiring" "Input Pin" { direction = "output" }`,
			wantErr: `property "direction" selects the component type`,
		},
		{
			name:    "AND turned OR",
			block:   `component "Gates" "AND" { function = "or" }`,
			wantErr: `property "function" selects the component type`,
		},
		{
			name:     "restating the default",
			block:    `component "Wiring" "Input Pin" { direction = "input" }`,
			wantName: "Input Pin",
		},
		{
			name:     "non-identifying override",
			block:    `component "Gates" "AND" { inputs = 3 }`,
			wantName: "AND",
		},
	}

	reg := testutil.Registry(t)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src := "board \"b\" {\n" + tc.block + "\n}\n"
			model, err := hcl.NewLoader().LoadSource(context.Background(), "test.hcl", []byte(src))
			require.NoError(t, err)
			doc, err := builder.Build(context.Background(), "test.hcl", model, reg)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			cat := testutil.Catalog(t, reg)
			b, ok := doc.Board("b")
			require.True(t, ok)
			require.Len(t, b.Components(), 1)
			n, err := cat.NameOf(b.Components()[0])
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, n.Name)
		})
	}
}

func TestBuild_GeneratedIDs(t *testing.T) {
	env := testutil.Build(t, `
board "b" {
  component "Misc" "Text" {
    label = "hello"
  }
  component "Misc" "Text" {
    label = "world"
    x     = 10
    y     = 12
  }
}`)
	comps := env.Board(t, "b").Components()
	require.Len(t, comps, 2)
	assert.Equal(t, "text#1", comps[0].ID)
	assert.Equal(t, "text#2", comps[1].ID)
	assert.Equal(t, 10, comps[1].X)
	assert.Equal(t, 12, comps[1].Y)
}
