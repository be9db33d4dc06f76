package sim

import (
	"context"
	"fmt"
	"testing"

	"github.com/specialistvlad/circuitprobe/internal/circuit"
	"github.com/specialistvlad/circuitprobe/internal/surgery"
	"github.com/specialistvlad/circuitprobe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pins is a small driver over one root state.
type pins struct {
	t  *testing.T
	b  *circuit.Board
	st *circuit.State
}

func (p pins) set(id string, v uint64) {
	p.t.Helper()
	c := p.b.Component(id)
	require.NotNil(p.t, c, "component %q", id)
	p.st.SetPinValue(c, circuit.ValueOf(v, c.Bits()))
}

func (p pins) get(id string) circuit.Value {
	p.t.Helper()
	c := p.b.Component(id)
	require.NotNil(p.t, c, "component %q", id)
	return p.st.PortValue(c.Port(0))
}

func TestFullAdder_TruthTable(t *testing.T) {
	env := testutil.Build(t, testutil.FullAdder)
	b := env.Board(t, "full adder")
	s := New(env.Doc, env.Registry)
	p := pins{t: t, b: b, st: s.Root(b)}

	for in := uint64(0); in < 8; in++ {
		a, bb, cin := in&1, in>>1&1, in>>2&1
		t.Run(fmt.Sprintf("a=%d b=%d cin=%d", a, bb, cin), func(t *testing.T) {
			p.set("a", a)
			p.set("b", bb)
			p.set("cin", cin)
			require.NoError(t, s.StepAll(context.Background()))

			total := a + bb + cin
			assert.Equal(t, circuit.ValueOf(total&1, 1), p.get("sum"))
			assert.Equal(t, circuit.ValueOf(total>>1, 1), p.get("cout"))
		})
	}
}

func TestRippleAdder_Subcircuits(t *testing.T) {
	env := testutil.Build(t, testutil.FullAdder)
	b := env.Board(t, "adder2")
	s := New(env.Doc, env.Registry)
	p := pins{t: t, b: b, st: s.Root(b)}

	for x := uint64(0); x < 4; x++ {
		for y := uint64(0); y < 4; y++ {
			p.set("a0", x&1)
			p.set("a1", x>>1)
			p.set("b0", y&1)
			p.set("b1", y>>1)
			require.NoError(t, s.StepAll(context.Background()))

			got := p.get("s0").Bits | p.get("s1").Bits<<1 | p.get("carry").Bits<<2
			assert.Equal(t, x+y, got, "%d + %d", x, y)
		}
	}

	s.Reset()
	assert.False(t, p.get("s0").Defined, "reset forgets settled values")
}

func TestTunnels_JoinNets(t *testing.T) {
	env := testutil.Build(t, testutil.Tunnels)
	b := env.Board(t, "tunnels")
	s := New(env.Doc, env.Registry)
	p := pins{t: t, b: b, st: s.Root(b)}

	p.set("x", 0b0011)
	require.NoError(t, s.StepAll(context.Background()))
	assert.Equal(t, circuit.ValueOf(0b1100, 4), p.get("y"))
}

func TestTunnels_TapTracksValue(t *testing.T) {
	env := testutil.Build(t, testutil.Tunnels)
	b := env.Board(t, "tunnels")
	link := b.Component("t_out").Port(0).Link()
	before := link.Len()

	tap, err := surgery.New(env.Registry).Tap(context.Background(), b, link)
	require.NoError(t, err)
	assert.Equal(t, before+1, link.Len())

	s := New(env.Doc, env.Registry)
	st := s.Root(b)
	p := pins{t: t, b: b, st: st}
	for _, v := range []uint64{0x3, 0xa, 0xf} {
		p.set("x", v)
		require.NoError(t, s.StepAll(context.Background()))
		assert.Equal(t, circuit.ValueOf(v, 4), st.PortValue(tap.Port(0)))
		assert.Equal(t, circuit.ValueOf(^v, 4), p.get("y"), "the tap must not disturb the net")
	}
}

func TestSequential(t *testing.T) {
	env := testutil.Build(t, testutil.Sequential)
	b := env.Board(t, "sequential")
	clk, err := surgery.New(env.Registry).MockPulser(context.Background(), b.Component("clk"))
	require.NoError(t, err)

	s := New(env.Doc, env.Registry)
	st := s.Root(b)
	p := pins{t: t, b: b, st: st}
	ctx := context.Background()

	p.set("next", 5)
	require.NoError(t, s.StepAll(ctx))
	assert.Equal(t, circuit.ValueOf(0, 4), p.get("value"))

	st.SetPinValue(clk, circuit.ValueOf(1, 1))
	require.NoError(t, s.StepAll(ctx))
	assert.Equal(t, circuit.ValueOf(5, 4), p.get("value"), "latched on the rising edge")

	p.set("next", 9)
	require.NoError(t, s.StepAll(ctx))
	assert.Equal(t, circuit.ValueOf(5, 4), p.get("value"), "no edge, no change")

	for addr, want := range map[uint64]uint64{0: 0x11, 2: 0x11, 3: 0x22, 4: 0xff, 5: 0} {
		p.set("addr", addr)
		require.NoError(t, s.StepAll(ctx))
		assert.Equal(t, circuit.ValueOf(want, 8), p.get("data"), "rom[%d]", addr)
	}
}

func TestShortCircuit(t *testing.T) {
	env := testutil.Build(t, `
board "short" {
  component "Wiring" "Constant" {
    id = "zero"
  }
  component "Wiring" "Constant" {
    id    = "one"
    value = 1
  }
  wire {
    connect = ["zero.out", "one.out"]
  }
}`)
	s := New(env.Doc, env.Registry)
	s.Root(env.Board(t, "short"))
	assert.ErrorIs(t, s.StepAll(context.Background()), ErrShortCircuit)
}

// toggler drives the inverse of what it reads, treating floating as 0.
type toggler struct{}

func (toggler) Ports(circuit.Properties) []circuit.PortSpec {
	return []circuit.PortSpec{{Name: "in", Width: 1}, {Name: "out", Width: 1}}
}

func (toggler) Evaluate(ev circuit.Eval) {
	in := ev.Input(0)
	ev.Drive(1, circuit.ValueOf(^in.Bits, 1))
}

type behaviorMap map[string]circuit.Behavior

func (m behaviorMap) Behavior(kind string) (circuit.Behavior, bool) {
	b, ok := m[kind]
	return b, ok
}

func TestOscillation(t *testing.T) {
	b := circuit.NewBoard("ring", 0, 0)
	c := circuit.NewComponent("t", "toggler", nil, toggler{}.Ports(nil))
	require.NoError(t, b.AddComponent(c))
	l := circuit.NewLink(1)
	require.NoError(t, l.Join(c.Port(0)))
	require.NoError(t, l.Join(c.Port(1)))

	doc := circuit.NewDocument("ring.hcl")
	require.NoError(t, doc.AddBoard(b))
	s := New(doc, behaviorMap{"toggler": toggler{}})

	err := s.Settle(context.Background(), s.Root(b))
	assert.ErrorIs(t, err, ErrOscillation)

	err = New(doc, behaviorMap{}).Settle(context.Background(), circuit.NewState(b))
	assert.ErrorContains(t, err, "no behavior")
}
