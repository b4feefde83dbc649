package lra_test

import (
	"testing"

	"github.com/mcsat-core/mcsat/core"
	"github.com/mcsat-core/mcsat/plugin/lra"
)

func TestInterval_ConflictsWhenBoundsCross(t *testing.T) {
	s := core.NewDefaultSolver()
	p := lra.New(s)
	s.RegisterPlugin(p)

	x := p.MkVar("x")
	leq := p.MkLeq(x, 5)
	geq := p.MkGeq(x, 10)

	s.Assert(core.AtomOf(leq, false), "") // x <= 5
	s.Assert(core.AtomOf(geq, false), "") // x >= 10

	state, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if state != core.Unsat {
		t.Fatalf("Solve() = %s, want unsat", state)
	}
}

func TestInterval_SatisfiableWithConsistentBounds(t *testing.T) {
	s := core.NewDefaultSolver()
	p := lra.New(s)
	s.RegisterPlugin(p)

	x := p.MkVar("x")
	leq := p.MkLeq(x, 10)
	geq := p.MkGeq(x, 5)

	s.Assert(core.AtomOf(leq, false), "")
	s.Assert(core.AtomOf(geq, false), "")

	state, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if state != core.Sat {
		t.Fatalf("Solve() = %s, want sat", state)
	}

	v, ok := s.Value(x).(float64)
	if !ok {
		t.Fatalf("x was never decided")
	}
	if v < 5 || v > 10 {
		t.Errorf("decided value %v out of [5,10]", v)
	}
}

func TestEquality_EvaluatesOnceBothSidesDecided(t *testing.T) {
	s := core.NewDefaultSolver()
	p := lra.New(s)
	s.RegisterPlugin(p)

	x := p.MkVar("x")
	c := p.MkConst(3)
	eq := p.MkEq(x, c)

	leqLo := p.MkLeq(x, 3)
	geqLo := p.MkGeq(x, 3)
	s.Assert(core.AtomOf(leqLo, false), "")
	s.Assert(core.AtomOf(geqLo, false), "")
	s.Assert(core.AtomOf(eq, false), "") // x = 3 must hold

	state, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if state != core.Sat {
		t.Fatalf("Solve() = %s, want sat", state)
	}
}
