package boolean_test

import (
	"testing"

	"github.com/mcsat-core/mcsat/core"
	"github.com/mcsat-core/mcsat/plugin/boolean"
)

func TestAnd_ForcesBothOperandsTrue(t *testing.T) {
	s := core.NewDefaultSolver()
	b := boolean.New(s)
	s.RegisterPlugin(b)

	x1 := s.MkBoolTerm()
	x2 := s.MkBoolTerm()
	and := b.MkAnd(x1, x2)

	s.Assert(core.AtomOf(and, false), "") // and must be true

	state, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if state != core.Sat {
		t.Fatalf("Solve() = %s, want sat", state)
	}

	v1, _ := s.Value(x1).(bool)
	v2, _ := s.Value(x2).(bool)
	if !v1 || !v2 {
		t.Errorf("x1=%v x2=%v, want both true", v1, v2)
	}
}

func TestOr_UnsatWhenBothOperandsForcedFalse(t *testing.T) {
	s := core.NewDefaultSolver()
	b := boolean.New(s)
	s.RegisterPlugin(b)

	x1 := s.MkBoolTerm()
	x2 := s.MkBoolTerm()
	or := b.MkOr(x1, x2)

	s.Assert(core.AtomOf(or, false), "") // or must be true
	s.Assert(core.AtomOf(x1, true), "")  // x1 forced false
	s.Assert(core.AtomOf(x2, true), "")  // x2 forced false

	state, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if state != core.Unsat {
		t.Fatalf("Solve() = %s, want unsat", state)
	}
}

func TestNot_TracksOperandPolarity(t *testing.T) {
	s := core.NewDefaultSolver()
	b := boolean.New(s)
	s.RegisterPlugin(b)

	x1 := s.MkBoolTerm()
	not := b.MkNot(x1)

	s.Assert(core.AtomOf(not, false), "") // not(x1) must be true, so x1 is false

	state, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if state != core.Sat {
		t.Fatalf("Solve() = %s, want sat", state)
	}

	v1, _ := s.Value(x1).(bool)
	if v1 {
		t.Errorf("x1 = true, want false")
	}
}
