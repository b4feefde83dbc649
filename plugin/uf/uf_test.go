package uf_test

import (
	"testing"

	"github.com/mcsat-core/mcsat/core"
	"github.com/mcsat-core/mcsat/plugin/uf"
)

type element struct{ name string }

func (e element) Key() any { return e.name }

// TestCongruence_DetectsInconsistentDisequality asserts a = b alongside
// f(a) != f(b): the congruence rule forces f(a) = f(b), contradicting the
// asserted disequality.
func TestCongruence_DetectsInconsistentDisequality(t *testing.T) {
	s := core.NewDefaultSolver()
	u := uf.New(s)
	s.RegisterPlugin(u)

	a := u.MkElement(element{"a"})
	b := u.MkElement(element{"b"})
	fa := u.MkApp("f", a)
	fb := u.MkApp("f", b)

	eqAB := u.MkEq(a, b)
	eqFAFB := u.MkEq(fa, fb)

	s.Assert(core.AtomOf(eqAB, false), "")   // a = b
	s.Assert(core.AtomOf(eqFAFB, true), "")  // f(a) != f(b)

	state, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if state != core.Unsat {
		t.Fatalf("Solve() = %s, want unsat (congruence violated)", state)
	}
}

func TestCongruence_SatisfiesConsistentEquality(t *testing.T) {
	s := core.NewDefaultSolver()
	u := uf.New(s)
	s.RegisterPlugin(u)

	a := u.MkElement(element{"a"})
	b := u.MkElement(element{"b"})
	_ = u.MkApp("f", a)
	_ = u.MkApp("f", b)

	eqAB := u.MkEq(a, b)
	s.Assert(core.AtomOf(eqAB, false), "") // a = b

	state, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if state != core.Sat {
		t.Fatalf("Solve() = %s, want sat", state)
	}
}

func TestEq_HashConsesBothOrderings(t *testing.T) {
	s := core.NewDefaultSolver()
	u := uf.New(s)
	s.RegisterPlugin(u)

	a := u.MkElement(element{"a"})
	b := u.MkElement(element{"b"})

	if u.MkEq(a, b) != u.MkEq(b, a) {
		t.Errorf("MkEq(a, b) != MkEq(b, a), want the same hash-consed term")
	}
}
