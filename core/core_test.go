package core_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mcsat-core/mcsat/core"
)

func TestSolve_SatisfiableTwoClause(t *testing.T) {
	s := core.NewDefaultSolver()
	x1 := s.MkBoolTerm()
	x2 := s.MkBoolTerm()

	s.AddClause([]core.AtomID{core.AtomOf(x1, false), core.AtomOf(x2, false)}, "")
	s.AddClause([]core.AtomID{core.AtomOf(x1, true), core.AtomOf(x2, true)}, "")

	state, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if state != core.Sat {
		t.Fatalf("Solve() = %s, want sat", state)
	}

	v1, _ := s.Value(x1).(bool)
	v2, _ := s.Value(x2).(bool)
	if v1 == v2 {
		t.Errorf("model x1=%v x2=%v does not satisfy (x1|x2)&(!x1|!x2)", v1, v2)
	}
}

// TestSolve_UnsatisfiableByConflictLearning exercises the full CDCL loop
// (decide, propagate, analyze, learn, backtrack) on the classic two-variable
// instance asserting all four clauses over {x1,x2}, which is unsatisfiable.
func TestSolve_UnsatisfiableByConflictLearning(t *testing.T) {
	s := core.NewDefaultSolver()
	x1 := s.MkBoolTerm()
	x2 := s.MkBoolTerm()

	s.AddClause([]core.AtomID{core.AtomOf(x1, false), core.AtomOf(x2, false)}, "")
	s.AddClause([]core.AtomID{core.AtomOf(x1, true), core.AtomOf(x2, false)}, "")
	s.AddClause([]core.AtomID{core.AtomOf(x1, false), core.AtomOf(x2, true)}, "")
	s.AddClause([]core.AtomID{core.AtomOf(x1, true), core.AtomOf(x2, true)}, "")

	state, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if state != core.Unsat {
		t.Fatalf("Solve() = %s, want unsat", state)
	}
}

func TestSolve_RootLevelConflictIsImmediatelyUnsat(t *testing.T) {
	s := core.NewDefaultSolver()
	x1 := s.MkBoolTerm()

	s.AddClause([]core.AtomID{core.AtomOf(x1, false)}, "")
	s.AddClause([]core.AtomID{core.AtomOf(x1, true)}, "")

	state, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if state != core.Unsat {
		t.Fatalf("Solve() = %s, want unsat", state)
	}
}

func TestPushPopAssumptions(t *testing.T) {
	s := core.NewDefaultSolver()
	x1 := s.MkBoolTerm()

	a := core.AtomOf(x1, false)
	if ok := s.PushAssumption(a); !ok {
		t.Fatalf("PushAssumption() = false, want true")
	}
	if got, want := s.Assumptions(), []core.AtomID{a}; cmp.Diff(want, got) != "" {
		t.Errorf("Assumptions() mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
	if lvl := s.CurrentLevel(); lvl != 1 {
		t.Errorf("CurrentLevel() after push = %d, want 1", lvl)
	}

	s.PopAssumptions()
	if got := s.Assumptions(); len(got) != 0 {
		t.Errorf("Assumptions() after pop = %v, want empty", got)
	}
	if lvl := s.CurrentLevel(); lvl != 0 {
		t.Errorf("CurrentLevel() after pop = %d, want 0", lvl)
	}
}

// TestPushAssumption_Contradictory exercises spec.md §8 scenario 5: pushing
// an assumption already false under the trail must drive the solver to
// Unsat with a final conflict over only the pushed assumptions, not leave a
// stale Sat verdict behind.
func TestPushAssumption_Contradictory(t *testing.T) {
	s := core.NewDefaultSolver()
	x1 := s.MkBoolTerm()

	if ok := s.PushAssumption(core.AtomOf(x1, false)); !ok {
		t.Fatalf("PushAssumption(x1=true) = false, want true")
	}
	state, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if state != core.Sat {
		t.Fatalf("Solve() = %s, want sat", state)
	}

	if ok := s.PushAssumption(core.AtomOf(x1, true)); ok {
		t.Fatalf("PushAssumption(x1=false) = true, want false (contradicts x1=true)")
	}
	state, err = s.Solve()
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if state != core.Unsat {
		t.Fatalf("Solve() = %s, want unsat", state)
	}
	if c := s.FinalConflict(); c == nil {
		t.Fatal("FinalConflict() = nil, want a conflict over the pushed assumptions")
	}

	s.PopAssumptions()
	if ok := s.PushAssumption(core.AtomOf(x1, false)); !ok {
		t.Fatalf("PushAssumption(x1=true) after pop = false, want true")
	}
	state, err = s.Solve()
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if state != core.Sat {
		t.Fatalf("Solve() after pop = %s, want sat", state)
	}
}
