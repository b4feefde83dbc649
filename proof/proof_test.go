package proof_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"

	"github.com/mcsat-core/mcsat/core"
	"github.com/mcsat-core/mcsat/proof"
)

func buildUnsatSolver(t *testing.T) *core.Solver {
	t.Helper()
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
	return s
}

func TestBuildAndReplay(t *testing.T) {
	s := buildUnsatSolver(t)

	p, err := proof.Build(s, uuid.New())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(p.Nodes) == 0 {
		t.Fatalf("Build() produced an empty proof")
	}
	if p.RunID != s.RunID() {
		t.Errorf("Proof.RunID = %v, want %v", p.RunID, s.RunID())
	}
	if err := proof.Replay(p); err != nil {
		t.Errorf("Replay() error: %v", err)
	}

	root, ok := p.Nodes[p.Root]
	if !ok {
		t.Fatalf("proof has no node for its Root clause ID %v", p.Root)
	}
	if diff := cmp.Diff([]core.AtomID{}, root.Atoms, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("root node Atoms mismatch (-want +got):\n%s", diff)
	}
}

// TestReplay_RejectsTamperedProof corrupts a resolution step's pivot so it
// no longer occurs with both polarities in its antecedents, and checks that
// Replay refuses to treat the proof as valid.
func TestReplay_RejectsTamperedProof(t *testing.T) {
	s := buildUnsatSolver(t)
	p, err := proof.Build(s, uuid.New())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	tampered := false
	for id, n := range p.Nodes {
		if n.Premise.Kind == core.PremiseSteps && len(n.Premise.Steps) > 0 {
			n.Premise.Steps[0].Pivot = n.Premise.Steps[0].Pivot + 1000
			p.Nodes[id] = n
			tampered = true
			break
		}
	}
	if !tampered {
		t.Fatalf("proof contains no Steps node to tamper with")
	}

	if err := proof.Replay(p); err == nil {
		t.Errorf("Replay() accepted a tampered proof")
	}
}

func TestReplay_RejectsMissingNode(t *testing.T) {
	s := buildUnsatSolver(t)
	p, err := proof.Build(s, uuid.New())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	delete(p.Nodes, p.Root)

	if err := proof.Replay(p); err == nil {
		t.Errorf("Replay() accepted a proof missing its root node")
	}
}
