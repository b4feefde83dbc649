// Package proof reconstructs and replays resolution proofs produced by the
// core solver (spec.md §6's "Proof object"), independent of solver state:
// once extracted, a Proof is a plain DAG of clause nodes that can be
// checked without ever touching a core.Solver again.
package proof

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mcsat-core/mcsat/core"
)

// NodeKind mirrors core.PremiseKind for the extracted, solver-independent
// representation.
type NodeKind = core.PremiseKind

// Node is one clause in the proof DAG: either a leaf (Hyp, Local, Lemma) or
// an internal resolution node (Steps), grounded on spec.md §3's Premise
// variants.
type Node struct {
	ID      core.ClauseID
	Atoms   []core.AtomID
	Premise core.Premise
}

// Proof is the resolution DAG extracted from a solver that returned
// core.Unsat: every node reachable from Root, keyed by ClauseID, down to
// the leaves (spec.md §6).
type Proof struct {
	ID    uuid.UUID
	RunID uuid.UUID
	Root  core.ClauseID
	Nodes map[core.ClauseID]Node
}

// Build extracts the full proof DAG rooted at the empty clause derived
// from s's final conflict. s must have returned core.Unsat.
func Build(s *core.Solver, id uuid.UUID) (*Proof, error) {
	root, err := s.DeriveEmptyClause()
	if err != nil {
		return nil, err
	}

	p := &Proof{ID: id, RunID: s.RunID(), Root: root.ID(), Nodes: map[core.ClauseID]Node{}}
	var walk func(c *core.Clause)
	walk = func(c *core.Clause) {
		if c == nil {
			return
		}
		if _, seen := p.Nodes[c.ID()]; seen {
			return
		}
		p.Nodes[c.ID()] = Node{ID: c.ID(), Atoms: c.Atoms(), Premise: c.Premise()}

		premise := c.Premise()
		switch premise.Kind {
		case core.PremiseSteps, core.PremiseRawSteps:
			walk(s.ClauseByID(premise.Init))
			for _, step := range premise.Steps {
				walk(s.ClauseByID(step.Other))
			}
		case core.PremiseSimplify:
			walk(s.ClauseByID(premise.Simplified))
		}
	}
	walk(root)
	return p, nil
}

// Replay mechanically re-derives the atoms of every Steps node in the
// proof from its antecedents, verifying each resolution step's pivot
// occurs with opposite polarity in both operands, and that the proof
// bottoms out at the empty clause at Root (spec.md §8, "Completeness
// under theories": the proof must be checkable without re-running the
// solver). It returns ErrProofMalformed (wrapped with the offending
// clause/step) on the first inconsistency found.
func Replay(p *Proof) error {
	derived := map[core.ClauseID][]core.AtomID{}

	var resolve func(id core.ClauseID) ([]core.AtomID, error)
	resolve = func(id core.ClauseID) ([]core.AtomID, error) {
		if atoms, ok := derived[id]; ok {
			return atoms, nil
		}
		node, ok := p.Nodes[id]
		if !ok {
			return nil, fmt.Errorf("%w: clause %d missing from proof", core.ErrProofMalformed, id)
		}

		switch node.Premise.Kind {
		case core.PremiseHyp, core.PremiseLocal, core.PremiseLemma:
			derived[id] = node.Atoms
			return node.Atoms, nil

		case core.PremiseSteps, core.PremiseRawSteps:
			acc, err := resolve(node.Premise.Init)
			if err != nil {
				return nil, err
			}
			acc = append([]core.AtomID(nil), acc...)
			for _, step := range node.Premise.Steps {
				other, err := resolve(step.Other)
				if err != nil {
					return nil, err
				}
				acc, err = resolveStep(acc, other, step.Pivot)
				if err != nil {
					return nil, fmt.Errorf("clause %d: %w", id, err)
				}
			}
			derived[id] = acc
			return acc, nil

		default:
			return nil, fmt.Errorf("%w: clause %d has no derivation rule", core.ErrProofMalformed, id)
		}
	}

	final, err := resolve(p.Root)
	if err != nil {
		return err
	}
	if len(final) != 0 {
		return fmt.Errorf("%w: proof root did not reduce to the empty clause (%d atoms remain)", core.ErrProofMalformed, len(final))
	}
	return nil
}

// resolveStep resolves left and right on pivot: pivot's positive and
// negative atoms must occur one in each operand, and the result is their
// union minus both occurrences of pivot.
func resolveStep(left, right []core.AtomID, pivot core.TermID) ([]core.AtomID, error) {
	pos := core.AtomOf(pivot, false)
	neg := core.AtomOf(pivot, true)

	posLeft := containsAtom(left, pos) && containsAtom(right, neg)
	posRight := containsAtom(left, neg) && containsAtom(right, pos)
	if !posLeft && !posRight {
		return nil, fmt.Errorf("%w: pivot term %d does not occur with opposite polarities in the two operands", core.ErrProofMalformed, pivot)
	}

	seen := map[core.AtomID]bool{}
	out := make([]core.AtomID, 0, len(left)+len(right))
	for _, a := range left {
		if a.Term() == pivot || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	for _, a := range right {
		if a.Term() == pivot || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out, nil
}

func containsAtom(atoms []core.AtomID, a core.AtomID) bool {
	for _, x := range atoms {
		if x == a {
			return true
		}
	}
	return false
}
