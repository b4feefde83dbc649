package core

import "fmt"

// ClauseByID returns the clause with the given id, or nil if id is out of
// range. Exposed for proof reconstruction (see the proof package).
func (s *Solver) ClauseByID(id ClauseID) *Clause {
	if id < 0 || int(id) >= len(s.clauses) {
		return nil
	}
	return s.clauses[id]
}

// DeriveEmptyClause reconstructs the level-0 resolution chain from
// FinalConflict down to the empty clause and registers that empty clause
// with the whole chain as its resolution steps, so the chain is rooted in
// the clause graph (spec.md §6's Proof object). Only valid once Solve has
// returned Unsat.
//
// Solve's search loop detects a level-0 conflict and returns Unsat
// immediately, without running full 1-UIP analysis — there being no
// decision level to resolve down to, the chain instead simply keeps
// resolving until no atom has a pending antecedent. This is that walk,
// performed on demand (not during search) since a caller may never ask
// for a proof.
func (s *Solver) DeriveEmptyClause() (*Clause, error) {
	if s.state != Unsat || s.finalConflict == nil {
		return nil, fmt.Errorf("mcsat: no unsat witness to derive a proof from")
	}

	remaining := append([]AtomID(nil), s.finalConflict.atoms...)
	var steps []ResolutionStep

	for len(remaining) > 0 {
		a := remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]

		t := a.Term()
		switch s.arena.terms[t].reason.kind {
		case reasonBcp, reasonBcpLazy, reasonEval:
		default:
			return nil, fmt.Errorf("%w: term %d has no root-level antecedent", ErrProofMalformed, t)
		}

		cid := s.materializeReason(t)
		steps = append(steps, ResolutionStep{Pivot: t, Other: cid})

	next:
		for _, other := range s.clauses[cid].atoms[1:] {
			for _, r := range remaining {
				if r == other {
					continue next
				}
			}
			remaining = append(remaining, other)
		}
	}

	return s.registerClause(nil, Premise{Kind: PremiseSteps, Init: s.finalConflict.id, Steps: steps}), nil
}
