package core

// This file implements spec.md §4.4's conflict analysis: backward
// resolution to the first unique implication point (1-UIP), self-subsumption
// minimisation, and resolution-proof recording. Grounded on the teacher's
// internal/sat/solver.go Analyze/Explain, generalized so an antecedent can
// come from a clause (reasonBcp/reasonBcpLazy) or from a theory evaluation
// (reasonEval) — both are reduced to "a clause to resolve against" via
// materializeReason, so the backward walk never branches on reason kind.

// trueAtomOf returns the atom of t that is currently true.
func (s *Solver) trueAtomOf(t TermID) AtomID {
	b, _ := s.arena.terms[t].value.(bool)
	return falseAtomOf(t, b).Opposite()
}

// materializeReason returns the ClauseID justifying t's current assignment,
// synthesizing (and memoizing in place) one if the reason was a lazy thunk
// or a theory evaluation (spec.md §9, "Bcp_lazy ... forced at most once").
// After this call t's reason is always reasonBcp.
func (s *Solver) materializeReason(t TermID) ClauseID {
	r := &s.arena.terms[t].reason
	switch r.kind {
	case reasonBcp:
		return r.clause
	case reasonBcpLazy:
		cid := r.lazy()
		r.kind = reasonBcp
		r.clause = cid
		r.lazy = nil
		return cid
	case reasonEval:
		b, _ := s.arena.terms[t].value.(bool)
		c := s.buildEvalClause(t, b, r.used, r.lemma)
		r.kind = reasonBcp
		r.clause = c.id
		r.used = nil
		r.lemma = nil
		return c.id
	default:
		panic("mcsat: analyze tried to resolve through a root or decision assignment")
	}
}

// analyze walks the implication graph backward from confl, resolving away
// every antecedent assigned at the current decision level but one (the
// UIP), and returns the resulting learnt clause (UIP in slot 0, in
// false-literal form like every other entry), the level to backtrack to,
// and the chain of resolution steps for proof reconstruction.
func (s *Solver) analyze(confl *Clause) ([]AtomID, int, []ResolutionStep) {
	s.seenVar.Clear()
	s.tmpLearnts = append(s.tmpLearnts[:0], -1) // slot 0 filled in once the UIP is found

	level := s.decisionLevel()
	nImplicationPoints := 0
	backtrackLevel := 0
	trailIdx := len(s.trail) - 1

	var steps []ResolutionStep
	antecedents := confl.explainFailure(s, s.tmpReason)

	for {
		for _, q := range antecedents {
			v := q.Term()
			if s.seenVar.Contains(v) {
				continue
			}
			s.seenVar.Add(v)
			s.bumpTermActivity(v)

			if s.arena.terms[v].level == level {
				nImplicationPoints++
				continue
			}
			s.tmpLearnts = append(s.tmpLearnts, q.Opposite())
			if lvl := s.arena.terms[v].level; lvl > backtrackLevel {
				backtrackLevel = lvl
			}
		}

		var pivot TermID
		for {
			pivot = s.trail[trailIdx]
			trailIdx--
			if s.seenVar.Contains(pivot) {
				break
			}
		}

		nImplicationPoints--
		if nImplicationPoints <= 0 {
			s.tmpLearnts[0] = s.trueAtomOf(pivot).Opposite()
			break
		}

		cid := s.materializeReason(pivot)
		steps = append(steps, ResolutionStep{Pivot: pivot, Other: cid})
		antecedents = s.clauses[cid].explainAssign(s, s.tmpReason)
	}

	learnt := append([]AtomID(nil), s.tmpLearnts...)
	return learnt, backtrackLevel, steps
}

// minimize drops learnt[1:] literals whose entire antecedent chain is
// already covered by the rest of the clause (self-subsumption), bounded to
// a fixed recursion depth so a pathological reason chain cannot make
// minimisation itself the bottleneck (spec.md §4.4).
const minimizeMaxDepth = 8

func (s *Solver) minimize(learnt []AtomID) []AtomID {
	inClause := make(map[TermID]bool, len(learnt))
	for _, a := range learnt {
		inClause[a.Term()] = true
	}
	out := learnt[:1:1]
	for _, a := range learnt[1:] {
		if !s.isRedundant(a, inClause, 0) {
			out = append(out, a)
		}
	}
	return out
}

// isRedundant reports whether the false-form literal a can be dropped from
// the learnt clause because everything its assignment depends on is
// already implied by the clause's other literals.
func (s *Solver) isRedundant(a AtomID, inClause map[TermID]bool, depth int) bool {
	if depth >= minimizeMaxDepth {
		return false
	}
	t := a.Term()
	switch s.arena.terms[t].reason.kind {
	case reasonBcp, reasonBcpLazy, reasonEval:
	default:
		return false // decision or root fact: nothing to resolve further
	}
	cid := s.materializeReason(t)
	for _, other := range s.clauses[cid].atoms[1:] {
		if other.Term() == t || inClause[other.Term()] {
			continue
		}
		if !s.isRedundant(other, inClause, depth+1) {
			return false
		}
	}
	return true
}

// computeLBD returns the number of distinct decision levels represented in
// atoms (the literal-block-distance metric, grounded on
// xDarkicex-logic/sat's buildLearnedClauseWithLBD per SPEC_FULL.md).
func (s *Solver) computeLBD(atoms []AtomID) uint32 {
	seen := map[int]struct{}{}
	for _, a := range atoms {
		seen[s.arena.terms[a.Term()].level] = struct{}{}
	}
	return uint32(len(seen))
}

// record installs a learnt clause from an analyze() result: the UIP atom is
// asserted immediately (it becomes unit once backtrackTo has undone every
// literal at a level above backtrackLevel), and the clause is kept around
// for the clause-database reduction policy in core/restart.go.
func (s *Solver) record(learnt []AtomID, init ClauseID, steps []ResolutionStep) *Clause {
	premise := Premise{Kind: PremiseSteps, Init: init, Steps: steps}
	if len(learnt) == 1 {
		// A unit learnt clause needs no watches, but it is registered so the
		// assignment it forces has a clause that conflict analysis and
		// DeriveEmptyClause can resolve through.
		c := s.registerClause(learnt, premise)
		s.enqueue(c.atoms[0], bcpReason(c.id))
		return c
	}
	c, _ := s.newClause(learnt, premise, true)
	c.lbd = s.computeLBD(c.atoms)
	s.learnts = append(s.learnts, c.id)
	s.enqueue(c.atoms[0], bcpReason(c.id))
	return c
}

// learnFromConflict runs the full spec.md §4.4 pipeline for one conflict:
// analyze, minimize, decay activities, backtrack, and record. It returns
// the level backtracked to.
func (s *Solver) learnFromConflict(confl *Clause) int {
	learnt, backtrackLevel, steps := s.analyze(confl)
	learnt = s.minimize(learnt)
	s.decayTermActivity()
	s.decayClauseActivity()
	s.backtrackTo(backtrackLevel)
	s.record(learnt, confl.id, steps)
	return backtrackLevel
}
