package core

// This file implements spec.md §4.6's decision heuristic: an activity-based
// order over every decidable term (Boolean or semantic), generalized from
// the teacher's internal/sat/ordering.go VarOrder — same binary heap
// package (github.com/rhartert/yagh), same lazy-deletion/reinsert-on-undo
// discipline, same overflow-safe rescaling at 1e100 — widened from "one
// entry per SAT variable" to "one entry per decidable TermID" and with a
// semantic branch that defers to the term's Type.Decide instead of picking
// a Boolean phase.

// registerDecidable makes t eligible for the decision heap. Called once,
// right after a term is created, for every term a plugin wants the core to
// be able to decide (spec.md §4.1, "a newly created term may be registered
// as decidable").
func (s *Solver) registerDecidable(t TermID) {
	for TermID(len(s.decidable)) <= t {
		s.decidable = append(s.decidable, false)
		s.phases = append(s.phases, LUnknown)
	}
	if s.decidable[t] {
		return
	}
	s.decidable[t] = true
	s.heap.GrowBy(1)
	s.heap.Put(int(t), -s.arena.terms[t].activity)
}

// heapReinsert puts t back in the decision heap; called from undoOne when a
// decidable term is unassigned by backtracking.
func (s *Solver) heapReinsert(t TermID) {
	s.heap.Put(int(t), -s.arena.terms[t].activity)
}

// bumpTermActivity increases t's activity, per spec.md §4.6's "bump on every
// literal resolved during conflict analysis".
func (s *Solver) bumpTermActivity(t TermID) {
	term := &s.arena.terms[t]
	term.activity += s.termInc
	if TermID(len(s.decidable)) > t && s.decidable[t] && s.heap.Contains(int(t)) {
		s.heap.Put(int(t), -term.activity)
	}
	if term.activity > 1e100 {
		s.rescaleTermActivity()
	}
}

// decayTermActivity is called once per conflict, after analyze has bumped
// the atoms involved in it, so recently-bumped terms outweigh older ones.
func (s *Solver) decayTermActivity() {
	s.termInc /= s.termDecay
	if s.termInc > 1e100 {
		s.rescaleTermActivity()
	}
}

func (s *Solver) rescaleTermActivity() {
	s.termInc *= 1e-100
	for i := range s.arena.terms {
		t := &s.arena.terms[i]
		t.activity *= 1e-100
		if TermID(i) < TermID(len(s.decidable)) && s.decidable[TermID(i)] && s.heap.Contains(i) {
			s.heap.Put(i, -t.activity)
		}
	}
}

// bumpClauseActivity increases c's activity, used to pick which learnt
// clauses survive database reduction (core/restart.go's ReduceDB).
func (s *Solver) bumpClauseActivity(c *Clause) {
	if !c.Learnt() {
		return
	}
	c.activity += s.clauseInc
	if c.activity > 1e100 {
		s.rescaleClauseActivity()
	}
}

func (s *Solver) decayClauseActivity() {
	s.clauseInc /= s.clauseDecay
	if s.clauseInc > 1e100 {
		s.rescaleClauseActivity()
	}
}

func (s *Solver) rescaleClauseActivity() {
	s.clauseInc *= 1e-100
	for _, id := range s.learnts {
		s.clauses[id].activity *= 1e-100
	}
}

// Decide pops the highest-activity unassigned decidable term and asserts a
// value for it, pushing a new decision level (spec.md §4.6). Returns false
// once every decidable term is assigned — the trail is then a complete
// model and the driver reports Sat.
func (s *Solver) Decide(actions *Actions) bool {
	for {
		next, ok := s.heap.Pop()
		if !ok {
			return false
		}
		t := TermID(next.Elem)
		if s.arena.terms[t].level >= 0 {
			continue // stale entry: t was assigned since it was pushed
		}

		if s.arena.terms[t].varKind == VarSemantic {
			typ := s.registry.typeOf(s.arena.terms[t].typ)
			v := typ.Decide(actions, t)
			s.decideSemantic(t, v)
			return true
		}

		// Boolean term: fall back to the saved phase, defaulting to false
		// the first time a term is decided (spec.md's "initially false for
		// Boolean terms").
		val := s.phases[t] == LTrue
		s.assume(AtomOf(t, !val))
		return true
	}
}
