package core

// Actions is the object plugins use to affect the solver (spec.md §4.5):
// plugins never mutate the trail directly. A fresh Actions is handed to a
// plugin callback each time it runs; if it raises a conflict, the
// propagation/decision loop that invoked the callback must check
// Actions.conflict and unwind immediately.
type Actions struct {
	s        *Solver
	conflict *Clause
}

// CurrentLevel is the read-only decision-level query of the Actions table.
func (a *Actions) CurrentLevel() int {
	return a.s.decisionLevel()
}

// PushClause adds a permanent clause that survives backtracking (spec.md
// §4.5, "Add a permanent clause (not erased on backtrack)"). Like the
// teacher's AddClause, it only accepts root-level clauses: newClause
// simplifies against the current trail and, for a clause that collapses to
// one literal, asserts it with a root reason — correct only at level 0. A
// plugin that tries to push mid-search gets a no-op instead of a bogus
// root-level fact it would later panic resolving through.
func (a *Actions) PushClause(atoms []AtomID, tag string) bool {
	if a.s.decisionLevel() != 0 {
		return false
	}
	c, ok := a.s.newClause(append([]AtomID(nil), atoms...), Premise{Kind: PremiseHyp}, false)
	if c != nil {
		c.tag = tag
		a.s.constraints = append(a.s.constraints, c.id)
	}
	if !ok {
		a.s.unsat = true
	}
	return true
}

// PropagateBoolEval asserts t=b with reason Eval(used): the evaluation is
// justified by the current values of used, not by a clause (spec.md §4.5).
// Returns false if t is already assigned the opposite value — the caller
// (the propagation loop) then observes Actions.conflict populated with the
// synthesized conflicting clause, per spec.md §7 item 3 (plugin misuse is
// converted into a conflict, not a panic).
func (a *Actions) PropagateBoolEval(t TermID, b bool, used []TermID, lemma Lemma) bool {
	atom := AtomOf(t, !b)
	r := evalReason(append([]TermID(nil), used...), lemma)
	return a.assertAtom(atom, r)
}

// PropagateBoolLemma asserts t=b justified by the theory tautology
// others ∨ (t=b), where every atom in others is currently false (spec.md
// §4.5). The tautology goes through newClause with a Lemma premise; since
// the false atoms of others are dropped there, it normally collapses to
// the unit atom(t,b), whose reason is then the full tautology, registered
// as an unattached clause with atom(t,b) first.
func (a *Actions) PropagateBoolLemma(t TermID, b bool, others []AtomID, lemma Lemma) bool {
	atom := AtomOf(t, !b)
	wasUnassigned := a.s.atomValue(atom) == LUnknown
	premise := Premise{Kind: PremiseLemma, Lemma: lemma}
	atoms := make([]AtomID, 0, len(others)+1)
	atoms = append(atoms, others...)
	atoms = append(atoms, atom)

	c, ok := a.s.newClause(atoms, premise, false)
	if !ok {
		// Every atom of the tautology, atom(t,b) included, is false: this
		// is a conflict, reported through the tautology itself.
		a.conflict = a.s.registerClause(atoms, premise)
		return false
	}
	if c == nil {
		// Collapsed to the unit atom(t,b), which newClause enqueued with
		// reasonRoot; its reason becomes the full tautology instead.
		if wasUnassigned && a.s.atomValue(atom) == LTrue {
			full := append([]AtomID{atom}, others...)
			a.s.arena.terms[t].reason = bcpReason(a.s.registerClause(full, premise).id)
		}
		return a.s.atomValue(atom) != LFalse
	}
	return a.assertAtomViaClause(AtomOf(t, !b), c)
}

func (a *Actions) assertAtomViaClause(atom AtomID, c *Clause) bool {
	if a.s.atomValue(atom) == LFalse {
		a.conflict = c
		return false
	}
	a.s.enqueue(atom, bcpReason(c.id))
	return true
}

func (a *Actions) assertAtom(atom AtomID, r reason) bool {
	if a.s.atomValue(atom) == LFalse {
		// Plugin misuse: synthesize the conflicting clause from the reason
		// so the driver can analyze it uniformly (spec.md §7 item 3).
		t := atom.Term()
		b := !atom.IsNegative()
		a.conflict = a.s.buildEvalClause(t, b, r.used, r.lemma)
		return false
	}
	a.s.enqueue(atom, r)
	return true
}

// RaiseConflict raises a conflict directly: every atom in atoms must
// already be false (spec.md §4.5).
func (a *Actions) RaiseConflict(atoms []AtomID, lemma Lemma) {
	a.conflict = a.s.registerClause(atoms, Premise{Kind: PremiseLemma, Lemma: lemma})
}

// OnBacktrack schedules f to run the next time the solver backtracks past
// the current level (spec.md §4.5). Hooks for the same level fire in LIFO
// order of registration (spec.md §5).
func (a *Actions) OnBacktrack(f func()) {
	lvl := a.s.decisionLevel()
	a.s.backtrackHooks[lvl] = append(a.s.backtrackHooks[lvl], f)
}

// DecideSemantic assigns a value to a semantic term with a decision reason
// at the current decision level, without opening a new one, for a plugin's
// own Type.Decide that wants to assign a subterm eagerly. Decide in
// core/decision.go does not call it; it uses the trail-level
// decideSemantic, which opens a new level first.
func (a *Actions) DecideSemantic(t TermID, v Value) {
	a.s.assignSemantic(t, v, decisionReason)
}

// buildEvalClause synthesizes and registers atom(t,b) ∨ ¬used[0] ∨ ... —
// the clause that would have justified asserting t=b from the current
// values of used, had it been materialized eagerly (spec.md §4.4). Used
// both when a plugin's Eval-reasoned propagation conflicts with an
// existing assignment (spec.md §7 item 3) and, lazily, by conflict
// analysis when it needs to resolve through a reasonEval assignment.
func (s *Solver) buildEvalClause(t TermID, b bool, used []TermID, lemma Lemma) *Clause {
	atoms := make([]AtomID, 0, len(used)+1)
	atoms = append(atoms, AtomOf(t, !b))
	for _, u := range used {
		v, _ := s.arena.terms[u].value.(bool)
		atoms = append(atoms, falseAtomOf(u, v))
	}
	return s.registerClause(atoms, Premise{Kind: PremiseLemma, Lemma: lemma})
}
