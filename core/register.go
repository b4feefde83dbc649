package core

// This file is the public term/clause registration API (spec.md §6,
// "Solver API"): the surface a front end or plugin uses to build up a
// problem before calling Solve.

// MkTerm constructs (or returns the existing, hash-consed) term for view
// under plugin, with sort typ, and notifies the plugin via Init the first
// time it is created (spec.md §4.1's mk_term).
func (s *Solver) MkTerm(plugin PluginID, view View, typ TypeID) TermID {
	t, fresh := s.arena.mkTerm(plugin, view, typ)
	s.growTo(t)
	if fresh {
		s.registry.plugin(plugin).Init(s.Actions(), t)
	}
	return t
}

// MkBoolTerm constructs a fresh, plugin-less Boolean term — the common case
// for a CNF front end that only ever deals in opaque propositional
// variables (spec.md §4.1, "the intrinsic Boolean plugin").
func (s *Solver) MkBoolTerm() TermID {
	t := TermID(s.arena.numTerms())
	s.arena.terms = append(s.arena.terms, Term{id: t, plugin: boolPluginID, typ: TypeBool, varKind: VarBool, level: -1})
	s.growTo(t)
	s.registerDecidable(t)
	return t
}

// MarkSemantic flags t as a semantic (non-Boolean) variable of sort typ,
// giving it fresh decide_state from the type's MkState and making it
// eligible for the decision heuristic (spec.md §3's Var variants). Plugins
// call this (plugin/lra from MkVar) for every term that represents an assignable
// variable of their sort, as opposed to a derived/compound term that is
// only ever Eval'd.
func (s *Solver) MarkSemantic(t TermID, typ TypeID) {
	term := &s.arena.terms[t]
	term.varKind = VarSemantic
	term.semantic = semanticVar{typ: typ, state: s.registry.typeOf(typ).MkState()}
	s.registerDecidable(t)
}

// boolPluginID is the reserved plugin id for intrinsic Boolean terms that
// have no plugin-specific view (plain CNF variables).
const boolPluginID PluginID = 0

// growTo extends every per-term scratch structure (phase/decidable arrays,
// the reset set) so index t is valid. Safe to call with an already-covered
// index. The Boolean watch vector is grown separately, on demand, by
// ensureAtomCapacity.
func (s *Solver) growTo(t TermID) {
	for TermID(len(s.decidable)) <= t {
		s.decidable = append(s.decidable, false)
		s.phases = append(s.phases, LUnknown)
	}
	for len(s.seenVar.addedAt) <= int(t) {
		s.seenVar.Expand()
	}
}

// AddClause adds a permanent (root-level) clause built from the given
// atoms (spec.md §6). Returns false if the clause is trivially
// unsatisfiable at the current level, in which case the solver is marked
// Unsat.
func (s *Solver) AddClause(atoms []AtomID, tag string) bool {
	c, ok := s.newClause(append([]AtomID(nil), atoms...), Premise{Kind: PremiseHyp}, false)
	if c != nil {
		c.tag = tag
		s.constraints = append(s.constraints, c.id)
	}
	if !ok {
		s.unsat = true
	}
	return ok
}

// Assert adds a single-term hypothesis, wrapping it in a one-literal clause
// (spec.md §9's resolution of Open Question (a): "a hypothesis is always a
// Clause; callers that want to assert a bare theory term wrap it in a
// one-literal clause").
func (s *Solver) Assert(atom AtomID, tag string) bool {
	return s.AddClause([]AtomID{atom}, tag)
}

// PushAssumption adds atom to the assumption stack and asserts it at a new
// decision level, to be retracted by the next PopAssumptions (spec.md §6).
// If atom already contradicts the current trail, the assumption stack
// itself is unsatisfiable (spec.md §8 scenario 5): the phantom decision
// level assume() pushed is discarded and the solver is driven to Unsat
// with a conflict over exactly the pushed assumptions, rather than
// silently returning false with no change to solver state.
func (s *Solver) PushAssumption(atom AtomID) bool {
	s.assumptions = append(s.assumptions, atom)
	if s.assume(atom) {
		return true
	}

	s.trailLim = s.trailLim[:len(s.trailLim)-1]
	atoms := make([]AtomID, len(s.assumptions))
	for i, a := range s.assumptions {
		if s.atomValue(a) == LFalse {
			atoms[i] = a
		} else {
			atoms[i] = a.Opposite()
		}
	}
	s.finalConflict = s.registerClause(atoms, Premise{Kind: PremiseLemma, Lemma: "contradictory assumptions"})
	s.unsat = true
	s.assumptionUnsat = true
	s.state = Unsat
	return false
}

// PopAssumptions retracts every pushed assumption, backtracking to level 0.
// An Unsat verdict caused by a contradictory assumption is contingent on the
// assumption stack, not a permanent root-level fact, so it is cleared here
// too (spec.md §8 scenario 5: popping the offending assumption makes the
// instance satisfiable again).
func (s *Solver) PopAssumptions() {
	s.assumptions = s.assumptions[:0]
	s.backtrackTo(0)
	if s.assumptionUnsat {
		s.unsat = false
		s.assumptionUnsat = false
		s.finalConflict = nil
		s.state = Idle
	}
}

// Assumptions returns the currently pushed assumption atoms.
func (s *Solver) Assumptions() []AtomID {
	return s.assumptions
}

// RegisterDecidable exposes registerDecidable to plugins that want a
// semantic term considered by the decision heuristic (spec.md §4.6).
func (s *Solver) RegisterDecidable(t TermID) {
	s.registerDecidable(t)
}
