package core

// This file implements spec.md §4.2's Trail component as a set of methods
// on Solver: push_decision/backtrack_to plus the assignment queries.
// Grounded on the teacher's trail/trailLim/reason/level parallel arrays in
// internal/sat/solver.go, generalized from "one entry per SAT variable" to
// "one entry per assigned term" (Boolean or semantic).

// enqueue asserts atom a (i.e. gives its term the value implied by a being
// true) with justification r. Returns false if a is already false
// (conflicting assignment — spec.md §7 item 3, plugin misuse becomes a
// conflict at the call site, not here). Returns true if a is already true
// or was freshly assigned.
func (s *Solver) enqueue(a AtomID, r reason) bool {
	switch s.atomValue(a) {
	case LFalse:
		return false
	case LTrue:
		return true
	default:
		t := a.Term()
		term := &s.arena.terms[t]
		term.value = !a.IsNegative()
		term.level = s.decisionLevel()
		term.reason = r
		s.trail = append(s.trail, t)
		s.propQueue.Push(t)
		return true
	}
}

// assignSemantic asserts a value on a non-Boolean (semantic) term,
// e.g. a plugin's Decide or a propagated theory value.
func (s *Solver) assignSemantic(t TermID, v Value, r reason) {
	term := &s.arena.terms[t]
	term.value = v
	term.level = s.decisionLevel()
	term.reason = r
	s.trail = append(s.trail, t)
	s.propQueue.Push(t)
}

// assume pushes a new decision level and enqueues atom a as a decision.
func (s *Solver) assume(a AtomID) bool {
	s.trailLim = append(s.trailLim, len(s.trail))
	return s.enqueue(a, decisionReason)
}

// decideSemantic pushes a new decision level and assigns a semantic term
// without going through an atom.
func (s *Solver) decideSemantic(t TermID, v Value) {
	s.trailLim = append(s.trailLim, len(s.trail))
	s.assignSemantic(t, v, decisionReason)
}

// undoOne pops the last trail entry, clearing its assignment, saving its
// phase if it is a Boolean variable, and reinstating it in the decision
// heap if it is decidable. No plugin is notified; plugins observe
// backtracking only through their OnBacktrack hooks.
func (s *Solver) undoOne() {
	t := s.trail[len(s.trail)-1]
	s.trail = s.trail[:len(s.trail)-1]

	term := &s.arena.terms[t]
	lastValue := term.value
	term.level = -1
	term.value = nil
	term.reason = reason{}

	if t < TermID(len(s.decidable)) && s.decidable[t] {
		if term.varKind == VarBool && s.phaseSaving {
			if b, ok := lastValue.(bool); ok {
				s.phases[t] = Lift(b)
			}
		}
		s.heapReinsert(t)
	}
}

// backtrackTo truncates the trail to the given decision level, undoing
// every popped assignment and running backtrack hooks registered at levels
// greater than level, in LIFO order of registration (spec.md §4.2, §5).
func (s *Solver) backtrackTo(level int) {
	for s.decisionLevel() > level {
		lvl := s.decisionLevel()
		start := s.trailLim[lvl-1]
		for len(s.trail) > start {
			s.undoOne()
		}
		s.trailLim = s.trailLim[:lvl-1]

		hooks := s.backtrackHooks[lvl]
		for i := len(hooks) - 1; i >= 0; i-- {
			hooks[i]()
		}
		delete(s.backtrackHooks, lvl)
	}
}
