package core

// Propagate runs spec.md §4.3's propagation fixpoint: dequeue one newly
// assigned term, run Boolean BCP on it if it is Boolean, then run its
// generalized watch callbacks, until the queue empties or a conflict is
// raised. Propagations from the same clause/term are processed in
// insertion order; callback-emitted propagations are appended to the same
// queue and thus processed after the current event but before any new
// decision, per spec.md §4.3's ordering guarantees.
func (s *Solver) Propagate() *Clause {
	for s.propQueue.Size() > 0 {
		t := s.propQueue.Pop()

		if s.arena.terms[t].typ == TypeBool {
			b, _ := s.arena.terms[t].value.(bool)
			if c := s.propagateBool(falseAtomOf(t, b).Opposite()); c != nil {
				return c
			}
		}

		if c := s.propagateWatchers(t); c != nil {
			return c
		}
	}
	return nil
}

// falseAtomOf returns the atom of t that is false given that t's current
// Boolean value is v.
func falseAtomOf(t TermID, v bool) AtomID {
	return AtomOf(t, v)
}

// propagateBool iterates the watchers of trueAtom (the atom that has just
// become true): each watching clause has trueAtom.Opposite() as one of its
// watched atoms, now false, so its invariant is restored or a conflict is
// reported. Grounded on the teacher's internal/sat/solver.go Propagate.
func (s *Solver) propagateBool(trueAtom AtomID) *Clause {
	s.ensureAtomCapacity(trueAtom)

	s.tmpWatchers = append(s.tmpWatchers[:0], s.boolWatchers[trueAtom]...)
	s.boolWatchers[trueAtom] = s.boolWatchers[trueAtom][:0]

	for i, w := range s.tmpWatchers {
		// Skip clauses whose other watched atom is already true: no need to
		// load (or mutate) the clause at all. This changes propagation
		// order relative to a naive scan but never affects correctness.
		if s.atomValue(w.guard) == LTrue {
			s.boolWatchers[trueAtom] = append(s.boolWatchers[trueAtom], w)
			continue
		}

		if w.clause.Propagate(s, trueAtom) {
			continue
		}

		// Conflict: re-queue the remaining watchers we hadn't processed yet
		// and stop the whole propagation fixpoint.
		s.boolWatchers[trueAtom] = append(s.boolWatchers[trueAtom], s.tmpWatchers[i+1:]...)
		s.propQueue.Clear()
		return s.tmpWatchers[i].clause
	}
	return nil
}

// propagateWatchers runs the generalized watch callbacks registered on
// watched (spec.md §4.3's "sole mechanism by which theories are awakened").
func (s *Solver) propagateWatchers(watched TermID) *Clause {
	i := 0
	for i < len(s.arena.terms[watched].watchers) {
		w := s.arena.terms[watched].watchers[i]
		p := s.registry.plugin(s.arena.terms[w].plugin)

		actions := s.Actions()
		result := p.UpdateWatches(actions, w, watched)
		if actions.conflict != nil {
			return actions.conflict
		}
		if result == Remove {
			s.unwatchTermAt(watched, i)
			continue
		}
		i++
	}
	return nil
}
