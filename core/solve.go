package core

import "time"

// Solve runs the MCSat search loop of spec.md §4.8 to completion, or until
// a configured stop condition (max conflicts, timeout, interrupt hook)
// fires first. Grounded on the teacher's internal/sat/solver.go Solve,
// generalized with the restart-policy and term-GC hooks this module adds.
//
// Solve may be called again after the solver returns Sat or a stop
// condition without reaching a verdict — e.g. after pushing more
// assumptions or raising the conflict budget — since level-0 state
// (constraints, learnt clauses, activities) persists across calls.
func (s *Solver) Solve() (State, error) {
	if s.unsat {
		s.state = Unsat
		return s.state, nil
	}
	s.state = Solving
	s.startTime = time.Now()

	for {
		confl := s.Propagate()
		if confl != nil {
			s.TotalConflicts++
			s.conflictsSince++
			if s.decisionLevel() == 0 {
				s.state = Unsat
				s.finalConflict = confl
				return s.state, nil
			}
			s.lbdEMA.Add(float64(s.computeLBD(confl.atoms)))
			s.learnFromConflict(confl)
			continue
		}

		if stop, err := s.checkStop(); stop {
			s.state = Unknown
			return s.state, err
		}

		if s.shouldRestart() {
			s.restart()
			continue
		}

		if s.NumLearnts() >= s.nextReduceLimit {
			s.ReduceDB()
		}

		if !s.Decide(s.Actions()) {
			s.state = Sat
			return s.state, nil
		}
		s.TotalDecisions++
	}
}

// checkStop reports whether a configured stop condition has fired.
func (s *Solver) checkStop() (bool, error) {
	if s.maxConflict >= 0 && s.TotalConflicts >= s.maxConflict {
		return true, ErrStopped
	}
	if s.timeout >= 0 && time.Since(s.startTime) > s.timeout {
		return true, ErrStopped
	}
	if s.interrupt != nil && s.interrupt() {
		return true, ErrStopped
	}
	return false, nil
}

// FinalConflict returns the level-0 conflicting clause that proved
// unsatisfiability, or nil if the solver has not returned Unsat.
func (s *Solver) FinalConflict() *Clause {
	return s.finalConflict
}
