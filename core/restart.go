package core

import "sort"

// RestartPolicy decides how many conflicts to allow before the next
// restart (spec.md §4.7). NextLimit is called once, right after a restart,
// to get the conflict budget for the following run.
type RestartPolicy interface {
	NextLimit() int64
}

// lubyRestarts implements the Luby restart sequence scaled by a base unit,
// grounded on the teacher's restart policy (internal/sat/solver.go's
// restart loop) and widened into a reusable, swappable strategy per
// spec.md §4.7's "pluggable restart policy" note.
type lubyRestarts struct {
	base  int64
	index int64
}

// LubyRestarts returns a RestartPolicy following the Luby sequence
// (1,1,2,1,1,2,4,...) scaled by base conflicts per unit.
func LubyRestarts(base int64) RestartPolicy {
	return &lubyRestarts{base: base}
}

func (l *lubyRestarts) NextLimit() int64 {
	limit := l.base * luby(l.index)
	l.index++
	return limit
}

// luby returns the i-th term (0-indexed) of the Luby sequence.
func luby(i int64) int64 {
	// Find the 2^k - 1 sequence boundary containing i.
	var size int64 = 1
	var seq int64 = 0
	for size < i+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != i {
		size = (size - 1) / 2
		seq--
		if size <= i {
			i -= size
		}
	}
	if size == i+1 {
		return 1 << uint(seq)
	}
	return luby(i - size + 1)
}

// geometricRestarts multiplies the conflict budget by a fixed factor every
// restart, the
// simpler alternative policy spec.md §4.7 allows as an Open-Question-free
// swap-in.
type geometricRestarts struct {
	limit  int64
	factor float64
}

// GeometricRestarts returns a RestartPolicy whose budget grows by factor
// every restart, starting at initLimit.
func GeometricRestarts(initLimit int64, factor float64) RestartPolicy {
	return &geometricRestarts{limit: initLimit, factor: factor}
}

func (g *geometricRestarts) NextLimit() int64 {
	l := g.limit
	g.limit = int64(float64(g.limit) * g.factor)
	return l
}

// shouldRestart reports whether the current conflict budget for this
// run-segment has been exhausted.
func (s *Solver) shouldRestart() bool {
	return s.conflictsSince >= s.restartLimit
}

// restart backtracks to level 0 and draws a new conflict budget from the
// restart policy (spec.md §4.7).
func (s *Solver) restart() {
	s.backtrackTo(0)
	s.conflictsSince = 0
	s.restartLimit = s.restartPolicy.NextLimit()
	s.TotalRestarts++
}

// ReduceDB discards the lower half (by activity, locked and binary clauses
// exempted) of the learnt-clause database, and sweeps any term that
// becomes unreachable as a result (spec.md §4.7's clause-database
// reduction, piggybacking term garbage collection per spec.md §9).
// Grounded on the teacher's reduceDB in internal/sat/solver.go.
func (s *Solver) ReduceDB() {
	learnts := s.learnts
	sort.Slice(learnts, func(i, j int) bool {
		ci, cj := s.clauses[learnts[i]], s.clauses[learnts[j]]
		if len(ci.atoms) != len(cj.atoms) {
			if len(ci.atoms) == 2 {
				return false
			}
			if len(cj.atoms) == 2 {
				return true
			}
		}
		return ci.activity < cj.activity
	})

	cut := len(learnts) / 2
	kept := learnts[:0]
	for i, id := range learnts {
		c := s.clauses[id]
		if i < cut && len(c.atoms) > 2 && !c.locked(s) && !c.IsProtected() {
			c.Remove(s)
			continue
		}
		kept = append(kept, id)
	}
	s.learnts = kept
	s.nextReduceLimit = s.NumLearnts() + s.NumLearnts()/3 + 100

	s.gcTerms()
}

// gcTerms sweeps terms that are no longer reachable from any attached
// clause or the trail, notifying each term's plugin via Delete (spec.md
// §9, "garbage collection piggybacked on clause reduction"). A term is
// reachable if it appears in a live clause, is currently assigned, or is
// watched by (or watches) a reachable term.
func (s *Solver) gcTerms() {
	n := s.arena.numTerms()
	reachable := make([]bool, n)

	mark := func(t TermID) {
		if !reachable[t] {
			reachable[t] = true
		}
	}
	for _, id := range s.constraints {
		for _, a := range s.clauses[id].atoms {
			mark(a.Term())
		}
	}
	for _, id := range s.learnts {
		for _, a := range s.clauses[id].atoms {
			mark(a.Term())
		}
	}
	for _, t := range s.trail {
		mark(t)
	}
	for changed := true; changed; {
		changed = false
		for i := 0; i < n; i++ {
			for _, w := range s.arena.terms[i].watchers {
				if reachable[i] != reachable[w] {
					reachable[i], reachable[w] = true, true
					changed = true
				}
			}
		}
	}

	for i := 0; i < n; i++ {
		t := TermID(i)
		if reachable[i] || s.arena.getFlag(t, flagIsDeleted) {
			continue
		}
		s.arena.setFlag(t, flagIsDeleted)
		if p := s.registry.plugins[s.arena.terms[i].plugin]; p != nil {
			p.Delete(t)
		}
	}
}
