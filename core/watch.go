package core

// This file implements spec.md §4.3's two parts of the Watch Engine:
// Boolean clause watches (grounded on the teacher's Watch/Unwatch) and
// generalized term watches, the sole mechanism by which theories are
// awakened.

// watchAtom registers clause c to be woken when the atom `on` becomes
// true — i.e. when its opposite becomes false, c may need a new watch or
// may propagate/conflict. guard is the clause's other watched atom: if it
// is already true the watcher can be skipped cheaply (see Propagate in
// core/propagate.go).
func (s *Solver) watchAtom(c *Clause, on AtomID, guard AtomID) {
	s.ensureAtomCapacity(on)
	s.boolWatchers[on] = append(s.boolWatchers[on], watcher{clause: c, guard: guard})
}

func (s *Solver) unwatchAtom(c *Clause, on AtomID) {
	lst := s.boolWatchers[on]
	j := 0
	for i := range lst {
		if lst[i].clause != c {
			lst[j] = lst[i]
			j++
		}
	}
	s.boolWatchers[on] = lst[:j]
}

func (s *Solver) ensureAtomCapacity(a AtomID) {
	for AtomID(len(s.boolWatchers)) <= a {
		s.boolWatchers = append(s.boolWatchers, nil)
	}
}

// WatchTerm registers watcher to be notified (via its plugin's
// UpdateWatches) when watched becomes assigned. This is the generalized
// watch of spec.md §4.3: "A semantic term t may register that it watches
// another term u (e.g. t = x+y watches x and y)."
func (s *Solver) WatchTerm(watcher TermID, watched TermID) {
	t := &s.arena.terms[watched]
	t.watchers = append(t.watchers, watcher)
}

// unwatchTermAt removes the watcher at index i from watched's watcher list
// via swap-remove, matching spec.md §9's "traversed in place with
// swap-remove" guidance for the hot path.
func (s *Solver) unwatchTermAt(watched TermID, i int) {
	t := &s.arena.terms[watched]
	last := len(t.watchers) - 1
	t.watchers[i] = t.watchers[last]
	t.watchers = t.watchers[:last]
}
