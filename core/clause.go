package core

import "strings"

// PremiseKind distinguishes the ways a clause can be justified, per
// spec.md §3.
type PremiseKind uint8

const (
	PremiseHyp PremiseKind = iota
	PremiseLocal
	PremiseLemma
	PremiseSimplify
	PremiseSteps
	PremiseRawSteps
)

// ResolutionStep is one step of a resolution chain: resolving the clause
// built so far against Other, pivoting on Pivot.
type ResolutionStep struct {
	Pivot TermID
	Other ClauseID
}

// Premise justifies a clause, per spec.md §3.
type Premise struct {
	Kind PremiseKind

	Lemma     Lemma      // PremiseLemma
	Simplified ClauseID   // PremiseSimplify
	Init      ClauseID   // PremiseSteps / PremiseRawSteps
	Steps     []ResolutionStep
}

// Clause is a disjunction of atoms plus its justification (spec.md §3).
// Grounded on the teacher's newer sat/clauses.go: a bitmask status field
// rather than separate bools, and a prevPos cache that remembers where the
// last watch-search left off so repeated calls don't restart from literal
// 2 (see Propagate below).
type Clause struct {
	id      ClauseID
	atoms   []AtomID
	name    string
	tag     string
	premise Premise

	activity float64
	lbd      uint32
	flags    clauseFlags
	prevPos  int
}

func (c *Clause) ID() ClauseID       { return c.id }
func (c *Clause) Atoms() []AtomID    { return c.atoms }
func (c *Clause) Tag() string        { return c.tag }
func (c *Clause) LBD() uint32        { return c.lbd }
func (c *Clause) Premise() Premise   { return c.premise }
func (c *Clause) Learnt() bool       { return c.flags.has(clauseLearnt) }
func (c *Clause) Deleted() bool      { return c.flags.has(clauseDeleted) }
func (c *Clause) IsProtected() bool  { return c.flags.has(clauseProtected) }

// newClause allocates a clause in the solver's clause arena, attaching it
// (setting up its two watches) if it has two or more atoms. Mirrors
// spec.md §4.1's mk_clause + attach, folded together because every clause
// the solver constructs through this path is meant to be attached
// immediately; detached construction (e.g. a conflict clause synthesized
// after the fact) goes through registerClause instead.
//
// tmpAtoms is consumed destructively (reordered/deduplicated in place), as in
// the teacher's NewClause(s, tmpLiterals, learnt).
func (s *Solver) newClause(tmpAtoms []AtomID, premise Premise, learnt bool) (*Clause, bool) {
	size := len(tmpAtoms)

	if !learnt {
		seen := map[AtomID]struct{}{}
		for i := size - 1; i >= 0; i-- {
			if _, ok := seen[tmpAtoms[i].Opposite()]; ok {
				return nil, true // tautological clause, always true
			}
			if _, ok := seen[tmpAtoms[i]]; ok {
				size--
				tmpAtoms[i], tmpAtoms[size] = tmpAtoms[size], tmpAtoms[i]
			}
			seen[tmpAtoms[i]] = struct{}{}

			switch s.atomValue(tmpAtoms[i]) {
			case LTrue:
				return nil, true
			case LFalse:
				size--
				tmpAtoms[i], tmpAtoms[size] = tmpAtoms[size], tmpAtoms[i]
			}
		}
		tmpAtoms = tmpAtoms[:size]
	}

	switch size {
	case 0:
		return nil, false
	case 1:
		return nil, s.enqueue(tmpAtoms[0], rootReason)
	default:
		c := &Clause{
			id:      ClauseID(len(s.clauses)),
			atoms:   append([]AtomID(nil), tmpAtoms...),
			premise: premise,
			prevPos: 2,
		}
		if learnt {
			c.flags.set(clauseLearnt)
			maxLevel := -1
			wl := -1
			for i, a := range c.atoms {
				if lvl := s.arena.terms[a.Term()].level; lvl > maxLevel {
					maxLevel = lvl
					wl = i
				}
			}
			c.atoms[wl], c.atoms[1] = c.atoms[1], c.atoms[wl]
		}
		s.clauses = append(s.clauses, c)
		c.flags.set(clauseAttached)
		s.watchAtom(c, c.atoms[0].Opposite(), c.atoms[1])
		s.watchAtom(c, c.atoms[1].Opposite(), c.atoms[0])
		return c, true
	}
}

// registerClause appends atoms as an unattached clause (no watches, never
// added to s.constraints/s.learnts) purely so it has a stable ClauseID to
// serve as a proof-graph leaf: a plugin-raised conflict (Actions.RaiseConflict)
// or an Eval-reasoned assignment's justification (spec.md §4.4, "a theory
// lemma is synthesized lazily") both need a real, resolvable clause, not a
// throwaway value, once conflict analysis walks back through them.
func (s *Solver) registerClause(atoms []AtomID, premise Premise) *Clause {
	c := &Clause{
		id:      ClauseID(len(s.clauses)),
		atoms:   append([]AtomID(nil), atoms...),
		premise: premise,
	}
	s.clauses = append(s.clauses, c)
	return c
}

func (c *Clause) locked(s *Solver) bool {
	return s.arena.terms[c.atoms[0].Term()].reason.clause == c.id && c.id != NoClause
}

// Remove detaches c: unwatches it and marks it deleted. Per spec.md §3
// invariant 6, a deleted clause must not remain referenced by any watch
// vector, so Unwatch happens before the flag is set.
func (c *Clause) Remove(s *Solver) {
	s.unwatchAtom(c, c.atoms[0].Opposite())
	s.unwatchAtom(c, c.atoms[1].Opposite())
	c.flags.clear(clauseAttached)
	c.flags.set(clauseDeleted)
}

// Simplify drops atoms that are false at the root level and reports
// whether the clause is already satisfied (spec.md §4.2's Simplify).
func (c *Clause) Simplify(s *Solver) bool {
	k := 0
	for _, a := range c.atoms {
		switch s.atomValue(a) {
		case LTrue:
			return true
		case LFalse:
			// drop
		default:
			c.atoms[k] = a
			k++
		}
	}
	c.atoms = c.atoms[:k]
	return false
}

// Propagate is invoked when trueAtom has just become true, so its opposite
// (one of c's watched atoms) has just become false, i.e. c may now be unit
// or conflicting.
// It restores invariant 2 by finding a new atom to watch in c's place, or
// propagates/conflicts if none exists. Grounded on the teacher's
// sat/clauses.go Propagate, including the prevPos search-position cache.
func (c *Clause) Propagate(s *Solver, trueAtom AtomID) bool {
	opp := trueAtom.Opposite()
	if c.atoms[0] == opp {
		c.atoms[0], c.atoms[1] = c.atoms[1], opp
	}

	if s.atomValue(c.atoms[0]) == LTrue {
		s.watchAtom(c, trueAtom, c.atoms[0])
		return true
	}

	if c.prevPos >= len(c.atoms) {
		c.prevPos = 2
	}
	for i, a := range c.atoms[c.prevPos:] {
		if s.atomValue(a) != LFalse {
			c.prevPos += i
			c.atoms[1] = a
			c.atoms[c.prevPos] = trueAtom.Opposite()
			s.watchAtom(c, a.Opposite(), c.atoms[0])
			return true
		}
	}
	for i, a := range c.atoms[2:c.prevPos] {
		if s.atomValue(a) != LFalse {
			c.prevPos = i + 2
			c.atoms[1] = a
			c.atoms[c.prevPos] = trueAtom.Opposite()
			s.watchAtom(c, a.Opposite(), c.atoms[0])
			return true
		}
	}

	s.watchAtom(c, trueAtom, c.atoms[0])
	return s.enqueue(c.atoms[0], bcpReason(c.id))
}

// explainFailure returns the negation of every atom of c: when c is the
// conflicting clause itself, each of its (false) atoms' opposite is a true
// literal that contributed to the conflict.
func (c *Clause) explainFailure(s *Solver, out []AtomID) []AtomID {
	out = out[:0]
	for _, a := range c.atoms {
		out = append(out, a.Opposite())
	}
	if c.Learnt() {
		s.bumpClauseActivity(c)
	}
	return out
}

// explainAssign returns the negation of every atom but the one that was
// propagated (c.atoms[0]): those are exactly the atoms that were false at
// the moment c.atoms[0] was forced true (invariant 3).
func (c *Clause) explainAssign(s *Solver, out []AtomID) []AtomID {
	out = out[:0]
	for _, a := range c.atoms[1:] {
		out = append(out, a.Opposite())
	}
	if c.Learnt() {
		s.bumpClauseActivity(c)
	}
	return out
}

func (c *Clause) String() string {
	if len(c.atoms) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.atoms[0].String())
	for _, a := range c.atoms[1:] {
		sb.WriteByte(' ')
		sb.WriteString(a.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
