package core

// termFlags is the per-term bitfield described in spec.md §3: is_added,
// is_deleted, mark_pos, mark_neg, seen, gc_marked, negated.
type termFlags uint8

const (
	flagIsAdded termFlags = 1 << iota
	flagIsDeleted
	flagMarkPos
	flagMarkNeg
	flagSeen
	flagGCMarked
	flagNegated
)

func (f termFlags) has(bit termFlags) bool  { return f&bit != 0 }
func (f *termFlags) set(bit termFlags)      { *f |= bit }
func (f *termFlags) clear(bit termFlags)    { *f &^= bit }

// clauseFlags is the per-clause bitfield from spec.md §3: attached,
// visited, deleted, gc_marked. Grounded on the teacher's status bitmask in
// sat/clauses.go (statusDeleted/statusLearnt/statusProtected), extended
// with the flags spec.md names explicitly.
type clauseFlags uint8

const (
	clauseAttached clauseFlags = 1 << iota
	clauseVisited
	clauseDeleted
	clauseGCMarked
	clauseLearnt
	clauseProtected
)

func (f clauseFlags) has(bit clauseFlags) bool { return f&bit != 0 }
func (f *clauseFlags) set(bit clauseFlags)     { *f |= bit }
func (f *clauseFlags) clear(bit clauseFlags)   { *f &^= bit }
