package core

import "fmt"

// TermID is the stable numeric identity of a term. Terms live in the
// solver's arena and are never moved once created; deletion is deferred to
// garbage collection (see gcTerms in restart.go).
type TermID int32

// PluginID identifies the plugin that owns a term's view. The core never
// interprets a view directly; it always dispatches through the plugin
// registered under this id.
type PluginID uint8

// TypeID identifies a sort (Boolean or a plugin-defined type) registered
// with the core. TypeBool is reserved for the built-in Boolean sort; every
// other sort is plugin-defined.
type TypeID uint8

// TypeBool is the built-in sort of every Boolean term.
const TypeBool TypeID = 0

// AtomID is a signed occurrence of a Boolean term: AtomID = TermID*2 + p,
// where p is 0 for the positive occurrence and 1 for the negation. This
// mirrors the teacher's Literal encoding (varID*2+bit) one level up: here
// the "variable" being encoded is an arbitrary Boolean term, not just a
// DIMACS variable. The positive atom's id is always even; its negation is
// that id xor 1, matching spec.md's "not(a).id == a.id xor 1" invariant.
type AtomID int32

// AtomOf returns the positive or negative atom of t depending on neg.
func AtomOf(t TermID, neg bool) AtomID {
	if neg {
		return AtomID(t)*2 + 1
	}
	return AtomID(t) * 2
}

// Term returns the term that a is an occurrence of.
func (a AtomID) Term() TermID {
	return TermID(a / 2)
}

// IsNegative reports whether a is the negated occurrence of its term.
func (a AtomID) IsNegative() bool {
	return a&1 == 1
}

// Opposite returns the atom for the same term with the opposite polarity.
func (a AtomID) Opposite() AtomID {
	return a ^ 1
}

func (a AtomID) String() string {
	if a.IsNegative() {
		return fmt.Sprintf("!t%d", a.Term())
	}
	return fmt.Sprintf("t%d", a.Term())
}

// ClauseID is the stable numeric identity of a clause in the clause arena.
type ClauseID int32

// NoClause is the sentinel ClauseID used where "no clause" (e.g. a decision
// or a root assignment) needs to be represented.
const NoClause ClauseID = -1
