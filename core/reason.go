package core

// reasonKind distinguishes the justifications a trail assignment can carry,
// per spec.md §3's atom reasons and §4.3/§4.4.
type reasonKind uint8

const (
	// reasonRoot marks a top-level (decision-level 0) unit fact: a root
	// hypothesis clause or a local assumption. It has no antecedents.
	reasonRoot reasonKind = iota
	// reasonDecision marks a literal pushed by the decision heuristic.
	reasonDecision
	// reasonBcp marks a literal implied by a watched clause becoming unit.
	reasonBcp
	// reasonBcpLazy marks a literal whose justifying clause is built lazily,
	// the first (and only) time conflict analysis asks for it.
	reasonBcpLazy
	// reasonEval marks a literal asserted by Actions.PropagateBoolEval: its
	// truth follows from the current values of reason.used, not from a
	// clause.
	reasonEval
)

// reason is the justification recorded alongside a trail assignment.
type reason struct {
	kind   reasonKind
	clause ClauseID        // valid for reasonBcp, and reasonBcpLazy once forced
	lazy   func() ClauseID // valid for reasonBcpLazy until forced
	used   []TermID        // valid for reasonEval: terms whose values caused it
	lemma  Lemma           // valid for reasonEval: optional proof payload
}

var rootReason = reason{kind: reasonRoot, clause: NoClause}
var decisionReason = reason{kind: reasonDecision, clause: NoClause}

func bcpReason(c ClauseID) reason {
	return reason{kind: reasonBcp, clause: c}
}

func lazyReason(f func() ClauseID) reason {
	return reason{kind: reasonBcpLazy, lazy: f}
}

func evalReason(used []TermID, lemma Lemma) reason {
	return reason{kind: reasonEval, used: used, lemma: lemma}
}
