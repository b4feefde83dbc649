package core

// VarKind distinguishes the three Var variants of spec.md §3: a term not
// yet registered for decision (VarNone), a Boolean term (VarBool, whose
// two atoms are AtomOf(t,false) and AtomOf(t,true) — see ids.go), and a
// semantic term carrying plugin-defined decision state (VarSemantic).
type VarKind uint8

const (
	VarNone VarKind = iota
	VarBool
	VarSemantic
)

// semanticVar carries the plugin-defined decide_state for a semantic term,
// e.g. a linear-arithmetic variable's current interval bounds.
type semanticVar struct {
	typ   TypeID
	state any
}
