// Package lra implements a minimal linear-real-arithmetic theory: real
// variables constrained by atoms of the form var <= bound and var >= bound
// against a literal constant, propagated by interval tightening rather than
// a full Simplex/Fourier-Motzkin decision procedure (spec.md's Out-of-scope
// line on theory internals asks only for a testable third plugin, not a
// production LRA solver). Equality between two real terms is handled
// separately as a watched, Eval-driven atom, in the same idiom as
// plugin/boolean's connectives.
package lra

import (
	"fmt"

	"github.com/mcsat-core/mcsat/core"
)

// ID is the reserved plugin id for linear-real-arithmetic terms.
const ID core.PluginID = 3

// Sort is the real sort this plugin manages.
const Sort core.TypeID = 2

// VarView is a declared real-valued variable.
type VarView struct{ Name string }

func (v VarView) Key() any { return [2]any{"var", v.Name} }

// ConstView is a literal real constant.
type ConstView struct{ Value float64 }

func (v ConstView) Key() any { return [2]any{"const", v.Value} }

// LeqView is the atom Var <= Bound.
type LeqView struct {
	Var   core.TermID
	Bound float64
}

func (v LeqView) Key() any { return [3]any{"leq", v.Var, v.Bound} }

// GeqView is the atom Var >= Bound.
type GeqView struct {
	Var   core.TermID
	Bound float64
}

func (v GeqView) Key() any { return [3]any{"geq", v.Var, v.Bound} }

// EqView is the atom A = B between two real terms.
type EqView struct{ A, B core.TermID }

func (v EqView) Key() any {
	a, b := v.A, v.B
	if a > b {
		a, b = b, a
	}
	return [3]any{"eq", a, b}
}

// bounds is the current known interval of a real variable, together with
// the atom (and its current boolean value) that most recently tightened
// each side — kept so a conflicting interval can cite a real justification.
type bounds struct {
	lo, hi           float64
	hasLo, hasHi     bool
	loAtom, hiAtom   core.TermID
	loValue, hiValue bool
}

// Plugin implements core.Plugin for VarView/ConstView/LeqView/GeqView/EqView
// terms: one bounds record per declared variable, tightened by every
// asserted Leq/Geq atom and checked for emptiness on every update.
type Plugin struct {
	s      *core.Solver
	bounds map[core.TermID]*bounds
}

// New constructs an LRA plugin and registers its sort's Type operations.
func New(s *core.Solver) *Plugin {
	p := &Plugin{s: s, bounds: map[core.TermID]*bounds{}}
	s.RegisterType(Sort, sortOps{p})
	return p
}

func (p *Plugin) ID() core.PluginID { return ID }
func (p *Plugin) Name() string      { return "lra" }

// MkVar declares a fresh real variable and registers it as decidable.
func (p *Plugin) MkVar(name string) core.TermID {
	t := p.s.MkTerm(ID, VarView{Name: name}, Sort)
	p.s.MarkSemantic(t, Sort)
	return t
}

// MkConst constructs (hash-consed) the literal constant v.
func (p *Plugin) MkConst(v float64) core.TermID {
	return p.s.MkTerm(ID, ConstView{Value: v}, Sort)
}

// MkLeq, MkGeq and MkEq construct (hash-consed) atoms over real terms.
func (p *Plugin) MkLeq(v core.TermID, bound float64) core.TermID {
	return p.s.MkTerm(ID, LeqView{Var: v, Bound: bound}, core.TypeBool)
}

func (p *Plugin) MkGeq(v core.TermID, bound float64) core.TermID {
	return p.s.MkTerm(ID, GeqView{Var: v, Bound: bound}, core.TypeBool)
}

func (p *Plugin) MkEq(a, b core.TermID) core.TermID {
	return p.s.MkTerm(ID, EqView{A: a, B: b}, core.TypeBool)
}

func (p *Plugin) state(v core.TermID) *bounds {
	b, ok := p.bounds[v]
	if !ok {
		b = &bounds{loAtom: -1, hiAtom: -1}
		p.bounds[v] = b
	}
	return b
}

func (p *Plugin) Init(actions *core.Actions, t core.TermID) {
	switch v := p.s.View(t).(type) {
	case LeqView:
		p.state(v.Var)
		p.s.WatchTerm(t, t)
	case GeqView:
		p.state(v.Var)
		p.s.WatchTerm(t, t)
	case EqView:
		p.s.WatchTerm(t, v.A)
		p.s.WatchTerm(t, v.B)
	case VarView:
		p.state(t)
	}
}

// UpdateWatches tightens a variable's interval when one of its Leq/Geq
// atoms (watching itself) is assigned, or evaluates an EqView when one of
// its operands (watching it) becomes assigned.
func (p *Plugin) UpdateWatches(actions *core.Actions, t core.TermID, watch core.TermID) core.WatchResult {
	switch v := p.s.View(t).(type) {
	case LeqView:
		if b, known := boolValue(p.s, t); known {
			p.tighten(actions, v.Var, t, v.Bound, b, true)
		}
	case GeqView:
		if b, known := boolValue(p.s, t); known {
			p.tighten(actions, v.Var, t, v.Bound, b, false)
		}
	case EqView:
		result := p.Eval(t)
		if result.Known {
			actions.PropagateBoolEval(t, result.Value.(bool), result.Used, result.Lemma)
		}
	}
	return core.Keep
}

// tighten folds atom t's assertion (var <compare> bound, with current value
// b) into variable's interval, raising a conflict if the interval becomes
// empty. isLeq distinguishes which comparison t's view represents; the
// direction it tightens depends on isLeq and b together, since a false Leq
// is a lower bound and a false Geq is an upper bound.
func (p *Plugin) tighten(actions *core.Actions, variable core.TermID, t core.TermID, bound float64, b bool, isLeq bool) {
	st := p.state(variable)
	raisesLower := isLeq != b // (isLeq && !b) || (!isLeq && b)

	if raisesLower {
		if !st.hasLo || bound > st.lo {
			st.lo, st.hasLo, st.loAtom, st.loValue = bound, true, t, b
		}
	} else {
		if !st.hasHi || bound < st.hi {
			st.hi, st.hasHi, st.hiAtom, st.hiValue = bound, true, t, b
		}
	}

	if st.hasLo && st.hasHi && st.lo > st.hi {
		actions.RaiseConflict([]core.AtomID{
			core.AtomOf(st.loAtom, st.loValue),
			core.AtomOf(st.hiAtom, st.hiValue),
		}, "interval-empty")
	}
}

// Delete drops a variable's bounds record once garbage collection proves
// it unreachable.
func (p *Plugin) Delete(t core.TermID) {
	delete(p.bounds, t)
}

// Subterms yields a Leq/Geq atom's variable or an equality's two sides.
func (p *Plugin) Subterms(view core.View, yield func(core.TermID)) {
	switch v := view.(type) {
	case LeqView:
		yield(v.Var)
	case GeqView:
		yield(v.Var)
	case EqView:
		yield(v.A)
		yield(v.B)
	}
}

func (p *Plugin) valueOf(t core.TermID) (float64, bool) {
	if cv, ok := p.s.View(t).(ConstView); ok {
		return cv.Value, true
	}
	v, ok := p.s.Value(t).(float64)
	return v, ok
}

// Eval evaluates a Leq/Geq atom from its variable's decided value, or an
// equality from both operands' decided values.
func (p *Plugin) Eval(t core.TermID) core.EvalResult {
	switch v := p.s.View(t).(type) {
	case LeqView:
		if val, ok := p.valueOf(v.Var); ok {
			return core.Into(val <= v.Bound, v.Var)
		}
	case GeqView:
		if val, ok := p.valueOf(v.Var); ok {
			return core.Into(val >= v.Bound, v.Var)
		}
	case EqView:
		va, oka := p.valueOf(v.A)
		vb, okb := p.valueOf(v.B)
		if oka && okb {
			return core.Into(va == vb, v.A, v.B)
		}
	}
	return core.Unevaluated
}

// Print renders a view for diagnostics.
func (p *Plugin) Print(view core.View) string {
	switch v := view.(type) {
	case VarView:
		return v.Name
	case ConstView:
		return fmt.Sprintf("%g", v.Value)
	case LeqView:
		return fmt.Sprintf("(<= t%d %g)", v.Var, v.Bound)
	case GeqView:
		return fmt.Sprintf("(>= t%d %g)", v.Var, v.Bound)
	case EqView:
		return fmt.Sprintf("(= t%d t%d)", v.A, v.B)
	default:
		return "?"
	}
}

func boolValue(s *core.Solver, t core.TermID) (bool, bool) {
	v := s.Value(t)
	if v == nil {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// sortOps implements core.Type for Sort, kept separate from Plugin since
// core.Plugin and core.Type both declare a differently-shaped Print method.
type sortOps struct{ p *Plugin }

func (t sortOps) Decide(actions *core.Actions, term core.TermID) core.Value {
	st := t.p.state(term)
	switch {
	case st.hasLo && st.hasHi:
		return (st.lo + st.hi) / 2
	case st.hasLo:
		return st.lo + 1
	case st.hasHi:
		return st.hi - 1
	default:
		return 0.0
	}
}

func (t sortOps) Eq(a, b core.TermID) core.TermID { return t.p.MkEq(a, b) }
func (t sortOps) MkState() any                    { return nil }
func (t sortOps) Print(v core.Value) string       { return fmt.Sprintf("%v", v) }
