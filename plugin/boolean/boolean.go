// Package boolean implements a theory plugin for Boolean connective terms
// (And, Or) built on top of plain CNF atoms — a small, concrete exercise of
// spec.md §6's plugin contract and §4.3's generalized watch mechanism,
// complementary to the intrinsic plain-variable path (core.MkBoolTerm)
// that a DIMACS front end uses directly.
//
// Grounded on xDarkicex-logic/sat's connective handling in cdcl.go/
// cdcl_advanced.go (see SPEC_FULL.md's supplemented-features note), but
// expressed as a watch-driven evaluator rather than an eager Tseitin CNF
// encoding, since that is the mechanism spec.md actually specifies.
package boolean

import (
	"fmt"

	"github.com/mcsat-core/mcsat/core"
)

// ID is the reserved plugin id for Boolean connective terms. Plain CNF
// variables created via core.MkBoolTerm live under PluginID 0 instead and
// never reach this plugin's callbacks.
const ID core.PluginID = 1

// AndView is the view of a term defined as the conjunction of A and B.
type AndView struct{ A, B core.TermID }

func (v AndView) Key() any { return [3]any{"and", v.A, v.B} }

// OrView is the view of a term defined as the disjunction of A and B.
type OrView struct{ A, B core.TermID }

func (v OrView) Key() any { return [3]any{"or", v.A, v.B} }

// NotView is the view of a term defined as the negation of A. It exists
// alongside AtomID's built-in polarity bit so a plugin composing And/Or
// subterms can name "not A" as a first-class term when it needs a TermID
// rather than a bare AtomID (e.g. to pass to another plugin's MkTerm).
type NotView struct{ A core.TermID }

func (v NotView) Key() any { return [2]any{"not", v.A} }

// Plugin implements core.Plugin for AndView/OrView/NotView terms.
type Plugin struct {
	s *core.Solver
}

// New returns a Boolean connective plugin bound to s. Register it with
// s.RegisterPlugin before constructing any And/Or/Not term.
func New(s *core.Solver) *Plugin {
	return &Plugin{s: s}
}

func (p *Plugin) ID() core.PluginID { return ID }
func (p *Plugin) Name() string      { return "boolean" }

// MkAnd, MkOr and MkNot construct (hash-consed) connective terms.
func (p *Plugin) MkAnd(a, b core.TermID) core.TermID {
	return p.s.MkTerm(ID, AndView{A: a, B: b}, core.TypeBool)
}

func (p *Plugin) MkOr(a, b core.TermID) core.TermID {
	return p.s.MkTerm(ID, OrView{A: a, B: b}, core.TypeBool)
}

func (p *Plugin) MkNot(a core.TermID) core.TermID {
	return p.s.MkTerm(ID, NotView{A: a}, core.TypeBool)
}

// Init registers watches on a freshly created connective term's operands,
// per spec.md §4.1 ("right after mk_term allocates its TermID").
func (p *Plugin) Init(actions *core.Actions, t core.TermID) {
	switch v := p.s.View(t).(type) {
	case AndView:
		p.s.WatchTerm(t, v.A)
		p.s.WatchTerm(t, v.B)
	case OrView:
		p.s.WatchTerm(t, v.A)
		p.s.WatchTerm(t, v.B)
	case NotView:
		p.s.WatchTerm(t, v.A)
	}
}

// UpdateWatches re-evaluates t whenever one of its watched operands
// becomes assigned, propagating t's value through Actions.PropagateBoolEval
// if it is now determined.
func (p *Plugin) UpdateWatches(actions *core.Actions, t core.TermID, watch core.TermID) core.WatchResult {
	result := p.Eval(t)
	if result.Known {
		actions.PropagateBoolEval(t, result.Value.(bool), result.Used, result.Lemma)
	}
	return core.Keep
}

// Delete is a no-op: connective terms hold no resources beyond their view.
func (p *Plugin) Delete(t core.TermID) {}

// Subterms yields a term's immediate operands.
func (p *Plugin) Subterms(view core.View, yield func(core.TermID)) {
	switch v := view.(type) {
	case AndView:
		yield(v.A)
		yield(v.B)
	case OrView:
		yield(v.A)
		yield(v.B)
	case NotView:
		yield(v.A)
	}
}

// Eval evaluates t from the current assignment of its operands without
// placing it on the trail (spec.md §6, "Eval").
func (p *Plugin) Eval(t core.TermID) core.EvalResult {
	switch v := p.s.View(t).(type) {
	case AndView:
		return p.evalAnd(v)
	case OrView:
		return p.evalOr(v)
	case NotView:
		return p.evalNot(v)
	default:
		return core.Unevaluated
	}
}

func (p *Plugin) evalAnd(v AndView) core.EvalResult {
	a, aKnown := boolValue(p.s, v.A)
	b, bKnown := boolValue(p.s, v.B)
	switch {
	case aKnown && !a:
		return core.Into(false, v.A)
	case bKnown && !b:
		return core.Into(false, v.B)
	case aKnown && bKnown:
		return core.Into(true, v.A, v.B)
	default:
		return core.Unevaluated
	}
}

func (p *Plugin) evalOr(v OrView) core.EvalResult {
	a, aKnown := boolValue(p.s, v.A)
	b, bKnown := boolValue(p.s, v.B)
	switch {
	case aKnown && a:
		return core.Into(true, v.A)
	case bKnown && b:
		return core.Into(true, v.B)
	case aKnown && bKnown:
		return core.Into(false, v.A, v.B)
	default:
		return core.Unevaluated
	}
}

func (p *Plugin) evalNot(v NotView) core.EvalResult {
	a, aKnown := boolValue(p.s, v.A)
	if !aKnown {
		return core.Unevaluated
	}
	return core.Into(!a, v.A)
}

func boolValue(s *core.Solver, t core.TermID) (bool, bool) {
	v := s.Value(t)
	if v == nil {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Print renders a view for diagnostics.
func (p *Plugin) Print(view core.View) string {
	switch v := view.(type) {
	case AndView:
		return fmt.Sprintf("(and t%d t%d)", v.A, v.B)
	case OrView:
		return fmt.Sprintf("(or t%d t%d)", v.A, v.B)
	case NotView:
		return fmt.Sprintf("(not t%d)", v.A)
	default:
		return "?"
	}
}
