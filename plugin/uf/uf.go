// Package uf implements a minimal uninterpreted-functions theory: equality
// between terms of a single opaque sort, closed under the congruence rule
// (f(a)=f(b) whenever a=b), via union-find. It exists to give spec.md §6's
// "narrow extension interface" a concrete, testable second plugin beyond
// the Boolean connectives — the decision procedure itself is intentionally
// minimal (spec.md's Out-of-scope line on theory internals), not a
// production congruence-closure implementation (no explanation-graph
// minimisation, no incremental backtracking of the union-find beyond what
// spec.md's Eval/Actions contract already requires).
package uf

import (
	"fmt"
	"strings"

	"github.com/mcsat-core/mcsat/core"
)

// ID is the reserved plugin id for uninterpreted-function terms.
const ID core.PluginID = 2

// Sort is the single uninterpreted sort this plugin manages.
const Sort core.TypeID = 1

// EqView is t = (a = b), an equality atom between two Sort elements.
type EqView struct{ A, B core.TermID }

func (v EqView) Key() any {
	a, b := v.A, v.B
	if a > b {
		a, b = b, a
	}
	return [3]any{"eq", a, b}
}

// AppView is t = fn(args...), an uninterpreted function application.
type AppView struct {
	Fn   string
	Args []core.TermID
}

func (v AppView) Key() any {
	var sb strings.Builder
	sb.WriteString(v.Fn)
	for _, a := range v.Args {
		fmt.Fprintf(&sb, ",%d", a)
	}
	return sb.String()
}

// Plugin implements core.Plugin for EqView/AppView terms: a union-find
// over Sort elements, re-checked for newly induced congruences on every
// merge.
type Plugin struct {
	s *core.Solver

	parent []core.TermID
	rank   []int
	apps   map[string][]core.TermID
}

// New constructs the plugin and registers its sort's Type operations.
// Register the returned Plugin with s.RegisterPlugin before constructing
// any term through it.
func New(s *core.Solver) *Plugin {
	p := &Plugin{s: s, apps: map[string][]core.TermID{}}
	s.RegisterType(Sort, sortOps{p})
	return p
}

func (p *Plugin) ID() core.PluginID { return ID }
func (p *Plugin) Name() string      { return "uf" }

// MkElement declares a fresh Sort element (an opaque constant).
func (p *Plugin) MkElement(view core.View) core.TermID {
	return p.s.MkTerm(ID, view, Sort)
}

// MkApp constructs (hash-consed) the term fn(args...).
func (p *Plugin) MkApp(fn string, args ...core.TermID) core.TermID {
	return p.s.MkTerm(ID, AppView{Fn: fn, Args: append([]core.TermID(nil), args...)}, Sort)
}

// MkEq constructs (hash-consed) the equality atom a = b.
func (p *Plugin) MkEq(a, b core.TermID) core.TermID {
	return p.s.MkTerm(ID, EqView{A: a, B: b}, core.TypeBool)
}

func (p *Plugin) Init(actions *core.Actions, t core.TermID) {
	p.grow(t)
	switch v := p.s.View(t).(type) {
	case EqView:
		p.s.WatchTerm(t, t)
	case AppView:
		p.apps[v.Fn] = append(p.apps[v.Fn], t)
		for _, a := range v.Args {
			p.grow(a)
		}
	}
}

func (p *Plugin) grow(t core.TermID) {
	for core.TermID(len(p.parent)) <= t {
		id := core.TermID(len(p.parent))
		p.parent = append(p.parent, id)
		p.rank = append(p.rank, 0)
	}
}

func (p *Plugin) find(t core.TermID) core.TermID {
	p.grow(t)
	for p.parent[t] != t {
		p.parent[t] = p.parent[p.parent[t]]
		t = p.parent[t]
	}
	return t
}

func (p *Plugin) union(a, b core.TermID) {
	ra, rb := p.find(a), p.find(b)
	if ra == rb {
		return
	}
	if p.rank[ra] < p.rank[rb] {
		ra, rb = rb, ra
	}
	p.parent[rb] = ra
	if p.rank[ra] == p.rank[rb] {
		p.rank[ra]++
	}
}

func (p *Plugin) congruent(x, y core.TermID) bool {
	vx, ok1 := p.s.View(x).(AppView)
	vy, ok2 := p.s.View(y).(AppView)
	if !ok1 || !ok2 || vx.Fn != vy.Fn || len(vx.Args) != len(vy.Args) {
		return false
	}
	for i := range vx.Args {
		if p.find(vx.Args[i]) != p.find(vy.Args[i]) {
			return false
		}
	}
	return true
}

// UpdateWatches fires when an EqView term becomes assigned (it watches
// itself, registered in Init). A true equality merges the two classes and
// propagates any congruence it induces among registered applications.
func (p *Plugin) UpdateWatches(actions *core.Actions, t core.TermID, watch core.TermID) core.WatchResult {
	v, ok := p.s.View(t).(EqView)
	if !ok {
		return core.Keep
	}
	b, known := boolValue(p.s, t)
	if known && b {
		p.mergeWithCongruence(actions, v.A, v.B, t)
	}
	return core.Keep
}

func (p *Plugin) mergeWithCongruence(actions *core.Actions, a, b core.TermID, reasonTerm core.TermID) {
	if p.find(a) == p.find(b) {
		return
	}
	p.union(a, b)

	for _, terms := range p.apps {
		for i := 0; i < len(terms); i++ {
			for j := i + 1; j < len(terms); j++ {
				x, y := terms[i], terms[j]
				if p.find(x) == p.find(y) || !p.congruent(x, y) {
					continue
				}
				eq := p.MkEq(x, y)
				if !actions.PropagateBoolEval(eq, true, []core.TermID{reasonTerm}, "congruence") {
					return
				}
				p.union(x, y)
			}
		}
	}
}

// Delete is a no-op: union-find slots are never reclaimed since TermIDs
// are never reused (spec.md §3's arena lifecycle).
func (p *Plugin) Delete(t core.TermID) {}

// Subterms yields an EqView's two sides or an AppView's arguments.
func (p *Plugin) Subterms(view core.View, yield func(core.TermID)) {
	switch v := view.(type) {
	case EqView:
		yield(v.A)
		yield(v.B)
	case AppView:
		for _, a := range v.Args {
			yield(a)
		}
	}
}

// Eval reports an EqView true as soon as both sides are already in the
// same union-find class.
func (p *Plugin) Eval(t core.TermID) core.EvalResult {
	v, ok := p.s.View(t).(EqView)
	if !ok || p.find(v.A) != p.find(v.B) {
		return core.Unevaluated
	}
	return core.Into(true, v.A, v.B)
}

// Print renders a view for diagnostics.
func (p *Plugin) Print(view core.View) string {
	switch v := view.(type) {
	case EqView:
		return fmt.Sprintf("(= t%d t%d)", v.A, v.B)
	case AppView:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = fmt.Sprintf("t%d", a)
		}
		return fmt.Sprintf("(%s %s)", v.Fn, strings.Join(args, " "))
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
// core.Plugin and core.Type both declare a differently-shaped Print
// method.
type sortOps struct{ p *Plugin }

func (t sortOps) Decide(actions *core.Actions, term core.TermID) core.Value { return term }
func (t sortOps) Eq(a, b core.TermID) core.TermID                           { return t.p.MkEq(a, b) }
func (t sortOps) MkState() any                                              { return nil }
func (t sortOps) Print(v core.Value) string                                 { return fmt.Sprintf("%v", v) }
