package core

// View is a plugin-specific tagged payload attached to a term (e.g.
// And(a,b), Plus(t,u), Leq(t,c)). It is opaque to the core: the core never
// inspects a View's fields, only routes it back to the owning plugin. Key
// must return a comparable value used for hash-consing: constructing two
// views with equal keys for the same plugin yields the same TermID.
type View interface {
	Key() any
}

// Value is a plugin-defined assigned value. Boolean terms are assigned a
// plain bool; semantic terms are assigned whatever their Type considers a
// value (a rational, an uninterpreted-sort element id, ...).
type Value any

// Lemma is an opaque theory-tautology payload attached to a conflict or a
// propagation, per spec.md §3's Premise.Lemma(L) and §4.5's
// propagate_bool_lemma/raise_conflict.
type Lemma any

// WatchResult is returned by a plugin's UpdateWatches to tell the core
// whether to keep the watch registered or drop it.
type WatchResult int

const (
	Keep WatchResult = iota
	Remove
)

// EvalResult is the result of a plugin's Eval: either Unknown, or Into a
// value together with the terms whose current assignments produced it
// (used to build the Eval reason's explanation during conflict analysis).
type EvalResult struct {
	Known bool
	Value Value
	Used  []TermID
	// Lemma is the (optional) theory-tautology payload to attach to the
	// ephemeral explanation clause should conflict analysis ever need to
	// resolve through this evaluation (spec.md §4.4, "For Eval reasons, a
	// theory lemma is synthesized lazily; plugins supply the Lemma
	// payload"). May be left nil.
	Lemma Lemma
}

// Unevaluated is the canonical "don't know" EvalResult.
var Unevaluated = EvalResult{}

// Into builds a known EvalResult.
func Into(v Value, used ...TermID) EvalResult {
	return EvalResult{Known: true, Value: v, Used: used}
}

// IntoWithLemma builds a known EvalResult carrying a proof lemma payload.
func IntoWithLemma(v Value, lemma Lemma, used ...TermID) EvalResult {
	return EvalResult{Known: true, Value: v, Used: used, Lemma: lemma}
}

// Plugin is the narrow extension interface through which a theory attaches
// to the core (spec.md §6, "Plugin contract"). A plugin never mutates the
// trail directly; every effect goes through the Actions object passed to
// its callbacks.
type Plugin interface {
	ID() PluginID
	Name() string

	// Init is called once, right after the core registers a new term owned
	// by this plugin (i.e. right after mk_term allocates its TermID).
	Init(actions *Actions, t TermID)

	// UpdateWatches is invoked when a term watched by t (via WatchTerm)
	// becomes assigned. It returns whether the watch should be kept.
	UpdateWatches(actions *Actions, t TermID, watch TermID) WatchResult

	// Delete is the GC sweep hook: called for every term of this plugin
	// that garbage collection proved unreachable.
	Delete(t TermID)

	// Subterms calls yield once for every immediate subterm of view.
	Subterms(view View, yield func(TermID))

	// Eval attempts to evaluate t from the current assignment of its
	// subterms without putting it on the trail.
	Eval(t TermID) EvalResult

	// Print renders view for diagnostics.
	Print(view View) string
}

// Type is the per-sort operation table a plugin registers for a
// plugin-defined sort (spec.md §6, "A type (sort) additionally provides").
type Type interface {
	// Decide returns a value for t, to be asserted as a decision.
	Decide(actions *Actions, t TermID) Value
	// Eq returns (hash-consing) the equality term between t and u.
	Eq(t, u TermID) TermID
	// MkState returns a fresh, type-specific SemanticVar decide_state.
	MkState() any
	// Print renders a value of this type for diagnostics.
	Print(v Value) string
}

// registry holds the plugin and type operation tables the core dispatches
// through, per spec.md §2's "Plugin registry" component: "Holds term-view
// constructors and per-type 'type-class' operations (print, eval,
// watch-update, subterm iteration, semantic-decide)." Dispatch is via this
// table, never via Go interface-embedding inheritance tricks (spec.md §9).
type registry struct {
	plugins [256]Plugin
	types   [256]Type
}

func newRegistry() *registry {
	return &registry{}
}

func (r *registry) register(p Plugin) {
	r.plugins[p.ID()] = p
}

func (r *registry) registerType(id TypeID, t Type) {
	r.types[id] = t
}

func (r *registry) plugin(id PluginID) Plugin {
	p := r.plugins[id]
	if p == nil {
		panic("mcsat: no plugin registered for id")
	}
	return p
}

func (r *registry) typeOf(id TypeID) Type {
	return r.types[id]
}
