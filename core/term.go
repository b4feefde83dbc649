package core

// Term is the universal unit of reasoning (spec.md §3): every Boolean atom,
// every theory-level expression, and every semantic variable is a term.
type Term struct {
	id     TermID
	plugin PluginID
	view   View
	typ    TypeID

	activity float64
	flags    termFlags

	varKind  VarKind
	semantic semanticVar // valid when varKind == VarSemantic

	level  int // -1 if unassigned, matching the teacher's sentinel convention
	value  Value
	reason reason

	// watchers holds other terms whose plugin wants to be notified (via
	// UpdateWatches) when this term becomes assigned. Lazily initialized,
	// per spec.md §3.
	watchers []TermID
}

// arena owns every term ever created. Terms are hash-consed per plugin:
// constructing the same view twice returns the same TermID (spec.md §3,
// §9 "Hash-consing vs. sharing"). Terms are never moved once appended;
// deletion only sets flagIsDeleted (gcTerms) and leaves the term's
// references in place; the slot itself is never reused (avoiding stale
// TermID aliasing).
type arena struct {
	terms []Term
	// hashcons maps (plugin, view key) -> TermID, one map per plugin so
	// that different plugins' view types never collide on Key().
	hashcons [256]map[any]TermID
}

func newArena() *arena {
	return &arena{}
}

func (a *arena) get(t TermID) *Term {
	return &a.terms[t]
}

func (a *arena) numTerms() int {
	return len(a.terms)
}

// mkTerm implements spec.md §4.1's mk_term: hash-consed term construction.
// Returns the existing TermID if a term with the same plugin and view key
// already exists.
func (a *arena) mkTerm(plugin PluginID, view View, typ TypeID) (TermID, bool) {
	if a.hashcons[plugin] == nil {
		a.hashcons[plugin] = map[any]TermID{}
	}
	key := view.Key()
	if id, ok := a.hashcons[plugin][key]; ok {
		return id, false
	}
	id := TermID(len(a.terms))
	a.terms = append(a.terms, Term{
		id:     id,
		plugin: plugin,
		view:   view,
		typ:    typ,
		level:  -1,
	})
	a.hashcons[plugin][key] = id
	return id, true
}

// Flag accessors — spec.md §4.1 "set_flag/get_flag for the bitfields".

func (a *arena) getFlag(t TermID, bit termFlags) bool {
	return a.terms[t].flags.has(bit)
}

func (a *arena) setFlag(t TermID, bit termFlags) {
	a.terms[t].flags.set(bit)
}

func (a *arena) clearFlag(t TermID, bit termFlags) {
	a.terms[t].flags.clear(bit)
}

func (a *arena) isAssigned(t TermID) bool {
	return a.terms[t].level >= 0
}
