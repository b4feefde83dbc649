// Package core implements the MCSat solving engine: term/atom/clause
// representation, the trail, the generalized watch and propagation engine,
// 1-UIP conflict analysis with proof reconstruction, the activity-driven
// decision heap, clause learning, restarts and clause-database reduction,
// and the plugin action interface. See SPEC_FULL.md for the full design.
//
// The package is single-threaded and non-reentrant (spec.md §5): every
// exported method must be called from one goroutine at a time, and none of
// them yield except through the caller-supplied deadline/interrupt check
// inside Solve.
package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rhartert/yagh"
)

// State is the top-level state of the solver driver (spec.md §4.8).
type State uint8

const (
	Idle State = iota
	Solving
	Sat
	Unsat
	// Unknown is returned when a stop condition (timeout, max-conflicts,
	// interrupt) fires before a verdict is reached; the instance remains
	// valid and Solve may be called again (spec.md §4.8).
	Unknown
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Solving:
		return "solving"
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	case Unknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// watcher represents a clause attached to the watch list of an atom.
// Grounded on the teacher's internal/sat/solver.go watcher struct.
type watcher struct {
	clause *Clause
	guard  AtomID
}

// Options configures a Solver. Grounded on the teacher's sat.Options.
type Options struct {
	ClauseDecay   float64
	TermDecay     float64
	PhaseSaving   bool
	RestartPolicy RestartPolicy
	MaxConflicts  int64         // <0 disables
	Timeout       time.Duration // <0 disables
	Interrupt     func() bool   // polled between conflicts; nil disables
}

// DefaultOptions mirrors the teacher's sat.DefaultOptions, adding the new
// knobs this module introduces (restart policy, interrupt hook).
var DefaultOptions = Options{
	ClauseDecay:   0.999,
	TermDecay:     0.95,
	PhaseSaving:   true,
	RestartPolicy: LubyRestarts(100),
	MaxConflicts:  -1,
	Timeout:       -1,
}

// Solver is the MCSat core driver (spec.md §4.8, §6 "Solver API").
type Solver struct {
	runID uuid.UUID

	registry *registry
	arena    *arena

	// Clause database.
	clauses     []*Clause
	constraints []ClauseID
	learnts     []ClauseID
	clauseInc   float64
	clauseDecay float64

	// Decision heuristic (core/decision.go).
	heap        *yagh.IntMap[float64]
	termInc     float64
	termDecay   float64
	phases      []LBool
	phaseSaving bool
	decidable   []bool // whether a term has ever been pushed into the heap

	// Propagation and watchers (core/watch.go, core/propagate.go).
	boolWatchers [][]watcher // indexed by AtomID
	propQueue    *queue[TermID]

	// Trail (core/trail.go).
	trail    []TermID
	trailLim []int

	// Assumption stack (spec.md §6).
	assumptions []AtomID

	// Backtrack hooks scheduled via Actions.OnBacktrack, keyed by the
	// level past which they fire; LIFO within a level (spec.md §5).
	backtrackHooks map[int][]func()

	// Conflict state.
	conflict     *Clause
	unsat        bool
	finalConflict *Clause // the level-0 empty-derivation clause, for proof export

	// assumptionUnsat marks an unsat caused by a contradictory assumption
	// push rather than a genuine root-level fact; PopAssumptions clears it
	// since, unlike a root conflict, it is not permanent (spec.md §8
	// scenario 5: popping the offending assumption makes the instance
	// satisfiable again).
	assumptionUnsat bool

	state State

	// Restart / reduction bookkeeping (core/restart.go).
	restartPolicy   RestartPolicy
	restartLimit    int64
	conflictsSince  int64
	nextReduceLimit int

	// Stop conditions.
	maxConflict int64
	timeout     time.Duration
	interrupt   func() bool
	startTime   time.Time

	// Stats (core/stats.go).
	TotalConflicts  int64
	TotalRestarts   int64
	TotalIterations int64
	TotalDecisions  int64
	Verbose         bool
	lbdEMA          EMA

	// Scratch buffers reused across calls to avoid hot-path allocation
	// (spec.md §9).
	seenVar     *resetSet
	tmpWatchers []watcher
	tmpLearnts  []AtomID
	tmpReason   []AtomID
}

// NewSolver returns a solver configured with the given options.
func NewSolver(opts Options) *Solver {
	s := &Solver{
		runID:          uuid.New(),
		registry:       newRegistry(),
		arena:          newArena(),
		clauseInc:      1,
		clauseDecay:    opts.ClauseDecay,
		heap:           yagh.New[float64](0),
		termInc:        1,
		termDecay:      opts.TermDecay,
		phaseSaving:    opts.PhaseSaving,
		propQueue:      newQueue[TermID](128),
		backtrackHooks: map[int][]func(){},
		restartPolicy:  opts.RestartPolicy,
		maxConflict:    opts.MaxConflicts,
		timeout:        opts.Timeout,
		interrupt:      opts.Interrupt,
		seenVar:        &resetSet{},
		lbdEMA:         NewEMA(0.95),
	}
	if s.restartPolicy == nil {
		s.restartPolicy = LubyRestarts(100)
	}
	s.restartLimit = s.restartPolicy.NextLimit()
	s.nextReduceLimit = 100
	return s
}

// NewDefaultSolver returns a solver configured with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

// RunID is a stable identifier for this solver instance, stamped once at
// construction and carried into every exported Proof — useful for a caller
// correlating solver output with external logs (see SPEC_FULL.md's ambient
// stack notes).
func (s *Solver) RunID() uuid.UUID { return s.runID }

// RegisterPlugin attaches a theory plugin to the core (spec.md §6,
// "register plugin").
func (s *Solver) RegisterPlugin(p Plugin) {
	s.registry.register(p)
}

// RegisterType attaches a plugin-defined sort's operation table.
func (s *Solver) RegisterType(id TypeID, t Type) {
	s.registry.registerType(id, t)
}

func (s *Solver) decisionLevel() int {
	return len(s.trailLim)
}

// CurrentLevel exposes the current decision level read-only, per the
// Actions table in spec.md §4.5.
func (s *Solver) CurrentLevel() int {
	return s.decisionLevel()
}

func (s *Solver) NumTerms() int       { return s.arena.numTerms() }
func (s *Solver) NumAssigns() int     { return len(s.trail) }
func (s *Solver) NumConstraints() int { return len(s.constraints) }
func (s *Solver) NumLearnts() int     { return len(s.learnts) }

// State returns the solver's current top-level state.
func (s *Solver) State() State { return s.state }

// Actions returns an Actions handle bound to this solver, through which
// plugins and callers perform every mutating operation spec.md §4.5 lists.
func (s *Solver) Actions() *Actions {
	return &Actions{s: s}
}

func (s *Solver) atomValue(a AtomID) LBool {
	t := &s.arena.terms[a.Term()]
	if t.level < 0 {
		return LUnknown
	}
	b, ok := t.value.(bool)
	if !ok {
		panic(fmt.Sprintf("mcsat: term %d is not Boolean", a.Term()))
	}
	lv := Lift(b)
	if a.IsNegative() {
		lv = lv.Opposite()
	}
	return lv
}

// Value returns the current value of a term, or nil if it is unassigned.
func (s *Solver) Value(t TermID) Value {
	term := &s.arena.terms[t]
	if term.level < 0 {
		return nil
	}
	return term.value
}

// Level returns the decision level at which t was assigned, or -1.
func (s *Solver) Level(t TermID) int {
	return s.arena.terms[t].level
}

// View returns t's plugin-specific view, or nil for an intrinsic Boolean
// term created via MkBoolTerm.
func (s *Solver) View(t TermID) View {
	return s.arena.terms[t].view
}

// TypeOf returns t's sort.
func (s *Solver) TypeOf(t TermID) TypeID {
	return s.arena.terms[t].typ
}

// Subterms calls yield for every immediate subterm of t, dispatching to
// t's owning plugin (spec.md §6, "iterate subterms").
func (s *Solver) Subterms(t TermID, yield func(TermID)) {
	term := &s.arena.terms[t]
	if term.view == nil {
		return
	}
	s.registry.plugin(term.plugin).Subterms(term.view, yield)
}

// Trail returns the current trail in assignment order (spec.md §6,
// "iterate trail").
func (s *Solver) Trail() []TermID {
	return s.trail
}

// Constraints returns every permanent (root-level) clause added via
// AddClause/Actions.PushClause that still had two or more atoms after
// simplification, in insertion order — the conjunction a DIMACS/iCNF
// exporter walks (spec.md §6, "iterate constraints"). A clause that
// collapsed to one atom (every Assert among them) is asserted on the trail
// and not listed here; neither is one already satisfied when added.
func (s *Solver) Constraints() []*Clause {
	out := make([]*Clause, len(s.constraints))
	for i, id := range s.constraints {
		out[i] = s.clauses[id]
	}
	return out
}
