package core

import "errors"

// Error kinds for the core, per spec.md §7. The core reports failures as
// plain wrapped stdlib errors rather than a third-party errors package: see
// SPEC_FULL.md's ambient-stack notes — the allocation-sensitive hot path
// (propagation, decision, conflict analysis) never constructs one of these,
// they only ever surface from the outer Solve/DeriveEmptyClause/Replay
// boundary.
var (
	// ErrUnsatAtRoot names a clause that is trivially false at decision
	// level 0. No function of this module returns it: AddClause reports
	// that case through its false result and marks the solver Unsat.
	ErrUnsatAtRoot = errors.New("mcsat: clause is unsatisfiable at the root level")

	// ErrInvalidTerm names a TermID outside the arena's current range, or
	// one flagged deleted by garbage collection. No function of this module
	// returns it; the accessors do not check their TermID argument.
	ErrInvalidTerm = errors.New("mcsat: invalid or garbage-collected term")

	// ErrPluginMisuse names a plugin request that the Actions contract
	// forbids. No function of this module returns it. Misuse that manifests
	// as a contradictory assignment is converted into an ordinary conflict
	// per spec.md §7 item 3.
	ErrPluginMisuse = errors.New("mcsat: plugin violated the actions contract")

	// ErrProofMalformed is returned by proof.Replay when a resolution step
	// names a pivot term that does not occur with opposite polarity in
	// both clauses being resolved.
	ErrProofMalformed = errors.New("mcsat: malformed resolution proof")

	// ErrStopped is returned by Solve when it returns early because of the
	// configured timeout, conflict budget, or interrupt hook, without
	// having reached Sat or Unsat.
	ErrStopped = errors.New("mcsat: solve stopped before a verdict was reached")
)
