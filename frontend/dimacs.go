// Package frontend adapts textual problem formats onto a core.Solver.
// DIMACS CNF parsing is grounded on the teacher's parsers/parsers.go
// (github.com/rhartert/dimacs's ReadBuilder), generalized from "one
// sat.Literal per DIMACS variable" to "one core.AtomID per core.TermID"
// since the core's Boolean terms, not the teacher's sat.Literal, are now
// the atomic currency.
package frontend

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/rhartert/dimacs"

	"github.com/mcsat-core/mcsat/core"
)

// ReadDIMACS parses a DIMACS CNF file into s. The returned slice holds the
// TermID the core assigned to each DIMACS variable, index i for variable
// i+1, matching the 0-based convention the teacher's parser uses.
func ReadDIMACS(s *core.Solver, filename string, gzipped bool) ([]core.TermID, error) {
	r, err := openMaybeGzipped(filename, gzipped)
	if err != nil {
		return nil, fmt.Errorf("frontend: %w", err)
	}
	defer r.Close()

	b := &dimacsBuilder{s: s}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, fmt.Errorf("frontend: parsing %q: %w", filename, err)
	}
	return b.vars, nil
}

func openMaybeGzipped(filename string, gzipped bool) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(f)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			f.Close()
			return nil, err
		}
	}
	return rc, nil
}

// dimacsBuilder implements github.com/rhartert/dimacs's Builder interface,
// translating signed 1-based DIMACS literals into core atoms.
type dimacsBuilder struct {
	s    *core.Solver
	vars []core.TermID
}

func (b *dimacsBuilder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("instances of type %q are not supported", problem)
	}
	b.vars = make([]core.TermID, nVars)
	for i := range b.vars {
		b.vars[i] = b.s.MkBoolTerm()
	}
	return nil
}

func (b *dimacsBuilder) Clause(tmpClause []int) error {
	atoms := make([]core.AtomID, len(tmpClause))
	for i, l := range tmpClause {
		atoms[i] = b.literal(l)
	}
	b.s.AddClause(atoms, "")
	return nil
}

func (b *dimacsBuilder) Comment(_ string) error { return nil }

func (b *dimacsBuilder) literal(l int) core.AtomID {
	if l < 0 {
		return core.AtomOf(b.vars[-l-1], true)
	}
	return core.AtomOf(b.vars[l-1], false)
}

// WriteDIMACS exports s's permanent constraints as a DIMACS CNF file. vars
// assigns DIMACS variable numbers: index i is variable i+1, as returned by
// ReadDIMACS. Every term occurring in a constraint's atoms must appear in
// vars — WriteDIMACS cannot represent a theory term no plain CNF variable
// was declared for.
func WriteDIMACS(w io.Writer, s *core.Solver, vars []core.TermID) error {
	index := dimacsIndex(vars)
	constraints := s.Constraints()
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", len(vars), len(constraints)); err != nil {
		return err
	}
	for _, c := range constraints {
		if err := writeClause(w, c, index); err != nil {
			return err
		}
	}
	return nil
}

func dimacsIndex(vars []core.TermID) map[core.TermID]int {
	index := make(map[core.TermID]int, len(vars))
	for i, t := range vars {
		index[t] = i + 1
	}
	return index
}

func writeClause(w io.Writer, c *core.Clause, index map[core.TermID]int) error {
	for _, a := range c.Atoms() {
		v, ok := index[a.Term()]
		if !ok {
			return fmt.Errorf("frontend: term %d has no DIMACS variable assigned", a.Term())
		}
		if a.IsNegative() {
			v = -v
		}
		if _, err := fmt.Fprintf(w, "%d ", v); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "0")
	return err
}
