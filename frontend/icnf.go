package frontend

import (
	"fmt"
	"io"

	"github.com/mcsat-core/mcsat/core"
)

// WriteICNF exports s's permanent constraints as an incremental CNF file:
// a "p inccnf" header, the constraints as ordinary clause lines, then one
// "a <literals> 0" line per entry of steps — the assumption set that was
// or would be pushed at that incremental step. This is a supplemented
// feature the teacher has no equivalent of (its DIMACS front end only ever
// reads a single non-incremental instance); vars and index conventions
// match WriteDIMACS.
func WriteICNF(w io.Writer, s *core.Solver, vars []core.TermID, steps [][]core.AtomID) error {
	index := dimacsIndex(vars)

	if _, err := fmt.Fprint(w, "p inccnf\n"); err != nil {
		return err
	}
	for _, c := range s.Constraints() {
		if err := writeClause(w, c, index); err != nil {
			return err
		}
	}
	for _, step := range steps {
		if err := writeAssumptionLine(w, step, index); err != nil {
			return err
		}
	}
	return nil
}

func writeAssumptionLine(w io.Writer, atoms []core.AtomID, index map[core.TermID]int) error {
	if _, err := fmt.Fprint(w, "a "); err != nil {
		return err
	}
	for _, a := range atoms {
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
