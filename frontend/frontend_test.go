package frontend_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mcsat-core/mcsat/core"
	"github.com/mcsat-core/mcsat/frontend"
)

const sampleCNF = `c sample
p cnf 2 2
1 2 0
-1 -2 0
`

func writeTempCNF(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.cnf")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestReadDIMACS_ParsesVariablesAndClauses(t *testing.T) {
	path := writeTempCNF(t, sampleCNF)
	s := core.NewDefaultSolver()

	vars, err := frontend.ReadDIMACS(s, path, false)
	if err != nil {
		t.Fatalf("ReadDIMACS() error: %v", err)
	}
	if len(vars) != 2 {
		t.Fatalf("ReadDIMACS() returned %d variables, want 2", len(vars))
	}
	if s.NumConstraints() != 2 {
		t.Fatalf("NumConstraints() = %d, want 2", s.NumConstraints())
	}

	state, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if state != core.Sat {
		t.Fatalf("Solve() = %s, want sat", state)
	}
}

func TestWriteDIMACS_RoundTripsHeader(t *testing.T) {
	path := writeTempCNF(t, sampleCNF)
	s := core.NewDefaultSolver()
	vars, err := frontend.ReadDIMACS(s, path, false)
	if err != nil {
		t.Fatalf("ReadDIMACS() error: %v", err)
	}

	var sb strings.Builder
	if err := frontend.WriteDIMACS(&sb, s, vars); err != nil {
		t.Fatalf("WriteDIMACS() error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("WriteDIMACS() produced %d lines, want 3 (header + 2 clauses)", len(lines))
	}
	if diff := cmp.Diff("p cnf 2 2", lines[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteICNF_EmitsIncrementalHeaderAndAssumptions(t *testing.T) {
	path := writeTempCNF(t, sampleCNF)
	s := core.NewDefaultSolver()
	vars, err := frontend.ReadDIMACS(s, path, false)
	if err != nil {
		t.Fatalf("ReadDIMACS() error: %v", err)
	}

	steps := [][]core.AtomID{{core.AtomOf(vars[0], false)}}
	var sb strings.Builder
	if err := frontend.WriteICNF(&sb, s, vars, steps); err != nil {
		t.Fatalf("WriteICNF() error: %v", err)
	}

	out := sb.String()
	if !strings.HasPrefix(out, "p inccnf\n") {
		t.Errorf("output does not start with the iCNF header: %q", out)
	}
	if !strings.Contains(out, "a 1 0\n") {
		t.Errorf("output missing assumption line, got %q", out)
	}
}
