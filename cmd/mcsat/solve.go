package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mcsat-core/mcsat/core"
	"github.com/mcsat-core/mcsat/frontend"
	"github.com/mcsat-core/mcsat/proof"
)

var (
	solveGzip        bool
	solveTimeout     time.Duration
	solveMaxConflict int64
	solveProofPath   string
)

var solveCmd = &cobra.Command{
	Use:   "solve <file.cnf>",
	Short: "Solve a DIMACS CNF instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&solveGzip, "gzip", false, "the instance file is gzip-compressed")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", -1, "abort after this long (negative disables)")
	solveCmd.Flags().Int64Var(&solveMaxConflict, "max-conflicts", -1, "abort after this many conflicts (negative disables)")
	solveCmd.Flags().StringVar(&solveProofPath, "proof", "", "write a resolution proof here if the instance is unsat")
}

func runSolve(cmd *cobra.Command, args []string) error {
	filename := args[0]

	opts := core.DefaultOptions
	opts.Timeout = solveTimeout
	opts.MaxConflicts = solveMaxConflict
	s := core.NewSolver(opts)

	vars, err := frontend.ReadDIMACS(s, filename, solveGzip)
	if err != nil {
		return err
	}
	logger.Info("loaded instance",
		zap.String("file", filename),
		zap.Int("variables", len(vars)),
		zap.Int("constraints", s.NumConstraints()),
	)

	start := time.Now()
	state, solveErr := s.Solve()
	if solveErr != nil {
		logger.Warn("solve stopped early", zap.Error(solveErr))
	}

	fields := append(elapsedFields(start),
		zap.String("status", state.String()),
		zap.Int64("conflicts", s.TotalConflicts),
		zap.Int64("decisions", s.TotalDecisions),
		zap.Int64("restarts", s.TotalRestarts),
	)
	logger.Info("solve finished", fields...)
	fmt.Println(state)

	if state == core.Unsat && solveProofPath != "" {
		p, err := proof.Build(s, uuid.New())
		if err != nil {
			return fmt.Errorf("mcsat: building proof: %w", err)
		}
		if err := writeProof(solveProofPath, p); err != nil {
			return err
		}
		logger.Info("wrote proof", zap.String("file", solveProofPath), zap.Int("nodes", len(p.Nodes)))
	}

	return solveErr
}

func writeProof(path string, p *proof.Proof) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mcsat: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
