package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mcsat-core/mcsat/core"
	"github.com/mcsat-core/mcsat/frontend"
)

var exportGzip bool

var exportCmd = &cobra.Command{
	Use:   "export <in.cnf> <out.icnf>",
	Short: "Re-export a DIMACS CNF instance as iCNF",
	Args:  cobra.ExactArgs(2),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportGzip, "gzip", false, "the input file is gzip-compressed")
}

func runExport(cmd *cobra.Command, args []string) error {
	s := core.NewDefaultSolver()
	vars, err := frontend.ReadDIMACS(s, args[0], exportGzip)
	if err != nil {
		return err
	}

	out, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("mcsat: %w", err)
	}
	defer out.Close()

	if err := frontend.WriteICNF(out, s, vars, nil); err != nil {
		return fmt.Errorf("mcsat: exporting iCNF: %w", err)
	}
	logger.Info("exported iCNF", zap.String("in", args[0]), zap.String("out", args[1]))
	return nil
}
