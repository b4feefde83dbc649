package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mcsat-core/mcsat/proof"
)

var checkCmd = &cobra.Command{
	Use:   "check <proof.json>",
	Short: "Replay a previously exported resolution proof",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("mcsat: %w", err)
	}
	defer f.Close()

	var p proof.Proof
	if err := json.NewDecoder(f).Decode(&p); err != nil {
		return fmt.Errorf("mcsat: decoding proof: %w", err)
	}

	if err := proof.Replay(&p); err != nil {
		logger.Error("proof rejected", zap.Error(err))
		return err
	}
	logger.Info("proof verified", zap.Int("nodes", len(p.Nodes)))
	fmt.Println("valid")
	return nil
}
