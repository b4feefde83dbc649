package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	require.True(t, names["solve"])
	require.True(t, names["export"])
	require.True(t, names["check"])
	require.True(t, names["watch"])
}

func TestSolveRequiresExactlyOneArg(t *testing.T) {
	require.Error(t, solveCmd.Args(solveCmd, nil))
	require.Error(t, solveCmd.Args(solveCmd, []string{"a.cnf", "b.cnf"}))
	require.NoError(t, solveCmd.Args(solveCmd, []string{"a.cnf"}))
}
