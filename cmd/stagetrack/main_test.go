package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The root command is the interactive UI and must come out of the prerun
// without a logger; subcommands must come out with one.
func TestPersistentPreRunLoggerSetup(t *testing.T) {
	t.Cleanup(func() { logger = nil })

	require.NoError(t, rootCmd.PersistentPreRunE(rootCmd, nil))
	assert.Nil(t, logger)

	require.NoError(t, rootCmd.PersistentPreRunE(exportCmd, nil))
	require.NotNil(t, logger)
	rootCmd.PersistentPostRun(exportCmd, nil)
}

func TestCommandTree(t *testing.T) {
	assert.Nil(t, rootCmd.Parent())
	assert.Same(t, rootCmd, exportCmd.Parent())
	assert.Same(t, rootCmd, listCmd.Parent())
	assert.Same(t, listCmd, listInternsCmd.Parent())
}
