package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandsRegistered(t *testing.T) {
	root := rootCmd()
	for _, name := range []string{"serve", "play", "sim"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		require.Equal(t, name, cmd.Name())
	}
}

func TestSimCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	root := rootCmd()
	root.SetArgs([]string{"sim", "--seed", "3", "--games", "5", "--steps", "1500"})
	require.NoError(t, root.Execute())
}

func TestPlayRejectsBadOpponentCount(t *testing.T) {
	t.Chdir(t.TempDir())
	root := rootCmd()
	root.SetArgs([]string{"play", "--opponents", "9"})
	require.ErrorContains(t, root.Execute(), "invalid configuration")
}
