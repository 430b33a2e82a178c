package main

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/shearch/internal/cmd"
)

func TestRunTUIWithoutTerminalReturnsError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	old := terminalAttached
	terminalAttached = func() bool { return false }
	defer func() { terminalAttached = old }()

	err := runTUI(context.Background(), &cmd.Flags{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no terminal")
}

func TestRootRegistersSubcommandsAndFlags(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"query", "tags", "expand", "config"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	for _, flag := range []string{"catalog", "strict", "watch", "mode", "log-file", "verbose"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRootQueryThroughPersistentFlags(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := dir + "/cat.json"
	require.NoError(t, os.WriteFile(path, []byte(`{"item":[{"command":"git status","description":"","tag":["git","status"]}]}`), 0600))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--catalog", path, "query", "git"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "git status\n", out.String())
}

func TestMainHelpFlagDoesNotExit(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"shearch", "--help"}
	defer func() { os.Args = oldArgs }()

	// main() should return normally for help (no os.Exit).
	main()
}
