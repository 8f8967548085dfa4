package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "researchhub", cmd.Use)
	assert.Contains(t, cmd.Long, "kanban board")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"project", "add"}, {"project", "edit"}, {"project", "rm"}, {"project", "ls"},
		{"task", "add"}, {"task", "edit"}, {"task", "rm"}, {"task", "ls"},
		{"paper", "add"}, {"paper", "edit"}, {"paper", "rm"}, {"paper", "ls"}, {"paper", "cite"},
		{"board"}, {"board", "show"}, {"board", "move"},
		{"dashboard"}, {"deadlines"},
		{"chart", "tasks"}, {"chart", "projects"},
		{"export"}, {"import"}, {"reset"}, {"seed"},
		{"theme"}, {"theme", "toggle"}, {"login"}, {"logout"}, {"whoami"},
	}

	for _, path := range commands {
		name := path[len(path)-1]
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	for _, name := range []string{"config", "db", "driver", "metrics-textfile"} {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "", flag.DefValue, name)
	}
}

func TestPaperLsFlags(t *testing.T) {
	cmd := NewRootCommand()
	lsCmd, _, err := cmd.Find([]string{"paper", "ls"})
	require.NoError(t, err)

	searchFlag := lsCmd.Flags().Lookup("search")
	require.NotNil(t, searchFlag)
	assert.Equal(t, "s", searchFlag.Shorthand)

	minRating := lsCmd.Flags().Lookup("min-rating")
	require.NotNil(t, minRating)
	assert.Equal(t, "0", minRating.DefValue)
}

func TestDeadlinesFlags(t *testing.T) {
	cmd := NewRootCommand()
	deadlinesCmd, _, err := cmd.Find([]string{"deadlines"})
	require.NoError(t, err)

	limitFlag := deadlinesCmd.Flags().Lookup("limit")
	require.NotNil(t, limitFlag)
	assert.Equal(t, "6", limitFlag.DefValue)
}

func TestResetFlags(t *testing.T) {
	cmd := NewRootCommand()
	resetCmd, _, err := cmd.Find([]string{"reset"})
	require.NoError(t, err)

	yesFlag := resetCmd.Flags().Lookup("yes")
	require.NotNil(t, yesFlag)
	assert.Equal(t, "false", yesFlag.DefValue)
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "invalid", "project", "ls"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestLoginHelpExplainsSessionLifetime(t *testing.T) {
	cmd := NewRootCommand()
	login, _, err := cmd.Find([]string{"login"})
	require.NoError(t, err)

	assert.Contains(t, login.Long, "lasts only for the current command")
	assert.Contains(t, login.Long, "--remember")
	assert.NotNil(t, login.Flags().Lookup("remember"))
}
