package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "exchange")
	assert.Contains(t, output, "outbound")
	assert.Equal(t, "exchange", cmd.Use)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}

	assert.True(t, names["list"], "list subcommand missing")
	assert.True(t, names["history"], "history subcommand missing")
}

func TestListHelpMentionsFlags(t *testing.T) {
	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"list", "--help"})

	require.NoError(t, cmd.Execute())

	for _, flag := range []string{"--inbound", "--remove", "--course", "--student", "--assignment"} {
		assert.True(t, strings.Contains(buf.String(), flag), "help should mention %s", flag)
	}
}
