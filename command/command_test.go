package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, line string) Command {
	t.Helper()
	c, err := Parse(DefaultPrefix, strings.Fields(line))
	require.NoError(t, err, line)
	return c
}

func TestParseToday(t *testing.T) {
	assert.Equal(t, KindToday, parse(t, "").Kind)

	c, err := Parse(DefaultPrefix, nil)
	require.NoError(t, err)
	assert.Equal(t, KindToday, c.Kind)
}

func TestParseCustom(t *testing.T) {
	c := parse(t, "custom connections")
	assert.Equal(t, KindCustom, c.Kind)
	assert.Equal(t, "connections", c.Name)
	assert.Empty(t, c.StartDate)

	c = parse(t, "custom nerdle mini 01/20/2022")
	assert.Equal(t, "nerdle mini", c.Name)
	assert.Equal(t, "01/20/2022", c.StartDate)

	c = parse(t, "custom heardle%2080s")
	assert.Equal(t, "heardle 80s", c.Name)

	// A lone date-looking word is the name.
	c = parse(t, "custom 2/3/2022")
	assert.Equal(t, "2/3/2022", c.Name)
	assert.Empty(t, c.StartDate)

	// Malformed dates are still taken as the start date so they can be rejected.
	c = parse(t, "custom quordle 13/45/")
	assert.Equal(t, "13/45/", c.StartDate)
}

func TestParseCustomWithoutNamePrintsUsage(t *testing.T) {
	c := parse(t, "custom")
	assert.Equal(t, KindHelp, c.Kind)
	assert.Contains(t, c.Output, "custom name [start_date]")
}

func TestParseThreadCommands(t *testing.T) {
	c := parse(t, "archive")
	assert.Equal(t, KindArchive, c.Kind)
	assert.Empty(t, c.Thread)

	c = parse(t, "delete <#123456>")
	assert.Equal(t, KindDelete, c.Kind)
	assert.Equal(t, "<#123456>", c.Thread)

	_, err := Parse(DefaultPrefix, []string{"archive", "1", "2"})
	assert.Error(t, err)
}

func TestParseHelp(t *testing.T) {
	c := parse(t, "help")
	assert.Equal(t, KindHelp, c.Kind)
	for _, sub := range []string{"custom", "archive", "delete"} {
		assert.Contains(t, c.Output, sub)
	}
	assert.NotContains(t, c.Output, "completion")

	c = parse(t, "help archive")
	assert.Equal(t, KindHelp, c.Kind)
	assert.Contains(t, c.Output, "archive [thread]")

	_, err := Parse(DefaultPrefix, []string{"help", "nope"})
	assert.Error(t, err)

	c = parse(t, "--help")
	assert.Equal(t, KindHelp, c.Kind)
	assert.Contains(t, c.Output, DefaultPrefix)
}

func TestParseUnknownSubcommand(t *testing.T) {
	_, err := Parse(DefaultPrefix, []string{"frobnicate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestUsage(t *testing.T) {
	assert.Contains(t, Usage(DefaultPrefix, ""), "Available Commands")
	assert.Contains(t, Usage(DefaultPrefix, "delete"), "delete [thread]")
}
