package cmdutil

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bookmap/pkg/catalog"
	"github.com/agentstation/bookmap/pkg/errors"
)

func TestParseID(t *testing.T) {
	id, err := ParseID(" 1342 ")
	require.NoError(t, err)
	assert.Equal(t, 1342, id)

	for _, bad := range []string{"", "0", "-5", "12a"} {
		_, err := ParseID(bad)
		assert.True(t, errors.IsValidationError(err), bad)
	}
}

func TestQueryFlagsApply(t *testing.T) {
	base := catalog.Query{SearchTerm: "austen", Genre: "romance", Page: 4}

	parse := func(args ...string) (*cobra.Command, *QueryFlags) {
		cmd := &cobra.Command{Use: "x"}
		flags := AddQueryFlags(cmd, true)
		require.NoError(t, cmd.ParseFlags(args))
		return cmd, flags
	}

	cmd, flags := parse()
	assert.Equal(t, catalog.Query{SearchTerm: "austen", Genre: "romance", Page: 1}, flags.Apply(cmd, base))

	cmd, flags = parse("--genre", " Science Fiction ", "--page", "2")
	assert.Equal(t, catalog.Query{SearchTerm: "austen", Genre: "science fiction", Page: 2}, flags.Apply(cmd, base))

	cmd, flags = parse("--search", "", "--genre", "")
	assert.Equal(t, catalog.Query{Page: 1}, flags.Apply(cmd, base))
}

func TestAddQueryFlagsWithoutGenre(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	AddQueryFlags(cmd, false)
	assert.Nil(t, cmd.Flags().Lookup("genre"))
	assert.NotNil(t, cmd.Flags().Lookup("search"))
}
