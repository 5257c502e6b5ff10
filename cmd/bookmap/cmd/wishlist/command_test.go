package wishlist_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bookmap/cmd/bookmap/cmd/wishlist"
	"github.com/agentstation/bookmap/internal/appcontext"
	"github.com/agentstation/bookmap/pkg/catalog"
	pkgerrors "github.com/agentstation/bookmap/pkg/errors"
	"github.com/agentstation/bookmap/pkg/kv"
)

func run(t *testing.T, app *appcontext.Mock, args ...string) (string, error) {
	t.Helper()
	cmd := wishlist.NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestWishlistFlow(t *testing.T) {
	cat := catalog.NewMemory(catalog.TestBooks(t, 5)...)
	app := appcontext.NewTestMock(t, cat, kv.NewMemory())

	out, err := run(t, app, "list")
	require.NoError(t, err)
	assert.Equal(t, "No favorites yet.\n", out)
	assert.Zero(t, cat.Calls())

	out, err = run(t, app, "add", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 4 to favorites")

	out, err = run(t, app, "toggle", "2")
	require.NoError(t, err)
	assert.Equal(t, "★ 2\n", out)

	out, err = run(t, app, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Test Book 2")
	assert.Contains(t, out, "Test Book 4")
	assert.NotContains(t, out, "Test Book 1")

	out, err = run(t, app, "toggle", "2")
	require.NoError(t, err)
	assert.Equal(t, "☆ 2\n", out)

	out, err = run(t, app, "remove", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 4 from favorites")

	out, err = run(t, app, "list")
	require.NoError(t, err)
	assert.Equal(t, "No favorites yet.\n", out)
}

func TestWishlistRejectsBadIDs(t *testing.T) {
	app := appcontext.NewTestMock(t, catalog.NewMemory(), kv.NewMemory())

	_, err := run(t, app, "add", "0")
	assert.True(t, pkgerrors.IsValidationError(err))

	_, err = run(t, app, "toggle")
	assert.Error(t, err)
}
