package book_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bookmap/cmd/bookmap/cmd/book"
	"github.com/agentstation/bookmap/internal/appcontext"
	"github.com/agentstation/bookmap/pkg/books"
	"github.com/agentstation/bookmap/pkg/catalog"
	pkgerrors "github.com/agentstation/bookmap/pkg/errors"
	"github.com/agentstation/bookmap/pkg/kv"
)

func run(t *testing.T, app *appcontext.Mock, args ...string) (string, error) {
	t.Helper()
	cmd := book.NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func intPtr(n int) *int { return &n }

func newApp(t *testing.T) (*appcontext.Mock, *kv.Memory) {
	pride := books.Book{
		ID:        1342,
		Title:     "Pride and Prejudice",
		Authors:   []books.Person{{Name: "Austen, Jane", BirthYear: intPtr(1775), DeathYear: intPtr(1817)}},
		Subjects:  []string{"Courtship -- Fiction"},
		Languages: []string{"en"},
		Formats: map[string]string{
			"application/epub+zip": "https://www.gutenberg.org/ebooks/1342.epub3.images",
			"image/jpeg":           "https://www.gutenberg.org/cache/epub/1342/pg1342.cover.medium.jpg",
		},
		DownloadCount: 50123,
	}
	store := kv.NewMemory()
	return appcontext.NewTestMock(t, catalog.NewMemory(pride), store), store
}

func TestBookDetail(t *testing.T) {
	app, store := newApp(t)
	require.NoError(t, store.Set(context.Background(), "favorites", "[1342]"))

	out, err := run(t, app, "1342")
	require.NoError(t, err)
	assert.Contains(t, out, "Pride and Prejudice")
	assert.Contains(t, out, "Austen, Jane (1775 - 1817)")
	assert.Contains(t, out, "50,123")
	assert.Contains(t, out, "pg1342.cover.medium.jpg")
	assert.Contains(t, out, "1342.epub3.images")
	assert.Contains(t, out, "★")
}

func TestBookNotFound(t *testing.T) {
	app, _ := newApp(t)

	out, err := run(t, app, "999")
	require.NoError(t, err)
	assert.Equal(t, "Book not found.\n", out)
}

func TestBookInvalidID(t *testing.T) {
	app, _ := newApp(t)

	_, err := run(t, app, "abc")
	assert.True(t, pkgerrors.IsValidationError(err))

	_, err = run(t, app, "0")
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestBookYAML(t *testing.T) {
	app, _ := newApp(t)
	app.OutputFormatFunc = func() string { return "yaml" }

	out, err := run(t, app, "1342")
	require.NoError(t, err)
	assert.Contains(t, out, "title: Pride and Prejudice")
	assert.Contains(t, out, "birth_year: 1775")
}
