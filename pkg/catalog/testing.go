package catalog

import (
	"fmt"
	"testing"

	"github.com/agentstation/bookmap/pkg/books"
)

// TestBook creates a book with sensible defaults for unit tests.
func TestBook(t testing.TB, id int, subjects ...string) books.Book {
	t.Helper()
	return books.Book{
		ID:       id,
		Title:    fmt.Sprintf("Test Book %d", id),
		Authors:  []books.Person{{Name: fmt.Sprintf("Author %d", id)}},
		Subjects: subjects,
		Formats: map[string]string{
			"text/html": fmt.Sprintf("https://www.gutenberg.org/ebooks/%d.html.images", id),
		},
	}
}

// TestBooks creates n books with ids 1..n.
func TestBooks(t testing.TB, n int, subjects ...string) []books.Book {
	t.Helper()
	out := make([]books.Book, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, TestBook(t, i, subjects...))
	}
	return out
}
