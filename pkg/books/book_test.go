package books_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/bookmap/pkg/books"
)

func intPtr(i int) *int { return &i }

func TestCardFallbacks(t *testing.T) {
	empty := books.Book{ID: 1, Title: "Untitled"}
	assert.Equal(t, "https://via.placeholder.com/150", empty.CoverURL())
	assert.Equal(t, "Unknown Author", empty.PrimaryAuthor())
	assert.Equal(t, "Unknown Genre", empty.PrimaryGenre())

	full := books.Book{
		ID:       11,
		Title:    "Alice's Adventures in Wonderland",
		Authors:  []books.Person{{Name: "Carroll, Lewis"}, {Name: "Tenniel, John"}},
		Subjects: []string{"Fantasy fiction", "Children's stories"},
		Formats:  map[string]string{"image/jpeg": "https://www.gutenberg.org/cache/epub/11/pg11.cover.medium.jpg"},
	}
	assert.Equal(t, "https://www.gutenberg.org/cache/epub/11/pg11.cover.medium.jpg", full.CoverURL())
	assert.Equal(t, "Carroll, Lewis", full.PrimaryAuthor())
	assert.Equal(t, "Fantasy fiction", full.PrimaryGenre())
}

func TestPersonLife(t *testing.T) {
	tests := []struct {
		name   string
		person books.Person
		want   string
	}{
		{"both years", books.Person{BirthYear: intPtr(1832), DeathYear: intPtr(1898)}, "1832 - 1898"},
		{"living", books.Person{BirthYear: intPtr(1947)}, "1947 - Present"},
		{"unknown", books.Person{Name: "Anonymous"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.person.Life())
		})
	}
}

func TestDownloadLinks(t *testing.T) {
	b := books.Book{Formats: map[string]string{
		"text/html":                      "https://example.org/11.html",
		"application/epub+zip":           "https://example.org/11.epub",
		"image/jpeg":                     "https://example.org/11.jpg",
		"text/plain; charset=us-ascii":   "https://example.org/11.txt",
		"application/x-mobipocket-ebook": "https://example.org/11.mobi",
		"application/rdf+xml":            "https://example.org/11.rdf",
		"application/octet-stream":       "https://example.org/11.zip",
	}}

	links := b.DownloadLinks()
	var mimes []string
	for _, l := range links {
		mimes = append(mimes, l.MimeType)
	}
	assert.Equal(t, []string{"application/epub+zip", "text/html", "text/plain; charset=us-ascii"}, mimes)
	assert.Empty(t, books.Book{}.DownloadLinks())
}

func TestClone(t *testing.T) {
	orig := books.Book{
		ID:       84,
		Authors:  []books.Person{{Name: "Shelley, Mary", BirthYear: intPtr(1797)}},
		Subjects: []string{"Horror tales"},
		Formats:  map[string]string{"text/html": "a"},
	}
	cp := orig.Clone()
	cp.Subjects[0] = "changed"
	cp.Formats["text/html"] = "b"
	*cp.Authors[0].BirthYear = 1800

	assert.Equal(t, "Horror tales", orig.Subjects[0])
	assert.Equal(t, "a", orig.Formats["text/html"])
	assert.Equal(t, 1797, *orig.Authors[0].BirthYear)

	assert.Nil(t, books.CloneAll(nil))
	assert.Len(t, books.CloneAll([]books.Book{orig}), 1)
}
