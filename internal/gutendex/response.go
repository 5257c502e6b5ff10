package gutendex

import "github.com/agentstation/bookmap/pkg/books"

// listResponse is the body of GET /books. Pointers distinguish absent
// fields from zero values so malformed bodies can be rejected.
type listResponse struct {
	Count    *int            `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  *[]bookResponse `json:"results"`
}

// bookResponse is a book as Gutendex encodes it. A not-found lookup
// returns only {"detail": "..."}.
type bookResponse struct {
	ID            *int              `json:"id"`
	Title         string            `json:"title"`
	Authors       []personResponse  `json:"authors"`
	Translators   []personResponse  `json:"translators"`
	Subjects      []string          `json:"subjects"`
	Bookshelves   []string          `json:"bookshelves"`
	Languages     []string          `json:"languages"`
	Copyright     *bool             `json:"copyright"`
	MediaType     string            `json:"media_type"`
	Formats       map[string]string `json:"formats"`
	DownloadCount int               `json:"download_count"`
	Detail        *string           `json:"detail"`
}

type personResponse struct {
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year"`
	DeathYear *int   `json:"death_year"`
}

func (r bookResponse) isNotFound() bool {
	return r.ID == nil && r.Detail != nil
}

func (r bookResponse) toBook() books.Book {
	b := books.Book{
		Title:         r.Title,
		Authors:       toPeople(r.Authors),
		Translators:   toPeople(r.Translators),
		Subjects:      nonNil(r.Subjects),
		Bookshelves:   r.Bookshelves,
		Languages:     r.Languages,
		Copyright:     r.Copyright,
		MediaType:     r.MediaType,
		Formats:       r.Formats,
		DownloadCount: r.DownloadCount,
	}
	if r.ID != nil {
		b.ID = *r.ID
	}
	if b.Formats == nil {
		b.Formats = map[string]string{}
	}
	return b
}

func toPeople(in []personResponse) []books.Person {
	out := make([]books.Person, 0, len(in))
	for _, p := range in {
		out = append(out, books.Person{Name: p.Name, BirthYear: p.BirthYear, DeathYear: p.DeathYear})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
