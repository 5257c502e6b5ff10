// Package books defines the book records returned by the remote catalog
// along with the display helpers used by book cards and the detail view.
package books

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agentstation/bookmap/pkg/constants"
)

// Book is a single catalog entry. Books are read-only once decoded.
type Book struct {
	ID            int               `json:"id" yaml:"id"`                                             // Unique positive identifier, stable across calls
	Title         string            `json:"title" yaml:"title"`
	Authors       []Person          `json:"authors" yaml:"authors"`                                   // Ordered, possibly empty
	Translators   []Person          `json:"translators,omitempty" yaml:"translators,omitempty"`
	Subjects      []string          `json:"subjects" yaml:"subjects"`                                 // Free-text genre and topic strings
	Bookshelves   []string          `json:"bookshelves,omitempty" yaml:"bookshelves,omitempty"`
	Languages     []string          `json:"languages,omitempty" yaml:"languages,omitempty"`           // Two-letter language codes
	Copyright     *bool             `json:"copyright,omitempty" yaml:"copyright,omitempty"`           // Nil when unknown
	MediaType     string            `json:"media_type,omitempty" yaml:"media_type,omitempty"`
	Formats       map[string]string `json:"formats" yaml:"formats"`                                   // MIME type to download URL
	DownloadCount int               `json:"download_count,omitempty" yaml:"download_count,omitempty"`
}

// Person is an author or translator.
type Person struct {
	Name      string `json:"name" yaml:"name"`
	BirthYear *int   `json:"birth_year,omitempty" yaml:"birth_year,omitempty"`
	DeathYear *int   `json:"death_year,omitempty" yaml:"death_year,omitempty"`
}

// Life returns "birth - death" for display. A missing death year is shown
// as "Present"; a person with no birth year has no life span.
func (p Person) Life() string {
	if p.BirthYear == nil {
		return ""
	}
	death := "Present"
	if p.DeathYear != nil {
		death = strconv.Itoa(*p.DeathYear)
	}
	return strconv.Itoa(*p.BirthYear) + " - " + death
}

// Link is a downloadable representation of a book.
type Link struct {
	MimeType string `json:"mime_type" yaml:"mime_type"`
	URL      string `json:"url" yaml:"url"`
}

// CoverURL returns the JPEG cover or a placeholder image.
func (b Book) CoverURL() string {
	if url := b.Formats["image/jpeg"]; url != "" {
		return url
	}
	return constants.PlaceholderCoverURL
}

// PrimaryAuthor returns the first author's name or "Unknown Author".
func (b Book) PrimaryAuthor() string {
	if len(b.Authors) == 0 || b.Authors[0].Name == "" {
		return constants.UnknownAuthor
	}
	return b.Authors[0].Name
}

// PrimaryGenre returns the first subject or "Unknown Genre".
func (b Book) PrimaryGenre() string {
	if len(b.Subjects) == 0 || b.Subjects[0] == "" {
		return constants.UnknownGenre
	}
	return b.Subjects[0]
}

// DownloadLinks returns the text and epub formats sorted by MIME type.
func (b Book) DownloadLinks() []Link {
	links := make([]Link, 0, len(b.Formats))
	for mime, url := range b.Formats {
		if strings.Contains(mime, "text") || strings.Contains(mime, "epub") {
			links = append(links, Link{MimeType: mime, URL: url})
		}
	}
	sort.Slice(links, func(i, j int) bool {
		return links[i].MimeType < links[j].MimeType
	})
	return links
}

// Clone returns a deep copy of the book.
func (b Book) Clone() Book {
	out := b
	out.Authors = clonePeople(b.Authors)
	out.Translators = clonePeople(b.Translators)
	out.Subjects = cloneStrings(b.Subjects)
	out.Bookshelves = cloneStrings(b.Bookshelves)
	out.Languages = cloneStrings(b.Languages)
	if b.Copyright != nil {
		c := *b.Copyright
		out.Copyright = &c
	}
	if b.Formats != nil {
		out.Formats = make(map[string]string, len(b.Formats))
		for k, v := range b.Formats {
			out.Formats[k] = v
		}
	}
	return out
}

// CloneAll deep copies a slice of books. A nil slice stays nil.
func CloneAll(items []Book) []Book {
	if items == nil {
		return nil
	}
	out := make([]Book, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}

func clonePeople(in []Person) []Person {
	if in == nil {
		return nil
	}
	out := make([]Person, len(in))
	for i, p := range in {
		out[i] = Person{Name: p.Name}
		if p.BirthYear != nil {
			y := *p.BirthYear
			out[i].BirthYear = &y
		}
		if p.DeathYear != nil {
			y := *p.DeathYear
			out[i].DeathYear = &y
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
