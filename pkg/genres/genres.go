// Package genres derives the genre filter options from a page of books.
//
// Genres are scoped to whichever page was loaded last, not to the whole
// catalog: the options change as the user pages through results.
package genres

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/bookmap/pkg/books"
)

// Entry is one genre option.
type Entry struct {
	Display    string `json:"display" yaml:"display"`       // Subject text as the server returned it
	Normalized string `json:"normalized" yaml:"normalized"` // Lower-cased key sent back as the topic filter
}

// Normalize lower-cases a subject for use as a genre key.
func Normalize(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Derive flattens the subjects of items, removes exact duplicates and keeps
// first-seen order. It never returns nil.
func Derive(items []books.Book) []Entry {
	lower := cases.Lower(language.Und)
	seen := make(map[string]struct{})
	entries := []Entry{}
	for _, b := range items {
		for _, s := range b.Subjects {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			entries = append(entries, Entry{Display: s, Normalized: lower.String(s)})
		}
	}
	return entries
}

// Filter returns the entries whose display text contains substr,
// ignoring case. An empty or blank substr matches everything.
func Filter(entries []Entry, substr string) []Entry {
	substr = strings.TrimSpace(substr)
	if substr == "" {
		return append([]Entry{}, entries...)
	}
	fold := cases.Fold()
	needle := fold.String(substr)
	out := []Entry{}
	for _, e := range entries {
		if strings.Contains(fold.String(e.Display), needle) {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the entry with the given normalized key.
func Find(entries []Entry, normalized string) (Entry, bool) {
	for _, e := range entries {
		if e.Normalized == normalized {
			return e, true
		}
	}
	return Entry{}, false
}

// Displays returns the display text of each entry.
func Displays(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Display
	}
	return out
}
