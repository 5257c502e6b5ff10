// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"
	"strings"

	"github.com/agentstation/bookmap/internal/cmd/emoji"
	"github.com/agentstation/bookmap/pkg/books"
	"github.com/agentstation/bookmap/pkg/genres"
	"github.com/agentstation/bookmap/pkg/pagination"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// titleWidth is where titles are cut in narrow tables.
const titleWidth = 60

// BooksToTableData converts a page of books to table format. Books whose
// id is in favorites get a star.
func BooksToTableData(items []books.Book, favorites map[int]bool, wide bool) Data {
	headers := []string{"ID", "Title", "Author", "Genre", emoji.Favorite}
	align := []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignCenter}
	if wide {
		headers = append(headers, "Languages", "Downloads")
		align = append(align, AlignLeft, AlignRight)
	}

	rows := make([][]string, 0, len(items))
	for _, b := range items {
		title := b.Title
		if !wide {
			title = Truncate(title, titleWidth)
		}
		mark := ""
		if favorites[b.ID] {
			mark = emoji.Favorite
		}
		row := []string{strconv.Itoa(b.ID), title, b.PrimaryAuthor(), b.PrimaryGenre(), mark}
		if wide {
			row = append(row, dash(strings.Join(b.Languages, ", ")), FormatNumber(int64(b.DownloadCount)))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// GenresToTableData lists genres with the key to pass back as --genre.
func GenresToTableData(entries []genres.Entry) Data {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Display, e.Normalized})
	}
	return Data{Headers: []string{"Genre", "Filter"}, Rows: rows}
}

// BookDetailToTableData converts a single book to property/value rows.
func BookDetailToTableData(b books.Book, favorite bool) Data {
	mark := emoji.NotFavorite
	if favorite {
		mark = emoji.Favorite
	}

	rows := [][]string{
		{"ID", strconv.Itoa(b.ID)},
		{"Title", b.Title},
		{"Authors", dash(people(b.Authors))},
	}
	if len(b.Translators) > 0 {
		rows = append(rows, []string{"Translators", people(b.Translators)})
	}
	rows = append(rows,
		[]string{"Subjects", dash(strings.Join(b.Subjects, "\n"))},
		[]string{"Bookshelves", dash(strings.Join(b.Bookshelves, "\n"))},
		[]string{"Languages", dash(strings.Join(b.Languages, ", "))},
		[]string{"Downloads", FormatNumber(int64(b.DownloadCount))},
		[]string{"Cover", b.CoverURL()},
		[]string{"Favorite", mark},
	)
	for _, l := range b.DownloadLinks() {
		rows = append(rows, []string{"Download (" + l.MimeType + ")", l.URL})
	}

	return Data{Headers: []string{"Property", "Value"}, Rows: rows}
}

// PageWindow renders the page buttons, e.g. "‹ 1 ... 4 [5] 6 ... 12 ›".
// The arrows appear only when there is a page in that direction.
func PageWindow(items []pagination.Item, current, total int) string {
	parts := make([]string, 0, len(items)+2)
	if current > 1 {
		parts = append(parts, emoji.Previous)
	}
	for _, it := range items {
		if !it.Ellipsis && it.Page == current {
			parts = append(parts, "["+it.String()+"]")
			continue
		}
		parts = append(parts, it.String())
	}
	if current < total {
		parts = append(parts, emoji.Next)
	}
	return strings.Join(parts, " ")
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 4 {
		return s
	}
	return string(r[:n-3]) + "..."
}

// FormatNumber formats large numbers with comma separators.
func FormatNumber(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}

	// Add commas every 3 digits
	var b strings.Builder
	for i, r := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func people(ps []books.Person) string {
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		name := p.Name
		if life := p.Life(); life != "" {
			name += " (" + life + ")"
		}
		names = append(names, name)
	}
	return strings.Join(names, "; ")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
