package catalog

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/agentstation/bookmap/pkg/books"
	"github.com/agentstation/bookmap/pkg/constants"
	"github.com/agentstation/bookmap/pkg/errors"
)

// Memory is an in-process Catalog over a fixed set of books. It mirrors the
// remote catalog's matching rules closely enough for tests and examples:
// search matches title and author names, genre matches subjects and
// bookshelves, both case-insensitively.
type Memory struct {
	mu       sync.RWMutex
	books    []books.Book
	pageSize int
	calls    int
	err      error
}

var _ Catalog = (*Memory)(nil)

// NewMemory creates a memory catalog holding items in the given order.
func NewMemory(items ...books.Book) *Memory {
	return &Memory{
		books:    books.CloneAll(items),
		pageSize: constants.ServerPageSize,
	}
}

// SetPageSize overrides the page size. Values below 1 are ignored.
func (m *Memory) SetPageSize(n int) {
	if n < 1 {
		return
	}
	m.mu.Lock()
	m.pageSize = n
	m.mu.Unlock()
}

// FailWith makes every later call return err. Pass nil to recover.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// Calls reports how many fetches have been made.
func (m *Memory) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

// FetchPage implements Reader.
func (m *Memory) FetchPage(ctx context.Context, q Query) (PageResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if err := m.check(ctx); err != nil {
		return PageResult{}, err
	}

	var matched []books.Book
	for _, b := range m.books {
		if matchesSearch(b, q.SearchTerm) && matchesGenre(b, q.Genre) {
			matched = append(matched, b)
		}
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * m.pageSize
	if start >= len(matched) {
		if page > 1 {
			return PageResult{}, errors.NewNotFoundError("page", strconv.Itoa(page))
		}
		return PageResult{Count: len(matched), Items: []books.Book{}}, nil
	}
	end := min(start+m.pageSize, len(matched))

	return PageResult{Count: len(matched), Items: books.CloneAll(matched[start:end])}, nil
}

// FetchByIDs implements Reader. Results are ordered by id.
func (m *Memory) FetchByIDs(ctx context.Context, ids []int) (PageResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if err := m.check(ctx); err != nil {
		return PageResult{}, err
	}

	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	items := []books.Book{}
	for _, b := range m.books {
		if want[b.ID] {
			items = append(items, b.Clone())
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return PageResult{Count: len(items), Items: items}, nil
}

// FetchOne implements Catalog.
func (m *Memory) FetchOne(ctx context.Context, id int) (books.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if err := m.check(ctx); err != nil {
		return books.Book{}, err
	}
	for _, b := range m.books {
		if b.ID == id {
			return b.Clone(), nil
		}
	}
	return books.Book{}, errors.NewNotFoundError("book", strconv.Itoa(id))
}

func (m *Memory) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.err
}

func matchesSearch(b books.Book, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, word := range strings.Fields(term) {
		found := strings.Contains(strings.ToLower(b.Title), word)
		for _, a := range b.Authors {
			found = found || strings.Contains(strings.ToLower(a.Name), word)
		}
		if !found {
			return false
		}
	}
	return true
}

func matchesGenre(b books.Book, genre string) bool {
	if genre == "" {
		return true
	}
	genre = strings.ToLower(genre)
	for _, s := range b.Subjects {
		if strings.Contains(strings.ToLower(s), genre) {
			return true
		}
	}
	for _, s := range b.Bookshelves {
		if strings.Contains(strings.ToLower(s), genre) {
			return true
		}
	}
	return false
}
