// Package catalog defines the contract between bookmap and a remote,
// paginated book catalog, and the query and result types that flow
// through it.
package catalog

import (
	"context"

	"github.com/agentstation/bookmap/pkg/books"
)

// Query drives one catalog fetch. Queries are comparable with ==, which the
// browse controller relies on to recognise stale responses.
type Query struct {
	SearchTerm string `json:"search,omitempty" yaml:"search,omitempty"`
	Genre      string `json:"genre,omitempty" yaml:"genre,omitempty"` // Empty means all genres
	Page       int    `json:"page" yaml:"page"`
}

// WithPage returns a copy of q for another page.
func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}

// PageResult is one server page of a query.
type PageResult struct {
	Count int          `json:"count" yaml:"count"` // Total matching books on the server
	Items []books.Book `json:"items" yaml:"items"` // At most one server page
}

// Reader fetches pages of books.
type Reader interface {
	// FetchPage returns the page of books matching q.
	FetchPage(ctx context.Context, q Query) (PageResult, error)

	// FetchByIDs returns the books with the given ids.
	FetchByIDs(ctx context.Context, ids []int) (PageResult, error)
}

// Catalog is a remote book catalog.
type Catalog interface {
	Reader

	// FetchOne returns a single book. A missing book fails with an error
	// matching errors.ErrNotFound.
	FetchOne(ctx context.Context, id int) (books.Book, error)
}
