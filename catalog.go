package bookmap

import (
	"context"

	"github.com/agentstation/bookmap/pkg/books"
	"github.com/agentstation/bookmap/pkg/errors"
	"github.com/agentstation/bookmap/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ Books = (*client)(nil)

// Books looks up single books by id.
type Books interface {
	// Book fetches one book. An unknown id yields *errors.NotFoundError.
	Book(ctx context.Context, id int) (books.Book, error)
}

// Book fetches the detail record for id.
func (c *client) Book(ctx context.Context, id int) (books.Book, error) {
	if id <= 0 {
		return books.Book{}, &errors.ValidationError{
			Field:   "id",
			Value:   id,
			Message: "book id must be positive",
		}
	}
	ctx = logging.WithBook(ctx, id)
	return c.catalog.FetchOne(ctx, id)
}
