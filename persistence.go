package bookmap

import (
	"context"

	"github.com/agentstation/bookmap/pkg/books"
)

// Compile-time interface check to ensure proper implementation.
var _ Wishlist = (*client)(nil)

// Wishlist manages the persisted set of favorite books.
type Wishlist interface {
	// ToggleFavorite flips id's membership and returns the new state
	ToggleFavorite(ctx context.Context, id int) (bool, error)

	// AddFavorite puts id in the wishlist
	AddFavorite(ctx context.Context, id int) error

	// RemoveFavorite takes id out of the wishlist
	RemoveFavorite(ctx context.Context, id int) error

	// IsFavorite reports whether id is in the wishlist
	IsFavorite(ctx context.Context, id int) (bool, error)

	// Favorites returns the favorite ids in ascending order
	Favorites(ctx context.Context) ([]int, error)

	// ListFavorites fetches the favorite books. An empty wishlist yields
	// errors.ErrEmptyWishlist without a network call.
	ListFavorites(ctx context.Context) ([]books.Book, error)
}

// ToggleFavorite flips id's membership and notifies OnFavoriteToggled hooks.
func (c *client) ToggleFavorite(ctx context.Context, id int) (bool, error) {
	favorite, err := c.wishlist.Toggle(ctx, id)
	if err != nil {
		return favorite, err
	}
	c.hooks.triggerFavoriteToggled(id, favorite)
	return favorite, nil
}

// AddFavorite puts id in the wishlist. Hooks fire only if id was missing.
func (c *client) AddFavorite(ctx context.Context, id int) error {
	added, err := c.wishlist.Add(ctx, id)
	if err != nil {
		return err
	}
	if added {
		c.hooks.triggerFavoriteToggled(id, true)
	}
	return nil
}

// RemoveFavorite takes id out of the wishlist. Hooks fire only if id was
// present.
func (c *client) RemoveFavorite(ctx context.Context, id int) error {
	removed, err := c.wishlist.Remove(ctx, id)
	if err != nil {
		return err
	}
	if removed {
		c.hooks.triggerFavoriteToggled(id, false)
	}
	return nil
}

// IsFavorite reports whether id is in the wishlist.
func (c *client) IsFavorite(ctx context.Context, id int) (bool, error) {
	return c.wishlist.Contains(ctx, id)
}

// Favorites returns the favorite ids.
func (c *client) Favorites(ctx context.Context) ([]int, error) {
	return c.wishlist.List(ctx)
}

// ListFavorites fetches the favorite books from the catalog.
func (c *client) ListFavorites(ctx context.Context) ([]books.Book, error) {
	return c.wishlist.Favorites(ctx, c.catalog)
}
