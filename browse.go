package bookmap

import (
	"context"

	"github.com/agentstation/bookmap/pkg/browse"
	"github.com/agentstation/bookmap/pkg/catalog"
)

// Compile-time interface check to ensure proper implementation.
var _ Browser = (*client)(nil)

// Browser drives the catalog query. Actions return once the fetch has been
// issued; observe the outcome through View, Wait or OnViewChange.
type Browser interface {
	// View returns a snapshot of the browse state
	View() browse.ViewState

	// SetSearchTerm updates the search text being typed without fetching
	SetSearchTerm(text string)

	// CommitSearch applies the typed search text and fetches page 1
	CommitSearch(ctx context.Context) error

	// SetGenre filters by a normalized genre ("" for all) and fetches page 1
	SetGenre(ctx context.Context, normalized string) error

	// Navigate replaces search, genre and page with a single fetch
	Navigate(ctx context.Context, q catalog.Query) error

	// GoToPage fetches page n, clamped to the known range
	GoToPage(n int) int

	// NextPage and PrevPage step through pages
	NextPage() int
	PrevPage() int

	// Refresh re-issues the current query
	Refresh()

	// Wait blocks until all issued fetches have resolved
	Wait()
}

func (c *client) View() browse.ViewState { return c.controller.View() }

func (c *client) SetSearchTerm(text string) { c.controller.SetSearchTerm(text) }

func (c *client) CommitSearch(ctx context.Context) error {
	return c.controller.CommitSearch(ctx)
}

func (c *client) SetGenre(ctx context.Context, normalized string) error {
	return c.controller.SetGenre(ctx, normalized)
}

func (c *client) Navigate(ctx context.Context, q catalog.Query) error {
	return c.controller.Navigate(ctx, q)
}

func (c *client) GoToPage(n int) int { return c.controller.GoToPage(n) }

func (c *client) NextPage() int { return c.controller.NextPage() }

func (c *client) PrevPage() int { return c.controller.PrevPage() }

func (c *client) Refresh() { c.controller.Refresh() }

func (c *client) Wait() { c.controller.Wait() }
