// Package cmdutil provides shared flags and argument helpers for bookmap commands.
package cmdutil

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/bookmap"
	"github.com/agentstation/bookmap/pkg/catalog"
	"github.com/agentstation/bookmap/pkg/errors"
	"github.com/agentstation/bookmap/pkg/genres"
)

// QueryFlags holds the flags that shape a catalog query.
type QueryFlags struct {
	Search string
	Genre  string
	Page   int
}

// AddQueryFlags adds --search and --page to cmd, and --genre when withGenre
// is set.
func AddQueryFlags(cmd *cobra.Command, withGenre bool) *QueryFlags {
	flags := &QueryFlags{}

	cmd.Flags().StringVarP(&flags.Search, "search", "s", "",
		"Search titles and authors (remembered; pass \"\" to clear)")
	if withGenre {
		cmd.Flags().StringVarP(&flags.Genre, "genre", "g", "",
			"Filter by genre (remembered; pass \"\" to clear)")
	}
	cmd.Flags().IntVarP(&flags.Page, "page", "p", 1,
		"Page to show")

	return flags
}

// Apply overlays the flags the user set on base. Unset search and genre
// keep the remembered values.
func (f *QueryFlags) Apply(cmd *cobra.Command, base catalog.Query) catalog.Query {
	q := base
	if cmd.Flags().Changed("search") {
		q.SearchTerm = f.Search
	}
	if cmd.Flags().Changed("genre") {
		q.Genre = genres.Normalize(strings.TrimSpace(f.Genre))
	}
	q.Page = f.Page
	return q
}

// Load applies the flags to the client's remembered query, fetches the
// page and waits for it. A failure to remember the query is logged, not
// returned; a failed fetch shows up in the returned view.
func (f *QueryFlags) Load(ctx context.Context, cmd *cobra.Command, bm bookmap.Client) {
	q := f.Apply(cmd, bm.View().Query())
	if err := bm.Navigate(ctx, q); err != nil {
		cmd.PrintErrln("Warning: could not remember query:", err)
	}
	bm.Wait()
}

// ParseID parses a positional book id.
func ParseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, &errors.ValidationError{
			Field:   "id",
			Value:   arg,
			Message: "book id must be a positive integer",
		}
	}
	return id, nil
}

// FavoriteSet returns the wishlist as a lookup set. Errors yield an empty
// set so listings still render.
func FavoriteSet(ctx context.Context, bm bookmap.Client) map[int]bool {
	ids, err := bm.Favorites(ctx)
	if err != nil {
		return map[int]bool{}
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
