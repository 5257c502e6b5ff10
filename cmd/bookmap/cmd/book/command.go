// Package book implements the book detail command.
package book

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/bookmap"
	"github.com/agentstation/bookmap/internal/cmd/cmdutil"
	"github.com/agentstation/bookmap/internal/cmd/output"
	"github.com/agentstation/bookmap/internal/cmd/table"
	"github.com/agentstation/bookmap/pkg/errors"
)

// AppContext defines what the book command needs from the app.
type AppContext interface {
	Bookmap() (bookmap.Client, error)
	Logger() *zerolog.Logger
	OutputFormat() string
}

// NewCommand creates the book command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "book <id>",
		GroupID: "core",
		Short:   "Show details of one book",
		Example: `  bookmap book 1342
  bookmap book 84 -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cmdutil.ParseID(args[0])
			if err != nil {
				return err
			}
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}
			bm, err := app.Bookmap()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			w := cmd.OutOrStdout()
			b, err := bm.Book(ctx, id)
			if errors.IsNotFound(err) {
				app.Logger().Debug().Int("book_id", id).Msg("Book not found")
				_, err := fmt.Fprintln(w, "Book not found.")
				return err
			}
			if err != nil {
				return err
			}

			favorite, err := bm.IsFavorite(ctx, id)
			if err != nil {
				app.Logger().Warn().Err(err).Int("book_id", id).Msg("Could not read wishlist")
			}

			return output.Render(w, format, b, func(bool) output.Data {
				return table.BookDetailToTableData(b, favorite)
			})
		},
	}
}
