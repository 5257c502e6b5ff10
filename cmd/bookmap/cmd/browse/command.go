// Package browse implements the browse command: one page of the catalog
// for the remembered search and genre.
package browse

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/bookmap"
	"github.com/agentstation/bookmap/internal/cmd/cmdutil"
	"github.com/agentstation/bookmap/internal/cmd/output"
	"github.com/agentstation/bookmap/internal/cmd/table"
	pkgbrowse "github.com/agentstation/bookmap/pkg/browse"
)

// AppContext defines what the browse command needs from the app.
type AppContext interface {
	Bookmap() (bookmap.Client, error)
	Logger() *zerolog.Logger
	OutputFormat() string
}

// NewCommand creates the browse command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var flags *cmdutil.QueryFlags

	cmd := &cobra.Command{
		Use:     "browse",
		GroupID: "core",
		Short:   "List one page of books",
		Long: `Browse lists one page of the catalog. The search term and genre are
remembered between runs; the page always starts at 1.`,
		Example: `  bookmap browse                          # Page 1 of the remembered query
  bookmap browse --search dickens         # Search titles and authors
  bookmap browse --genre "science fiction" --page 3
  bookmap browse --search "" --genre ""   # Clear the remembered query`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}
			bm, err := app.Bookmap()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			flags.Load(ctx, cmd, bm)
			view := bm.View()

			app.Logger().Debug().
				Str("status", view.Status.String()).
				Int("books", len(view.Books)).
				Msg("Browse finished")

			if view.Status == pkgbrowse.StatusFailed {
				return view.Err
			}

			w := cmd.OutOrStdout()
			structured := format == output.FormatJSON || format == output.FormatYAML
			if view.Empty() && !structured {
				_, err := fmt.Fprintln(w, "No books found.")
				return err
			}

			favorites := cmdutil.FavoriteSet(ctx, bm)
			if err := output.Render(w, format, view, func(wide bool) output.Data {
				return table.BooksToTableData(view.Books, favorites, wide)
			}); err != nil {
				return err
			}
			if structured {
				return nil
			}

			_, err = fmt.Fprintf(w, "\n%s\nPage %d of %d, %s books\n",
				table.PageWindow(view.Window(), view.CurrentPage, view.TotalPages),
				view.CurrentPage, view.TotalPages, table.FormatNumber(int64(view.Count)))
			return err
		},
	}

	flags = cmdutil.AddQueryFlags(cmd, true)
	return cmd
}
