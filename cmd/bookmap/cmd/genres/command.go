// Package genres implements the genres command.
package genres

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/bookmap"
	"github.com/agentstation/bookmap/internal/cmd/cmdutil"
	"github.com/agentstation/bookmap/internal/cmd/output"
	"github.com/agentstation/bookmap/internal/cmd/table"
	pkgbrowse "github.com/agentstation/bookmap/pkg/browse"
	pkggenres "github.com/agentstation/bookmap/pkg/genres"
)

// AppContext defines what the genres command needs from the app.
type AppContext interface {
	Bookmap() (bookmap.Client, error)
	Logger() *zerolog.Logger
	OutputFormat() string
}

// NewCommand creates the genres command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var (
		flags  *cmdutil.QueryFlags
		filter string
	)

	cmd := &cobra.Command{
		Use:     "genres",
		GroupID: "core",
		Short:   "List the genres on a page of books",
		Long: `Genres lists the subjects of the books on one page, in the order they
first appear. Pass the Filter column to "bookmap browse --genre".`,
		Example: `  bookmap genres
  bookmap genres --search austen --filter fiction`,
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

			flags.Load(cmd.Context(), cmd, bm)
			view := bm.View()
			if view.Status == pkgbrowse.StatusFailed {
				return view.Err
			}

			entries := pkggenres.Filter(view.Genres, filter)
			app.Logger().Debug().
				Int("genres", len(view.Genres)).
				Int("matched", len(entries)).
				Msg("Genres derived")

			w := cmd.OutOrStdout()
			if len(entries) == 0 && format != output.FormatJSON && format != output.FormatYAML {
				_, err := fmt.Fprintln(w, "No genres found.")
				return err
			}
			return output.Render(w, format, entries, func(bool) output.Data {
				return table.GenresToTableData(entries)
			})
		},
	}

	flags = cmdutil.AddQueryFlags(cmd, false)
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Only genres containing this text")
	return cmd
}
