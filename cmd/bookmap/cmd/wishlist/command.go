// Package wishlist implements the wishlist command and its subcommands.
package wishlist

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/bookmap"
	"github.com/agentstation/bookmap/internal/cmd/cmdutil"
	"github.com/agentstation/bookmap/internal/cmd/emoji"
	"github.com/agentstation/bookmap/internal/cmd/output"
	"github.com/agentstation/bookmap/internal/cmd/table"
	"github.com/agentstation/bookmap/pkg/errors"
)

// AppContext defines what the wishlist commands need from the app.
type AppContext interface {
	Bookmap() (bookmap.Client, error)
	Logger() *zerolog.Logger
	OutputFormat() string
}

// NewCommand creates the wishlist command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "wishlist",
		Aliases: []string{"favorites"},
		GroupID: "core",
		Short:   "Manage favorite books",
		Example: `  bookmap wishlist list
  bookmap wishlist add 1342
  bookmap wishlist toggle 84`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newListCommand(app))
	cmd.AddCommand(newAddCommand(app))
	cmd.AddCommand(newRemoveCommand(app))
	cmd.AddCommand(newToggleCommand(app))

	return cmd
}

func newListCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List favorite books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}
			bm, err := app.Bookmap()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			list, err := bm.ListFavorites(cmd.Context())
			if errors.IsEmptyWishlist(err) {
				_, err := fmt.Fprintln(w, "No favorites yet.")
				return err
			}
			if err != nil {
				return err
			}

			all := make(map[int]bool, len(list))
			for _, b := range list {
				all[b.ID] = true
			}
			return output.Render(w, format, list, func(wide bool) output.Data {
				return table.BooksToTableData(list, all, wide)
			})
		},
	}
}

func newAddCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <id>",
		Short: "Add a book to the wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withID(app, args[0], func(bm bookmap.Client, id int) error {
				if err := bm.AddFavorite(cmd.Context(), id); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s Added %d to favorites\n", emoji.Success, id)
				return err
			})
		},
	}
}

func newRemoveCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a book from the wishlist",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withID(app, args[0], func(bm bookmap.Client, id int) error {
				if err := bm.RemoveFavorite(cmd.Context(), id); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %d from favorites\n", emoji.Success, id)
				return err
			})
		},
	}
}

func newToggleCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Add a book if absent, remove it if present",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withID(app, args[0], func(bm bookmap.Client, id int) error {
				favorite, err := bm.ToggleFavorite(cmd.Context(), id)
				if err != nil {
					return err
				}
				mark := emoji.NotFavorite
				if favorite {
					mark = emoji.Favorite
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", mark, id)
				return err
			})
		},
	}
}

func withID(app AppContext, arg string, fn func(bookmap.Client, int) error) error {
	id, err := cmdutil.ParseID(arg)
	if err != nil {
		return err
	}
	bm, err := app.Bookmap()
	if err != nil {
		return err
	}
	return fn(bm, id)
}
