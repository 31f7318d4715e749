package cli

import (
	"fmt"
	"path/filepath"

	"filetug/internal/container"

	"github.com/spf13/cobra"
)

func newBookmarksCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "Manage directory bookmarks",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List bookmarks",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.run(func(c *container.Container) error {
				for _, b := range c.GetBookmarkService().List() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", b.Title, b.Path)
				}
				return nil
			})
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <path> [title]",
		Short: "Bookmark a directory",
		Args:  usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			title := filepath.Base(path)
			if len(args) == 2 {
				title = args[1]
			}
			return env.run(func(c *container.Container) error {
				return c.GetBookmarkService().Add(path, title)
			})
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <path>",
		Short: "Remove a bookmark",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			return env.run(func(c *container.Container) error {
				return c.GetBookmarkService().Remove(path)
			})
		},
	}

	cmd.AddCommand(listCmd, addCmd, removeCmd)
	return cmd
}
