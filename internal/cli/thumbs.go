package cli

import (
	"errors"
	"fmt"
	"os"

	"filetug/internal/common"
	"filetug/internal/container"
	thumbnailDomain "filetug/internal/domain/thumbnail"
	"filetug/internal/imaging"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/cobra"
)

var errCachingDisabled = errors.New("thumbnail caching is disabled; enable it with: filetugctl settings set cacheThumbnails true")

func newThumbsCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thumbs",
		Short: "Generate and maintain thumbnail caches",
	}

	var width, height int
	var out string
	getCmd := &cobra.Command{
		Use:   "get <file>",
		Short: "Produce the thumbnail of an image, caching it",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.run(func(c *container.Container) error {
				if !c.GetSettingsStore().CacheThumbnails() {
					return errCachingDisabled
				}
				img, ok := c.GetThumbnailService().Thumbnail(args[0], thumbnailDomain.Size{Width: width, Height: height})
				if !ok {
					return fmt.Errorf("no thumbnail for %s", args[0])
				}
				if out == "" {
					size := img.Bounds().Size()
					fmt.Fprintf(cmd.OutOrStdout(), "%dx%d %s\n", size.X, size.Y, thumbnailDomain.CachePath(args[0]))
					return nil
				}

				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				return imaging.EncodePNG(f, img)
			})
		},
	}
	getCmd.Flags().IntVar(&width, "width", -1, "thumbnail width (default 120)")
	getCmd.Flags().IntVar(&height, "height", -1, "thumbnail height (default 120)")
	getCmd.Flags().StringVarP(&out, "out", "o", "", "also write the thumbnail to this PNG file")

	var warmSize int
	warmCmd := &cobra.Command{
		Use:   "warm <dir>",
		Short: "Cache thumbnails for every image in a directory",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.run(func(c *container.Container) error {
				size := thumbnailDomain.Size{Width: warmSize, Height: warmSize}
				result := c.GetPrefetchService().Prefetch(cmd.Context(), args[0], size, func(item thumbnailDomain.ItemResult) {
					if item.Status == thumbnailDomain.StatusError {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", item.Filename, item.Error)
					}
				})
				if !result.Success {
					return errors.New(result.Error)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d images: %d cached, %d skipped, %d failed\n",
					result.Total, result.Completed, result.Skipped, result.Failed)
				return nil
			})
		},
	}
	warmCmd.Flags().IntVar(&warmSize, "size", common.DefaultThumbnailSize, "thumbnail edge length")

	statsCmd := &cobra.Command{
		Use:   "stats <dir>",
		Short: "Show the size of a directory's thumbnail cache",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.run(func(c *container.Container) error {
				stats, err := c.GetThumbnailService().Stats(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries, %s\n",
					stats.Dir, stats.Entries, datasize.ByteSize(stats.TotalBytes).HumanReadable())
				return nil
			})
		},
	}

	purgeCmd := &cobra.Command{
		Use:   "purge <dir>",
		Short: "Delete a directory's thumbnail cache",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.run(func(c *container.Container) error {
				return c.GetThumbnailService().Purge(args[0])
			})
		},
	}

	cmd.AddCommand(getCmd, warmCmd, statsCmd, purgeCmd)
	return cmd
}
