package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vladshablinsky/brew/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}
	cmd.AddCommand(c.cacheClearCommand(), c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	var expired bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached results",
		Long: `Remove cached dependency results from the file cache, or from Redis when
` + envRedisAddr + ` is set. With --expired only stale entries of the file cache
are removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newCache(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if expired {
				fc, ok := store.(*cache.FileCache)
				if !ok {
					printWarning(out, "Pruning needs the file cache")
					return nil
				}
				n, err := fc.Prune(ctx)
				if err != nil {
					return fmt.Errorf("prune cache: %w", err)
				}
				printSuccess(out, "Removed %d stale entries", n)
				printDetail(out, "Directory: %s", fc.Dir())
				return nil
			}

			clearer, ok := store.(cache.Clearer)
			if !ok {
				printWarning(out, "Cache is disabled")
				return nil
			}
			if err := clearer.Clear(ctx); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess(out, "Cleared cached results")
			if fc, ok := store.(*cache.FileCache); ok {
				printDetail(out, "Directory: %s", fc.Dir())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&expired, "expired", false, "only remove expired or unreadable entries")
	return cmd
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("locate cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
