package cmd

import (
	"context"
	"fmt"

	"github.com/maxbolgarin/errm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ishanpathak1/ghanalytics/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and clean the response cache",
	Long: `GitHub responses are cached on disk so repeated analyses of the same
user stay within the API rate limit.

Examples:
  ghanalytics cache stats
  ghanalytics cache prune
  ghanalytics cache clear`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache usage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireCache()
		if err != nil {
			return err
		}
		s := c.Stats(context.Background())
		fmt.Printf("Directory:   %s\n", s.Dir)
		fmt.Printf("TTL:         %s\n", c.TTL())
		fmt.Printf("Files:       %d\n", s.FileEntries)
		fmt.Printf("Size:        %d KB\n", s.TotalSizeKB)
		return nil
	},
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove expired entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireCache()
		if err != nil {
			return err
		}
		n, err := c.Prune(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d expired entries\n", n)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireCache()
		if err != nil {
			return err
		}
		if err := c.Clear(context.Background()); err != nil {
			return err
		}
		fmt.Println("Cache cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd, cachePruneCmd, cacheClearCmd)
}

// requireCache opens the cache even when --cache=false.
func requireCache() (*cache.Cache, error) {
	dir := viper.GetString("cache-dir")
	if dir == "" {
		dir = cache.DefaultDir()
	}
	c, err := cache.New(cache.Config{Dir: dir, TTL: viper.GetDuration("cache-ttl")})
	if err != nil {
		return nil, errm.Wrap(err, "failed to open cache")
	}
	return c, nil
}
