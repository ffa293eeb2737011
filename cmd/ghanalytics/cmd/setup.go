package cmd

import (
	"os"

	"github.com/maxbolgarin/errm"
	"github.com/spf13/viper"

	"github.com/Ishanpathak1/ghanalytics/internal/analytics"
	"github.com/Ishanpathak1/ghanalytics/internal/cache"
	"github.com/Ishanpathak1/ghanalytics/internal/collector"
	"github.com/Ishanpathak1/ghanalytics/internal/policy"
)

// openCache returns the response cache, or nil when caching is disabled.
func openCache() (*cache.Cache, error) {
	if !viper.GetBool("cache") {
		return nil, nil
	}
	dir := viper.GetString("cache-dir")
	if dir == "" {
		dir = cache.DefaultDir()
	}
	return cache.New(cache.Config{
		Dir: dir,
		TTL: viper.GetDuration("cache-ttl"),
	})
}

func newCollector() (collector.Collector, error) {
	c, err := openCache()
	if err != nil {
		return nil, err
	}
	return collector.NewGitHub(collector.Config{
		Token:      viper.GetString("token"),
		BaseURL:    viper.GetString("api-url"),
		MaxRetries: viper.GetInt("max-retries"),
		Cache:      c,
	})
}

// newRunner builds a runner from the configuration. Progress goes to
// stderr in verbose mode.
func newRunner(progress analytics.Reporter) (*analytics.Runner, error) {
	col, err := newCollector()
	if err != nil {
		return nil, errm.Wrap(err, "failed to create GitHub client")
	}

	p, err := policy.Resolve(viper.GetString("profile"), viper.GetString("profile-file"))
	if err != nil {
		return nil, err
	}

	loc, err := location()
	if err != nil {
		return nil, err
	}

	if progress == nil {
		progress = analytics.NewProgress(analytics.ProgressConfig{
			Writer:  os.Stderr,
			Enabled: viper.GetBool("verbose"),
		})
	}

	return analytics.NewRunner(col,
		analytics.WithPolicy(p),
		analytics.WithLocation(loc),
		analytics.WithProgress(progress),
	)
}
