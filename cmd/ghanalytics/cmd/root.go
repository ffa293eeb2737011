package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ishanpathak1/ghanalytics/internal/cache"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ghanalytics",
	Short: "Activity, language and repository analytics for GitHub profiles",
	Long: `ghanalytics analyzes a public GitHub profile: when its owner commits,
which languages they use and which repositories stand out.

Features:
  - Profile overview with most productive hour and day and commit streaks
  - Language breakdown and proficiency scores
  - Terminal charts, or Mermaid charts for Markdown pages
  - Interactive console with command history and themes

Runs unauthenticated by default. Set GITHUB_TOKEN for higher rate limits.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ghanalytics.yaml)")
	rootCmd.PersistentFlags().String("token", "", "GitHub token (or set GITHUB_TOKEN env var)")
	rootCmd.PersistentFlags().String("api-url", "", "GitHub REST API base URL (default: https://api.github.com/)")
	rootCmd.PersistentFlags().String("format", "table", "Output format: table, json, yaml, markdown, csv")
	rootCmd.PersistentFlags().String("output", "", "Output file (default: stdout)")
	rootCmd.PersistentFlags().String("profile", "default", "Sampling profile: default, light, deep")
	rootCmd.PersistentFlags().String("profile-file", "", "Load the sampling profile from a YAML file")
	rootCmd.PersistentFlags().String("timezone", "", "IANA time zone for commit times (default: local)")
	rootCmd.PersistentFlags().Bool("cache", false, "Cache API responses on disk")
	rootCmd.PersistentFlags().String("cache-dir", "", "Cache directory (default: user cache dir)")
	rootCmd.PersistentFlags().Duration("cache-ttl", cache.DefaultTTL, "Cache TTL duration")
	rootCmd.PersistentFlags().Int("max-retries", 0, "Retry failed API calls up to this many times")
	rootCmd.PersistentFlags().String("theme-file", "", "Theme file (default is $HOME/.ghanalytics/theme.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")

	for _, name := range []string{
		"token", "api-url", "format", "output", "profile", "profile-file", "timezone",
		"cache", "cache-dir", "cache-ttl", "max-retries", "theme-file", "verbose",
	} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".ghanalytics" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ghanalytics")
	}

	// Environment variables
	viper.SetEnvPrefix("GHANALYTICS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	configErr := viper.ReadInConfig()

	// Also check GITHUB_TOKEN directly
	if viper.GetString("token") == "" {
		if token := os.Getenv("GITHUB_TOKEN"); token != "" {
			viper.Set("token", token)
		}
	}

	initLogger(viper.GetBool("verbose"))

	if configErr == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func initLogger(verbose bool) {
	if verbose {
		logze.Init(logze.C().WithConsole().WithLevel(logze.LevelDebug))
		return
	}
	logze.Init(logze.C().WithConsole().WithLevel(logze.LevelError))
}

// location returns the configured time zone.
func location() (*time.Location, error) {
	name := viper.GetString("timezone")
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errm.Wrap(err, "invalid timezone "+name)
	}
	return loc, nil
}

// writeOutput writes result to the configured output file or stdout.
func writeOutput(result string) error {
	if output := viper.GetString("output"); output != "" {
		return os.WriteFile(output, []byte(result), 0600)
	}
	fmt.Print(result)
	if !strings.HasSuffix(result, "\n") {
		fmt.Println()
	}
	return nil
}
