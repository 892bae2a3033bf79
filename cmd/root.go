package cmd

import (
	"fmt"
	"os"

	"github.com/csimons/hn/internal/browser"
	"github.com/csimons/hn/internal/config"
	"github.com/csimons/hn/internal/feed"
	"github.com/csimons/hn/internal/logger"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig   string
	flagURL      string
	flagCache    string
	flagParser   string
	flagLogLevel string
)

// Collaborators, swapped out in tests.
var (
	newFetcher  = func() feed.Fetcher { return feed.NewHTTPFetcher("hn/" + version) }
	newLauncher = browser.Default
)

// cfg is loaded once per invocation by loadConfig.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "hn [index...]",
	Short: "List a feed's discussions and reopen them by number",
	Long: `With no arguments hn fetches the feed, prints a numbered list of titles and
caches the list. Given one or more numbers it opens the matching cached
discussion links in the browser, in the order given.`,
	Example: `  hn          # fetch and list
  hn 3 1      # open items 3 and 1 from the last listing`,
	Args:              validateIndexes,
	PersistentPreRunE: loadConfig,
	RunE:              runRoot,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "feed URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagCache, "cache", "", "cache file path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagParser, "parser", "", "feed parser: stream or item (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// Skip config loading.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hn %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagURL != "" {
		c.FeedURL = flagURL
	}
	if flagCache != "" {
		c.CacheFile = flagCache
	}
	if flagParser != "" {
		c.Parser = flagParser
	}
	if flagLogLevel != "" {
		c.Log.Level = flagLogLevel
	}
	if err := config.Validate(c); err != nil {
		return err
	}

	if err := logger.Init(c.Logger()); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	cfg = c
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return a.fetch(cmd.Context())
	}

	indexes, err := parseIndexes(args)
	if err != nil {
		return err
	}
	return a.open(indexes)
}

func Execute() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
