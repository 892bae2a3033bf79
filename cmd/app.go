package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"strconv"
	"strings"

	"github.com/csimons/hn/internal/browser"
	"github.com/csimons/hn/internal/cache"
	"github.com/csimons/hn/internal/config"
	"github.com/csimons/hn/internal/feed"
	"github.com/csimons/hn/internal/listing"
	"github.com/csimons/hn/internal/logger"
	"github.com/spf13/cobra"
)

// UsageError reports a command-line argument that is not a cache index.
type UsageError struct {
	Arg string
	Err error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("invalid index %q: expected a number (see hn --help)", e.Arg)
}

func (e *UsageError) Unwrap() error { return e.Err }

type app struct {
	feedURL   string
	cachePath string
	fetcher   feed.Fetcher
	parse     feed.Parser
	launcher  browser.Launcher
	out       io.Writer
}

func newApp(c *config.Config, out io.Writer) (*app, error) {
	parse, err := feed.ParserFor(c.Parser)
	if err != nil {
		return nil, err
	}
	return &app{
		feedURL:   c.FeedURL,
		cachePath: c.CachePath(),
		fetcher:   newFetcher(),
		parse:     parse,
		launcher:  newLauncher(),
		out:       out,
	}, nil
}

// fetch downloads and parses the feed, replaces the cache, then prints the
// listing. The cache is written before printing so every printed index
// resolves against it.
func (a *app) fetch(ctx context.Context) error {
	body, err := a.fetcher.Fetch(ctx, a.feedURL)
	if err != nil {
		return err
	}

	if kind := feed.DetectType(body); kind != "rss" {
		logger.Warnf("%s does not look like an RSS feed (%s); expect few or no articles", a.feedURL, kind)
	}

	articles, err := a.parse(strings.NewReader(body))
	if err != nil {
		return err
	}
	logger.Infof("parsed %d articles from %s", len(articles), a.feedURL)

	if err := cache.Write(a.cachePath, articles); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	logger.Debugf("wrote %d entries to %s", len(articles), a.cachePath)

	return listing.New(a.out).Print(articles)
}

// open launches the cached link for each index, in order. Indexes outside
// the cached list are skipped with a warning. A failed launch does not stop
// the remaining ones; all failures are returned together.
func (a *app) open(indexes []int) error {
	articles, err := a.readCache()
	if err != nil {
		return err
	}

	var errs []error
	for _, idx := range indexes {
		art, ok := cache.Lookup(articles, idx)
		if !ok {
			logger.Warnf("no cached article at index %d (cache has %d)", idx, len(articles))
			continue
		}
		logger.Debugf("opening %d: %s", idx, art.Link)
		if err := a.launcher.Open(art.Link); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *app) list() error {
	articles, err := a.readCache()
	if err != nil {
		return err
	}
	return listing.New(a.out).Print(articles)
}

func (a *app) readCache() ([]cache.Article, error) {
	articles, err := cache.Read(a.cachePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no cached listing at %s, run hn without arguments first: %w", a.cachePath, err)
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}
	return articles, nil
}

func validateIndexes(cmd *cobra.Command, args []string) error {
	_, err := parseIndexes(args)
	return err
}

// parseIndexes converts arguments to 1-based indexes. Numbers too large to
// represent are kept as out of range rather than rejected.
func parseIndexes(args []string) ([]int, error) {
	indexes := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.ParseUint(arg, 10, 0)
		switch {
		case errors.Is(err, strconv.ErrRange):
			indexes = append(indexes, math.MaxInt)
		case err != nil:
			return nil, &UsageError{Arg: arg, Err: err}
		case n > math.MaxInt:
			indexes = append(indexes, math.MaxInt)
		default:
			indexes = append(indexes, int(n))
		}
	}
	return indexes, nil
}
