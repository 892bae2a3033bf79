package feed

import (
	"io"

	"github.com/csimons/hn/internal/cache"
	"github.com/mmcdole/gofeed/rss"
)

// ParseItems binds each <comments> link to the <title> of its own <item>
// instead of the last title seen anywhere in the document. Items without a
// comments link are skipped; an item without a title reuses the previous one.
func ParseItems(r io.Reader) ([]cache.Article, error) {
	fp := &rss.Parser{}
	f, err := fp.Parse(r)
	if err != nil {
		return nil, &MalformedFeedError{Offset: -1, Err: err}
	}

	var title string
	articles := make([]cache.Article, 0, len(f.Items))
	for _, item := range f.Items {
		if t := cleanText(item.Title); t != "" {
			title = t
		}
		link := cleanText(item.Comments)
		if link == "" {
			continue
		}
		articles = append(articles, cache.Article{Title: title, Link: link})
	}
	return articles, nil
}
