package cache

import (
	"fmt"
	"time"
)

// Article is one feed item: the title and its discussion link.
type Article struct {
	Title string
	Link  string
}

// Stats describes the cache file on disk.
type Stats struct {
	Path    string
	Entries int
	Size    int64
	ModTime time.Time
}

// FormatError reports a cache record that cannot be represented in, or read
// back from, the tab-separated format.
type FormatError struct {
	Line int
	Text string
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("cache line %d: %s: %q", e.Line, e.Msg, e.Text)
	}
	return fmt.Sprintf("cache record: %s: %q", e.Msg, e.Text)
}
