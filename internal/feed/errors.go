package feed

import "fmt"

// FetchError reports a transport failure or a non-success response while
// retrieving a feed.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// MalformedFeedError reports a document that could not be tokenized. Offset
// is the number of input bytes consumed when the failure was detected, or -1
// when the parser cannot tell.
type MalformedFeedError struct {
	Offset int64
	Err    error
}

func (e *MalformedFeedError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("malformed feed: %v", e.Err)
	}
	return fmt.Sprintf("malformed feed at byte %d: %v", e.Offset, e.Err)
}

func (e *MalformedFeedError) Unwrap() error { return e.Err }
