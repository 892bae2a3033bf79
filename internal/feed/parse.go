package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/csimons/hn/internal/cache"
	"golang.org/x/net/html/charset"
)

// Parser turns a feed document into articles.
type Parser func(r io.Reader) ([]cache.Article, error)

// ParserFor returns the parser registered under name ("stream" or "item").
func ParserFor(name string) (Parser, error) {
	switch name {
	case "", "stream":
		return Parse, nil
	case "item":
		return ParseItems, nil
	default:
		return nil, fmt.Errorf("unknown parser %q (valid: stream, item)", name)
	}
}

// Parse walks the document as a stream of tag and text events. The text of
// a <title> becomes the current title and the text of every <comments> yields
// an article carrying the current title. Tags are matched by name wherever
// they appear, so a link without its own title reuses the last one seen.
// Start and end tags are not paired: misnested markup is accepted and only a
// broken token stream (bad bytes, a tag cut off by EOF) fails.
func Parse(r io.Reader) ([]cache.Article, error) {
	d := xml.NewDecoder(r)
	d.Strict = false
	d.CharsetReader = charset.NewReaderLabel

	var (
		title    string
		titleBuf textBuf
		linkBuf  textBuf
	)
	articles := []cache.Article{}

	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			return articles, nil
		}
		if err != nil {
			return nil, &MalformedFeedError{Offset: d.InputOffset(), Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch elementName(t.Name) {
			case "title":
				titleBuf.open()
			case "comments":
				linkBuf.open()
			}
		case xml.EndElement:
			switch elementName(t.Name) {
			case "title":
				if text, ok := titleBuf.close(); ok {
					title = text
				}
			case "comments":
				if link, ok := linkBuf.close(); ok {
					articles = append(articles, cache.Article{Title: title, Link: link})
				}
			}
		case xml.CharData:
			// CDATA sections arrive here too; a title split across plain
			// text and CDATA is joined before it is applied.
			titleBuf.write(t)
			linkBuf.write(t)
		}
	}
}

// elementName returns the tag name as written, prefix included, so that
// "dc:title" does not count as "title".
func elementName(n xml.Name) string {
	if n.Space != "" {
		return n.Space + ":" + n.Local
	}
	return n.Local
}

// textBuf collects the character data of one open title or comments element.
type textBuf struct {
	active bool
	seen   bool
	b      strings.Builder
}

func (t *textBuf) open() {
	t.active, t.seen = true, false
	t.b.Reset()
}

func (t *textBuf) write(p []byte) {
	if !t.active {
		return
	}
	t.seen = true
	t.b.Write(p)
}

// close reports the collected text, and false when the element held none.
func (t *textBuf) close() (string, bool) {
	if !t.active {
		return "", false
	}
	t.active = false
	return cleanText(t.b.String()), t.seen
}

// ParseString is Parse over an in-memory document.
func ParseString(s string) ([]cache.Article, error) {
	return Parse(strings.NewReader(s))
}

var lineBreaks = strings.NewReplacer("\t", " ", "\r\n", " ", "\r", " ", "\n", " ")

// cleanText keeps the cache delimiters out of article fields and trims the
// indentation pretty-printed feeds put around element text.
func cleanText(s string) string {
	return strings.TrimSpace(lineBreaks.Replace(s))
}
