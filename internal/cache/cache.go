package cache

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	fieldSep  = "\t"
	recordSep = "\n"

	maxLineSize = 1 << 20
)

// Write replaces the cache file at path with one "title\tlink\n" line per
// article. The content goes to a temp file in the same directory which is
// then renamed over path, so a failed write leaves the previous cache alone.
func Write(path string, articles []Article) error {
	var buf bytes.Buffer
	for i, a := range articles {
		if err := checkField(a.Title); err != nil {
			return fmt.Errorf("article %d title: %w", i+1, err)
		}
		if err := checkField(a.Link); err != nil {
			return fmt.Errorf("article %d link: %w", i+1, err)
		}
		buf.WriteString(a.Title)
		buf.WriteString(fieldSep)
		buf.WriteString(a.Link)
		buf.WriteString(recordSep)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp cache file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing cache: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting cache mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing cache: %w", err)
	}
	return nil
}

func checkField(s string) error {
	if strings.ContainsAny(s, fieldSep+recordSep+"\r") {
		return &FormatError{Text: s, Msg: "field contains a tab or line break"}
	}
	return nil
}

// Read loads the articles from the cache file at path, in file order. A line
// without a tab makes the whole cache unusable.
func Read(path string) ([]Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	articles := []Article{}
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		title, link, ok := strings.Cut(text, fieldSep)
		if !ok {
			return nil, &FormatError{Line: line, Text: text, Msg: "missing tab delimiter"}
		}
		articles = append(articles, Article{Title: title, Link: link})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}
	return articles, nil
}

// Lookup returns the article at the 1-based index.
func Lookup(articles []Article, index int) (Article, bool) {
	if index < 1 || index > len(articles) {
		return Article{}, false
	}
	return articles[index-1], true
}

// Stat reports the entry count, size and last write time of the cache file.
func Stat(path string) (Stats, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Stats{}, fmt.Errorf("stat cache: %w", err)
	}
	articles, err := Read(path)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Path:    path,
		Entries: len(articles),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
