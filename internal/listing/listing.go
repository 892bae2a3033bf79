// Package listing prints numbered article titles, one "index<TAB>title" line
// per article. Styles only apply when the writer is a terminal.
package listing

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/csimons/hn/internal/cache"
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
)

type Printer struct {
	w          io.Writer
	indexStyle lipgloss.Style
	titleStyle lipgloss.Style
}

func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:          w,
		indexStyle: r.NewStyle().Foreground(colorDim),
		titleStyle: r.NewStyle().Foreground(colorPrimary).Bold(true),
	}
}

// Print writes articles with 1-based indexes.
func (p *Printer) Print(articles []cache.Article) error {
	for i, a := range articles {
		// Tabs are joined outside Render, which would expand them.
		_, err := fmt.Fprintf(p.w, "%s\t%s\n",
			p.indexStyle.Render(fmt.Sprint(i+1)),
			p.titleStyle.Render(a.Title))
		if err != nil {
			return fmt.Errorf("printing listing: %w", err)
		}
	}
	return nil
}
