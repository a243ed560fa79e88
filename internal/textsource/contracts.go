package textsource

import (
	"context"
	"strings"
)

// Table is a detected 2-D grid of cell strings.
type Table struct {
	Cells [][]string `json:"cells"`
}

// Page is the extracted content of one document page.
type Page struct {
	Number int     `json:"number"` // 1-based
	Text   string  `json:"text"`
	Tables []Table `json:"tables,omitempty"`
}

// Strategy is one PDF text-extraction backend. Extract returns per-page
// content for the whole document; a page it could not read comes back with
// empty Text so the next strategy in the chain can fill it in.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, path string) ([]Page, error)
}

// PageMethod records which strategy produced a page, or that all failed.
type PageMethod struct {
	Page   int
	Method string
	Failed bool
	Err    string
}

// Result is the merged best-effort content for one document.
type Result struct {
	Pages   []Page
	Methods []PageMethod
}

// JoinedText concatenates page texts with form feeds and returns, for each
// page, the byte offset at which its text starts. Downstream candidate
// offsets index into this joined text.
func (r Result) JoinedText() (string, []int) {
	starts := make([]int, len(r.Pages))
	var b strings.Builder
	for i, p := range r.Pages {
		if i > 0 {
			b.WriteString("\n\f\n")
		}
		starts[i] = b.Len()
		b.WriteString(p.Text)
	}
	return b.String(), starts
}

// PageAt maps a byte offset in the joined text back to a 1-based page
// number. Returns 0 when the result has no pages.
func (r Result) PageAt(offset int, starts []int) int {
	if len(r.Pages) == 0 {
		return 0
	}
	page := r.Pages[0].Number
	for i, s := range starts {
		if offset >= s {
			page = r.Pages[i].Number
		}
	}
	return page
}

// Tables returns every detected table across all pages.
func (r Result) Tables() []Table {
	var out []Table
	for _, p := range r.Pages {
		out = append(out, p.Tables...)
	}
	return out
}
