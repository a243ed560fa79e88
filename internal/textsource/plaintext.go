package textsource

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ledongthuc/pdf"
)

// PlainStrategy extracts plain per-page text. Faster and more tolerant than
// layout analysis, but loses column alignment, so it runs second.
type PlainStrategy struct {
	logger *slog.Logger
}

func NewPlainStrategy(logger *slog.Logger) *PlainStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlainStrategy{logger: logger}
}

func (s *PlainStrategy) Name() string { return "plain" }

func (s *PlainStrategy) Extract(ctx context.Context, path string) ([]Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat pdf: %w", err)
	}
	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	count := reader.NumPage()
	pages := make([]Page, 0, count)
	for n := 1; n <= count; n++ {
		if err := ctx.Err(); err != nil {
			return pages, err
		}
		page := reader.Page(n)
		if page.V.IsNull() {
			pages = append(pages, Page{Number: n})
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			s.logger.Debug("textsource.plain.page_failed", "path", path, "page", n, "err", err)
			pages = append(pages, Page{Number: n})
			continue
		}
		pages = append(pages, Page{Number: n, Text: text})
	}
	return pages, nil
}
