package textsource

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tsawler/tabula"
)

// LayoutStrategy extracts layout-preserving text with tabula and recovers
// tables from the aligned output. It is the first-choice backend: room
// summary grids keep their column structure, which the plain extractors
// destroy.
type LayoutStrategy struct {
	logger *slog.Logger
}

func NewLayoutStrategy(logger *slog.Logger) *LayoutStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &LayoutStrategy{logger: logger}
}

func (s *LayoutStrategy) Name() string { return "layout" }

func (s *LayoutStrategy) Extract(ctx context.Context, path string) ([]Page, error) {
	ext := tabula.Open(path)
	count, err := ext.PageCount()
	if err != nil {
		_ = ext.Close()
		return nil, fmt.Errorf("layout page count: %w", err)
	}
	_ = ext.Close()

	pages := make([]Page, 0, count)
	for n := 1; n <= count; n++ {
		if err := ctx.Err(); err != nil {
			return pages, err
		}
		text, warnings, err := tabula.Open(path).Pages(n).PreserveLayout().Text()
		if err != nil {
			// Per-page failure: leave the page blank for the next strategy.
			s.logger.Debug("textsource.layout.page_failed", "path", path, "page", n, "err", err)
			pages = append(pages, Page{Number: n})
			continue
		}
		if len(warnings) > 0 {
			s.logger.Debug("textsource.layout.page_warnings", "path", path, "page", n, "count", len(warnings))
		}
		pages = append(pages, Page{
			Number: n,
			Text:   text,
			Tables: DetectTables(text),
		})
	}
	return pages, nil
}
