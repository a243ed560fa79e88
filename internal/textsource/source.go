package textsource

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Source runs extraction strategies in priority order and merges their
// output page by page: a page keeps the first strategy's text unless it is
// blank, in which case later strategies fill the gap. One unreadable page
// never fails the document; it is recorded as a failed page marker instead.
type Source struct {
	strategies []Strategy
	logger     *slog.Logger
}

// NewSource builds the default chain: layout -> plain -> stream.
func NewSource(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		strategies: []Strategy{
			NewLayoutStrategy(logger),
			NewPlainStrategy(logger),
			NewStreamStrategy(logger),
		},
		logger: logger,
	}
}

// NewSourceWithStrategies builds a source over an explicit chain. Used by
// tests and by callers that want to disable a backend.
func NewSourceWithStrategies(logger *slog.Logger, strategies ...Strategy) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{strategies: strategies, logger: logger}
}

// Extract returns the best-effort merged content for one document. It fails
// only when every strategy fails for every page.
func (s *Source) Extract(ctx context.Context, path string) (Result, error) {
	type attempt struct {
		name  string
		pages []Page
		err   error
	}

	attempts := make([]attempt, 0, len(s.strategies))
	maxPages := 0
	for _, strat := range s.strategies {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		pages, err := strat.Extract(ctx, path)
		if err != nil {
			s.logger.Warn("textsource.strategy_failed", "strategy", strat.Name(), "path", path, "err", err)
		}
		attempts = append(attempts, attempt{name: strat.Name(), pages: pages, err: err})
		if len(pages) > maxPages {
			maxPages = len(pages)
		}
	}

	if maxPages == 0 {
		return Result{}, fmt.Errorf("all extraction strategies failed for %s", path)
	}

	res := Result{
		Pages:   make([]Page, 0, maxPages),
		Methods: make([]PageMethod, 0, maxPages),
	}
	usable := false
	for i := 0; i < maxPages; i++ {
		var chosen Page
		var method PageMethod
		method.Page = i + 1
		method.Failed = true
		for _, a := range attempts {
			if i >= len(a.pages) {
				continue
			}
			p := a.pages[i]
			if strings.TrimSpace(p.Text) == "" {
				continue
			}
			chosen = p
			method.Method = a.name
			method.Failed = false
			break
		}
		if method.Failed {
			chosen = Page{Number: i + 1}
			method.Err = "no strategy produced text"
			s.logger.Debug("textsource.page_failed", "path", path, "page", i+1)
		} else {
			usable = true
		}
		chosen.Number = i + 1
		res.Pages = append(res.Pages, chosen)
		res.Methods = append(res.Methods, method)
	}

	if !usable {
		return res, fmt.Errorf("no usable text on any page of %s", path)
	}
	return res, nil
}
