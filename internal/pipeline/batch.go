package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abubakr3800/sc-standards/internal/async"
	"github.com/abubakr3800/sc-standards/internal/entity"
)

// Batch fans a set of documents out over a worker pool. Results come back
// in submission order regardless of which worker finished first.
type Batch struct {
	processor *Processor
	workers   int
	logger    *slog.Logger
}

func NewBatch(processor *Processor, workers int, logger *slog.Logger) *Batch {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Batch{processor: processor, workers: workers, logger: logger}
}

// Run processes every path and returns one report per path, index-aligned
// with the input. Cancelling the context stops workers after their current
// document; unprocessed slots come back as failed reports.
func (b *Batch) Run(ctx context.Context, paths []string) []entity.DocumentReport {
	reports := make([]entity.DocumentReport, len(paths))
	if len(paths) == 0 {
		return reports
	}

	queue := async.NewChanQueue(len(paths))
	for i, path := range paths {
		job := async.Job{
			DocumentID:  uuid.New(),
			Path:        path,
			Index:       i,
			SubmittedAt: time.Now().UTC(),
		}
		if err := queue.Enqueue(ctx, job); err != nil {
			break
		}
	}
	queue.Close()

	var wg sync.WaitGroup
	for w := 0; w < b.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for {
				job, ok := queue.Dequeue(ctx)
				if !ok {
					return
				}
				b.logger.Debug("pipeline.batch.job", "worker", worker, "index", job.Index, "path", job.Path)
				report := b.processor.ProcessFile(ctx, job.Path)
				report.ID = job.DocumentID
				reports[job.Index] = report
			}
		}(w)
	}
	wg.Wait()

	// Slots a cancelled worker never reached still need a terminal state.
	for i, r := range reports {
		if r.ID == uuid.Nil {
			reports[i] = entity.DocumentReport{
				ID:               uuid.New(),
				SourcePath:       paths[i],
				ExtractionFailed: true,
				FailureReason:    "batch cancelled before processing",
				ProcessedAt:      time.Now().UTC(),
			}
		}
	}

	ok := 0
	for _, r := range reports {
		if !r.ExtractionFailed {
			ok++
		}
	}
	b.logger.Info("pipeline.batch.done", "total", len(paths), "ok", ok, "failed", len(paths)-ok)
	return reports
}
