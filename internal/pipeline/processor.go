package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abubakr3800/sc-standards/constants"
	"github.com/abubakr3800/sc-standards/internal/compliance"
	"github.com/abubakr3800/sc-standards/internal/consolidate"
	"github.com/abubakr3800/sc-standards/internal/entity"
	"github.com/abubakr3800/sc-standards/internal/extract"
	"github.com/abubakr3800/sc-standards/internal/segment"
	"github.com/abubakr3800/sc-standards/internal/textsource"
)

// TextSourcer is the document-text plug-in point. Satisfied by
// textsource.Source; tests substitute a stub.
type TextSourcer interface {
	Extract(ctx context.Context, path string) (textsource.Result, error)
}

// Processor runs one document through the full pipeline: text -> candidates
// -> room sections -> consolidated records -> compliance verdicts. One
// Processor serves many documents; each ProcessFile call owns all of its
// intermediate state, so concurrent calls only share the read-only
// standards table.
type Processor struct {
	Source       TextSourcer
	Extractor    *extract.Extractor
	Segmenter    *segment.Segmenter
	Consolidator *consolidate.Consolidator
	Engine       *compliance.Engine
	// Standards restricts which standards are evaluated; empty means all
	// loaded ones.
	Standards []string
	// Timeout bounds one document end to end. Zero disables it.
	Timeout time.Duration
	Logger  *slog.Logger
}

func NewProcessor(source TextSourcer, ex *extract.Extractor, seg *segment.Segmenter, cons *consolidate.Consolidator, eng *compliance.Engine, timeout time.Duration, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Source:       source,
		Extractor:    ex,
		Segmenter:    seg,
		Consolidator: cons,
		Engine:       eng,
		Timeout:      timeout,
		Logger:       logger,
	}
}

// ProcessFile always returns a well-formed report: extraction failures and
// timeouts yield a report with ExtractionFailed set and zero rooms, never an
// error or a partial room set.
func (p *Processor) ProcessFile(ctx context.Context, path string) entity.DocumentReport {
	start := time.Now()
	report := entity.DocumentReport{
		ID:          uuid.New(),
		SourcePath:  path,
		Standards:   p.Standards,
		ProcessedAt: start.UTC(),
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	res, err := p.Source.Extract(ctx, path)
	for _, m := range res.Methods {
		report.Pages = append(report.Pages, entity.PageExtraction{
			Page:   m.Page,
			Method: m.Method,
			Failed: m.Failed,
			Error:  m.Err,
		})
	}
	if err != nil {
		p.Logger.Error("pipeline.textsource.failed", "path", path, "err", err)
		return p.failed(report, start, err.Error())
	}

	text, starts := res.JoinedText()
	report.ProjectName = projectName(text)

	candidates := p.Extractor.Extract(text)
	for i := range candidates {
		candidates[i].Page = res.PageAt(candidates[i].Offset, starts)
	}
	if err := ctx.Err(); err != nil {
		return p.failed(report, start, "document timeout during extraction")
	}
	p.Logger.Info("pipeline.extract.ok", "path", path, "candidates", len(candidates))

	sections := p.Segmenter.Segment(text, candidates)
	if err := ctx.Err(); err != nil {
		return p.failed(report, start, "document timeout during segmentation")
	}

	for _, section := range sections {
		if section.Synthetic && len(section.Candidates) == 0 {
			continue
		}
		record := p.Consolidator.Consolidate(section)
		verdicts, best := p.Engine.Evaluate(record, p.Standards)
		report.Rooms = append(report.Rooms, entity.RoomResult{
			Record:       record,
			Verdicts:     verdicts,
			BestStandard: best,
		})
	}
	if err := ctx.Err(); err != nil {
		return p.failed(report, start, "document timeout during consolidation")
	}

	report.Summary = summarize(report.Rooms)
	report.Elapsed = time.Since(start)
	p.Logger.Info("pipeline.document.ok",
		"path", path,
		"rooms", len(report.Rooms),
		"mean_quality", report.Summary.MeanDataQuality,
		"elapsed_ms", report.Elapsed.Milliseconds(),
	)
	return report
}

// failed finalizes a report as a document-level extraction failure. Partial
// room sets are discarded: inconsistent consolidation state is not safe to
// present as final.
func (p *Processor) failed(report entity.DocumentReport, start time.Time, reason string) entity.DocumentReport {
	report.Rooms = nil
	report.ExtractionFailed = true
	report.FailureReason = reason
	report.Elapsed = time.Since(start)
	return report
}

// projectName returns the first plausible title line of the document,
// skipping report boilerplate.
func projectName(text string) string {
	skip := []string{"page", "date", "time", "version", "dialux", "relux", "report", "calculation"}
	lines := strings.Split(text, "\n")
	if len(lines) > 20 {
		lines = lines[:20]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 6 || isAllDigits(line) {
			continue
		}
		lower := strings.ToLower(line)
		boilerplate := false
		for _, s := range skip {
			if strings.Contains(lower, s) {
				boilerplate = true
				break
			}
		}
		if !boilerplate {
			return line
		}
	}
	return ""
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func summarize(rooms []entity.RoomResult) entity.ReportSummary {
	s := entity.ReportSummary{RoomCount: len(rooms)}
	if len(rooms) == 0 {
		return s
	}

	var qualitySum float64
	compliant := 0
	var illumSum, ugrSum, pdSum float64
	var illumN, ugrN, pdN int
	for _, room := range rooms {
		qualitySum += room.Record.DataQuality
		if v, ok := room.Record.Value(constants.Area); ok {
			s.TotalArea += v.Value
		}
		if v, ok := room.Record.Value(constants.IlluminanceAvg); ok {
			illumSum += v.Value
			illumN++
		}
		if v, ok := room.Record.Value(constants.UGR); ok {
			ugrSum += v.Value
			ugrN++
		}
		if v, ok := room.Record.Value(constants.PowerDensity); ok {
			pdSum += v.Value
			pdN++
		}
		for _, v := range room.Verdicts {
			if v.StandardID == room.BestStandard && v.Overall == constants.OverallCompliant {
				compliant++
				break
			}
		}
	}

	s.MeanDataQuality = qualitySum / float64(len(rooms))
	s.ComplianceRate = float64(compliant) / float64(len(rooms))
	if illumN > 0 {
		s.MeanIlluminance = illumSum / float64(illumN)
	}
	if ugrN > 0 {
		s.MeanUGR = ugrSum / float64(ugrN)
	}
	if pdN > 0 {
		s.MeanPowerDensity = pdSum / float64(pdN)
	}
	return s
}
