package segment

import (
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"github.com/abubakr3800/sc-standards/internal/entity"
)

const (
	minHeadingLen = 3
	maxHeadingLen = 60
)

// UnknownSection names the whole-document fallback when no headings are
// detected. UnassignedSection collects candidates falling outside every
// detected boundary.
const (
	UnknownSection    = "Unknown"
	UnassignedSection = "Unassigned"
)

// boilerplate fragments that disqualify a line as a room heading even when
// it looks like one. DIALux page furniture mostly.
var headingStopWords = []string{
	"page", "date", "time", "version", "dialux", "relux",
	"report", "calculation", "summary", "contents", "partial luminaires",
}

// Segmenter splits document text into room-scoped sections and assigns each
// candidate to the section whose boundaries contain its offset.
type Segmenter struct {
	logger *slog.Logger
}

func NewSegmenter(logger *slog.Logger) *Segmenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Segmenter{logger: logger}
}

type heading struct {
	name  string
	start int // byte offset of the heading line
	body  int // byte offset just past the heading line
}

// Segment returns the ordered room sections for the document. Every
// candidate lands in exactly one section; ones before the first heading (or
// in a document with stray offsets) go to a synthetic trailing Unassigned
// section. A document with no detected headings becomes a single section
// named Unknown.
func (s *Segmenter) Segment(text string, candidates []entity.RawCandidate) []entity.RoomSection {
	headings := s.detectHeadings(text, candidates)

	if len(headings) == 0 {
		s.logger.Debug("segment.no_headings", "candidates", len(candidates))
		return []entity.RoomSection{{
			Name:       UnknownSection,
			Start:      0,
			End:        len(text),
			Candidates: append([]entity.RawCandidate(nil), candidates...),
		}}
	}

	sections := make([]entity.RoomSection, 0, len(headings)+1)
	for i, h := range headings {
		end := len(text)
		if i+1 < len(headings) {
			end = headings[i+1].start
		}
		sections = append(sections, entity.RoomSection{
			Name:  h.name,
			Start: h.start,
			End:   end,
		})
	}

	unassigned := entity.RoomSection{
		Name:      UnassignedSection,
		Start:     len(text),
		End:       len(text),
		Synthetic: true,
	}

	for _, c := range candidates {
		idx := sort.Search(len(sections), func(i int) bool { return sections[i].End > c.Offset })
		if idx < len(sections) && c.Offset >= sections[idx].Start {
			sections[idx].Candidates = append(sections[idx].Candidates, c)
		} else {
			unassigned.Candidates = append(unassigned.Candidates, c)
		}
	}

	sections = append(sections, unassigned)
	s.logger.Debug("segment.sections", "count", len(sections), "unassigned", len(unassigned.Candidates))
	return sections
}

// detectHeadings keeps lines that look like room headings AND are followed
// by parameter-bearing content before the next tentative heading. Headings
// over empty regions are discarded so decorative titles don't fragment the
// document.
func (s *Segmenter) detectHeadings(text string, candidates []entity.RawCandidate) []heading {
	var tentative []heading
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if isHeadingLine(trimmed) {
			tentative = append(tentative, heading{
				name:  cleanHeading(trimmed),
				start: offset,
				body:  offset + len(line),
			})
		}
		offset += len(line)
	}

	// A line that itself carries a parameter match ("UGR: 16") is data, not
	// a heading.
	filtered := tentative[:0]
	for _, h := range tentative {
		if !hasCandidateIn(candidates, h.start, h.body) {
			filtered = append(filtered, h)
		}
	}

	var kept []heading
	for i, h := range filtered {
		regionEnd := len(text)
		if i+1 < len(filtered) {
			regionEnd = filtered[i+1].start
		}
		if hasCandidateIn(candidates, h.body, regionEnd) {
			kept = append(kept, h)
		}
	}
	return kept
}

func hasCandidateIn(candidates []entity.RawCandidate, start, end int) bool {
	for _, c := range candidates {
		if c.Offset >= start && c.Offset < end {
			return true
		}
	}
	return false
}

// isHeadingLine applies the heading heuristics: short, title-cased or
// all-caps, no sentence-terminal period, mostly letters, no boilerplate.
func isHeadingLine(line string) bool {
	if len(line) < minHeadingLen || len(line) > maxHeadingLen {
		return false
	}
	if strings.HasSuffix(line, ".") || strings.HasSuffix(line, ",") {
		return false
	}
	lower := strings.ToLower(line)
	for _, sw := range headingStopWords {
		if strings.Contains(lower, sw) {
			return false
		}
	}

	letters, digits := 0, 0
	for _, r := range line {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
	}
	if letters < 3 || digits > letters {
		return false
	}
	return isTitleCased(line) || isAllCaps(line)
}

func isTitleCased(line string) bool {
	words := strings.Fields(line)
	if len(words) == 0 {
		return false
	}
	capped := 0
	for _, w := range words {
		r := []rune(w)[0]
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			capped++
		}
	}
	// Allow small connective words ("of", "and") to stay lowercase.
	return capped*3 >= len(words)*2
}

func isAllCaps(line string) bool {
	hasUpper := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}

func cleanHeading(line string) string {
	line = strings.TrimRight(line, ":- \t")
	return strings.Join(strings.Fields(line), " ")
}
