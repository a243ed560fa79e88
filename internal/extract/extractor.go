package extract

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/abubakr3800/sc-standards/constants"
	"github.com/abubakr3800/sc-standards/internal/common"
	"github.com/abubakr3800/sc-standards/internal/entity"
)

const excerptWindow = 40

// Extractor applies the tiered pattern rules to raw text and over-generates
// candidates: every match becomes a RawCandidate, implausible values
// included (at the confidence floor). Selection happens later, in
// consolidation — premature filtering loses data that heterogeneous report
// layouts hide in odd places.
type Extractor struct {
	rules  []Rule
	tuning common.TuningConfig
	logger *slog.Logger
}

// NewExtractor builds an extractor over the default rule set.
func NewExtractor(tuning common.TuningConfig, logger *slog.Logger) *Extractor {
	return NewExtractorWithRules(DefaultRules(), tuning, logger)
}

// NewExtractorWithRules builds an extractor over a custom rule set.
func NewExtractorWithRules(rules []Rule, tuning common.TuningConfig, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if tuning == (common.TuningConfig{}) {
		tuning = common.DefaultTuning()
	}
	return &Extractor{rules: rules, tuning: tuning, logger: logger}
}

// Extract returns every candidate the text matches, ordered by offset.
// Never fails: malformed or empty input yields an empty slice.
func (e *Extractor) Extract(text string) []entity.RawCandidate {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	// One number position yields at most one candidate per kind; rules are
	// ordered most specific first, so the first claim wins.
	type claim struct {
		kind   constants.ParameterKind
		offset int
	}
	claimed := make(map[claim]bool)

	var out []entity.RawCandidate
	for _, r := range e.rules {
		for _, m := range r.Re.FindAllStringSubmatchIndex(text, -1) {
			if len(m) < 4 || m[2] < 0 {
				continue
			}
			valueStart, valueEnd := m[2], m[3]
			v, err := parseNumber(text[valueStart:valueEnd])
			if err != nil {
				continue
			}
			c := claim{kind: r.Kind, offset: valueStart}
			if claimed[c] {
				continue
			}
			claimed[c] = true

			plausible := Plausible(r.Kind, v)
			out = append(out, entity.RawCandidate{
				Kind:        r.Kind,
				Value:       v,
				Unit:        unitFor(r.Kind, r.UnitPresent),
				Excerpt:     excerpt(text, m[0], m[1]),
				Confidence:  e.confidence(r, plausible),
				Offset:      m[0],
				UnitPresent: r.UnitPresent,
				Plausible:   plausible,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	e.logger.Debug("extract.candidates", "count", len(out))
	return out
}

// confidence combines rule tier, unit presence and plausibility. Implausible
// values are floored, not dropped.
func (e *Extractor) confidence(r Rule, plausible bool) float64 {
	if !plausible {
		return e.tuning.ConfidenceFloor
	}
	var score float64
	switch r.Tier {
	case TierAnchored:
		score = e.tuning.TierAnchored
	case TierUnit:
		score = e.tuning.TierUnit
	default:
		score = e.tuning.TierBare
	}
	if r.UnitPresent {
		score += e.tuning.UnitBonus
	}
	if score > 1 {
		score = 1
	}
	return score
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

func excerpt(text string, start, end int) string {
	lo := start - excerptWindow
	if lo < 0 {
		lo = 0
	}
	hi := end + excerptWindow
	if hi > len(text) {
		hi = len(text)
	}
	return strings.ToValidUTF8(strings.TrimSpace(text[lo:hi]), "")
}
