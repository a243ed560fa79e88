package consolidate

import (
	"log/slog"
	"math"
	"sort"

	"github.com/abubakr3800/sc-standards/constants"
	"github.com/abubakr3800/sc-standards/internal/common"
	"github.com/abubakr3800/sc-standards/internal/entity"
)

// Consolidator turns one RoomSection's candidate pile into a RoomRecord:
// one chosen value per parameter kind plus a data-quality score. This is the
// selection half of the generate-then-select design; it never sees raw text.
type Consolidator struct {
	tuning common.TuningConfig
	logger *slog.Logger
}

func NewConsolidator(tuning common.TuningConfig, logger *slog.Logger) *Consolidator {
	if logger == nil {
		logger = slog.Default()
	}
	if tuning == (common.TuningConfig{}) {
		tuning = common.DefaultTuning()
	}
	return &Consolidator{tuning: tuning, logger: logger}
}

// Consolidate always produces exactly one record, even for an empty section:
// every detected room must surface in the final report so users can see what
// was not extracted.
func (c *Consolidator) Consolidate(section entity.RoomSection) entity.RoomRecord {
	byKind := make(map[constants.ParameterKind][]entity.RawCandidate)
	var contexts []string
	for _, cand := range section.Candidates {
		byKind[cand.Kind] = append(byKind[cand.Kind], cand)
		if len(contexts) < 8 && cand.Excerpt != "" {
			contexts = append(contexts, cand.Excerpt)
		}
	}

	params := make(map[constants.ParameterKind]entity.ChosenValue, len(byKind))
	for kind, cands := range byKind {
		if chosen, ok := c.selectWinner(cands); ok {
			params[kind] = chosen
		}
	}

	record := entity.RoomRecord{
		RoomName:    section.Name,
		Parameters:  params,
		DataQuality: qualityScore(params),
		RoomType:    constants.InferRoomType(section.Name, contexts...),
	}
	c.logger.Debug("consolidate.record",
		"room", record.RoomName,
		"parameters", len(params),
		"quality", record.DataQuality,
	)
	return record
}

// cluster groups near-duplicate values: members vote for one underlying
// value and are averaged.
type cluster struct {
	values     []float64
	confidence float64 // best member confidence
	unit       string
	plausible  bool
}

func (cl cluster) mean() float64 {
	sum := 0.0
	for _, v := range cl.values {
		sum += v
	}
	return sum / float64(len(cl.values))
}

// selectWinner picks one value among a kind's candidates: highest rule
// confidence first, plausibility-range membership second, duplicate votes
// third. Near-duplicates are one cluster; the chosen value is their average
// and the chosen confidence is the strongest member's.
func (c *Consolidator) selectWinner(cands []entity.RawCandidate) (entity.ChosenValue, bool) {
	if len(cands) == 0 {
		return entity.ChosenValue{}, false
	}

	sorted := append([]entity.RawCandidate(nil), cands...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value < sorted[j].Value })

	var clusters []cluster
	for _, cand := range sorted {
		if n := len(clusters); n > 0 && withinTolerance(clusters[n-1].mean(), cand.Value, c.tuning.DuplicateTolerance) {
			cl := &clusters[n-1]
			cl.values = append(cl.values, cand.Value)
			if cand.Confidence > cl.confidence {
				cl.confidence = cand.Confidence
			}
			if cl.unit == "" {
				cl.unit = cand.Unit
			}
			cl.plausible = cl.plausible || cand.Plausible
			continue
		}
		clusters = append(clusters, cluster{
			values:     []float64{cand.Value},
			confidence: cand.Confidence,
			unit:       cand.Unit,
			plausible:  cand.Plausible,
		})
	}

	best := 0
	for i := 1; i < len(clusters); i++ {
		if clusterLess(clusters[best], clusters[i]) {
			best = i
		}
	}
	win := clusters[best]
	return entity.ChosenValue{
		Value:      win.mean(),
		Unit:       win.unit,
		Confidence: win.confidence,
	}, true
}

// clusterLess reports whether b beats a under the selection order.
func clusterLess(a, b cluster) bool {
	if a.confidence != b.confidence {
		return b.confidence > a.confidence
	}
	if a.plausible != b.plausible {
		return b.plausible
	}
	return len(b.values) > len(a.values)
}

func withinTolerance(a, b, tol float64) bool {
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		return true
	}
	return math.Abs(a-b) <= tol*scale
}

// qualityScore is the mean chosen confidence over the expected-parameter
// checklist. A missing parameter counts as zero, so rooms with extraction
// gaps score low instead of hiding them.
func qualityScore(params map[constants.ParameterKind]entity.ChosenValue) float64 {
	core := constants.CoreParameterKinds()
	sum := 0.0
	for _, kind := range core {
		if v, ok := params[kind]; ok {
			sum += v.Confidence
		}
	}
	return sum / float64(len(core))
}
