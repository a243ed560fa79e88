package compliance

import (
	"fmt"
	"log/slog"

	"github.com/abubakr3800/sc-standards/constants"
	"github.com/abubakr3800/sc-standards/internal/entity"
)

// Engine checks consolidated room records against the standards database.
// Bounds are inclusive; a missing parameter is not_evaluated, never a
// failure.
type Engine struct {
	db     *DB
	logger *slog.Logger
}

func NewEngine(db *DB, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{db: db, logger: logger}
}

// DB exposes the loaded standards table for display layers.
func (e *Engine) DB() *DB { return e.db }

// Evaluate checks the record against every candidate standard that covers
// its room type and returns the verdicts plus the best-matching standard ID
// ("" when nothing was evaluated anywhere). Standards with no rows for the
// room type are skipped, not failed.
func (e *Engine) Evaluate(record entity.RoomRecord, standardIDs []string) ([]entity.ComplianceVerdict, string) {
	if len(standardIDs) == 0 {
		standardIDs = e.db.StandardIDs()
	}

	var verdicts []entity.ComplianceVerdict
	for _, id := range standardIDs {
		if !e.db.Covers(id, record.RoomType) {
			e.logger.Debug("compliance.standard_skipped", "standard", id, "room_type", record.RoomType)
			continue
		}
		verdicts = append(verdicts, e.evaluateAgainst(record, id))
	}

	return verdicts, bestStandard(verdicts)
}

func (e *Engine) evaluateAgainst(record entity.RoomRecord, standardID string) entity.ComplianceVerdict {
	v := entity.ComplianceVerdict{
		RoomName:     record.RoomName,
		StandardID:   standardID,
		PerParameter: make(map[constants.ParameterKind]constants.ParameterStatus),
	}

	for _, req := range e.db.RequirementsFor(standardID, record.RoomType) {
		chosen, ok := record.Value(req.Kind)
		if !ok {
			v.PerParameter[req.Kind] = constants.ParamNotEvaluated
			continue
		}
		v.Evaluated++

		status := constants.ParamCompliant
		if req.Minimum != nil && chosen.Value < *req.Minimum {
			status = constants.ParamNonCompliant
			v.Reasons = append(v.Reasons, failureReason(req.Kind, chosen, "below required minimum", *req.Minimum))
		}
		if req.Maximum != nil && chosen.Value > *req.Maximum {
			status = constants.ParamNonCompliant
			v.Reasons = append(v.Reasons, failureReason(req.Kind, chosen, "above allowed maximum", *req.Maximum))
		}
		if status == constants.ParamCompliant {
			v.Compliant++
		}
		v.PerParameter[req.Kind] = status
	}

	v.Overall = overallStatus(v)
	return v
}

func failureReason(kind constants.ParameterKind, chosen entity.ChosenValue, direction string, bound float64) string {
	unit := chosen.Unit
	if unit == "" {
		unit = constants.CanonicalUnit(kind)
	}
	if unit != "" {
		return fmt.Sprintf("%s %.1f %s %s %.1f %s", kind, chosen.Value, unit, direction, bound, unit)
	}
	return fmt.Sprintf("%s %.1f %s %.1f", kind, chosen.Value, direction, bound)
}

// overallStatus: compliant iff every evaluated parameter passed and at
// least one was evaluated; non_compliant iff every evaluated one failed;
// not_evaluated when nothing could be checked; partial otherwise.
func overallStatus(v entity.ComplianceVerdict) constants.OverallStatus {
	switch {
	case v.Evaluated == 0:
		return constants.OverallNotEvaluated
	case v.Compliant == v.Evaluated:
		return constants.OverallCompliant
	case v.Compliant == 0:
		return constants.OverallNonComp
	default:
		return constants.OverallPartial
	}
}

// bestStandard picks the verdict with the highest compliant fraction among
// evaluated parameters; ties go to the one with more evaluated parameters
// (more evidence). Verdicts that evaluated nothing never win.
func bestStandard(verdicts []entity.ComplianceVerdict) string {
	best := ""
	bestFrac := -1.0
	bestEval := 0
	for _, v := range verdicts {
		if v.Evaluated == 0 {
			continue
		}
		frac := v.CompliantFraction()
		if frac > bestFrac || (frac == bestFrac && v.Evaluated > bestEval) {
			best = v.StandardID
			bestFrac = frac
			bestEval = v.Evaluated
		}
	}
	return best
}
