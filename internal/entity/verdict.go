package entity

import "github.com/abubakr3800/sc-standards/constants"

// ComplianceVerdict is the outcome of checking one RoomRecord against one
// standard. Immutable; terminal artifact feeding report generation.
type ComplianceVerdict struct {
	RoomName   string `json:"room_name"`
	StandardID string `json:"standard_id"`

	PerParameter map[constants.ParameterKind]constants.ParameterStatus `json:"per_parameter_status"`
	Overall      constants.OverallStatus                               `json:"overall_status"`

	// Reasons lists human-readable failure explanations, one per violated
	// bound, in parameter order.
	Reasons []string `json:"reasons,omitempty"`

	// Evaluated and Compliant count non-missing checks; used for
	// best-standard selection.
	Evaluated int `json:"evaluated"`
	Compliant int `json:"compliant"`
}

// CompliantFraction is the share of evaluated parameters that passed.
// Zero when nothing was evaluated.
func (v ComplianceVerdict) CompliantFraction() float64 {
	if v.Evaluated == 0 {
		return 0
	}
	return float64(v.Compliant) / float64(v.Evaluated)
}
