package entity

import "github.com/abubakr3800/sc-standards/constants"

// RoomSection is a room-scoped slice of the document text with the raw
// candidates that fall inside its boundaries. Sections own their candidates;
// both are discarded once a RoomRecord has been consolidated.
type RoomSection struct {
	Name       string         `json:"name"`
	Start      int            `json:"start"`
	End        int            `json:"end"`
	Candidates []RawCandidate `json:"candidates"`
	// Synthetic marks the trailing section that collects candidates falling
	// outside every detected heading boundary.
	Synthetic bool `json:"synthetic,omitempty"`
}

// ChosenValue is the consolidated winner for one parameter kind.
type ChosenValue struct {
	Value      float64 `json:"value"`
	Unit       string  `json:"unit,omitempty"`
	Confidence float64 `json:"confidence"`
}

// RoomRecord is the consolidated result for one room: at most one chosen
// value per parameter kind. Immutable once produced.
type RoomRecord struct {
	RoomName   string                                  `json:"room_name"`
	Parameters map[constants.ParameterKind]ChosenValue `json:"parameters"`
	// DataQuality in [0,1] is the mean chosen confidence over the
	// expected-parameter checklist; missing parameters count as zero.
	DataQuality float64            `json:"data_quality_score"`
	RoomType    constants.RoomType `json:"room_type_guess"`
}

// Value returns the chosen value for a kind, if present.
func (r RoomRecord) Value(k constants.ParameterKind) (ChosenValue, bool) {
	v, ok := r.Parameters[k]
	return v, ok
}
