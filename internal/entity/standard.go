package entity

import "github.com/abubakr3800/sc-standards/constants"

// StandardRequirement is one numeric bound row of a lighting standard.
// At least one of Minimum/Maximum is set. Loaded once at startup and
// read-only thereafter, so pipeline workers may share it freely.
type StandardRequirement struct {
	StandardID  string                  `json:"standard_id"`
	RoomType    constants.RoomType      `json:"application_type"`
	Kind        constants.ParameterKind `json:"parameter_kind"`
	Minimum     *float64                `json:"minimum,omitempty"`
	Maximum     *float64                `json:"maximum,omitempty"`
	Description string                  `json:"description,omitempty"`
}

// Bounded reports whether the row carries at least one bound.
func (r StandardRequirement) Bounded() bool {
	return r.Minimum != nil || r.Maximum != nil
}
