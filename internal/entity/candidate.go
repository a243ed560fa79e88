package entity

import "github.com/abubakr3800/sc-standards/constants"

// RawCandidate is one pattern match for a parameter inside a text region.
// Candidates are immutable once produced; many may exist for the same kind
// within one room. Consolidation picks the winner later — extraction never
// filters beyond a confidence floor.
type RawCandidate struct {
	Kind constants.ParameterKind `json:"kind"`
	// Value is the matched number after unit normalization.
	Value float64 `json:"value"`
	// Unit is the normalized unit ("lux", "W/m2", "K", ...), empty if the
	// match carried no explicit unit.
	Unit string `json:"unit,omitempty"`
	// Excerpt is a short window of source text around the match, kept for
	// audit and debugging.
	Excerpt string `json:"excerpt,omitempty"`
	// Confidence in [0,1] is intrinsic to the rule that matched: tier,
	// explicit unit, and plausibility of the value all feed into it.
	Confidence float64 `json:"confidence"`
	// Offset is the byte offset of the match into the joined document text.
	Offset int `json:"offset"`
	// Page is the 1-based source page, 0 when unknown.
	Page int `json:"page,omitempty"`
	// UnitPresent records whether the pattern matched an explicit unit.
	UnitPresent bool `json:"unit_present"`
	// Plausible records whether the value fell inside the broad physical
	// range for its kind. Implausible candidates survive at a low floor.
	Plausible bool `json:"plausible"`
}
