package extract

import "github.com/abubakr3800/sc-standards/constants"

// plausibleRange is the broad physical range for a parameter kind. Values
// outside it keep their candidate but drop to the confidence floor; real
// reports contain typos and unit slips and downstream consolidation is the
// right place to arbitrate.
type plausibleRange struct {
	min, max float64
}

var plausibleRanges = map[constants.ParameterKind]plausibleRange{
	constants.IlluminanceAvg:        {0, 20000},
	constants.IlluminanceMin:        {0, 20000},
	constants.IlluminanceMax:        {0, 30000},
	constants.IlluminanceMaintained: {0, 20000},
	constants.IlluminanceInitial:    {0, 25000},
	constants.Uniformity:            {0, 1},
	constants.UGR:                   {0, 40},
	constants.PowerDensity:          {0, 100},
	constants.PowerTotal:            {0, 100000},
	constants.LuminousEfficacy:      {10, 300},
	constants.ColorTemperature:      {1000, 10000},
	constants.CRI:                   {0, 100},
	constants.DaylightFactor:        {0, 100},
	constants.MountingHeight:        {0.5, 30},
	constants.Area:                  {0.5, 100000},
}

// Plausible reports whether v lies inside the broad physical range for kind.
// Unknown kinds are treated as plausible.
func Plausible(kind constants.ParameterKind, v float64) bool {
	r, ok := plausibleRanges[kind]
	if !ok {
		return true
	}
	return v >= r.min && v <= r.max
}
