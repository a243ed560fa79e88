package constants

// ParameterKind identifies a lighting parameter extracted from a study report.
type ParameterKind string

// Stable values (store these exact strings in DB and report JSON).
const (
	IlluminanceAvg        ParameterKind = "illuminance_avg"
	IlluminanceMin        ParameterKind = "illuminance_min"
	IlluminanceMax        ParameterKind = "illuminance_max"
	IlluminanceMaintained ParameterKind = "illuminance_maintained"
	IlluminanceInitial    ParameterKind = "illuminance_initial"
	Uniformity            ParameterKind = "uniformity"
	UGR                   ParameterKind = "ugr"
	PowerDensity          ParameterKind = "power_density"
	PowerTotal            ParameterKind = "power_total"
	LuminousEfficacy      ParameterKind = "luminous_efficacy"
	ColorTemperature      ParameterKind = "color_temperature"
	CRI                   ParameterKind = "cri"
	DaylightFactor        ParameterKind = "daylight_factor"
	MountingHeight        ParameterKind = "mounting_height"
	Area                  ParameterKind = "area"
)

var allParameterKinds = []ParameterKind{
	IlluminanceAvg,
	IlluminanceMin,
	IlluminanceMax,
	IlluminanceMaintained,
	IlluminanceInitial,
	Uniformity,
	UGR,
	PowerDensity,
	PowerTotal,
	LuminousEfficacy,
	ColorTemperature,
	CRI,
	DaylightFactor,
	MountingHeight,
	Area,
}

// ParameterKinds returns every known kind in declaration order.
func ParameterKinds() []ParameterKind {
	out := make([]ParameterKind, len(allParameterKinds))
	copy(out, allParameterKinds)
	return out
}

// CoreParameterKinds is the expected-parameter checklist used for
// data-quality scoring. A room missing one of these scores it as zero.
func CoreParameterKinds() []ParameterKind {
	return []ParameterKind{IlluminanceAvg, Uniformity, UGR, PowerDensity, Area}
}

// CanonicalUnit returns the normalized unit string for a kind, or "" for
// dimensionless parameters.
func CanonicalUnit(k ParameterKind) string {
	switch k {
	case IlluminanceAvg, IlluminanceMin, IlluminanceMax, IlluminanceMaintained, IlluminanceInitial:
		return "lux"
	case PowerDensity:
		return "W/m2"
	case PowerTotal:
		return "W"
	case LuminousEfficacy:
		return "lm/W"
	case ColorTemperature:
		return "K"
	case DaylightFactor:
		return "%"
	case MountingHeight:
		return "m"
	case Area:
		return "m2"
	default:
		return ""
	}
}

// IsKnownParameterKind reports whether s names a known kind.
func IsKnownParameterKind(s string) bool {
	for _, k := range allParameterKinds {
		if string(k) == s {
			return true
		}
	}
	return false
}
