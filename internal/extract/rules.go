package extract

import (
	"regexp"

	"github.com/abubakr3800/sc-standards/constants"
)

// Tier orders pattern rules from most to least specific. The tier a match
// came from is the dominant term of its confidence.
type Tier int

const (
	// TierAnchored rules require a parameter keyword and (where the kind has
	// one) an explicit unit next to the number.
	TierAnchored Tier = iota
	// TierUnit rules require only the unit: "500 lux" with no keyword.
	TierUnit
	// TierBare rules accept a bare number near a keyword within a short
	// window. Weakest signal, lowest confidence.
	TierBare
)

// Rule is one compiled pattern for one parameter kind. The first capture
// group is the numeric value.
type Rule struct {
	Kind constants.ParameterKind
	Tier Tier
	// UnitPresent records whether the pattern itself guarantees an explicit
	// unit in the matched text.
	UnitPresent bool
	Re          *regexp.Regexp
}

func rule(kind constants.ParameterKind, tier Tier, unit bool, expr string) Rule {
	return Rule{Kind: kind, Tier: tier, UnitPresent: unit, Re: regexp.MustCompile(`(?i)` + expr)}
}

// num matches a decimal number with either a dot or a comma separator
// (DIALux exports use both).
const num = `(\d+(?:[.,]\d+)?)`

const luxUnit = `(?:lux|lx)`
const pdUnit = `(?:w\s*/\s*m(?:²|2|\^2)|watt\s*/\s*m(?:²|2))`
const areaUnit = `(?:m²|m2|m\^2|sqm)`

// DefaultRules returns the full prioritized rule set, ordered within each
// kind from most to least specific. The ordering is load-bearing: the
// extractor keeps only the first (highest-tier) match at a given offset.
func DefaultRules() []Rule {
	return []Rule{
		// --- illuminance, average ---
		rule(constants.IlluminanceAvg, TierAnchored, true,
			`(?:average|avg|mean|e\s*avg|em)\s*(?:illuminance)?[:\s=]\s*`+num+`\s*`+luxUnit),
		rule(constants.IlluminanceAvg, TierAnchored, true,
			`illuminance[:\s=]\s*`+num+`\s*`+luxUnit),
		rule(constants.IlluminanceAvg, TierAnchored, true,
			num+`\s*`+luxUnit+`\s*\((?:avg|mean|em)\)`),
		rule(constants.IlluminanceAvg, TierUnit, true,
			num+`\s*`+luxUnit+`\b`),
		rule(constants.IlluminanceAvg, TierBare, false,
			`(?:illuminance|average|e\s*avg|em)\W{1,10}`+num+`\b`),

		// --- illuminance, minimum ---
		rule(constants.IlluminanceMin, TierAnchored, true,
			`(?:minimum|min|e\s*min|emin)\s*(?:illuminance)?[:\s=]\s*`+num+`\s*`+luxUnit),
		rule(constants.IlluminanceMin, TierAnchored, true,
			num+`\s*`+luxUnit+`\s*\(min(?:imum)?\)`),
		rule(constants.IlluminanceMin, TierBare, false,
			`\bemin\W{1,10}`+num+`\b`),

		// --- illuminance, maximum ---
		rule(constants.IlluminanceMax, TierAnchored, true,
			`(?:maximum|max|e\s*max|emax)\s*(?:illuminance)?[:\s=]\s*`+num+`\s*`+luxUnit),
		rule(constants.IlluminanceMax, TierAnchored, true,
			num+`\s*`+luxUnit+`\s*\(max(?:imum)?\)`),
		rule(constants.IlluminanceMax, TierBare, false,
			`\bemax\W{1,10}`+num+`\b`),

		// --- illuminance, maintained / initial ---
		rule(constants.IlluminanceMaintained, TierAnchored, true,
			`maintained\s*(?:illuminance)?[:\s=]\s*`+num+`\s*`+luxUnit),
		rule(constants.IlluminanceMaintained, TierAnchored, true,
			num+`\s*`+luxUnit+`\s*\(maintained\)`),
		rule(constants.IlluminanceInitial, TierAnchored, true,
			`initial\s*(?:illuminance)?[:\s=]\s*`+num+`\s*`+luxUnit),

		// --- uniformity ---
		rule(constants.Uniformity, TierAnchored, false,
			`(?:uniformity|u0|uo)\s*(?:ratio)?[:\s=]\s*`+num+`\b`),
		rule(constants.Uniformity, TierAnchored, false,
			num+`\s*\(u0\)`),
		rule(constants.Uniformity, TierAnchored, false,
			`(?:emin\s*/\s*emax|min\s*/\s*max)[:\s=]\s*`+num+`\b`),
		rule(constants.Uniformity, TierBare, false,
			`uniform\w*\W{1,10}`+num+`\b`),

		// --- glare ---
		rule(constants.UGR, TierAnchored, false,
			`(?:ugr|u\s*g\s*r|glare\s*rating|glare\s*index)[:\s=<]\s*`+num+`\b`),
		rule(constants.UGR, TierAnchored, false,
			num+`\s*\(ugr\)`),
		rule(constants.UGR, TierBare, false,
			`\bglare\W{1,10}`+num+`\b`),

		// --- power density ---
		rule(constants.PowerDensity, TierAnchored, true,
			`(?:power\s*density|specific\s*power|connected\s*load)[:\s=]\s*`+num+`\s*`+pdUnit),
		rule(constants.PowerDensity, TierUnit, true,
			num+`\s*`+pdUnit),
		rule(constants.PowerDensity, TierBare, false,
			`power\s*density\W{1,10}`+num+`\b`),

		// --- total power ---
		rule(constants.PowerTotal, TierAnchored, true,
			`(?:total\s*power|power\s*total|ptotal|pt)[:\s=]\s*`+num+`\s*(?:w|watt)s?\b`),
		rule(constants.PowerTotal, TierAnchored, true,
			num+`\s*(?:w|watt)s?\s*\(total\)`),

		// --- luminous efficacy ---
		rule(constants.LuminousEfficacy, TierAnchored, true,
			`(?:luminous\s*)?efficacy[:\s=]\s*`+num+`\s*lm\s*/\s*w`),
		rule(constants.LuminousEfficacy, TierUnit, true,
			num+`\s*lm\s*/\s*w\b`),

		// --- colour temperature ---
		rule(constants.ColorTemperature, TierAnchored, true,
			`(?:colou?r\s*temperature|cct|ct)[:\s=]\s*`+num+`\s*(?:k|kelvin)\b`),
		rule(constants.ColorTemperature, TierUnit, true,
			num+`\s*(?:k|kelvin)\b`),

		// --- CRI ---
		rule(constants.CRI, TierAnchored, false,
			`\b(?:colou?r\s*rendering\s*index|cri|ra)\s*[:\s=>]\s*`+num+`\b`),
		rule(constants.CRI, TierAnchored, false,
			num+`\s*\((?:cri|ra)\)`),

		// --- daylight factor ---
		rule(constants.DaylightFactor, TierAnchored, true,
			`(?:daylight\s*factor|df)[:\s=]\s*`+num+`\s*%`),

		// --- mounting height ---
		rule(constants.MountingHeight, TierAnchored, true,
			`(?:mounting\s*height|luminaire\s*height)[:\s=]\s*`+num+`\s*m\b`),
		rule(constants.MountingHeight, TierBare, false,
			`mounting\s*height\W{1,10}`+num+`\b`),

		// --- area ---
		rule(constants.Area, TierAnchored, true,
			`(?:floor\s*)?(?:area|surface|size)[:\s=]\s*`+num+`\s*`+areaUnit),
		rule(constants.Area, TierUnit, true,
			num+`\s*`+areaUnit),
	}
}

// unitFor maps a kind with a guaranteed unit match onto the normalized unit
// string recorded on the candidate.
func unitFor(kind constants.ParameterKind, unitPresent bool) string {
	if !unitPresent {
		return ""
	}
	return constants.CanonicalUnit(kind)
}
