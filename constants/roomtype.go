package constants

import "strings"

// RoomType is the inferred application type of a room, used to select the
// matching standard requirement rows.
type RoomType string

const (
	RoomOffice     RoomType = "office"
	RoomConference RoomType = "conference"
	RoomCorridor   RoomType = "corridor"
	RoomReception  RoomType = "reception"
	RoomStorage    RoomType = "storage"
	RoomIndustrial RoomType = "industrial"
	RoomUnknown    RoomType = "unknown"
)

var allRoomTypes = []RoomType{
	RoomOffice,
	RoomConference,
	RoomCorridor,
	RoomReception,
	RoomStorage,
	RoomIndustrial,
	RoomUnknown,
}

// roomKeywords maps lowercase name fragments to a room type. Order matters:
// the first matching keyword wins, so more specific fragments come first.
var roomKeywords = []struct {
	keyword string
	rtype   RoomType
}{
	{"conference", RoomConference},
	{"meeting", RoomConference},
	{"presentation", RoomConference},
	{"boardroom", RoomConference},
	{"corridor", RoomCorridor},
	{"hallway", RoomCorridor},
	{"passage", RoomCorridor},
	{"stair", RoomCorridor},
	{"reception", RoomReception},
	{"lobby", RoomReception},
	{"entrance", RoomReception},
	{"storage", RoomStorage},
	{"warehouse", RoomStorage},
	{"archive", RoomStorage},
	{"store", RoomStorage},
	{"industrial", RoomIndustrial},
	{"factory", RoomIndustrial},
	{"workshop", RoomIndustrial},
	{"production", RoomIndustrial},
	{"assembly", RoomIndustrial},
	{"office", RoomOffice},
	{"workplace", RoomOffice},
	{"open plan", RoomOffice},
	{"desk", RoomOffice},
}

// InferRoomType guesses the application type from a room name plus any
// context strings. First matching keyword wins; default is RoomUnknown.
func InferRoomType(name string, context ...string) RoomType {
	haystack := strings.ToLower(name)
	for _, c := range context {
		haystack += " " + strings.ToLower(c)
	}
	for _, kw := range roomKeywords {
		if strings.Contains(haystack, kw.keyword) {
			return kw.rtype
		}
	}
	return RoomUnknown
}

// CanonicalizeRoomType maps an arbitrary string onto a known RoomType.
func CanonicalizeRoomType(input string) (RoomType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	for _, rt := range allRoomTypes {
		if normalized == string(rt) {
			return rt, true
		}
	}
	return RoomUnknown, false
}

// RoomTypes returns every known room type.
func RoomTypes() []RoomType {
	out := make([]RoomType, len(allRoomTypes))
	copy(out, allRoomTypes)
	return out
}
