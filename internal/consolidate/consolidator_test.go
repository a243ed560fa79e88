package consolidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abubakr3800/sc-standards/constants"
	"github.com/abubakr3800/sc-standards/internal/common"
	"github.com/abubakr3800/sc-standards/internal/entity"
)

func cand(kind constants.ParameterKind, value, confidence float64, plausible bool) entity.RawCandidate {
	return entity.RawCandidate{
		Kind:       kind,
		Value:      value,
		Confidence: confidence,
		Plausible:  plausible,
	}
}

func TestConsolidateEmptySectionStillProducesRecord(t *testing.T) {
	c := NewConsolidator(common.DefaultTuning(), nil)

	rec := c.Consolidate(entity.RoomSection{Name: "Office 2.03"})
	assert.Equal(t, "Office 2.03", rec.RoomName)
	assert.Empty(t, rec.Parameters)
	assert.Zero(t, rec.DataQuality)
}

func TestConsolidateOneChosenValuePerKind(t *testing.T) {
	c := NewConsolidator(common.DefaultTuning(), nil)

	section := entity.RoomSection{
		Name: "Office 1.01",
		Candidates: []entity.RawCandidate{
			cand(constants.IlluminanceAvg, 500, 0.95, true),
			cand(constants.IlluminanceAvg, 200, 0.45, true),
			cand(constants.UGR, 16, 0.9, true),
			cand(constants.UGR, 17, 0.45, true),
		},
	}

	rec := c.Consolidate(section)
	require.Len(t, rec.Parameters, 2)

	illum, ok := rec.Value(constants.IlluminanceAvg)
	require.True(t, ok)
	assert.Equal(t, 500.0, illum.Value)

	ugr, ok := rec.Value(constants.UGR)
	require.True(t, ok)
	assert.Equal(t, 16.0, ugr.Value)
}

func TestConsolidateNearDuplicatesVoteAndAverage(t *testing.T) {
	c := NewConsolidator(common.DefaultTuning(), nil)

	section := entity.RoomSection{
		Name: "Office 1.01",
		Candidates: []entity.RawCandidate{
			cand(constants.IlluminanceAvg, 500, 0.95, true),
			cand(constants.IlluminanceAvg, 501, 0.45, true),
			cand(constants.IlluminanceAvg, 200, 0.7, true),
		},
	}

	rec := c.Consolidate(section)
	illum, ok := rec.Value(constants.IlluminanceAvg)
	require.True(t, ok)
	// 500 and 501 merge into one cluster; its value is the member mean and
	// its confidence the strongest member's
	assert.InDelta(t, 500.5, illum.Value, 1e-9)
	assert.InDelta(t, 0.95, illum.Confidence, 1e-9)
}

func TestConsolidateConfidenceBeatsVotes(t *testing.T) {
	c := NewConsolidator(common.DefaultTuning(), nil)

	section := entity.RoomSection{
		Name: "Office 1.01",
		Candidates: []entity.RawCandidate{
			cand(constants.UGR, 30, 0.45, true),
			cand(constants.UGR, 30, 0.45, true),
			cand(constants.UGR, 16, 0.9, true),
		},
	}

	rec := c.Consolidate(section)
	ugr, ok := rec.Value(constants.UGR)
	require.True(t, ok)
	assert.Equal(t, 16.0, ugr.Value)
}

func TestConsolidatePlausibilityBreaksConfidenceTies(t *testing.T) {
	c := NewConsolidator(common.DefaultTuning(), nil)

	section := entity.RoomSection{
		Name: "Office 1.01",
		Candidates: []entity.RawCandidate{
			cand(constants.UGR, 99, 0.7, false),
			cand(constants.UGR, 18, 0.7, true),
		},
	}

	rec := c.Consolidate(section)
	ugr, ok := rec.Value(constants.UGR)
	require.True(t, ok)
	assert.Equal(t, 18.0, ugr.Value)
}

func TestConsolidateVotesBreakRemainingTies(t *testing.T) {
	c := NewConsolidator(common.DefaultTuning(), nil)

	section := entity.RoomSection{
		Name: "Office 1.01",
		Candidates: []entity.RawCandidate{
			cand(constants.IlluminanceAvg, 300, 0.7, true),
			cand(constants.IlluminanceAvg, 300, 0.7, true),
			cand(constants.IlluminanceAvg, 800, 0.7, true),
		},
	}

	rec := c.Consolidate(section)
	illum, ok := rec.Value(constants.IlluminanceAvg)
	require.True(t, ok)
	assert.Equal(t, 300.0, illum.Value)
}

func TestConsolidateQualityScore(t *testing.T) {
	c := NewConsolidator(common.DefaultTuning(), nil)

	// all five checklist parameters at full confidence
	full := entity.RoomSection{
		Name: "Office 1.01",
		Candidates: []entity.RawCandidate{
			cand(constants.IlluminanceAvg, 500, 1.0, true),
			cand(constants.Uniformity, 0.6, 1.0, true),
			cand(constants.UGR, 16, 1.0, true),
			cand(constants.PowerDensity, 8, 1.0, true),
			cand(constants.Area, 24, 1.0, true),
		},
	}
	assert.InDelta(t, 1.0, c.Consolidate(full).DataQuality, 1e-9)

	// one checklist parameter out of five
	partial := entity.RoomSection{
		Name: "Office 1.01",
		Candidates: []entity.RawCandidate{
			cand(constants.IlluminanceAvg, 500, 0.9, true),
		},
	}
	assert.InDelta(t, 0.18, c.Consolidate(partial).DataQuality, 1e-9)

	// non-checklist parameters do not move the score
	offList := entity.RoomSection{
		Name: "Office 1.01",
		Candidates: []entity.RawCandidate{
			cand(constants.ColorTemperature, 4000, 1.0, true),
			cand(constants.CRI, 80, 1.0, true),
		},
	}
	assert.Zero(t, c.Consolidate(offList).DataQuality)
}

func TestConsolidateInfersRoomTypeFromName(t *testing.T) {
	c := NewConsolidator(common.DefaultTuning(), nil)

	rec := c.Consolidate(entity.RoomSection{Name: "Corridor West Wing"})
	assert.Equal(t, constants.RoomCorridor, rec.RoomType)

	rec = c.Consolidate(entity.RoomSection{Name: "Room 2.14"})
	assert.Equal(t, constants.RoomUnknown, rec.RoomType)
}

func TestConsolidateInfersRoomTypeFromExcerptContext(t *testing.T) {
	c := NewConsolidator(common.DefaultTuning(), nil)

	section := entity.RoomSection{
		Name: "Room 2.14",
		Candidates: []entity.RawCandidate{
			{Kind: constants.IlluminanceAvg, Value: 500, Confidence: 0.9, Plausible: true,
				Excerpt: "open plan workstations, average illuminance: 500 lux"},
		},
	}
	assert.Equal(t, constants.RoomOffice, c.Consolidate(section).RoomType)
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, withinTolerance(500, 501, 0.02))
	assert.True(t, withinTolerance(0, 0, 0.02))
	assert.False(t, withinTolerance(500, 520, 0.02))
}
