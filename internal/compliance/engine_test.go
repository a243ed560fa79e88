package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abubakr3800/sc-standards/constants"
	"github.com/abubakr3800/sc-standards/internal/entity"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := load([]byte(`{
		"requirements": [
			{"standard_id": "STD_A", "application_type": "office", "parameter_kind": "illuminance_avg", "minimum": 500},
			{"standard_id": "STD_A", "application_type": "office", "parameter_kind": "ugr", "maximum": 19},
			{"standard_id": "STD_A", "application_type": "office", "parameter_kind": "uniformity", "minimum": 0.6},
			{"standard_id": "STD_B", "application_type": "office", "parameter_kind": "illuminance_avg", "minimum": 300},
			{"standard_id": "STD_C", "application_type": "corridor", "parameter_kind": "illuminance_avg", "minimum": 100}
		]
	}`))
	require.NoError(t, err)
	return db
}

func officeRecord(params map[constants.ParameterKind]float64) entity.RoomRecord {
	chosen := make(map[constants.ParameterKind]entity.ChosenValue, len(params))
	for k, v := range params {
		chosen[k] = entity.ChosenValue{Value: v, Confidence: 0.9}
	}
	return entity.RoomRecord{
		RoomName:   "Office 1.01",
		RoomType:   constants.RoomOffice,
		Parameters: chosen,
	}
}

func verdictFor(t *testing.T, verdicts []entity.ComplianceVerdict, standardID string) entity.ComplianceVerdict {
	t.Helper()
	for _, v := range verdicts {
		if v.StandardID == standardID {
			return v
		}
	}
	t.Fatalf("no verdict for %s", standardID)
	return entity.ComplianceVerdict{}
}

func TestEvaluateBoundsAreInclusive(t *testing.T) {
	e := NewEngine(testDB(t), nil)

	record := officeRecord(map[constants.ParameterKind]float64{
		constants.IlluminanceAvg: 500, // exactly the minimum
		constants.UGR:            19,  // exactly the maximum
		constants.Uniformity:     0.6,
	})
	verdicts, best := e.Evaluate(record, []string{"STD_A"})
	require.Len(t, verdicts, 1)

	v := verdicts[0]
	assert.Equal(t, constants.OverallCompliant, v.Overall)
	assert.Equal(t, constants.ParamCompliant, v.PerParameter[constants.IlluminanceAvg])
	assert.Equal(t, constants.ParamCompliant, v.PerParameter[constants.UGR])
	assert.Empty(t, v.Reasons)
	assert.Equal(t, "STD_A", best)
}

func TestEvaluateBelowMinimum(t *testing.T) {
	e := NewEngine(testDB(t), nil)

	record := officeRecord(map[constants.ParameterKind]float64{
		constants.IlluminanceAvg: 200,
		constants.UGR:            16,
		constants.Uniformity:     0.7,
	})
	verdicts, _ := e.Evaluate(record, []string{"STD_A"})
	require.Len(t, verdicts, 1)

	v := verdicts[0]
	assert.Equal(t, constants.OverallPartial, v.Overall)
	assert.Equal(t, constants.ParamNonCompliant, v.PerParameter[constants.IlluminanceAvg])
	require.Len(t, v.Reasons, 1)
	assert.Contains(t, v.Reasons[0], "below required minimum")
	assert.Contains(t, v.Reasons[0], "lux")
}

func TestEvaluateAboveMaximum(t *testing.T) {
	e := NewEngine(testDB(t), nil)

	record := officeRecord(map[constants.ParameterKind]float64{
		constants.UGR: 25,
	})
	verdicts, _ := e.Evaluate(record, []string{"STD_A"})
	require.Len(t, verdicts, 1)

	v := verdicts[0]
	assert.Equal(t, constants.OverallNonComp, v.Overall)
	require.Len(t, v.Reasons, 1)
	assert.Contains(t, v.Reasons[0], "above allowed maximum")
}

func TestEvaluateMissingParameterIsNotEvaluated(t *testing.T) {
	e := NewEngine(testDB(t), nil)

	record := officeRecord(map[constants.ParameterKind]float64{
		constants.IlluminanceAvg: 600,
	})
	verdicts, _ := e.Evaluate(record, []string{"STD_A"})
	require.Len(t, verdicts, 1)

	v := verdicts[0]
	assert.Equal(t, constants.ParamNotEvaluated, v.PerParameter[constants.UGR])
	assert.Equal(t, constants.ParamNotEvaluated, v.PerParameter[constants.Uniformity])
	// missing data never counts as failure
	assert.Equal(t, constants.OverallCompliant, v.Overall)
	assert.Equal(t, 1, v.Evaluated)
}

func TestEvaluateNothingEvaluated(t *testing.T) {
	e := NewEngine(testDB(t), nil)

	verdicts, best := e.Evaluate(officeRecord(nil), []string{"STD_A"})
	require.Len(t, verdicts, 1)
	assert.Equal(t, constants.OverallNotEvaluated, verdicts[0].Overall)
	assert.Empty(t, best)
}

func TestEvaluateSkipsNonCoveringStandards(t *testing.T) {
	e := NewEngine(testDB(t), nil)

	record := officeRecord(map[constants.ParameterKind]float64{
		constants.IlluminanceAvg: 600,
	})
	record.RoomType = constants.RoomCorridor

	verdicts, best := e.Evaluate(record, nil)
	require.Len(t, verdicts, 1)
	assert.Equal(t, "STD_C", verdicts[0].StandardID)
	assert.Equal(t, "STD_C", best)
}

func TestBestStandardPicksHighestCompliantFraction(t *testing.T) {
	e := NewEngine(testDB(t), nil)

	// fails STD_A's 500 minimum but passes STD_B's 300 minimum
	record := officeRecord(map[constants.ParameterKind]float64{
		constants.IlluminanceAvg: 400,
	})
	verdicts, best := e.Evaluate(record, nil)
	require.Len(t, verdicts, 2)
	assert.Equal(t, "STD_B", best)

	a := verdictFor(t, verdicts, "STD_A")
	assert.Equal(t, constants.OverallNonComp, a.Overall)
}

func TestBestStandardTieGoesToMoreEvidence(t *testing.T) {
	e := NewEngine(testDB(t), nil)

	// fully compliant under both; STD_A evaluated more parameters
	record := officeRecord(map[constants.ParameterKind]float64{
		constants.IlluminanceAvg: 600,
		constants.UGR:            15,
	})
	_, best := e.Evaluate(record, nil)
	assert.Equal(t, "STD_A", best)
}
