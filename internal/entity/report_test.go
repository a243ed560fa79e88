package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abubakr3800/sc-standards/constants"
)

func sampleReport() DocumentReport {
	return DocumentReport{
		ID:          uuid.New(),
		SourcePath:  "/data/study.pdf",
		ProjectName: "Headquarters Fit-Out",
		Rooms: []RoomResult{
			{
				Record: RoomRecord{
					RoomName: "Office 1.01",
					RoomType: constants.RoomOffice,
					Parameters: map[constants.ParameterKind]ChosenValue{
						constants.IlluminanceAvg: {Value: 520, Unit: "lux", Confidence: 0.95},
						constants.UGR:            {Value: 16, Confidence: 0.9},
					},
					DataQuality: 0.37,
				},
				Verdicts: []ComplianceVerdict{
					{
						RoomName:   "Office 1.01",
						StandardID: "EN_12464_1_Office",
						PerParameter: map[constants.ParameterKind]constants.ParameterStatus{
							constants.IlluminanceAvg: constants.ParamCompliant,
							constants.UGR:            constants.ParamCompliant,
							constants.Uniformity:     constants.ParamNotEvaluated,
						},
						Overall:   constants.OverallCompliant,
						Evaluated: 2,
						Compliant: 2,
					},
				},
				BestStandard: "EN_12464_1_Office",
			},
		},
		Pages: []PageExtraction{
			{Page: 1, Method: "layout"},
			{Page: 2, Failed: true, Error: "no strategy produced text"},
		},
		Summary: ReportSummary{
			RoomCount:       1,
			MeanDataQuality: 0.37,
			ComplianceRate:  1,
			MeanIlluminance: 520,
		},
		Standards:   []string{"EN_12464_1_Office"},
		ProcessedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Elapsed:     1500 * time.Millisecond,
	}
}

func TestDocumentReportJSONRoundTrip(t *testing.T) {
	original := sampleReport()

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded DocumentReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestDocumentReportStableFieldNames(t *testing.T) {
	data, err := json.Marshal(sampleReport())
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	for _, key := range []string{"id", "source_path", "rooms", "summary", "processed_at"} {
		assert.Contains(t, generic, key)
	}
}

func TestDocumentReportStatus(t *testing.T) {
	ok := sampleReport()
	assert.Equal(t, constants.JobStatusOK, ok.Status())

	failed := DocumentReport{ExtractionFailed: true, FailureReason: "document timeout"}
	assert.Equal(t, constants.JobStatusFailed, failed.Status())
}

func TestCompliantFraction(t *testing.T) {
	assert.Zero(t, ComplianceVerdict{}.CompliantFraction())
	assert.InDelta(t, 0.5, ComplianceVerdict{Evaluated: 4, Compliant: 2}.CompliantFraction(), 1e-9)
}
