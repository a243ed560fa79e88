package export

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abubakr3800/sc-standards/constants"
	"github.com/abubakr3800/sc-standards/internal/entity"
)

func sampleReport() *entity.DocumentReport {
	return &entity.DocumentReport{
		ID:          uuid.New(),
		SourcePath:  "/data/study.pdf",
		ProjectName: "Headquarters Fit-Out",
		Rooms: []entity.RoomResult{
			{
				Record: entity.RoomRecord{
					RoomName: "Office 1.01",
					RoomType: constants.RoomOffice,
					Parameters: map[constants.ParameterKind]entity.ChosenValue{
						constants.IlluminanceAvg: {Value: 520, Unit: "lux", Confidence: 0.95},
						constants.UGR:            {Value: 16, Confidence: 0.9},
					},
					DataQuality: 0.37,
				},
				Verdicts: []entity.ComplianceVerdict{
					{
						StandardID: "EN_12464_1_Office",
						Overall:    constants.OverallCompliant,
						Evaluated:  2,
						Compliant:  2,
					},
				},
				BestStandard: "EN_12464_1_Office",
			},
		},
		Summary: entity.ReportSummary{RoomCount: 1, MeanDataQuality: 0.37, ComplianceRate: 1},
	}
}

func TestReportXLSXProducesReadableWorkbook(t *testing.T) {
	svc := NewService(nil)

	data, err := svc.ReportXLSX(sampleReport())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	sheets := wb.GetSheetList()
	assert.Contains(t, sheets, "Rooms")
	assert.Contains(t, sheets, "Summary")

	name, err := wb.GetCellValue("Rooms", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Office 1.01", name)

	rtype, err := wb.GetCellValue("Rooms", "B2")
	require.NoError(t, err)
	assert.Equal(t, "office", rtype)
}

func TestReportXLSXFailedReportHasReason(t *testing.T) {
	svc := NewService(nil)
	report := &entity.DocumentReport{
		ID:               uuid.New(),
		SourcePath:       "/data/broken.pdf",
		ExtractionFailed: true,
		FailureReason:    "document timeout",
	}

	data, err := svc.ReportXLSX(report)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Summary")
	require.NoError(t, err)
	found := false
	for _, row := range rows {
		if len(row) >= 2 && row[0] == "Extraction Failed" {
			assert.Equal(t, "document timeout", row[1])
			found = true
		}
	}
	assert.True(t, found)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
	assert.Equal(t, "abcdef", truncate("abcdef", 0))
}
