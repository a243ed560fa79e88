package export

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abubakr3800/sc-standards/constants"
	"github.com/abubakr3800/sc-standards/internal/entity"
)

// Service produces XLSX bytes from finished document reports.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// exportColumns is the fixed column order of the Rooms sheet. Parameter
// columns carry the chosen value; confidence and verdict get their own
// trailing columns.
var exportParameters = []constants.ParameterKind{
	constants.IlluminanceAvg,
	constants.IlluminanceMin,
	constants.Uniformity,
	constants.UGR,
	constants.PowerDensity,
	constants.ColorTemperature,
	constants.CRI,
	constants.Area,
}

// ReportXLSX renders one report as a workbook with a Rooms sheet and a
// Summary sheet.
func (s *Service) ReportXLSX(report *entity.DocumentReport) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const roomsSheet = "Rooms"
	if err := f.SetSheetName("Sheet1", roomsSheet); err != nil {
		return nil, err
	}

	headers := []string{"Room", "Room Type", "Data Quality"}
	for _, k := range exportParameters {
		h := string(k)
		if unit := constants.CanonicalUnit(k); unit != "" {
			h = fmt.Sprintf("%s (%s)", k, unit)
		}
		headers = append(headers, h)
	}
	headers = append(headers, "Best Standard", "Overall", "Reasons")
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(roomsSheet, cell, h)
	}

	row := 2
	for _, room := range report.Rooms {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(roomsSheet, cell, v)
		}

		write(1, room.Record.RoomName)
		write(2, string(room.Record.RoomType))
		write(3, room.Record.DataQuality)
		col := 4
		for _, k := range exportParameters {
			if v, ok := room.Record.Value(k); ok {
				write(col, v.Value)
			}
			col++
		}
		write(col, room.BestStandard)
		write(col+1, string(bestOverall(room)))
		write(col+2, truncate(joinReasons(room), 200))
		row++
	}

	_ = f.SetColWidth(roomsSheet, "A", "A", 30)
	_ = f.SetColWidth(roomsSheet, "B", "C", 14)
	lastReason, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.SetColWidth(roomsSheet, lastReason, lastReason, 60)

	if err := s.writeSummary(f, report); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"report_id", report.ID.String(),
		"rooms", len(report.Rooms),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (s *Service) writeSummary(f *excelize.File, report *entity.DocumentReport) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][2]any{
		{"Source", report.SourcePath},
		{"Project", report.ProjectName},
		{"Processed At", report.ProcessedAt.Format(time.RFC3339)},
		{"Rooms", report.Summary.RoomCount},
		{"Total Area (m2)", report.Summary.TotalArea},
		{"Mean Data Quality", report.Summary.MeanDataQuality},
		{"Compliance Rate", report.Summary.ComplianceRate},
		{"Mean Illuminance (lx)", report.Summary.MeanIlluminance},
		{"Mean UGR", report.Summary.MeanUGR},
		{"Mean Power Density (W/m2)", report.Summary.MeanPowerDensity},
	}
	if report.ExtractionFailed {
		rows = append(rows, [2]any{"Extraction Failed", report.FailureReason})
	}
	for i, r := range rows {
		keyCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valCell, _ := excelize.CoordinatesToCellName(2, i+1)
		_ = f.SetCellValue(sheet, keyCell, r[0])
		_ = f.SetCellValue(sheet, valCell, r[1])
	}
	_ = f.SetColWidth(sheet, "A", "A", 26)
	_ = f.SetColWidth(sheet, "B", "B", 60)
	return nil
}

func bestOverall(room entity.RoomResult) constants.OverallStatus {
	for _, v := range room.Verdicts {
		if v.StandardID == room.BestStandard {
			return v.Overall
		}
	}
	return constants.OverallNotEvaluated
}

func joinReasons(room entity.RoomResult) string {
	var reasons []string
	for _, v := range room.Verdicts {
		if v.StandardID != room.BestStandard {
			continue
		}
		reasons = append(reasons, v.Reasons...)
	}
	sort.Strings(reasons)
	out := ""
	for i, r := range reasons {
		if i > 0 {
			out += "; "
		}
		out += r
	}
	return out
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
