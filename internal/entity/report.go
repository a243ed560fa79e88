package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/abubakr3800/sc-standards/constants"
)

// RoomResult pairs a consolidated room with its verdicts against every
// requested standard.
type RoomResult struct {
	Record   RoomRecord          `json:"record"`
	Verdicts []ComplianceVerdict `json:"verdicts,omitempty"`
	// BestStandard is the standard with the highest compliant fraction among
	// evaluated parameters; ties broken by more evaluated parameters.
	BestStandard string `json:"best_matching_standard,omitempty"`
}

// PageExtraction records which strategy produced a page's text, or that
// every strategy failed for it.
type PageExtraction struct {
	Page   int    `json:"page"`
	Method string `json:"method,omitempty"`
	Failed bool   `json:"failed,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ReportSummary carries document-level statistics for listings.
type ReportSummary struct {
	RoomCount       int     `json:"room_count"`
	TotalArea       float64 `json:"total_area,omitempty"`
	MeanDataQuality float64 `json:"mean_data_quality"`
	// ComplianceRate is the fraction of all rooms whose best-matching
	// verdict is fully compliant. Rooms with nothing evaluated count
	// against the rate.
	ComplianceRate float64 `json:"compliance_rate"`

	MeanIlluminance  float64 `json:"mean_illuminance,omitempty"`
	MeanUGR          float64 `json:"mean_ugr,omitempty"`
	MeanPowerDensity float64 `json:"mean_power_density,omitempty"`
}

// DocumentReport is the sole hand-off artifact to UI/API/CLI layers: the
// ordered rooms of one processed document plus summary statistics. A report
// with zero rooms and ExtractionFailed set is a valid terminal state, not an
// error.
type DocumentReport struct {
	ID          uuid.UUID `json:"id"`
	SourcePath  string    `json:"source_path"`
	ProjectName string    `json:"project_name,omitempty"`

	Rooms   []RoomResult     `json:"rooms"`
	Pages   []PageExtraction `json:"pages,omitempty"`
	Summary ReportSummary    `json:"summary"`

	Standards []string `json:"standards,omitempty"`

	ExtractionFailed bool   `json:"extraction_failed,omitempty"`
	FailureReason    string `json:"failure_reason,omitempty"`

	ProcessedAt time.Time     `json:"processed_at"`
	Elapsed     time.Duration `json:"elapsed_ns"`
}

// Status maps the report onto a document job status.
func (d DocumentReport) Status() constants.JobStatus {
	if d.ExtractionFailed {
		return constants.JobStatusFailed
	}
	return constants.JobStatusOK
}
