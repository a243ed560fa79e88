package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abubakr3800/sc-standards/internal/common"
	"github.com/abubakr3800/sc-standards/internal/entity"
)

// ReportListing is the lightweight row for report listings; the full report
// is fetched by ID.
type ReportListing struct {
	ID               uuid.UUID `json:"id"`
	DocumentID       uuid.UUID `json:"document_id"`
	SourcePath       string    `json:"source_path"`
	ProjectName      string    `json:"project_name,omitempty"`
	RoomCount        int       `json:"room_count"`
	MeanDataQuality  float64   `json:"mean_data_quality"`
	ComplianceRate   float64   `json:"compliance_rate"`
	ExtractionFailed bool      `json:"extraction_failed"`
	ProcessedAt      time.Time `json:"processed_at"`
}

type ReportRepository interface {
	Save(ctx context.Context, documentID uuid.UUID, report *entity.DocumentReport) error
	Get(ctx context.Context, id uuid.UUID) (*entity.DocumentReport, error)
	GetByDocument(ctx context.Context, documentID uuid.UUID) (*entity.DocumentReport, error)
	List(ctx context.Context, limit int) ([]ReportListing, error)
}

type reportRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewReportRepository(db *DB, logger *slog.Logger) ReportRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &reportRepository{db: db, logger: logger}
}

// Save stores the full report as a JSON payload plus denormalized columns
// for cheap listing queries.
func (r *reportRepository) Save(ctx context.Context, documentID uuid.UUID, report *entity.DocumentReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return common.WrapError(err, "marshal report")
	}

	failed := 0
	if report.ExtractionFailed {
		failed = 1
	}
	_, err = r.db.ExecContext(ctx, r.db.rebind(
		`INSERT INTO reports (id, document_id, source_path, project_name, room_count, mean_data_quality, compliance_rate, extraction_failed, payload, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		report.ID.String(), documentID.String(), report.SourcePath, report.ProjectName,
		report.Summary.RoomCount, report.Summary.MeanDataQuality, report.Summary.ComplianceRate,
		failed, string(payload), report.ProcessedAt.Format(time.RFC3339Nano))
	if err != nil {
		r.logger.Error("failed to save report", "id", report.ID, "error", err)
		return common.WrapError(err, "save report")
	}
	return nil
}

func (r *reportRepository) Get(ctx context.Context, id uuid.UUID) (*entity.DocumentReport, error) {
	return r.getByColumn(ctx, "id", id)
}

// GetByDocument returns the newest report for a document.
func (r *reportRepository) GetByDocument(ctx context.Context, documentID uuid.UUID) (*entity.DocumentReport, error) {
	return r.getByColumn(ctx, "document_id", documentID)
}

func (r *reportRepository) getByColumn(ctx context.Context, column string, id uuid.UUID) (*entity.DocumentReport, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, r.db.rebind(
		`SELECT payload FROM reports WHERE `+column+` = ? ORDER BY processed_at DESC LIMIT 1`),
		id.String()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get report", "id", id, "error", err)
		return nil, common.WrapError(err, "get report")
	}

	var report entity.DocumentReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, common.WrapError(err, "decode report payload")
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, limit int) ([]ReportListing, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, r.db.rebind(
		`SELECT id, document_id, source_path, project_name, room_count, mean_data_quality, compliance_rate, extraction_failed, processed_at
		 FROM reports ORDER BY processed_at DESC LIMIT ?`),
		limit)
	if err != nil {
		r.logger.Error("failed to list reports", "error", err)
		return nil, common.WrapError(err, "list reports")
	}
	defer rows.Close()

	var out []ReportListing
	for rows.Next() {
		var (
			idStr, docStr, processed string
			failed                   int
			l                        ReportListing
		)
		if err := rows.Scan(&idStr, &docStr, &l.SourcePath, &l.ProjectName, &l.RoomCount, &l.MeanDataQuality, &l.ComplianceRate, &failed, &processed); err != nil {
			return nil, common.WrapError(err, "scan report listing")
		}
		if l.ID, err = uuid.Parse(idStr); err != nil {
			return nil, common.WrapError(err, "parse report id")
		}
		if l.DocumentID, err = uuid.Parse(docStr); err != nil {
			return nil, common.WrapError(err, "parse document id")
		}
		if l.ProcessedAt, err = time.Parse(time.RFC3339Nano, processed); err != nil {
			return nil, common.WrapError(err, "parse processed_at")
		}
		l.ExtractionFailed = failed != 0
		out = append(out, l)
	}
	return out, rows.Err()
}
