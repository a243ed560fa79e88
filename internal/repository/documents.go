package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abubakr3800/sc-standards/constants"
	"github.com/abubakr3800/sc-standards/internal/common"
	"github.com/abubakr3800/sc-standards/internal/entity"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status constants.JobStatus) error
	Get(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	List(ctx context.Context, limit int) ([]*entity.Document, error)
}

type documentRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewDocumentRepository(db *DB, logger *slog.Logger) DocumentRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentRepository{db: db, logger: logger}
}

func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.SubmittedAt.IsZero() {
		doc.SubmittedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, r.db.rebind(
		`INSERT INTO documents (id, source_path, original_name, status, submitted_at) VALUES (?, ?, ?, ?, ?)`),
		doc.ID.String(), doc.SourcePath, doc.OriginalName, string(doc.Status), doc.SubmittedAt.Format(time.RFC3339Nano))
	if err != nil {
		r.logger.Error("failed to create document", "id", doc.ID, "error", err)
		return common.WrapError(err, "create document")
	}
	return nil
}

func (r *documentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status constants.JobStatus) error {
	var completedAt any
	if status == constants.JobStatusOK || status == constants.JobStatusFailed {
		completedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	res, err := r.db.ExecContext(ctx, r.db.rebind(
		`UPDATE documents SET status = ?, completed_at = ? WHERE id = ?`),
		string(status), completedAt, id.String())
	if err != nil {
		r.logger.Error("failed to update document status", "id", id, "error", err)
		return common.WrapError(err, "update document status")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *documentRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	row := r.db.QueryRowContext(ctx, r.db.rebind(
		`SELECT id, source_path, original_name, status, submitted_at, completed_at FROM documents WHERE id = ?`),
		id.String())
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get document", "id", id, "error", err)
		return nil, common.WrapError(err, "get document")
	}
	return doc, nil
}

func (r *documentRepository) List(ctx context.Context, limit int) ([]*entity.Document, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, r.db.rebind(
		`SELECT id, source_path, original_name, status, submitted_at, completed_at FROM documents ORDER BY submitted_at DESC LIMIT ?`),
		limit)
	if err != nil {
		r.logger.Error("failed to list documents", "error", err)
		return nil, common.WrapError(err, "list documents")
	}
	defer rows.Close()

	var out []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, common.WrapError(err, "scan document")
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*entity.Document, error) {
	var (
		idStr, status, submitted string
		completed                sql.NullString
		doc                      entity.Document
	)
	if err := row.Scan(&idStr, &doc.SourcePath, &doc.OriginalName, &status, &submitted, &completed); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	doc.ID = id
	doc.Status = constants.JobStatus(status)
	if doc.SubmittedAt, err = time.Parse(time.RFC3339Nano, submitted); err != nil {
		return nil, err
	}
	if completed.Valid {
		t, err := time.Parse(time.RFC3339Nano, completed.String)
		if err != nil {
			return nil, err
		}
		doc.CompletedAt = &t
	}
	return &doc, nil
}
