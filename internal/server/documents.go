package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/abubakr3800/sc-standards/constants"
	"github.com/abubakr3800/sc-standards/internal/entity"
)

// handleProcessDocument accepts a multipart PDF under the "file" field,
// runs the full pipeline synchronously, persists document and report, and
// returns the report. A failed extraction is still a 200 with the failed
// report body; only transport and storage problems are HTTP errors.
func (s *Server) handleProcessDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, ctx, http.StatusBadRequest, "multipart field 'file' is required", err)
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		s.writeError(w, ctx, http.StatusBadRequest, "only .pdf uploads are accepted", nil)
		return
	}

	docID := uuid.New()
	path, err := s.saveUpload(docID, file)
	if err != nil {
		s.writeError(w, ctx, http.StatusInternalServerError, "failed to store upload", err)
		return
	}

	doc := &entity.Document{
		ID:           docID,
		SourcePath:   path,
		OriginalName: header.Filename,
		Status:       constants.JobStatusRunning,
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		s.writeError(w, ctx, statusFor(err), "failed to record document", err)
		return
	}

	report := s.processor.ProcessFile(ctx, path)
	report.ID = docID

	if err := s.reports.Save(ctx, docID, &report); err != nil {
		s.writeError(w, ctx, statusFor(err), "failed to store report", err)
		return
	}
	if err := s.documents.UpdateStatus(ctx, docID, report.Status()); err != nil {
		s.logger.Error("server.document.status_update_failed", "id", docID, "error", err)
	}

	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r.Context(), http.StatusBadRequest, "invalid document id", err)
		return
	}
	doc, err := s.documents.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r.Context(), statusFor(err), "document not found", err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) saveUpload(id uuid.UUID, src io.Reader) (string, error) {
	dir := s.uploadDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(dir, id.String()+".pdf")
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return path, nil
}
