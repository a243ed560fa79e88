package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, r.Context(), http.StatusBadRequest, "limit must be a positive integer", err)
			return
		}
		limit = n
	}
	listings, err := s.reports.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r.Context(), statusFor(err), "failed to list reports", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"reports": listings})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r.Context(), http.StatusBadRequest, "invalid report id", err)
		return
	}
	report, err := s.reports.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r.Context(), statusFor(err), "report not found", err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r.Context(), http.StatusBadRequest, "invalid report id", err)
		return
	}
	report, err := s.reports.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r.Context(), statusFor(err), "report not found", err)
		return
	}
	data, err := s.exporter.ReportXLSX(report)
	if err != nil {
		s.writeError(w, r.Context(), http.StatusInternalServerError, "failed to build workbook", err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="report-`+id.String()+`.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
