package server

import "net/http"

func (s *Server) handleListStandards(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"standards":    s.standards.StandardIDs(),
		"requirements": s.standards.Requirements(),
	})
}
