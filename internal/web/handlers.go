package web

import (
	"net/http"

	"github.com/JonMunkholm/jobimport/internal/core"
)

type healthResponse struct {
	Status  string                   `json:"status"`
	Formats int                      `json:"formats"`
	Imports core.ImportLimiterStatus `json:"imports"`
}

// handleHealth reports liveness and import slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, healthResponse{
		Status:  "ok",
		Formats: len(s.service.Formats()),
		Imports: s.service.LimiterStatus(),
	})
}

// handleListFormats returns the importable formats.
func (s *Server) handleListFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"formats": s.service.Formats(),
	})
}

// handleImportHistory returns recent import outcomes, newest first.
func (s *Server) handleImportHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"imports": s.service.History(),
	})
}
