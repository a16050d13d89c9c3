package server

import (
	"encoding/json"
	"net/http"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	cpuPercent, ramPercent := s.systemHandlers.getSystemStats()

	response := map[string]interface{}{
		"status":      "healthy",
		"version":     s.version,
		"service":     "tactical",
		"cpu_percent": cpuPercent,
		"ram_percent": ramPercent,
	}

	s.writeJSON(w, http.StatusOK, response)
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
