package server

import "net/http"

// handleBoardHealth handles GET /v1/board/health.
func (s *Server) handleBoardHealth(w http.ResponseWriter, r *http.Request) {
	health, err := s.graph.Health(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, health)
}

// handleBoardSnapshot handles GET /v1/board/snapshot: the full todo and
// relationship sets in one payload, for canvas rendering.
func (s *Server) handleBoardSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.graph.Snapshot(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// handleBoardStatus handles GET /v1/board/status: graph health plus todo
// roll-ups by status, priority, and category.
func (s *Server) handleBoardStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.graph.Status(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
