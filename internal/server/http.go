package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alfredjeanlab/todograph/internal/model"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *Server) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/todos", s.handleCreateTodo)
	mux.HandleFunc("GET /v1/todos", s.handleListTodos)
	mux.HandleFunc("GET /v1/todos/{id}", s.handleGetTodo)
	mux.HandleFunc("PATCH /v1/todos/{id}", s.handleUpdateTodo)
	mux.HandleFunc("POST /v1/todos/{id}/done", s.handleCompleteTodo)
	mux.HandleFunc("DELETE /v1/todos/{id}", s.handleDeleteTodo)
	mux.HandleFunc("POST /v1/relationships", s.handleCreateRelationship)
	mux.HandleFunc("GET /v1/relationships", s.handleListRelationships)
	mux.HandleFunc("DELETE /v1/relationships", s.handleDeleteRelationships)
	mux.HandleFunc("GET /v1/relationships/{id}", s.handleGetRelationship)
	mux.HandleFunc("PATCH /v1/relationships/{id}", s.handleUpdateRelationship)
	mux.HandleFunc("DELETE /v1/relationships/{id}", s.handleDeleteRelationship)
	mux.HandleFunc("GET /v1/board/snapshot", s.handleBoardSnapshot)
	mux.HandleFunc("GET /v1/board/status", s.handleBoardStatus)
	mux.HandleFunc("GET /v1/board/health", s.handleBoardHealth)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return LoggingMiddleware(RecoveryMiddleware(AuthMiddleware(authToken, mux)))
}

// handleHealth handles GET /v1/health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps workflow errors onto HTTP statuses: validation
// failures are 400, missing resources are 404, anything else is 500 with the
// detail kept out of the response body.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   verr.Error(),
			"context": verr.Context(),
		})
		return
	}
	var nferr *model.NotFoundError
	if errors.As(err, &nferr) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":    nferr.Error(),
			"resource": nferr.Resource,
			"ids":      nferr.IDs,
		})
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
