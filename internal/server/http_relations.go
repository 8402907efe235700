package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/alfredjeanlab/todograph/internal/events"
	"github.com/alfredjeanlab/todograph/internal/graph"
	"github.com/alfredjeanlab/todograph/internal/model"
)

// createRelationshipRequest is the JSON body for POST /v1/relationships.
type createRelationshipRequest struct {
	FromID      string `json:"from_id"`
	ToID        string `json:"to_id"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// handleCreateRelationship handles POST /v1/relationships.
func (s *Server) handleCreateRelationship(w http.ResponseWriter, r *http.Request) {
	var req createRelationshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rel, err := s.graph.Create(r.Context(), graph.CreateInput{
		FromID:      req.FromID,
		ToID:        req.ToID,
		Type:        model.RelationType(req.Type),
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicRelationshipCreated, events.RelationshipCreated{Relationship: rel})

	writeJSON(w, http.StatusCreated, rel)
}

// handleListRelationships handles GET /v1/relationships.
// Filters come from query parameters: from, to, involving, type (repeatable),
// limit, offset.
func (s *Server) handleListRelationships(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.RelationshipFilter{
		FromID:    q.Get("from"),
		ToID:      q.Get("to"),
		Involving: q.Get("involving"),
	}
	for _, t := range q["type"] {
		typ := model.RelationType(t)
		if !typ.IsValid() {
			writeError(w, http.StatusBadRequest, "invalid type "+strconv.Quote(t))
			return
		}
		filter.Types = append(filter.Types, typ)
	}
	var err error
	if filter.Limit, err = intParam(q.Get("limit")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	if filter.Offset, err = intParam(q.Get("offset")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid offset")
		return
	}

	rels, total, err := s.graph.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if rels == nil {
		rels = []*model.Relationship{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"relationships": rels,
		"total":         total,
	})
}

// handleGetRelationship handles GET /v1/relationships/{id}.
func (s *Server) handleGetRelationship(w http.ResponseWriter, r *http.Request) {
	rel, err := s.graph.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rel)
}

// updateRelationshipRequest is the JSON body for PATCH /v1/relationships/{id}.
// Absent fields are left untouched.
type updateRelationshipRequest struct {
	Type        *string `json:"type"`
	Description *string `json:"description"`
}

// handleUpdateRelationship handles PATCH /v1/relationships/{id}.
func (s *Server) handleUpdateRelationship(w http.ResponseWriter, r *http.Request) {
	var req updateRelationshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	in := graph.UpdateInput{
		ID:          r.PathValue("id"),
		Description: req.Description,
	}
	if req.Type != nil {
		typ := model.RelationType(*req.Type)
		in.Type = &typ
	}

	rel, err := s.graph.Update(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicRelationshipUpdated, events.RelationshipUpdated{Relationship: rel})

	writeJSON(w, http.StatusOK, rel)
}

// handleDeleteRelationship handles DELETE /v1/relationships/{id}.
func (s *Server) handleDeleteRelationship(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.graph.Delete(r.Context(), []string{id}); err != nil {
		writeDomainError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicRelationshipDeleted, events.RelationshipDeleted{IDs: []string{id}})

	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteRelationships handles DELETE /v1/relationships?id=a&id=b.
// All named relationships must exist; otherwise nothing is deleted and every
// missing id is reported.
func (s *Server) handleDeleteRelationships(w http.ResponseWriter, r *http.Request) {
	// The event names what was deleted, so it carries the normalized ids
	// rather than the raw query values.
	ids := graph.NormalizeIDs(r.URL.Query()["id"])
	if err := s.graph.Delete(r.Context(), ids); err != nil {
		writeDomainError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicRelationshipDeleted, events.RelationshipDeleted{IDs: ids})

	w.WriteHeader(http.StatusNoContent)
}

// intParam parses a non-negative integer query parameter; empty means zero.
func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}
