package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alfredjeanlab/todograph/internal/events"
	"github.com/alfredjeanlab/todograph/internal/idgen"
	"github.com/alfredjeanlab/todograph/internal/model"
	"github.com/alfredjeanlab/todograph/internal/store"
)

// createTodoRequest is the JSON body for POST /v1/todos.
type createTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Category    string `json:"category"`
}

// handleCreateTodo handles POST /v1/todos.
func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		writeDomainError(w, model.NewValidationError("title", "is required"))
		return
	}

	id, err := idgen.NewTodoID()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate id")
		return
	}
	now := time.Now().UTC()
	todo := &model.Todo{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Status:      model.TodoPending,
		Priority:    req.Priority,
		Category:    strings.TrimSpace(req.Category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateTodo(r.Context(), todo); err != nil {
		writeDomainError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicTodoCreated, events.TodoCreated{Todo: todo})

	writeJSON(w, http.StatusCreated, todo)
}

// handleListTodos handles GET /v1/todos.
// Filters come from query parameters: status (repeatable), category, search,
// limit, offset.
func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.TodoFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}
	for _, st := range q["status"] {
		status := model.TodoStatus(st)
		if !status.IsValid() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid status %q", st))
			return
		}
		filter.Status = append(filter.Status, status)
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

	todos, total, err := s.store.ListTodos(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if todos == nil {
		todos = []*model.Todo{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"todos": todos,
		"total": total,
	})
}

// handleGetTodo handles GET /v1/todos/{id}.
func (s *Server) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	todo, err := s.store.GetTodo(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if todo == nil {
		writeDomainError(w, &model.NotFoundError{Resource: "todo", IDs: []string{id}})
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

// updateTodoRequest is the JSON body for PATCH /v1/todos/{id}.
// Absent fields are left untouched.
type updateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *int    `json:"priority"`
	Category    *string `json:"category"`
}

// handleUpdateTodo handles PATCH /v1/todos/{id}.
func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	todo, err := s.store.GetTodo(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if todo == nil {
		writeDomainError(w, &model.NotFoundError{Resource: "todo", IDs: []string{id}})
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			writeDomainError(w, model.NewValidationError("title", "is required"))
			return
		}
		todo.Title = title
	}
	if req.Description != nil {
		todo.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		status := model.TodoStatus(*req.Status)
		if !status.IsValid() {
			writeDomainError(w, model.NewValidationError("status", fmt.Sprintf("invalid value %q", *req.Status)))
			return
		}
		if status == model.TodoDone && todo.Status != model.TodoDone {
			now := time.Now().UTC()
			todo.CompletedAt = &now
		}
		if status != model.TodoDone {
			todo.CompletedAt = nil
		}
		todo.Status = status
	}
	if req.Priority != nil {
		todo.Priority = *req.Priority
	}
	if req.Category != nil {
		todo.Category = strings.TrimSpace(*req.Category)
	}
	todo.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateTodo(r.Context(), todo); err != nil {
		writeDomainError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicTodoUpdated, events.TodoUpdated{Todo: todo})

	writeJSON(w, http.StatusOK, todo)
}

// handleCompleteTodo handles POST /v1/todos/{id}/done.
func (s *Server) handleCompleteTodo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	todo, err := s.store.GetTodo(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if todo == nil {
		writeDomainError(w, &model.NotFoundError{Resource: "todo", IDs: []string{id}})
		return
	}

	if todo.Status != model.TodoDone {
		now := time.Now().UTC()
		todo.Status = model.TodoDone
		todo.CompletedAt = &now
		todo.UpdatedAt = now
		if err := s.store.UpdateTodo(r.Context(), todo); err != nil {
			writeDomainError(w, err)
			return
		}
		s.publish(r.Context(), events.TopicTodoCompleted, events.TodoCompleted{Todo: todo})
	}

	writeJSON(w, http.StatusOK, todo)
}

// handleDeleteTodo handles DELETE /v1/todos/{id}. Every relationship touching
// the todo is removed in the same transaction.
func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	todo, err := s.store.GetTodo(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if todo == nil {
		writeDomainError(w, &model.NotFoundError{Resource: "todo", IDs: []string{id}})
		return
	}

	err = s.store.RunInTransaction(r.Context(), func(tx store.Store) error {
		if err := tx.DeleteRelationshipsByTodo(r.Context(), id); err != nil {
			return fmt.Errorf("delete relationships for %s: %w", id, err)
		}
		if err := tx.DeleteTodo(r.Context(), id); err != nil {
			return fmt.Errorf("delete todo %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicTodoDeleted, events.TodoDeleted{TodoID: id})

	w.WriteHeader(http.StatusNoContent)
}
