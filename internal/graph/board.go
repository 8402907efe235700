package graph

import (
	"context"
	"fmt"

	"github.com/alfredjeanlab/todograph/internal/model"
)

// Snapshot returns the full todo and relationship sets, streamed from the
// store in pages.
func (s *Service) Snapshot(ctx context.Context) (*model.BoardSnapshot, error) {
	snapshot := &model.BoardSnapshot{
		Todos:         []*model.Todo{},
		Relationships: []*model.Relationship{},
	}

	offset := 0
	for {
		todos, _, err := s.store.ListTodos(ctx, model.TodoFilter{
			Limit:  s.batchSize,
			Offset: offset,
		})
		if err != nil {
			return nil, fmt.Errorf("list todos: %w", err)
		}
		snapshot.Todos = append(snapshot.Todos, todos...)
		if len(todos) < s.batchSize {
			break
		}
		offset += len(todos)
	}

	offset = 0
	for {
		rels, _, err := s.store.ListRelationships(ctx, model.RelationshipFilter{
			Limit:  s.batchSize,
			Offset: offset,
		})
		if err != nil {
			return nil, fmt.Errorf("list relationships: %w", err)
		}
		snapshot.Relationships = append(snapshot.Relationships, rels...)
		if len(rels) < s.batchSize {
			break
		}
		offset += len(rels)
	}

	return snapshot, nil
}

// Status combines graph health with todo roll-ups by status, priority, and
// category.
func (s *Service) Status(ctx context.Context) (*model.BoardStatus, error) {
	health, err := s.Health(ctx)
	if err != nil {
		return nil, err
	}

	status := &model.BoardStatus{
		Health:     health,
		ByStatus:   make(map[model.TodoStatus]int),
		ByPriority: make(map[int]int),
		ByCategory: make(map[string]int),
	}

	offset := 0
	for {
		todos, _, err := s.store.ListTodos(ctx, model.TodoFilter{
			Limit:  s.batchSize,
			Offset: offset,
		})
		if err != nil {
			return nil, fmt.Errorf("list todos: %w", err)
		}
		for _, t := range todos {
			status.ByStatus[t.Status]++
			status.ByPriority[t.Priority]++
			if t.Category != "" {
				status.ByCategory[t.Category]++
			}
		}
		if len(todos) < s.batchSize {
			break
		}
		offset += len(todos)
	}

	return status, nil
}
