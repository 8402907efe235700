package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/alfredjeanlab/todograph/internal/model"
)

// Health produces a point-in-time dependency health snapshot over the entire
// relationship set and the entire live todo-id set. Both sets are streamed in
// fixed-size batches so neither needs to fit in a single page; a short page
// signals end-of-data.
//
// Broken entries are unbounded: dangling edges are expected to be rare, and
// truncating them for display is the caller's concern.
func (s *Service) Health(ctx context.Context) (*model.DependencyHealth, error) {
	todoIDs := make(map[string]struct{})
	offset := 0
	for {
		page, _, err := s.store.ListTodos(ctx, model.TodoFilter{Limit: s.batchSize, Offset: offset})
		if err != nil {
			return nil, fmt.Errorf("stream todos: %w", err)
		}
		for _, t := range page {
			todoIDs[t.ID] = struct{}{}
		}
		if len(page) < s.batchSize {
			break
		}
		offset += len(page)
	}

	health := &model.DependencyHealth{
		ByType: make(map[model.RelationType]int),
		Broken: []model.BrokenRelationship{},
	}
	dependents := make(map[string]struct{})
	blocking := make(map[string]struct{})
	blocked := make(map[string]struct{})

	offset = 0
	for {
		page, _, err := s.store.ListRelationships(ctx, model.RelationshipFilter{Limit: s.batchSize, Offset: offset})
		if err != nil {
			return nil, fmt.Errorf("stream relationships: %w", err)
		}
		for _, rel := range page {
			health.TotalRelationships++
			health.ByType[rel.Type]++

			switch rel.Type {
			case model.RelDependsOn:
				dependents[rel.FromID] = struct{}{}
			case model.RelBlocks:
				blocking[rel.FromID] = struct{}{}
				blocked[rel.ToID] = struct{}{}
			}

			// An edge broken on both ends produces two entries.
			if _, ok := todoIDs[rel.FromID]; !ok {
				health.Broken = append(health.Broken, model.BrokenRelationship{
					RelationshipID:  rel.ID,
					Type:            rel.Type,
					MissingEndpoint: model.EndpointSource,
					MissingTodoID:   rel.FromID,
				})
			}
			if _, ok := todoIDs[rel.ToID]; !ok {
				health.Broken = append(health.Broken, model.BrokenRelationship{
					RelationshipID:  rel.ID,
					Type:            rel.Type,
					MissingEndpoint: model.EndpointTarget,
					MissingTodoID:   rel.ToID,
				})
			}
		}
		if len(page) < s.batchSize {
			break
		}
		offset += len(page)
	}

	health.DependentTodos = sortedKeys(dependents)
	health.BlockingTodos = sortedKeys(blocking)
	health.BlockedTodos = sortedKeys(blocked)
	health.DependentCount = len(health.DependentTodos)
	health.BlockingCount = len(health.BlockingTodos)
	health.BlockedCount = len(health.BlockedTodos)
	health.BrokenCount = len(health.Broken)

	return health, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
