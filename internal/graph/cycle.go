package graph

import (
	"context"
	"fmt"

	"github.com/alfredjeanlab/todograph/internal/model"
)

// directionalTypes are the edge types followed during cycle detection.
// related_to is symmetric and never participates.
var directionalTypes = []model.RelationType{model.RelDependsOn, model.RelBlocks, model.RelParentOf}

// checkNoCycle fails when a directional edge fromID -> toID would close a
// cycle: it searches from toID along outgoing directional edges for a path
// back to fromID.
//
// The search is iterative with an explicit stack and a visited set, fetching
// each node's outgoing edges from the store on demand rather than loading the
// whole graph. Visiting more than the traversal limit of distinct nodes fails
// the call outright, so a pathological or already-corrupt graph cannot make
// this spin forever.
func (s *Service) checkNoCycle(ctx context.Context, fromID, toID string) error {
	stack := []string{toID}
	visited := make(map[string]struct{})

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := visited[node]; ok {
			continue
		}
		visited[node] = struct{}{}
		if len(visited) > s.traversalLimit {
			return model.NewValidationError("to_id",
				fmt.Sprintf("traversal limit exceeded: gave up after visiting %d todos", s.traversalLimit))
		}

		targets, err := s.outgoing(ctx, node)
		if err != nil {
			return err
		}
		for _, target := range targets {
			if target == fromID {
				return model.NewValidationError("to_id",
					fmt.Sprintf("cycle detected: %s already reaches %s through directional relationships", toID, fromID))
			}
			if _, ok := visited[target]; !ok {
				stack = append(stack, target)
			}
		}
	}
	return nil
}

// outgoing returns the targets of every directional edge leaving node,
// paging through the store with the configured batch size.
func (s *Service) outgoing(ctx context.Context, node string) ([]string, error) {
	var targets []string
	offset := 0
	for {
		page, _, err := s.store.ListRelationships(ctx, model.RelationshipFilter{
			FromID: node,
			Types:  directionalTypes,
			Limit:  s.batchSize,
			Offset: offset,
		})
		if err != nil {
			return nil, fmt.Errorf("fetch outgoing relationships of %s: %w", node, err)
		}
		for _, rel := range page {
			targets = append(targets, rel.ToID)
		}
		if len(page) < s.batchSize {
			return targets, nil
		}
		offset += len(page)
	}
}
