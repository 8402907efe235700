// Package graph implements the relationship workflows: creating typed edges
// between todos with cycle prevention, updating and deleting them, and
// aggregating the dependency health of the whole board.
package graph

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alfredjeanlab/todograph/internal/idgen"
	"github.com/alfredjeanlab/todograph/internal/model"
	"github.com/alfredjeanlab/todograph/internal/store"
)

const (
	// DefaultTraversalLimit is the maximum number of distinct nodes the
	// cycle check visits before failing defensively.
	DefaultTraversalLimit = 5000

	// DefaultBatchSize is the page size used when streaming the full todo
	// and relationship sets.
	DefaultBatchSize = 250

	// maxBatchSize matches the store adapter's page cap. Streaming loops
	// treat a short page as end-of-data, so a batch size the store will
	// never fill would end every stream after one page.
	maxBatchSize = 500
)

// Service runs the relationship workflows over a store. It holds no state
// between calls; the store, clock, and id generator are long-lived
// dependencies safe for reuse across concurrent callers.
//
// The cycle check reads the graph as of the start of its traversal and is not
// re-validated atomically with the insert, so two concurrent creates that are
// each individually acyclic can jointly close a cycle.
type Service struct {
	store store.Store
	newID func() (string, error)
	now   func() time.Time

	traversalLimit int
	batchSize      int
}

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator swaps the relationship id generator (for deterministic tests).
func WithIDGenerator(fn func() (string, error)) Option {
	return func(s *Service) { s.newID = fn }
}

// WithClock swaps the clock (for deterministic tests).
func WithClock(fn func() time.Time) Option {
	return func(s *Service) { s.now = fn }
}

// WithTraversalLimit overrides the cycle-check node cap.
func WithTraversalLimit(n int) Option {
	return func(s *Service) { s.traversalLimit = n }
}

// WithBatchSize overrides the streaming page size. Values above the store's
// page cap are clamped to it; zero and negative values are ignored.
func WithBatchSize(n int) Option {
	return func(s *Service) {
		if n <= 0 {
			return
		}
		if n > maxBatchSize {
			n = maxBatchSize
		}
		s.batchSize = n
	}
}

// NewService returns a Service backed by the given store.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:          st,
		newID:          idgen.NewRelationshipID,
		now:            func() time.Time { return time.Now().UTC() },
		traversalLimit: DefaultTraversalLimit,
		batchSize:      DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInput carries the fields for a new relationship.
type CreateInput struct {
	FromID      string
	ToID        string
	Type        model.RelationType
	Description string
}

// Create validates the input, checks both endpoints exist, rejects duplicate
// and cycle-forming edges, and persists a new relationship.
//
// Failure order is deliberate, most-specific first: self-reference, endpoint
// existence (both ids named when both are missing), duplicate (naming the
// existing edge), cycle.
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.Relationship, error) {
	fromID := strings.TrimSpace(in.FromID)
	toID := strings.TrimSpace(in.ToID)

	if fromID == "" {
		return nil, model.NewValidationError("from_id", "is required")
	}
	if toID == "" {
		return nil, model.NewValidationError("to_id", "is required")
	}
	if fromID == toID {
		return nil, model.NewValidationError("to_id",
			fmt.Sprintf("self-reference: a todo cannot relate to itself (%s)", fromID))
	}
	if !in.Type.IsValid() {
		return nil, model.NewValidationError("type", fmt.Sprintf("invalid value %q", in.Type))
	}

	// Both endpoint lookups are issued concurrently; this is the only
	// intentional fan-out in the engine.
	var (
		wg               sync.WaitGroup
		fromTodo, toTodo *model.Todo
		fromErr, toErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		fromTodo, fromErr = s.store.GetTodo(ctx, fromID)
	}()
	go func() {
		defer wg.Done()
		toTodo, toErr = s.store.GetTodo(ctx, toID)
	}()
	wg.Wait()
	if fromErr != nil {
		return nil, fmt.Errorf("check todo %s: %w", fromID, fromErr)
	}
	if toErr != nil {
		return nil, fmt.Errorf("check todo %s: %w", toID, toErr)
	}

	var missing []string
	if fromTodo == nil {
		missing = append(missing, fromID)
	}
	if toTodo == nil {
		missing = append(missing, toID)
	}
	if len(missing) > 0 {
		return nil, &model.NotFoundError{Resource: "todo", IDs: missing}
	}

	existing, err := s.store.FindRelationshipBetween(ctx, fromID, toID, in.Type)
	if err != nil {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}
	if existing != nil {
		return nil, model.NewValidationError("type",
			fmt.Sprintf("a %s relationship between %s and %s already exists (%s)",
				in.Type, fromID, toID, existing.ID))
	}

	if in.Type.Directional() {
		if err := s.checkNoCycle(ctx, fromID, toID); err != nil {
			return nil, err
		}
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}
	rel, err := model.NewRelationship(id, fromID, toID, in.Type, in.Description, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveRelationship(ctx, rel); err != nil {
		return nil, fmt.Errorf("save relationship: %w", err)
	}
	return rel, nil
}

// UpdateInput carries the mutable fields for an existing relationship.
// Nil pointers leave the field untouched.
type UpdateInput struct {
	ID          string
	Type        *model.RelationType
	Description *string
}

// Update changes a relationship's type and/or description. Writing the
// current value is a no-op: updated_at is not bumped and nothing is persisted,
// so identical retries are idempotent.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*model.Relationship, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return nil, model.NewValidationError("id", "is required")
	}

	rel, err := s.store.GetRelationship(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get relationship: %w", err)
	}
	if rel == nil {
		return nil, &model.NotFoundError{Resource: "relationship", IDs: []string{id}}
	}

	now := s.now()
	changed := false

	if in.Type != nil {
		c, err := rel.ChangeType(*in.Type, now)
		if err != nil {
			return nil, err
		}
		changed = changed || c
	}
	if in.Description != nil {
		c, err := rel.AttachDescription(*in.Description, now)
		if err != nil {
			return nil, err
		}
		changed = changed || c
	}

	if changed {
		if err := s.store.SaveRelationship(ctx, rel); err != nil {
			return nil, fmt.Errorf("save relationship: %w", err)
		}
	}
	return rel, nil
}

// Get fetches a relationship by id, returning NotFoundError when absent.
func (s *Service) Get(ctx context.Context, id string) (*model.Relationship, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, model.NewValidationError("id", "is required")
	}
	rel, err := s.store.GetRelationship(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get relationship: %w", err)
	}
	if rel == nil {
		return nil, &model.NotFoundError{Resource: "relationship", IDs: []string{id}}
	}
	return rel, nil
}

// List returns relationships matching the filter plus the total count.
func (s *Service) List(ctx context.Context, filter model.RelationshipFilter) ([]*model.Relationship, int, error) {
	return s.store.ListRelationships(ctx, filter)
}

// Delete removes one or more relationships by id. Ids are trimmed,
// de-duplicated, and checked for existence up front; if any are missing the
// whole call fails naming all of them and nothing is deleted. The deletes
// themselves run inside a single transaction so a mid-batch storage failure
// rolls back cleanly.
func (s *Service) Delete(ctx context.Context, ids []string) error {
	normalized := NormalizeIDs(ids)
	if len(normalized) == 0 {
		return model.NewValidationError("ids", "at least one relationship id is required")
	}

	// Look up all ids concurrently; collect every miss before failing.
	found := make([]*model.Relationship, len(normalized))
	errs := make([]error, len(normalized))
	var wg sync.WaitGroup
	for i, id := range normalized {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			found[i], errs[i] = s.store.GetRelationship(ctx, id)
		}(i, id)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("check relationship %s: %w", normalized[i], err)
		}
	}

	var missing []string
	for i, rel := range found {
		if rel == nil {
			missing = append(missing, normalized[i])
		}
	}
	if len(missing) > 0 {
		return &model.NotFoundError{Resource: "relationship", IDs: missing}
	}

	return s.store.RunInTransaction(ctx, func(tx store.Store) error {
		for _, id := range normalized {
			if err := tx.DeleteRelationship(ctx, id); err != nil {
				return fmt.Errorf("delete relationship %s: %w", id, err)
			}
		}
		return nil
	})
}

// NormalizeIDs trims, drops empties, and de-duplicates, preserving first-seen
// order. Delete applies it to its input, so callers reporting which ids a
// batch actually touched should run theirs through it too.
func NormalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
