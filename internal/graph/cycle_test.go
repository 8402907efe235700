package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alfredjeanlab/todograph/internal/model"
)

func TestCreate_CycleRejected(t *testing.T) {
	st := newMockStore()
	for _, id := range []string{"td-a", "td-b", "td-c"} {
		st.addTodo(id)
	}
	svc := newTestService(st)
	ctx := context.Background()

	mustCreate(t, svc, "td-a", "td-b", model.RelDependsOn)
	mustCreate(t, svc, "td-b", "td-c", model.RelDependsOn)

	// C -> A would close A -> B -> C -> A.
	_, err := svc.Create(ctx, CreateInput{FromID: "td-c", ToID: "td-a", Type: model.RelDependsOn})
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError for cycle, got %v", err)
	}
	if !strings.Contains(ve.Error(), "cycle") {
		t.Errorf("error should mention cycle: %v", ve)
	}

	// related_to is symmetric and exempt from cycle detection.
	if _, err := svc.Create(ctx, CreateInput{FromID: "td-c", ToID: "td-a", Type: model.RelRelatedTo}); err != nil {
		t.Errorf("related_to should be exempt from cycle check: %v", err)
	}
}

func TestCreate_CycleAcrossMixedDirectionalTypes(t *testing.T) {
	st := newMockStore()
	for _, id := range []string{"td-a", "td-b", "td-c"} {
		st.addTodo(id)
	}
	svc := newTestService(st)
	ctx := context.Background()

	// depends_on, blocks, and parent_of share one cycle space.
	mustCreate(t, svc, "td-a", "td-b", model.RelBlocks)
	mustCreate(t, svc, "td-b", "td-c", model.RelParentOf)

	_, err := svc.Create(ctx, CreateInput{FromID: "td-c", ToID: "td-a", Type: model.RelDependsOn})
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError for mixed-type cycle, got %v", err)
	}
}

func TestCreate_TwoNodeCycle(t *testing.T) {
	st := newMockStore()
	st.addTodo("td-a")
	st.addTodo("td-b")
	svc := newTestService(st)

	mustCreate(t, svc, "td-a", "td-b", model.RelBlocks)

	_, err := svc.Create(context.Background(), CreateInput{FromID: "td-b", ToID: "td-a", Type: model.RelBlocks})
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError for two-node cycle, got %v", err)
	}
}

func TestCreate_DiamondIsNotACycle(t *testing.T) {
	st := newMockStore()
	for _, id := range []string{"td-a", "td-b", "td-c", "td-d"} {
		st.addTodo(id)
	}
	svc := newTestService(st)

	// a -> b -> d and a -> c -> d: d reachable twice, still acyclic.
	mustCreate(t, svc, "td-a", "td-b", model.RelDependsOn)
	mustCreate(t, svc, "td-b", "td-d", model.RelDependsOn)
	mustCreate(t, svc, "td-a", "td-c", model.RelDependsOn)
	mustCreate(t, svc, "td-c", "td-d", model.RelDependsOn)
}

func TestCreate_TraversalLimit(t *testing.T) {
	st := newMockStore()
	svc := newTestService(st)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// A directional chain longer than the traversal cap. Rows are seeded
	// straight into the store; creating them through the workflow would
	// itself walk the chain.
	chainLen := DefaultTraversalLimit + 2
	for i := 0; i < chainLen; i++ {
		st.addTodo(fmt.Sprintf("td-%d", i))
	}
	st.addTodo("td-new")
	for i := 0; i < chainLen-1; i++ {
		st.rels[fmt.Sprintf("seed-%d", i)] = &model.Relationship{
			ID:        fmt.Sprintf("seed-%d", i),
			FromID:    fmt.Sprintf("td-%d", i),
			ToID:      fmt.Sprintf("td-%d", i+1),
			Type:      model.RelDependsOn,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	// The check must give up with a distinct error instead of walking the
	// whole chain.
	_, err := svc.Create(ctx, CreateInput{FromID: "td-new", ToID: "td-0", Type: model.RelDependsOn})
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if !strings.Contains(ve.Error(), "traversal limit") {
		t.Errorf("error should mention the traversal limit: %v", ve)
	}
}

func TestCheckNoCycle_PagesThroughFanOut(t *testing.T) {
	st := newMockStore()
	svc := newTestService(st, WithBatchSize(2))
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// td-hub has five outgoing edges, more than one page at batch size 2;
	// the last one reaches back to td-root.
	st.addTodo("td-root")
	st.addTodo("td-hub")
	for i := 0; i < 5; i++ {
		target := fmt.Sprintf("td-leaf-%d", i)
		if i == 4 {
			target = "td-root"
		} else {
			st.addTodo(target)
		}
		st.rels[fmt.Sprintf("seed-%d", i)] = &model.Relationship{
			ID:        fmt.Sprintf("seed-%d", i),
			FromID:    "td-hub",
			ToID:      target,
			Type:      model.RelBlocks,
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
			UpdatedAt: now,
		}
	}

	_, err := svc.Create(ctx, CreateInput{FromID: "td-root", ToID: "td-hub", Type: model.RelBlocks})
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected cycle error across pages, got %v", err)
	}
}

func mustCreate(t *testing.T, svc *Service, from, to string, typ model.RelationType) *model.Relationship {
	t.Helper()
	rel, err := svc.Create(context.Background(), CreateInput{FromID: from, ToID: to, Type: typ})
	if err != nil {
		t.Fatalf("create %s -> %s (%s): %v", from, to, typ, err)
	}
	return rel
}
