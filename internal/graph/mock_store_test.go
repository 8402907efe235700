package graph

import (
	"context"
	"sort"
	"strings"

	"github.com/alfredjeanlab/todograph/internal/model"
	"github.com/alfredjeanlab/todograph/internal/store"
)

// mockStore is a minimal in-memory store for graph workflow tests.
type mockStore struct {
	todos map[string]*model.Todo
	rels  map[string]*model.Relationship

	// deleteErrID, when set, makes DeleteRelationship fail for that id.
	deleteErrID string
	deleteErr   error

	deleted []string // ids passed to DeleteRelationship, in order
}

var _ store.Store = (*mockStore)(nil)

func newMockStore() *mockStore {
	return &mockStore{
		todos: make(map[string]*model.Todo),
		rels:  make(map[string]*model.Relationship),
	}
}

func (m *mockStore) addTodo(id string) {
	m.todos[id] = &model.Todo{ID: id, Title: id, Status: model.TodoPending}
}

func (m *mockStore) CreateTodo(_ context.Context, todo *model.Todo) error {
	m.todos[todo.ID] = todo
	return nil
}

func (m *mockStore) GetTodo(_ context.Context, id string) (*model.Todo, error) {
	t, ok := m.todos[id]
	if !ok {
		return nil, nil
	}
	clone := *t
	return &clone, nil
}

func (m *mockStore) ListTodos(_ context.Context, filter model.TodoFilter) ([]*model.Todo, int, error) {
	var all []*model.Todo
	for _, t := range m.todos {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, filter.Limit, filter.Offset), len(all), nil
}

func (m *mockStore) UpdateTodo(_ context.Context, todo *model.Todo) error {
	m.todos[todo.ID] = todo
	return nil
}

func (m *mockStore) DeleteTodo(_ context.Context, id string) error {
	delete(m.todos, id)
	return nil
}

func (m *mockStore) SaveRelationship(_ context.Context, rel *model.Relationship) error {
	clone := *rel
	m.rels[rel.ID] = &clone
	return nil
}

func (m *mockStore) GetRelationship(_ context.Context, id string) (*model.Relationship, error) {
	r, ok := m.rels[id]
	if !ok {
		return nil, nil
	}
	clone := *r
	return &clone, nil
}

func (m *mockStore) FindRelationshipBetween(_ context.Context, fromID, toID string, typ model.RelationType) (*model.Relationship, error) {
	for _, r := range m.rels {
		if r.FromID == fromID && r.ToID == toID && r.Type == typ {
			clone := *r
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockStore) ListRelationships(_ context.Context, filter model.RelationshipFilter) ([]*model.Relationship, int, error) {
	var all []*model.Relationship
	for _, r := range m.rels {
		if filter.FromID != "" && r.FromID != filter.FromID {
			continue
		}
		if filter.ToID != "" && r.ToID != filter.ToID {
			continue
		}
		if filter.Involving != "" && !r.Connects(filter.Involving) {
			continue
		}
		if len(filter.Types) > 0 {
			match := false
			for _, t := range filter.Types {
				if r.Type == t {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return strings.Compare(all[i].ID, all[j].ID) < 0
	})
	return page(all, filter.Limit, filter.Offset), len(all), nil
}

func (m *mockStore) DeleteRelationship(_ context.Context, id string) error {
	if m.deleteErr != nil && id == m.deleteErrID {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	delete(m.rels, id)
	return nil
}

func (m *mockStore) DeleteRelationshipsByTodo(_ context.Context, todoID string) error {
	for id, r := range m.rels {
		if r.Connects(todoID) {
			delete(m.rels, id)
		}
	}
	return nil
}

func (m *mockStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error { return nil }

// page applies limit/offset pagination to a slice.
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
