package store

import (
	"context"

	"github.com/alfredjeanlab/todograph/internal/model"
)

// Store defines the persistence interface for todos and relationships.
//
// Get and Find operations return (nil, nil) when no row matches; callers own
// the not-found error shape. List operations return the matching page plus
// the total count across all pages.
type Store interface {
	// Todo CRUD
	CreateTodo(ctx context.Context, todo *model.Todo) error
	GetTodo(ctx context.Context, id string) (*model.Todo, error)
	ListTodos(ctx context.Context, filter model.TodoFilter) ([]*model.Todo, int, error)
	UpdateTodo(ctx context.Context, todo *model.Todo) error
	DeleteTodo(ctx context.Context, id string) error

	// Relationships
	SaveRelationship(ctx context.Context, rel *model.Relationship) error // upsert by id
	GetRelationship(ctx context.Context, id string) (*model.Relationship, error)
	FindRelationshipBetween(ctx context.Context, fromID, toID string, typ model.RelationType) (*model.Relationship, error)
	ListRelationships(ctx context.Context, filter model.RelationshipFilter) ([]*model.Relationship, int, error)
	DeleteRelationship(ctx context.Context, id string) error
	DeleteRelationshipsByTodo(ctx context.Context, todoID string) error

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
