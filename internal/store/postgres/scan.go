package postgres

import (
	"database/sql"
	"time"

	"github.com/alfredjeanlab/todograph/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanTodo scans a single row into a model.Todo.
// The row must contain columns in the order defined by todoColumns.
func scanTodo(row scannable) (*model.Todo, error) {
	var t model.Todo
	var completedAt sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.Category,
		&t.CreatedAt,
		&t.UpdatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		ts := completedAt.Time
		t.CompletedAt = &ts
	}
	return &t, nil
}

// scanTodoWithTotal scans a row whose first column is COUNT(*) OVER().
func scanTodoWithTotal(row scannable) (*model.Todo, int, error) {
	var t model.Todo
	var total int
	var completedAt sql.NullTime

	err := row.Scan(
		&total,
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.Category,
		&t.CreatedAt,
		&t.UpdatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, 0, err
	}

	if completedAt.Valid {
		ts := completedAt.Time
		t.CompletedAt = &ts
	}
	return &t, total, nil
}

// scanRelationship scans a single row into a model.Relationship.
// Restore runs the entity invariants so a corrupted row is rejected here.
func scanRelationship(row scannable) (*model.Relationship, error) {
	var props model.Relationship

	err := row.Scan(
		&props.ID,
		&props.FromID,
		&props.ToID,
		&props.Type,
		&props.Description,
		&props.CreatedAt,
		&props.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return model.RestoreRelationship(props)
}

// scanRelationshipWithTotal scans a row whose first column is COUNT(*) OVER().
func scanRelationshipWithTotal(row scannable) (*model.Relationship, int, error) {
	var props model.Relationship
	var total int

	err := row.Scan(
		&total,
		&props.ID,
		&props.FromID,
		&props.ToID,
		&props.Type,
		&props.Description,
		&props.CreatedAt,
		&props.UpdatedAt,
	)
	if err != nil {
		return nil, 0, err
	}

	r, err := model.RestoreRelationship(props)
	if err != nil {
		return nil, 0, err
	}
	return r, total, nil
}

// nullTimePtr converts a *time.Time into sql.NullTime.
func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
