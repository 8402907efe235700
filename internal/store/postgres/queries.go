package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alfredjeanlab/todograph/internal/model"
)

// todoColumns is the column list used for SELECT statements on the todos table.
const todoColumns = `id, title, description, status, priority, category,
	created_at, updated_at, completed_at`

// relationshipColumns is the column list for the relationships table.
const relationshipColumns = `id, from_id, to_id, type, description, created_at, updated_at`

// maxPageSize caps list page sizes so an unfiltered scan stays bounded.
const maxPageSize = 500

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateTodo(ctx context.Context, db executor, t *model.Todo) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO todos (
			id, title, description, status, priority, category,
			created_at, updated_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID,
		t.Title,
		t.Description,
		string(t.Status),
		t.Priority,
		t.Category,
		t.CreatedAt,
		t.UpdatedAt,
		nullTimePtr(t.CompletedAt),
	)
	return err
}

func queryGetTodo(ctx context.Context, db executor, id string) (*model.Todo, error) {
	row := db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1`, id)
	t, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func queryListTodos(ctx context.Context, db executor, filter model.TodoFilter) ([]*model.Todo, int, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			placeholders[i] = nextArg()
			args = append(args, string(s))
		}
		whereClauses = append(whereClauses, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	if filter.Category != "" {
		whereClauses = append(whereClauses, "category = "+nextArg())
		args = append(args, filter.Category)
	}

	if filter.Search != "" {
		p := nextArg()
		whereClauses = append(whereClauses,
			fmt.Sprintf("(title ILIKE '%%' || %s || '%%' OR description ILIKE '%%' || %s || '%%')", p, p))
		args = append(args, filter.Search)
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Single query with COUNT(*) OVER() to get total and rows atomically.
	dataQuery := "SELECT COUNT(*) OVER() AS total_count, " + todoColumns +
		" FROM todos" + whereSQL + " ORDER BY created_at DESC"

	dataQuery += " LIMIT " + nextArg()
	args = append(args, pageSize(filter.Limit))
	if filter.Offset > 0 {
		dataQuery += " OFFSET " + nextArg()
		args = append(args, filter.Offset)
	}

	rows, err := db.QueryContext(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []*model.Todo
	var total int
	for rows.Next() {
		t, n, err := scanTodoWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan todos: %w", err)
		}
		total = n
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan todos: %w", err)
	}

	return todos, total, nil
}

func queryUpdateTodo(ctx context.Context, db executor, t *model.Todo) error {
	res, err := db.ExecContext(ctx, `
		UPDATE todos SET
			title = $2,
			description = $3,
			status = $4,
			priority = $5,
			category = $6,
			updated_at = $7,
			completed_at = $8
		WHERE id = $1`,
		t.ID,
		t.Title,
		t.Description,
		string(t.Status),
		t.Priority,
		t.Category,
		t.UpdatedAt,
		nullTimePtr(t.CompletedAt),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryDeleteTodo(ctx context.Context, db executor, id string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	return err
}

func querySaveRelationship(ctx context.Context, db executor, r *model.Relationship) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO relationships (
			id, from_id, to_id, type, description, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			from_id = EXCLUDED.from_id,
			to_id = EXCLUDED.to_id,
			type = EXCLUDED.type,
			description = EXCLUDED.description,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at`,
		r.ID,
		r.FromID,
		r.ToID,
		string(r.Type),
		r.Description,
		r.CreatedAt,
		r.UpdatedAt,
	)
	return err
}

func queryGetRelationship(ctx context.Context, db executor, id string) (*model.Relationship, error) {
	row := db.QueryRowContext(ctx, `SELECT `+relationshipColumns+` FROM relationships WHERE id = $1`, id)
	r, err := scanRelationship(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func queryFindRelationshipBetween(ctx context.Context, db executor, fromID, toID string, typ model.RelationType) (*model.Relationship, error) {
	row := db.QueryRowContext(ctx, `SELECT `+relationshipColumns+`
		FROM relationships WHERE from_id = $1 AND to_id = $2 AND type = $3`,
		fromID, toID, string(typ))
	r, err := scanRelationship(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func queryListRelationships(ctx context.Context, db executor, filter model.RelationshipFilter) ([]*model.Relationship, int, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if filter.FromID != "" {
		whereClauses = append(whereClauses, "from_id = "+nextArg())
		args = append(args, filter.FromID)
	}

	if filter.ToID != "" {
		whereClauses = append(whereClauses, "to_id = "+nextArg())
		args = append(args, filter.ToID)
	}

	if len(filter.Types) > 0 {
		placeholders := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			placeholders[i] = nextArg()
			args = append(args, string(t))
		}
		whereClauses = append(whereClauses, "type IN ("+strings.Join(placeholders, ", ")+")")
	}

	if filter.Involving != "" {
		p := nextArg()
		whereClauses = append(whereClauses, fmt.Sprintf("(from_id = %s OR to_id = %s)", p, p))
		args = append(args, filter.Involving)
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	dataQuery := "SELECT COUNT(*) OVER() AS total_count, " + relationshipColumns +
		" FROM relationships" + whereSQL + " ORDER BY created_at DESC"

	dataQuery += " LIMIT " + nextArg()
	args = append(args, pageSize(filter.Limit))
	if filter.Offset > 0 {
		dataQuery += " OFFSET " + nextArg()
		args = append(args, filter.Offset)
	}

	rows, err := db.QueryContext(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list relationships: %w", err)
	}
	defer rows.Close()

	var rels []*model.Relationship
	var total int
	for rows.Next() {
		r, n, err := scanRelationshipWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan relationships: %w", err)
		}
		total = n
		rels = append(rels, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan relationships: %w", err)
	}

	return rels, total, nil
}

func queryDeleteRelationship(ctx context.Context, db executor, id string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM relationships WHERE id = $1`, id)
	return err
}

func queryDeleteRelationshipsByTodo(ctx context.Context, db executor, todoID string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM relationships WHERE from_id = $1 OR to_id = $1`, todoID)
	return err
}

// pageSize clamps a requested limit to the adapter cap. A zero or negative
// limit falls back to the cap rather than an unbounded scan.
func pageSize(limit int) int {
	if limit <= 0 || limit > maxPageSize {
		return maxPageSize
	}
	return limit
}
