package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/alfredjeanlab/todograph/internal/model"
	"github.com/alfredjeanlab/todograph/internal/store"
)

// newMockDB creates a sqlmock database with automatic cleanup and expectation checking.
func newMockDB(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return &PostgresStore{db: db}, mock
}

var todoRowColumns = []string{
	"id", "title", "description", "status", "priority", "category",
	"created_at", "updated_at", "completed_at",
}

var todoWithTotalColumns = append([]string{"total_count"}, todoRowColumns...)

var relRowColumns = []string{
	"id", "from_id", "to_id", "type", "description", "created_at", "updated_at",
}

var relWithTotalColumns = append([]string{"total_count"}, relRowColumns...)

func testTime() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func addTodoRow(rows *sqlmock.Rows, id string) *sqlmock.Rows {
	now := testTime()
	return rows.AddRow(id, "title "+id, "", "pending", 0, "", now, now, nil)
}

func addRelRow(rows *sqlmock.Rows, id, from, to, typ string) *sqlmock.Rows {
	now := testTime()
	return rows.AddRow(id, from, to, typ, "", now, now)
}

func TestGetTodo(t *testing.T) {
	st, mock := newMockDB(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM todos WHERE id = \$1`).
		WithArgs("td-1").
		WillReturnRows(addTodoRow(sqlmock.NewRows(todoRowColumns), "td-1"))

	todo, err := st.GetTodo(context.Background(), "td-1")
	if err != nil {
		t.Fatalf("GetTodo: %v", err)
	}
	if todo == nil || todo.ID != "td-1" || todo.Status != model.TodoPending {
		t.Errorf("todo = %+v", todo)
	}
}

func TestGetTodoMiss(t *testing.T) {
	st, mock := newMockDB(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM todos WHERE id = \$1`).
		WithArgs("td-404").
		WillReturnRows(sqlmock.NewRows(todoRowColumns))

	todo, err := st.GetTodo(context.Background(), "td-404")
	if err != nil {
		t.Fatalf("GetTodo: %v", err)
	}
	if todo != nil {
		t.Errorf("todo = %+v, want nil on miss", todo)
	}
}

func TestListTodosFilters(t *testing.T) {
	st, mock := newMockDB(t)

	rows := sqlmock.NewRows(todoWithTotalColumns).
		AddRow(7, "td-1", "title", "", "pending", 0, "work", testTime(), testTime(), nil)

	mock.ExpectQuery(`(?s)SELECT COUNT\(\*\) OVER\(\) AS total_count, .+ FROM todos WHERE status IN \(\$1\) AND category = \$2 ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs("pending", "work", 10, 20).
		WillReturnRows(rows)

	todos, total, err := st.ListTodos(context.Background(), model.TodoFilter{
		Status:   []model.TodoStatus{model.TodoPending},
		Category: "work",
		Limit:    10,
		Offset:   20,
	})
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if total != 7 || len(todos) != 1 {
		t.Errorf("got %d todos, total %d; want 1, 7", len(todos), total)
	}
}

func TestListTodosClampsPageSize(t *testing.T) {
	st, mock := newMockDB(t)

	mock.ExpectQuery(`(?s)SELECT COUNT\(\*\) OVER\(\) AS total_count, .+ FROM todos ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(maxPageSize).
		WillReturnRows(sqlmock.NewRows(todoWithTotalColumns))

	if _, _, err := st.ListTodos(context.Background(), model.TodoFilter{Limit: 99999}); err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
}

func TestUpdateTodoNoRows(t *testing.T) {
	st, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE todos SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	now := testTime()
	err := st.UpdateTodo(context.Background(), &model.Todo{
		ID: "td-404", Title: "x", Status: model.TodoPending, CreatedAt: now, UpdatedAt: now,
	})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestSaveRelationshipUpsert(t *testing.T) {
	st, mock := newMockDB(t)

	mock.ExpectExec(`(?s)INSERT INTO relationships .+ ON CONFLICT \(id\) DO UPDATE SET`).
		WithArgs("rl-1", "td-1", "td-2", "depends_on", "", testTime(), testTime()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rel, err := model.NewRelationship("rl-1", "td-1", "td-2", model.RelDependsOn, "", testTime())
	if err != nil {
		t.Fatalf("NewRelationship: %v", err)
	}
	if err := st.SaveRelationship(context.Background(), rel); err != nil {
		t.Fatalf("SaveRelationship: %v", err)
	}
}

func TestFindRelationshipBetween(t *testing.T) {
	st, mock := newMockDB(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM relationships WHERE from_id = \$1 AND to_id = \$2 AND type = \$3`).
		WithArgs("td-1", "td-2", "blocks").
		WillReturnRows(addRelRow(sqlmock.NewRows(relRowColumns), "rl-1", "td-1", "td-2", "blocks"))

	rel, err := st.FindRelationshipBetween(context.Background(), "td-1", "td-2", model.RelBlocks)
	if err != nil {
		t.Fatalf("FindRelationshipBetween: %v", err)
	}
	if rel == nil || rel.ID != "rl-1" || rel.Type != model.RelBlocks {
		t.Errorf("rel = %+v", rel)
	}
}

func TestFindRelationshipBetweenMiss(t *testing.T) {
	st, mock := newMockDB(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM relationships WHERE from_id = \$1 AND to_id = \$2 AND type = \$3`).
		WithArgs("td-1", "td-2", "blocks").
		WillReturnRows(sqlmock.NewRows(relRowColumns))

	rel, err := st.FindRelationshipBetween(context.Background(), "td-1", "td-2", model.RelBlocks)
	if err != nil {
		t.Fatalf("FindRelationshipBetween: %v", err)
	}
	if rel != nil {
		t.Errorf("rel = %+v, want nil on miss", rel)
	}
}

func TestListRelationshipsFilters(t *testing.T) {
	st, mock := newMockDB(t)

	rows := sqlmock.NewRows(relWithTotalColumns).
		AddRow(3, "rl-1", "td-1", "td-2", "depends_on", "", testTime(), testTime())

	mock.ExpectQuery(`(?s)SELECT COUNT\(\*\) OVER\(\) AS total_count, .+ FROM relationships WHERE from_id = \$1 AND type IN \(\$2, \$3\) ORDER BY created_at DESC LIMIT \$4`).
		WithArgs("td-1", "depends_on", "blocks", 25).
		WillReturnRows(rows)

	rels, total, err := st.ListRelationships(context.Background(), model.RelationshipFilter{
		FromID: "td-1",
		Types:  []model.RelationType{model.RelDependsOn, model.RelBlocks},
		Limit:  25,
	})
	if err != nil {
		t.Fatalf("ListRelationships: %v", err)
	}
	if total != 3 || len(rels) != 1 {
		t.Errorf("got %d rels, total %d; want 1, 3", len(rels), total)
	}
}

func TestListRelationshipsInvolving(t *testing.T) {
	st, mock := newMockDB(t)

	mock.ExpectQuery(`(?s)SELECT COUNT\(\*\) OVER\(\) AS total_count, .+ FROM relationships WHERE \(from_id = \$1 OR to_id = \$1\) ORDER BY created_at DESC LIMIT \$2`).
		WithArgs("td-9", maxPageSize).
		WillReturnRows(sqlmock.NewRows(relWithTotalColumns))

	if _, _, err := st.ListRelationships(context.Background(), model.RelationshipFilter{Involving: "td-9"}); err != nil {
		t.Fatalf("ListRelationships: %v", err)
	}
}

func TestListRelationshipsRejectsCorruptRow(t *testing.T) {
	st, mock := newMockDB(t)

	// A row with an unknown type fails domain validation during scan.
	rows := sqlmock.NewRows(relWithTotalColumns).
		AddRow(1, "rl-1", "td-1", "td-2", "bogus_type", "", testTime(), testTime())

	mock.ExpectQuery(`(?s)SELECT COUNT\(\*\) OVER\(\) AS total_count, .+ FROM relationships`).
		WillReturnRows(rows)

	if _, _, err := st.ListRelationships(context.Background(), model.RelationshipFilter{}); err == nil {
		t.Fatal("expected error for corrupt row")
	}
}

func TestDeleteRelationshipsByTodo(t *testing.T) {
	st, mock := newMockDB(t)

	mock.ExpectExec(`DELETE FROM relationships WHERE from_id = \$1 OR to_id = \$1`).
		WithArgs("td-1").
		WillReturnResult(sqlmock.NewResult(0, 4))

	if err := st.DeleteRelationshipsByTodo(context.Background(), "td-1"); err != nil {
		t.Fatalf("DeleteRelationshipsByTodo: %v", err)
	}
}

func TestRunInTransactionCommit(t *testing.T) {
	st, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM relationships WHERE id = \$1`).
		WithArgs("rl-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := st.RunInTransaction(context.Background(), func(tx store.Store) error {
		return tx.DeleteRelationship(context.Background(), "rl-1")
	})
	if err != nil {
		t.Fatalf("RunInTransaction: %v", err)
	}
}

func TestRunInTransactionRollback(t *testing.T) {
	st, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := st.RunInTransaction(context.Background(), func(tx store.Store) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestPageSize(t *testing.T) {
	for _, tc := range []struct {
		in, want int
	}{
		{0, maxPageSize},
		{-5, maxPageSize},
		{1, 1},
		{maxPageSize, maxPageSize},
		{maxPageSize + 1, maxPageSize},
	} {
		if got := pageSize(tc.in); got != tc.want {
			t.Errorf("pageSize(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
