// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/alfredjeanlab/todograph/internal/model"
	"github.com/alfredjeanlab/todograph/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateTodo(ctx context.Context, todo *model.Todo) error {
	return queryCreateTodo(ctx, s.db, todo)
}

func (s *PostgresStore) GetTodo(ctx context.Context, id string) (*model.Todo, error) {
	return queryGetTodo(ctx, s.db, id)
}

func (s *PostgresStore) ListTodos(ctx context.Context, filter model.TodoFilter) ([]*model.Todo, int, error) {
	return queryListTodos(ctx, s.db, filter)
}

func (s *PostgresStore) UpdateTodo(ctx context.Context, todo *model.Todo) error {
	return queryUpdateTodo(ctx, s.db, todo)
}

func (s *PostgresStore) DeleteTodo(ctx context.Context, id string) error {
	return queryDeleteTodo(ctx, s.db, id)
}

func (s *PostgresStore) SaveRelationship(ctx context.Context, rel *model.Relationship) error {
	return querySaveRelationship(ctx, s.db, rel)
}

func (s *PostgresStore) GetRelationship(ctx context.Context, id string) (*model.Relationship, error) {
	return queryGetRelationship(ctx, s.db, id)
}

func (s *PostgresStore) FindRelationshipBetween(ctx context.Context, fromID, toID string, typ model.RelationType) (*model.Relationship, error) {
	return queryFindRelationshipBetween(ctx, s.db, fromID, toID, typ)
}

func (s *PostgresStore) ListRelationships(ctx context.Context, filter model.RelationshipFilter) ([]*model.Relationship, int, error) {
	return queryListRelationships(ctx, s.db, filter)
}

func (s *PostgresStore) DeleteRelationship(ctx context.Context, id string) error {
	return queryDeleteRelationship(ctx, s.db, id)
}

func (s *PostgresStore) DeleteRelationshipsByTodo(ctx context.Context, todoID string) error {
	return queryDeleteRelationshipsByTodo(ctx, s.db, todoID)
}

// RunInTransaction begins a database transaction, creates a txStore that
// delegates to it, calls fn, and commits on success or rolls back on error.
func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txS := &txStore{tx: tx}
	if err := fn(txS); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore implements store.Store using a *sql.Tx.
type txStore struct {
	tx *sql.Tx
}

// Compile-time check that txStore implements store.Store.
var _ store.Store = (*txStore)(nil)

func (s *txStore) CreateTodo(ctx context.Context, todo *model.Todo) error {
	return queryCreateTodo(ctx, s.tx, todo)
}

func (s *txStore) GetTodo(ctx context.Context, id string) (*model.Todo, error) {
	return queryGetTodo(ctx, s.tx, id)
}

func (s *txStore) ListTodos(ctx context.Context, filter model.TodoFilter) ([]*model.Todo, int, error) {
	return queryListTodos(ctx, s.tx, filter)
}

func (s *txStore) UpdateTodo(ctx context.Context, todo *model.Todo) error {
	return queryUpdateTodo(ctx, s.tx, todo)
}

func (s *txStore) DeleteTodo(ctx context.Context, id string) error {
	return queryDeleteTodo(ctx, s.tx, id)
}

func (s *txStore) SaveRelationship(ctx context.Context, rel *model.Relationship) error {
	return querySaveRelationship(ctx, s.tx, rel)
}

func (s *txStore) GetRelationship(ctx context.Context, id string) (*model.Relationship, error) {
	return queryGetRelationship(ctx, s.tx, id)
}

func (s *txStore) FindRelationshipBetween(ctx context.Context, fromID, toID string, typ model.RelationType) (*model.Relationship, error) {
	return queryFindRelationshipBetween(ctx, s.tx, fromID, toID, typ)
}

func (s *txStore) ListRelationships(ctx context.Context, filter model.RelationshipFilter) ([]*model.Relationship, int, error) {
	return queryListRelationships(ctx, s.tx, filter)
}

func (s *txStore) DeleteRelationship(ctx context.Context, id string) error {
	return queryDeleteRelationship(ctx, s.tx, id)
}

func (s *txStore) DeleteRelationshipsByTodo(ctx context.Context, todoID string) error {
	return queryDeleteRelationshipsByTodo(ctx, s.tx, todoID)
}

// RunInTransaction on a txStore reuses the existing transaction (no nesting).
func (s *txStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op for a transaction store; the parent store owns the connection.
func (s *txStore) Close() error {
	return nil
}
