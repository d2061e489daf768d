package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/oksasatya/todo-api/internal/domain/repository"
)

// Store is the Postgres-backed repository.Store.
type Store struct {
	db *sqlx.DB
	q  sqlx.ExtContext
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Users() repository.UserRepository        { return NewUserRepository(s.q) }
func (s *Store) Todos() repository.TodoRepository        { return NewTodoRepository(s.q) }
func (s *Store) Addresses() repository.AddressRepository { return NewAddressRepository(s.q) }

// WithinTx runs fn inside one transaction. Nested calls reuse the open
// transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if _, ok := s.q.(*sqlx.Tx); ok {
		return fn(s)
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Store{db: s.db, q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

var _ repository.Store = (*Store)(nil)
