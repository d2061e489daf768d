package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/todo-api/internal/domain/repository"
)

const uniqueViolation = "23505"

// mapError converts driver errors into repository sentinels.
func mapError(err error, op, table string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s %s: %s: %w", op, table, pgErr.ConstraintName, repository.ErrConflict)
	}
	return fmt.Errorf("postgres: %s %s: %w", op, table, err)
}
