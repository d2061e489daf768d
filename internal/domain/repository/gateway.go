package repository

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates a uniqueness violation.
	ErrConflict = errors.New("record already exists")
)

// Entity is a row with a surrogate integer id.
type Entity interface {
	EntityID() int64
	// Fields returns the columns written on insert.
	Fields() map[string]any
}

// Patch is a partial update for T: only the fields it carries change.
type Patch[T any] interface {
	Columns() map[string]any
	Apply(*T)
}

// Gateway is the generic CRUD contract shared by every entity repository.
type Gateway[T Entity, P Patch[T]] interface {
	Get(ctx context.Context, id int64) (*T, error)
	GetMulti(ctx context.Context) ([]*T, error)
	Create(ctx context.Context, in *T) (*T, error)
	Update(ctx context.Context, existing *T, patch P) (*T, error)
	Remove(ctx context.Context, id int64) (*T, error)
}
