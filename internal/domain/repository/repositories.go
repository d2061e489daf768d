package repository

import (
	"context"

	"github.com/oksasatya/todo-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Gateway[entity.User, entity.UserPatch]
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

type TodoRepository interface {
	Gateway[entity.Todo, entity.TodoPatch]
	ListByOwner(ctx context.Context, ownerID int64) ([]*entity.Todo, error)
}

type AddressRepository interface {
	Gateway[entity.Address, entity.AddressPatch]
	GetByResident(ctx context.Context, residentID int64) (*entity.Address, error)
}

// Store groups the repositories over one storage handle. WithinTx runs fn
// against a Store bound to a single transaction; any error rolls it back.
type Store interface {
	Users() UserRepository
	Todos() TodoRepository
	Addresses() AddressRepository
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}
