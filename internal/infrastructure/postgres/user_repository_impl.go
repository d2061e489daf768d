package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/oksasatya/todo-api/internal/domain/entity"
	"github.com/oksasatya/todo-api/internal/domain/repository"
)

var userColumns = []string{
	"id", "email", "username", "first_name", "last_name", "hashed_password",
	"is_active", "phone_number", "address_id", "is_admin", "is_superuser",
	"created_at", "updated_at",
}

type UserRepository struct {
	*table[entity.User, entity.UserPatch]
}

func NewUserRepository(q sqlx.ExtContext) *UserRepository {
	return &UserRepository{table: newTable[entity.User, entity.UserPatch](q, "users", userColumns)}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.one(ctx, "get_by_username", r.selectQuery().Where(sq.Eq{"username": username}))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.one(ctx, "get_by_email", r.selectQuery().Where(sq.Eq{"email": email}))
}

var _ repository.UserRepository = (*UserRepository)(nil)
