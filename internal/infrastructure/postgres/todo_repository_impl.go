package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/oksasatya/todo-api/internal/domain/entity"
	"github.com/oksasatya/todo-api/internal/domain/repository"
)

var todoColumns = []string{
	"id", "title", "description", "priority", "is_completed", "owner_id",
	"created_at", "updated_at",
}

type TodoRepository struct {
	*table[entity.Todo, entity.TodoPatch]
}

func NewTodoRepository(q sqlx.ExtContext) *TodoRepository {
	return &TodoRepository{table: newTable[entity.Todo, entity.TodoPatch](q, "todos", todoColumns)}
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*entity.Todo, error) {
	return r.many(ctx, "list_by_owner", r.selectQuery().Where(sq.Eq{"owner_id": ownerID}).OrderBy("id"))
}

var _ repository.TodoRepository = (*TodoRepository)(nil)
