package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todo-api/internal/domain/entity"
	"github.com/oksasatya/todo-api/internal/domain/repository"
	"github.com/oksasatya/todo-api/pkg/helpers"
)

type TodoService struct {
	Store  repository.Store
	Logger *logrus.Logger
}

func NewTodoService(store repository.Store, logger *logrus.Logger) *TodoService {
	return &TodoService{Store: store, Logger: logger}
}

type TodoInput struct {
	Title       string
	Description string
	Priority    int
	IsCompleted bool
}

func priorityError(p int) error {
	return invalid("priority", fmt.Sprintf("must be between %d and %d, got %d", entity.MinPriority, entity.MaxPriority, p))
}

func (s *TodoService) CreateWithOwner(ctx context.Context, in TodoInput, ownerID int64) (*entity.Todo, error) {
	if in.Title == "" || in.Description == "" {
		return nil, invalid("todo", "title and description are required")
	}
	if !entity.ValidPriority(in.Priority) {
		return nil, priorityError(in.Priority)
	}
	t, err := s.Store.Todos().Create(ctx, &entity.Todo{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		IsCompleted: in.IsCompleted,
		OwnerID:     ownerID,
	})
	if err != nil {
		return nil, storageError(err, "Owner not found", "Todo already exists")
	}
	helpers.LogInfo(s.Logger, "todo created", logrus.Fields{"todo_id": t.ID, "user_id": ownerID})
	return t, nil
}

func (s *TodoService) ListOwned(ctx context.Context, ownerID int64) ([]*entity.Todo, error) {
	return s.Store.Todos().ListByOwner(ctx, ownerID)
}

func (s *TodoService) ListAll(ctx context.Context, caller *entity.User) ([]*entity.Todo, error) {
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}
	return s.Store.Todos().GetMulti(ctx)
}

// GetOwned hides foreign todos behind NotFound for non-admin callers.
func (s *TodoService) GetOwned(ctx context.Context, id int64, caller *entity.User) (*entity.Todo, error) {
	t, err := s.Store.Todos().Get(ctx, id)
	if err != nil {
		return nil, storageError(err, "Todo not found", "")
	}
	if !MayAccess(t.OwnerID, caller) {
		return nil, newError(ErrNotFound, "Todo not found")
	}
	return t, nil
}

// owned loads a todo for mutation: NotFound when missing, Forbidden when foreign.
func owned(ctx context.Context, tx repository.Store, id int64, caller *entity.User) (*entity.Todo, error) {
	t, err := tx.Todos().Get(ctx, id)
	if err != nil {
		return nil, storageError(err, "Todo not found", "")
	}
	if !MayAccess(t.OwnerID, caller) {
		return nil, newError(ErrForbidden, "Not allowed to modify this todo")
	}
	return t, nil
}

func (s *TodoService) UpdateOwned(ctx context.Context, id int64, caller *entity.User, patch entity.TodoPatch) (*entity.Todo, error) {
	if patch.Title.Null || patch.Description.Null || patch.IsCompleted.Null {
		return nil, invalid("todo", "fields may not be null")
	}
	if v, ok := patch.Title.Get(); ok && v == "" {
		return nil, invalid("title", "may not be empty")
	}
	if v, ok := patch.Description.Get(); ok && v == "" {
		return nil, invalid("description", "may not be empty")
	}
	if patch.Priority.Null {
		return nil, invalid("priority", "may not be null")
	}
	if p, ok := patch.Priority.Get(); ok && !entity.ValidPriority(p) {
		return nil, priorityError(p)
	}
	var out *entity.Todo
	err := s.Store.WithinTx(ctx, func(tx repository.Store) error {
		t, err := owned(ctx, tx, id, caller)
		if err != nil {
			return err
		}
		out, err = tx.Todos().Update(ctx, t, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TodoService) DeleteOwned(ctx context.Context, id int64, caller *entity.User) (*entity.Todo, error) {
	var out *entity.Todo
	err := s.Store.WithinTx(ctx, func(tx repository.Store) error {
		if _, err := owned(ctx, tx, id, caller); err != nil {
			return err
		}
		removed, err := tx.Todos().Remove(ctx, id)
		if err != nil {
			return storageError(err, "Todo not found", "")
		}
		out = removed
		return nil
	})
	if err != nil {
		return nil, err
	}
	helpers.LogInfo(s.Logger, "todo deleted", logrus.Fields{"todo_id": id, "user_id": caller.ID})
	return out, nil
}
