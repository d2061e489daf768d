package memory

import (
	"context"
	"fmt"

	"github.com/oksasatya/todo-api/internal/domain/entity"
	"github.com/oksasatya/todo-api/internal/domain/repository"
)

type todoRepo struct{ s *Store }

func (r *todoRepo) Get(ctx context.Context, id int64) (*entity.Todo, error) {
	var out *entity.Todo
	err := r.s.run(func(st *state) error {
		t, ok := st.todos[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &t
		return nil
	})
	return out, err
}

func (r *todoRepo) GetMulti(ctx context.Context) ([]*entity.Todo, error) {
	var out []*entity.Todo
	err := r.s.run(func(st *state) error {
		out = sortedByID(st.todos, nil)
		return nil
	})
	return out, err
}

func (r *todoRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*entity.Todo, error) {
	var out []*entity.Todo
	err := r.s.run(func(st *state) error {
		out = sortedByID(st.todos, func(t entity.Todo) bool { return t.OwnerID == ownerID })
		return nil
	})
	return out, err
}

func (r *todoRepo) Create(ctx context.Context, in *entity.Todo) (*entity.Todo, error) {
	var out *entity.Todo
	err := r.s.run(func(st *state) error {
		if _, ok := st.users[in.OwnerID]; !ok {
			return fmt.Errorf("memory: todos.owner_id %d: foreign key violation", in.OwnerID)
		}
		t := *in
		t.ID = st.next("todos")
		t.CreatedAt = r.s.now()
		t.UpdatedAt = t.CreatedAt
		st.todos[t.ID] = t
		out = &t
		return nil
	})
	return out, err
}

func (r *todoRepo) Update(ctx context.Context, existing *entity.Todo, patch entity.TodoPatch) (*entity.Todo, error) {
	var out *entity.Todo
	err := r.s.run(func(st *state) error {
		t, ok := st.todos[existing.ID]
		if !ok {
			return repository.ErrNotFound
		}
		if len(patch.Columns()) > 0 {
			patch.Apply(&t)
			t.UpdatedAt = r.s.now()
			st.todos[t.ID] = t
		}
		out = &t
		return nil
	})
	return out, err
}

func (r *todoRepo) Remove(ctx context.Context, id int64) (*entity.Todo, error) {
	var out *entity.Todo
	err := r.s.run(func(st *state) error {
		t, ok := st.todos[id]
		if !ok {
			return repository.ErrNotFound
		}
		delete(st.todos, id)
		out = &t
		return nil
	})
	return out, err
}
