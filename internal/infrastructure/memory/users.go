package memory

import (
	"context"

	"github.com/oksasatya/todo-api/internal/domain/entity"
	"github.com/oksasatya/todo-api/internal/domain/repository"
)

type userRepo struct{ s *Store }

func (r *userRepo) Get(ctx context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	err := r.s.run(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &u
		return nil
	})
	return out, err
}

func (r *userRepo) GetMulti(ctx context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.s.run(func(st *state) error {
		out = sortedByID(st.users, nil)
		return nil
	})
	return out, err
}

func (r *userRepo) find(match func(entity.User) bool) (*entity.User, error) {
	var out *entity.User
	err := r.s.run(func(st *state) error {
		for _, u := range st.users {
			if match(u) {
				u := u
				out = &u
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username })
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email })
}

// unique enforces the users(email), users(username) and users(address_id)
// constraints.
func unique(st *state, u entity.User) error {
	for id, other := range st.users {
		if id == u.ID {
			continue
		}
		if other.Email == u.Email || other.Username == u.Username {
			return repository.ErrConflict
		}
		if u.AddressID != nil && other.AddressID != nil && *u.AddressID == *other.AddressID {
			return repository.ErrConflict
		}
	}
	return nil
}

func (r *userRepo) Create(ctx context.Context, in *entity.User) (*entity.User, error) {
	var out *entity.User
	err := r.s.run(func(st *state) error {
		u := *in
		if err := unique(st, u); err != nil {
			return err
		}
		u.ID = st.next("users")
		u.CreatedAt = r.s.now()
		u.UpdatedAt = u.CreatedAt
		st.users[u.ID] = u
		out = &u
		return nil
	})
	return out, err
}

func (r *userRepo) Update(ctx context.Context, existing *entity.User, patch entity.UserPatch) (*entity.User, error) {
	var out *entity.User
	err := r.s.run(func(st *state) error {
		u, ok := st.users[existing.ID]
		if !ok {
			return repository.ErrNotFound
		}
		if len(patch.Columns()) > 0 {
			patch.Apply(&u)
			if err := unique(st, u); err != nil {
				return err
			}
			u.UpdatedAt = r.s.now()
			st.users[u.ID] = u
		}
		out = &u
		return nil
	})
	return out, err
}

// Remove cascades to the user's todos and address.
func (r *userRepo) Remove(ctx context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	err := r.s.run(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return repository.ErrNotFound
		}
		delete(st.users, id)
		for tid, t := range st.todos {
			if t.OwnerID == id {
				delete(st.todos, tid)
			}
		}
		for aid, a := range st.addresses {
			if a.ResidentID == id {
				delete(st.addresses, aid)
			}
		}
		out = &u
		return nil
	})
	return out, err
}
