package memory

import (
	"context"
	"fmt"

	"github.com/oksasatya/todo-api/internal/domain/entity"
	"github.com/oksasatya/todo-api/internal/domain/repository"
)

type addressRepo struct{ s *Store }

func (r *addressRepo) Get(ctx context.Context, id int64) (*entity.Address, error) {
	var out *entity.Address
	err := r.s.run(func(st *state) error {
		a, ok := st.addresses[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &a
		return nil
	})
	return out, err
}

func (r *addressRepo) GetMulti(ctx context.Context) ([]*entity.Address, error) {
	var out []*entity.Address
	err := r.s.run(func(st *state) error {
		out = sortedByID(st.addresses, nil)
		return nil
	})
	return out, err
}

func (r *addressRepo) GetByResident(ctx context.Context, residentID int64) (*entity.Address, error) {
	var out *entity.Address
	err := r.s.run(func(st *state) error {
		for _, a := range st.addresses {
			if a.ResidentID == residentID {
				a := a
				out = &a
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}

func (r *addressRepo) Create(ctx context.Context, in *entity.Address) (*entity.Address, error) {
	var out *entity.Address
	err := r.s.run(func(st *state) error {
		if _, ok := st.users[in.ResidentID]; !ok {
			return fmt.Errorf("memory: addresses.resident_id %d: foreign key violation", in.ResidentID)
		}
		for _, other := range st.addresses {
			if other.ResidentID == in.ResidentID {
				return repository.ErrConflict
			}
		}
		a := *in
		a.ID = st.next("addresses")
		a.CreatedAt = r.s.now()
		a.UpdatedAt = a.CreatedAt
		st.addresses[a.ID] = a
		out = &a
		return nil
	})
	return out, err
}

func (r *addressRepo) Update(ctx context.Context, existing *entity.Address, patch entity.AddressPatch) (*entity.Address, error) {
	var out *entity.Address
	err := r.s.run(func(st *state) error {
		a, ok := st.addresses[existing.ID]
		if !ok {
			return repository.ErrNotFound
		}
		if len(patch.Columns()) > 0 {
			patch.Apply(&a)
			a.UpdatedAt = r.s.now()
			st.addresses[a.ID] = a
		}
		out = &a
		return nil
	})
	return out, err
}

// Remove clears users.address_id for the resident (ON DELETE SET NULL).
func (r *addressRepo) Remove(ctx context.Context, id int64) (*entity.Address, error) {
	var out *entity.Address
	err := r.s.run(func(st *state) error {
		a, ok := st.addresses[id]
		if !ok {
			return repository.ErrNotFound
		}
		delete(st.addresses, id)
		for uid, u := range st.users {
			if u.AddressID != nil && *u.AddressID == id {
				u.AddressID = nil
				st.users[uid] = u
			}
		}
		out = &a
		return nil
	})
	return out, err
}
