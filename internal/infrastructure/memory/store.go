// Package memory is an in-process repository.Store used by DB_DRIVER=memory
// and by tests. A single mutex serializes access; WithinTx snapshots state and
// restores it when fn fails or panics.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/todo-api/internal/domain/entity"
	"github.com/oksasatya/todo-api/internal/domain/repository"
)

type state struct {
	seq       map[string]int64
	users     map[int64]entity.User
	todos     map[int64]entity.Todo
	addresses map[int64]entity.Address
}

func newState() *state {
	return &state{
		seq:       map[string]int64{},
		users:     map[int64]entity.User{},
		todos:     map[int64]entity.Todo{},
		addresses: map[int64]entity.Address{},
	}
}

func (s *state) clone() *state {
	out := newState()
	for k, v := range s.seq {
		out.seq[k] = v
	}
	for k, v := range s.users {
		out.users[k] = v
	}
	for k, v := range s.todos {
		out.todos[k] = v
	}
	for k, v := range s.addresses {
		out.addresses[k] = v
	}
	return out
}

func (s *state) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

type Store struct {
	mu   *sync.Mutex
	data **state
	inTx bool
	now  func() time.Time
}

func NewStore() *Store {
	st := newState()
	return &Store{mu: &sync.Mutex{}, data: &st, now: time.Now}
}

// run executes fn with the store locked, unless already inside a transaction
// that holds the lock.
func (s *Store) run(fn func(st *state) error) error {
	if !s.inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(*s.data)
}

func (s *Store) Users() repository.UserRepository        { return &userRepo{s: s} }
func (s *Store) Todos() repository.TodoRepository        { return &todoRepo{s: s} }
func (s *Store) Addresses() repository.AddressRepository { return &addressRepo{s: s} }

func (s *Store) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := (*s.data).clone()
	defer func() {
		if p := recover(); p != nil {
			*s.data = snapshot
			panic(p)
		}
	}()
	if err := fn(&Store{mu: s.mu, data: s.data, inTx: true, now: s.now}); err != nil {
		*s.data = snapshot
		return err
	}
	return nil
}

func sortedByID[T repository.Entity](rows map[int64]T, keep func(T) bool) []*T {
	out := make([]*T, 0, len(rows))
	for _, v := range rows {
		if keep != nil && !keep(v) {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return (*out[i]).EntityID() < (*out[j]).EntityID() })
	return out
}

var _ repository.Store = (*Store)(nil)
