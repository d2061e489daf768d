package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/todo-api/internal/domain/entity"
	"github.com/oksasatya/todo-api/internal/domain/repository"
	"github.com/oksasatya/todo-api/pkg/optional"
)

func seedUser(t *testing.T, s *Store, name string) *entity.User {
	t.Helper()
	u, err := s.Users().Create(context.Background(), &entity.User{Email: name + "@x.com", Username: name, IsActive: true})
	require.NoError(t, err)
	return u
}

func TestUsersUnique(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "alice")

	_, err := s.Users().Create(context.Background(), &entity.User{Email: "alice@x.com", Username: "other"})
	assert.ErrorIs(t, err, repository.ErrConflict)
	_, err = s.Users().Create(context.Background(), &entity.User{Email: "other@x.com", Username: "alice"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestTodoPatchKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := seedUser(t, s, "alice")
	todo, err := s.Todos().Create(ctx, &entity.Todo{Title: "t", Description: "d", Priority: 2, OwnerID: u.ID})
	require.NoError(t, err)

	updated, err := s.Todos().Update(ctx, todo, entity.TodoPatch{IsCompleted: optional.Of(true)})
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)
	assert.Equal(t, "t", updated.Title)
	assert.Equal(t, 2, updated.Priority)
}

func TestWithinTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := seedUser(t, s, "alice")

	err := s.WithinTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Addresses().Create(ctx, &entity.Address{Address1: "1 Main", ResidentID: u.ID}); err != nil {
			return err
		}
		return errors.New("link failed")
	})
	require.Error(t, err)

	_, err = s.Addresses().GetByResident(ctx, u.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWithinTxRollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := seedUser(t, s, "alice")

	assert.PanicsWithValue(t, "boom", func() {
		_ = s.WithinTx(ctx, func(tx repository.Store) error {
			if _, err := tx.Addresses().Create(ctx, &entity.Address{Address1: "1 Main", ResidentID: u.ID}); err != nil {
				return err
			}
			panic("boom")
		})
	})

	_, err := s.Addresses().GetByResident(ctx, u.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// the lock is released after the panic
	_, err = s.Addresses().Create(ctx, &entity.Address{Address1: "2 Main", ResidentID: u.ID})
	require.NoError(t, err)
}

func TestRemoveAddressClearsLink(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := seedUser(t, s, "alice")
	a, err := s.Addresses().Create(ctx, &entity.Address{Address1: "1 Main", ResidentID: u.ID})
	require.NoError(t, err)
	_, err = s.Users().Update(ctx, u, entity.UserPatch{AddressID: optional.Of(a.ID)})
	require.NoError(t, err)

	_, err = s.Addresses().Remove(ctx, a.ID)
	require.NoError(t, err)

	got, err := s.Users().Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AddressID)
}

func TestRemoveUserCascades(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := seedUser(t, s, "alice")
	_, err := s.Todos().Create(ctx, &entity.Todo{Title: "t", Priority: 1, OwnerID: u.ID})
	require.NoError(t, err)

	_, err = s.Users().Remove(ctx, u.ID)
	require.NoError(t, err)

	todos, err := s.Todos().GetMulti(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}
