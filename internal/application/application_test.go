package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/todo-api/internal/domain/entity"
	"github.com/oksasatya/todo-api/internal/domain/repository"
	"github.com/oksasatya/todo-api/internal/infrastructure/memory"
	"github.com/oksasatya/todo-api/pkg/helpers"
	"github.com/oksasatya/todo-api/pkg/optional"
)

type services struct {
	store     *memory.Store
	users     *UserService
	todos     *TodoService
	addresses *AddressService
}

func newServices(t *testing.T) services {
	t.Helper()
	store := memory.NewStore()
	return services{
		store:     store,
		users:     NewUserService(store, helpers.NewPasswordHasher(bcrypt.MinCost), helpers.NewJWTManager("test-secret", time.Minute), nil, nil),
		todos:     NewTodoService(store, nil),
		addresses: NewAddressService(store, nil),
	}
}

func signup(t *testing.T, s services, name string) *entity.User {
	t.Helper()
	u, err := s.users.Signup(context.Background(), SignupInput{
		Email:    name + "@x.com",
		Username: name,
		Password: "p1",
	})
	require.NoError(t, err)
	return u
}

func makeAdmin(t *testing.T, s services, u *entity.User) *entity.User {
	t.Helper()
	out, err := s.store.Users().Update(context.Background(), u, entity.UserPatch{IsAdmin: optional.Of(true)})
	require.NoError(t, err)
	return out
}

type fixedRevoker struct{ since time.Time }

func (r *fixedRevoker) Revoke(context.Context, int64) error { return nil }
func (r *fixedRevoker) RevokedSince(context.Context, int64) (time.Time, bool, error) {
	return r.since, !r.since.IsZero(), nil
}

func TestSignupThenAuthenticate(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	u := signup(t, s, "alice")
	assert.True(t, u.IsActive)
	assert.False(t, u.IsAdmin)
	assert.NotEqual(t, "p1", u.HashedPassword)

	got, ok, err := s.users.Authenticate(ctx, "alice", "p1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, u.ID, got.ID)

	_, ok, err = s.users.Authenticate(ctx, "alice", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.users.Authenticate(ctx, "nobody", "p1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSignupRejects(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	signup(t, s, "alice")

	_, err := s.users.Signup(ctx, SignupInput{Email: "alice@x.com", Username: "alice2", Password: "p"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.users.Signup(ctx, SignupInput{Email: "new@x.com", Username: "alice", Password: "p"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.users.Signup(ctx, SignupInput{Email: "no-at-sign", Username: "bob", Password: "p"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
}

func TestSignupConflictMessages(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	signup(t, s, "alice")

	var appErr *Error
	_, err := s.users.Signup(ctx, SignupInput{Email: "alice@x.com", Username: "alice2", Password: "p"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Email already registered", appErr.Msg)

	_, err = s.users.Signup(ctx, SignupInput{Email: "new@x.com", Username: "alice", Password: "p"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Username already taken", appErr.Msg)
}

// blindUsers hides existing rows from lookups, as a concurrent signup that
// commits between the checks and the insert would.
type blindUsers struct{ repository.UserRepository }

func (blindUsers) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}

func (blindUsers) GetByUsername(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}

type blindStore struct{ repository.Store }

func (b blindStore) Users() repository.UserRepository { return blindUsers{b.Store.Users()} }

func (b blindStore) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	return b.Store.WithinTx(ctx, func(tx repository.Store) error { return fn(blindStore{tx}) })
}

func TestSignupRaceOnEmailIsNeutral(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	signup(t, s, "alice")

	users := NewUserService(blindStore{s.store}, helpers.NewPasswordHasher(bcrypt.MinCost), helpers.NewJWTManager("test-secret", time.Minute), nil, nil)
	_, err := users.Signup(ctx, SignupInput{Email: "alice@x.com", Username: "someone", Password: "p"})
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "User already exists", appErr.Msg)
}

func TestAuthenticateUnknownUserComparesHash(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	assert.Empty(t, s.users.dummyHash)

	_, ok, err := s.users.Authenticate(ctx, "nobody", "p1")
	require.NoError(t, err)
	assert.False(t, ok)

	cost, err := bcrypt.Cost([]byte(s.users.dummyHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestLoginAndResolveToken(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	u := signup(t, s, "alice")

	tok, err := s.users.Login(ctx, "alice", "p1")
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.Type)

	got, err := s.users.ResolveToken(ctx, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.users.Login(ctx, "alice", "bad")
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = s.users.ResolveToken(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestResolveTokenRevoked(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	signup(t, s, "alice")
	tok, err := s.users.Login(ctx, "alice", "p1")
	require.NoError(t, err)

	s.users.Revoker = &fixedRevoker{since: time.Now().Add(time.Hour)}
	_, err = s.users.ResolveToken(ctx, tok.Token)
	assert.ErrorIs(t, err, ErrInvalidCredential)

	s.users.Revoker = &fixedRevoker{since: time.Now().Add(-time.Hour)}
	_, err = s.users.ResolveToken(ctx, tok.Token)
	assert.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	u := signup(t, s, "alice")

	_, err := s.users.ChangePassword(ctx, u, PasswordChange{Username: "alice", CurrentPassword: "wrong", NewPassword: "p2"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
	_, err = s.users.ChangePassword(ctx, u, PasswordChange{Username: "bob", CurrentPassword: "p1", NewPassword: "p2"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = s.users.ChangePassword(ctx, u, PasswordChange{Username: "alice", CurrentPassword: "p1", NewPassword: "p2"})
	require.NoError(t, err)

	_, ok, err := s.users.Authenticate(ctx, "alice", "p2")
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = s.users.Authenticate(ctx, "alice", "p1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeactivateIsIdempotent(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	u := signup(t, s, "alice")
	tok, err := s.users.Login(ctx, "alice", "p1")
	require.NoError(t, err)

	first, err := s.users.Deactivate(ctx, u)
	require.NoError(t, err)
	assert.False(t, first.IsActive)

	second, err := s.users.Deactivate(ctx, first)
	require.NoError(t, err)
	assert.False(t, second.IsActive)

	_, err = s.users.ResolveToken(ctx, tok.Token)
	assert.ErrorIs(t, err, ErrInvalidCredential)
	_, ok, err := s.users.Authenticate(ctx, "alice", "p1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateProfile(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	u := signup(t, s, "alice")

	out, err := s.users.UpdateProfile(ctx, u, ProfilePatch{PhoneNumber: optional.Of("01012345678")})
	require.NoError(t, err)
	require.NotNil(t, out.PhoneNumber)
	assert.Equal(t, "01012345678", *out.PhoneNumber)

	_, err = s.users.UpdateProfile(ctx, u, ProfilePatch{PhoneNumber: optional.Of("123")})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	out, err = s.users.UpdateProfile(ctx, u, ProfilePatch{PhoneNumber: optional.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, out.PhoneNumber)
}

func TestProfileAccess(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	alice := signup(t, s, "alice")
	bob := signup(t, s, "bob")
	admin := makeAdmin(t, s, signup(t, s, "root"))

	_, err := s.users.ProfileByID(ctx, alice.ID, bob)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = s.users.ProfileByID(ctx, 999, bob)
	assert.ErrorIs(t, err, ErrNotFound)

	p, err := s.users.ProfileByID(ctx, alice.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, p.User.ID)

	_, err = s.users.ListProfiles(ctx, bob)
	assert.ErrorIs(t, err, ErrForbidden)
	all, err := s.users.ListProfiles(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestEnsureAdmin(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	in := SignupInput{Email: "root@x.com", Username: "root", Password: "secret"}

	u, created, err := s.users.EnsureAdmin(ctx, in)
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, u.IsAdmin)
	assert.True(t, u.IsSuperuser)

	again, created, err := s.users.EnsureAdmin(ctx, in)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ID, again.ID)
}

func TestTodoPriorityBoundary(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	u := signup(t, s, "alice")

	for _, p := range []int{0, 6} {
		_, err := s.todos.CreateWithOwner(ctx, TodoInput{Title: "t", Priority: p}, u.ID)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, "priority %d", p)
	}
	for _, p := range []int{1, 5} {
		todo, err := s.todos.CreateWithOwner(ctx, TodoInput{Title: "t", Priority: p}, u.ID)
		require.NoError(t, err, "priority %d", p)
		assert.Equal(t, u.ID, todo.OwnerID)
	}

	todo, err := s.todos.CreateWithOwner(ctx, TodoInput{Title: "t", Priority: 3}, u.ID)
	require.NoError(t, err)
	_, err = s.todos.UpdateOwned(ctx, todo.ID, u, entity.TodoPatch{Priority: optional.Of(6)})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestTodoVisibility(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	alice := signup(t, s, "alice")
	bob := signup(t, s, "bob")
	admin := makeAdmin(t, s, signup(t, s, "root"))

	todo, err := s.todos.CreateWithOwner(ctx, TodoInput{Title: "t", Description: "d", Priority: 3}, alice.ID)
	require.NoError(t, err)

	_, err = s.todos.GetOwned(ctx, todo.ID, alice)
	assert.NoError(t, err)
	_, err = s.todos.GetOwned(ctx, todo.ID, admin)
	assert.NoError(t, err)
	_, err = s.todos.GetOwned(ctx, todo.ID, bob)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.todos.GetOwned(ctx, 999, alice)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.todos.UpdateOwned(ctx, todo.ID, bob, entity.TodoPatch{Title: optional.Of("x")})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = s.todos.DeleteOwned(ctx, todo.ID, bob)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = s.todos.DeleteOwned(ctx, 999, bob)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.todos.ListAll(ctx, bob)
	assert.ErrorIs(t, err, ErrForbidden)
	all, err := s.todos.ListAll(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	mine, err := s.todos.ListOwned(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	removed, err := s.todos.DeleteOwned(ctx, todo.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, removed.ID)
	_, err = s.todos.GetOwned(ctx, todo.ID, alice)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTodoPatchRoundTrip(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	alice := signup(t, s, "alice")
	todo, err := s.todos.CreateWithOwner(ctx, TodoInput{Title: "t", Description: "d", Priority: 3}, alice.ID)
	require.NoError(t, err)

	_, err = s.todos.UpdateOwned(ctx, todo.ID, alice, entity.TodoPatch{Title: optional.Of("new")})
	require.NoError(t, err)

	got, err := s.todos.GetOwned(ctx, todo.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "d", got.Description)
	assert.Equal(t, 3, got.Priority)
	assert.False(t, got.IsCompleted)
	assert.Equal(t, alice.ID, got.OwnerID)

	var verr *ValidationError
	_, err = s.todos.UpdateOwned(ctx, todo.ID, alice, entity.TodoPatch{Title: optional.Of("")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
	_, err = s.todos.UpdateOwned(ctx, todo.ID, alice, entity.TodoPatch{Description: optional.Of("")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "description", verr.Field)
	_, err = s.todos.CreateWithOwner(ctx, TodoInput{Title: "", Description: "d", Priority: 3}, alice.ID)
	require.ErrorAs(t, err, &verr)

	got, err = s.todos.GetOwned(ctx, todo.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
}

func TestAddressLinkage(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	alice := signup(t, s, "alice")

	_, found, err := s.addresses.GetMine(ctx, alice)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = s.addresses.UpdateMine(ctx, alice, entity.AddressPatch{City: optional.Of("x")})
	assert.ErrorIs(t, err, ErrNoAddress)

	res, err := s.addresses.CreateForUser(ctx, AddressInput{Address1: "1 Main", City: "Seoul", State: "S", Country: "KR", Zipcode: "01234"}, alice)
	require.NoError(t, err)
	require.NotNil(t, res.Resident.AddressID)
	assert.Equal(t, res.Address.ID, *res.Resident.AddressID)
	assert.Equal(t, alice.ID, res.Address.ResidentID)

	_, err = s.addresses.CreateForUser(ctx, AddressInput{Address1: "2 Main"}, res.Resident)
	assert.ErrorIs(t, err, ErrConflict)

	mine, found, err := s.addresses.GetMine(ctx, res.Resident)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, res.Address.ID, mine.ID)

	updated, err := s.addresses.UpdateMine(ctx, res.Resident, entity.AddressPatch{City: optional.Of("Busan")})
	require.NoError(t, err)
	assert.Equal(t, "Busan", updated.Address.City)
	assert.Equal(t, "1 Main", updated.Address.Address1)

	refreshed, err := s.addresses.DeleteMine(ctx, res.Resident)
	require.NoError(t, err)
	assert.Nil(t, refreshed.AddressID)

	_, found, err = s.addresses.GetMine(ctx, refreshed)
	require.NoError(t, err)
	assert.False(t, found)
	_, err = s.store.Addresses().Get(ctx, res.Address.ID)
	assert.Error(t, err)

	_, err = s.addresses.DeleteMine(ctx, refreshed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAddressDetectsUnlinkedRow(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	alice := signup(t, s, "alice")
	_, err := s.store.Addresses().Create(ctx, &entity.Address{Address1: "1 Main", City: "c", ResidentID: alice.ID})
	require.NoError(t, err)

	_, err = s.addresses.CreateForUser(ctx, AddressInput{Address1: "2 Main", City: "c", State: "s", Country: "x", Zipcode: "1"}, alice)
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Address already exists", appErr.Msg)

	got, err := s.store.Addresses().GetByResident(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "1 Main", got.Address1)
}

func TestAddressGetByID(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	alice := signup(t, s, "alice")
	bob := signup(t, s, "bob")
	admin := makeAdmin(t, s, signup(t, s, "root"))

	res, err := s.addresses.CreateForUser(ctx, AddressInput{Address1: "1 Main"}, alice)
	require.NoError(t, err)

	got, err := s.addresses.GetByID(ctx, res.Address.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.Resident.ID)

	_, err = s.addresses.GetByID(ctx, res.Address.ID, admin)
	assert.NoError(t, err)
	_, err = s.addresses.GetByID(ctx, res.Address.ID, bob)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = s.addresses.GetByID(ctx, 999, alice)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMayAccess(t *testing.T) {
	owner := &entity.User{ID: 1}
	other := &entity.User{ID: 2}
	admin := &entity.User{ID: 3, IsAdmin: true}

	assert.True(t, MayAccess(1, owner))
	assert.False(t, MayAccess(1, other))
	assert.True(t, MayAccess(1, admin))
	assert.False(t, MayAccess(1, nil))
	assert.ErrorIs(t, RequireAdmin(other), ErrForbidden)
	assert.NoError(t, RequireAdmin(admin))
}
