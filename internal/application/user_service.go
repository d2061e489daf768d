package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todo-api/internal/domain/entity"
	"github.com/oksasatya/todo-api/internal/domain/repository"
	"github.com/oksasatya/todo-api/pkg/helpers"
	"github.com/oksasatya/todo-api/pkg/optional"
)

const phoneLength = 11

type UserService struct {
	Store     repository.Store
	Passwords *helpers.PasswordHasher
	JWT       *helpers.JWTManager
	Revoker   TokenRevoker
	Logger    *logrus.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(store repository.Store, passwords *helpers.PasswordHasher, jwt *helpers.JWTManager, revoker TokenRevoker, logger *logrus.Logger) *UserService {
	if revoker == nil {
		revoker = NoopRevoker{}
	}
	return &UserService{
		Store:     store,
		Passwords: passwords,
		JWT:       jwt,
		Revoker:   revoker,
		Logger:    logger,
	}
}

type SignupInput struct {
	Email       string
	Username    string
	FirstName   string
	LastName    string
	Password    string
	PhoneNumber *string
}

// AccessToken is what a successful login hands back.
type AccessToken struct {
	Token     string
	Type      string
	ExpiresAt time.Time
}

// Profile is a user together with the linked address, if any.
type Profile struct {
	User    *entity.User
	Address *entity.Address
}

type PasswordChange struct {
	Username        string
	CurrentPassword string
	NewPassword     string
}

// ProfilePatch lists the user fields a caller may change on themselves.
type ProfilePatch struct {
	FirstName   optional.Value[string]
	LastName    optional.Value[string]
	PhoneNumber optional.Value[string]
}

func validPhone(s string) bool {
	if len(s) != phoneLength {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Signup hashes the password and stores a new active, non-admin user.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	if !strings.Contains(in.Email, "@") {
		return nil, invalid("email", "must contain @")
	}
	if in.Password == "" {
		return nil, invalid("password", "is required")
	}
	if in.PhoneNumber != nil && !validPhone(*in.PhoneNumber) {
		return nil, invalid("phone_number", "must be 11 digits")
	}

	hash, err := s.Passwords.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	var out *entity.User
	err = s.Store.WithinTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().GetByEmail(ctx, in.Email); err == nil {
			return newError(ErrConflict, "Email already registered")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if _, err := tx.Users().GetByUsername(ctx, in.Username); err == nil {
			return newError(ErrConflict, "Username already taken")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		created, err := tx.Users().Create(ctx, &entity.User{
			Email:          in.Email,
			Username:       in.Username,
			FirstName:      in.FirstName,
			LastName:       in.LastName,
			HashedPassword: hash,
			IsActive:       true,
			PhoneNumber:    in.PhoneNumber,
		})
		if err != nil {
			// a concurrent signup may win on either unique column
			return storageError(err, "User not found", "User already exists")
		}
		out = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	helpers.LogInfo(s.Logger, "user signed up", logrus.Fields{"user_id": out.ID, "username": out.Username})
	return out, nil
}

// Authenticate returns ok=false when the username is unknown, the password is
// wrong or the account is inactive. The three cases are indistinguishable.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.User, bool, error) {
	u, err := s.Store.Users().GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		s.Passwords.Compare(s.unknownUserHash(), password)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if !s.Passwords.Compare(u.HashedPassword, password) || !u.IsActive {
		return nil, false, nil
	}
	return u, true, nil
}

// unknownUserHash is compared against when the username does not exist, so
// both failure paths pay the bcrypt cost.
func (s *UserService) unknownUserHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.Passwords.Hash("unknown-user")
		if err != nil {
			helpers.LogError(s.Logger, "hash placeholder password failed", err, nil)
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

func (s *UserService) Login(ctx context.Context, username, password string) (AccessToken, error) {
	u, ok, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return AccessToken{}, err
	}
	if !ok {
		return AccessToken{}, newError(ErrInvalidCredential, "Incorrect username or password")
	}
	tok, exp, err := s.JWT.IssueAccessToken(u.Username, u.ID, 0)
	if err != nil {
		helpers.LogError(s.Logger, "issue access token failed", err, logrus.Fields{"user_id": u.ID})
		return AccessToken{}, err
	}
	return AccessToken{Token: tok, Type: "bearer", ExpiresAt: exp}, nil
}

// ResolveToken turns a bearer token into the active user it names.
func (s *UserService) ResolveToken(ctx context.Context, token string) (*entity.User, error) {
	id, err := s.JWT.ParseAccessToken(token)
	if err != nil {
		return nil, newError(ErrInvalidCredential, "Could not validate credentials")
	}
	u, err := s.Store.Users().Get(ctx, id.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrInvalidCredential, "Could not validate credentials")
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive || u.Username != id.Username {
		return nil, newError(ErrInvalidCredential, "Could not validate credentials")
	}
	since, revoked, err := s.Revoker.RevokedSince(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if revoked && id.IssuedAt.Before(since) {
		return nil, newError(ErrInvalidCredential, "Token has been revoked")
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.Store.Users().Get(ctx, id)
	if err != nil {
		return nil, storageError(err, "User not found", "")
	}
	return u, nil
}

func (s *UserService) IsAdmin(u *entity.User) bool {
	return u != nil && u.IsAdmin
}

func (s *UserService) Profile(ctx context.Context, u *entity.User) (Profile, error) {
	return profileOf(ctx, s.Store, u)
}

func profileOf(ctx context.Context, store repository.Store, u *entity.User) (Profile, error) {
	p := Profile{User: u}
	if !u.HasAddress() {
		return p, nil
	}
	a, err := store.Addresses().Get(ctx, *u.AddressID)
	if errors.Is(err, repository.ErrNotFound) {
		return p, nil
	}
	if err != nil {
		return Profile{}, err
	}
	p.Address = a
	return p, nil
}

// ProfileByID reports NotFound before Forbidden.
func (s *UserService) ProfileByID(ctx context.Context, id int64, caller *entity.User) (Profile, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	if !MayAccess(u.ID, caller) {
		return Profile{}, newError(ErrForbidden, "Not allowed to view this user")
	}
	return s.Profile(ctx, u)
}

func (s *UserService) ListProfiles(ctx context.Context, caller *entity.User) ([]Profile, error) {
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}
	users, err := s.Store.Users().GetMulti(ctx)
	if err != nil {
		return nil, err
	}
	addrs, err := s.Store.Addresses().GetMulti(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*entity.Address, len(addrs))
	for _, a := range addrs {
		byID[a.ID] = a
	}
	out := make([]Profile, 0, len(users))
	for _, u := range users {
		p := Profile{User: u}
		if u.HasAddress() {
			p.Address = byID[*u.AddressID]
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, u *entity.User, in ProfilePatch) (*entity.User, error) {
	if in.FirstName.Null {
		return nil, invalid("first_name", "may not be null")
	}
	if in.LastName.Null {
		return nil, invalid("last_name", "may not be null")
	}
	if v, ok := in.PhoneNumber.Get(); ok && !validPhone(v) {
		return nil, invalid("phone_number", "must be 11 digits")
	}
	patch := entity.UserPatch{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
	}
	var out *entity.User
	err := s.Store.WithinTx(ctx, func(tx repository.Store) error {
		current, err := tx.Users().Get(ctx, u.ID)
		if err != nil {
			return storageError(err, "User not found", "")
		}
		out, err = tx.Users().Update(ctx, current, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ChangePassword requires the caller to restate their username and current password.
func (s *UserService) ChangePassword(ctx context.Context, u *entity.User, in PasswordChange) (*entity.User, error) {
	if in.Username != u.Username || !s.Passwords.Compare(u.HashedPassword, in.CurrentPassword) {
		return nil, newError(ErrInvalidCredential, "Could not verify credentials")
	}
	if in.NewPassword == "" {
		return nil, invalid("new_password", "is required")
	}
	hash, err := s.Passwords.Hash(in.NewPassword)
	if err != nil {
		return nil, err
	}
	out, err := s.Store.Users().Update(ctx, u, entity.UserPatch{HashedPassword: optional.Of(hash)})
	if err != nil {
		return nil, storageError(err, "User not found", "")
	}
	s.revoke(ctx, out.ID)
	helpers.LogInfo(s.Logger, "password changed", logrus.Fields{"user_id": out.ID})
	return out, nil
}

// Deactivate is idempotent: an already inactive user is returned unchanged.
func (s *UserService) Deactivate(ctx context.Context, u *entity.User) (*entity.User, error) {
	var out *entity.User
	err := s.Store.WithinTx(ctx, func(tx repository.Store) error {
		current, err := tx.Users().Get(ctx, u.ID)
		if err != nil {
			return storageError(err, "User not found", "")
		}
		if !current.IsActive {
			out = current
			return nil
		}
		out, err = tx.Users().Update(ctx, current, entity.UserPatch{IsActive: optional.Of(false)})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.revoke(ctx, out.ID)
	helpers.LogInfo(s.Logger, "user deactivated", logrus.Fields{"user_id": out.ID})
	return out, nil
}

// EnsureAdmin creates the user if missing and grants admin and superuser flags.
func (s *UserService) EnsureAdmin(ctx context.Context, in SignupInput) (*entity.User, bool, error) {
	created := false
	u, err := s.Store.Users().GetByUsername(ctx, in.Username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		u, err = s.Signup(ctx, in)
		if err != nil {
			return nil, false, err
		}
		created = true
	case err != nil:
		return nil, false, err
	}
	if u.IsAdmin && u.IsSuperuser {
		return u, created, nil
	}
	u, err = s.Store.Users().Update(ctx, u, entity.UserPatch{
		IsAdmin:     optional.Of(true),
		IsSuperuser: optional.Of(true),
	})
	if err != nil {
		return nil, false, err
	}
	return u, created, nil
}

func (s *UserService) revoke(ctx context.Context, userID int64) {
	if err := s.Revoker.Revoke(ctx, userID); err != nil {
		helpers.LogError(s.Logger, "revoke tokens failed", err, logrus.Fields{"user_id": userID})
	}
}
