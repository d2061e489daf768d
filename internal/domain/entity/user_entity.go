package entity

import (
	"time"

	"github.com/oksasatya/todo-api/pkg/optional"
)

// User is the aggregate root for todos and the address.
// Passwords are stored as bcrypt hashes in HashedPassword.
type User struct {
	ID             int64     `db:"id"`
	Email          string    `db:"email"`
	Username       string    `db:"username"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	HashedPassword string    `db:"hashed_password"`
	IsActive       bool      `db:"is_active"`
	PhoneNumber    *string   `db:"phone_number"`
	AddressID      *int64    `db:"address_id"`
	IsAdmin        bool      `db:"is_admin"`
	IsSuperuser    bool      `db:"is_superuser"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (u User) EntityID() int64 { return u.ID }

// Fields returns the insertable columns.
func (u User) Fields() map[string]any {
	return map[string]any{
		"email":           u.Email,
		"username":        u.Username,
		"first_name":      u.FirstName,
		"last_name":       u.LastName,
		"hashed_password": u.HashedPassword,
		"is_active":       u.IsActive,
		"phone_number":    u.PhoneNumber,
		"address_id":      u.AddressID,
		"is_admin":        u.IsAdmin,
		"is_superuser":    u.IsSuperuser,
	}
}

// HasAddress reports whether the user is linked to an address row.
func (u User) HasAddress() bool { return u.AddressID != nil }

// UserPatch lists the user columns a partial update may touch.
type UserPatch struct {
	FirstName      optional.Value[string]
	LastName       optional.Value[string]
	PhoneNumber    optional.Value[string]
	HashedPassword optional.Value[string]
	IsActive       optional.Value[bool]
	AddressID      optional.Value[int64]
	IsAdmin        optional.Value[bool]
	IsSuperuser    optional.Value[bool]
}

func (p UserPatch) Columns() map[string]any {
	cols := map[string]any{}
	setValue(cols, "first_name", p.FirstName)
	setValue(cols, "last_name", p.LastName)
	setNullable(cols, "phone_number", p.PhoneNumber)
	setValue(cols, "hashed_password", p.HashedPassword)
	setValue(cols, "is_active", p.IsActive)
	setNullable(cols, "address_id", p.AddressID)
	setValue(cols, "is_admin", p.IsAdmin)
	setValue(cols, "is_superuser", p.IsSuperuser)
	return cols
}

func (p UserPatch) Apply(u *User) {
	if v, ok := p.FirstName.Get(); ok {
		u.FirstName = v
	}
	if v, ok := p.LastName.Get(); ok {
		u.LastName = v
	}
	if p.PhoneNumber.Set {
		u.PhoneNumber = p.PhoneNumber.Ptr()
	}
	if v, ok := p.HashedPassword.Get(); ok {
		u.HashedPassword = v
	}
	if v, ok := p.IsActive.Get(); ok {
		u.IsActive = v
	}
	if p.AddressID.Set {
		u.AddressID = p.AddressID.Ptr()
	}
	if v, ok := p.IsAdmin.Get(); ok {
		u.IsAdmin = v
	}
	if v, ok := p.IsSuperuser.Get(); ok {
		u.IsSuperuser = v
	}
}
