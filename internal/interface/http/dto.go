package handlers

import (
	"time"

	"github.com/oksasatya/todo-api/internal/application"
	"github.com/oksasatya/todo-api/internal/domain/entity"
	"github.com/oksasatya/todo-api/pkg/optional"
)

// Response shapes are built by composition: a core Out struct plus wrappers
// that attach the related row.

type UserOut struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	IsActive    bool      `json:"is_active"`
	IsAdmin     bool      `json:"is_admin"`
	IsSuperuser bool      `json:"is_superuser"`
	PhoneNumber *string   `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AddressOut struct {
	ID         int64     `json:"id"`
	Address1   string    `json:"address1"`
	Address2   *string   `json:"address2"`
	AptNum     *string   `json:"apt_num"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Country    string    `json:"country"`
	Zipcode    string    `json:"zipcode"`
	ResidentID int64     `json:"resident_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type TodoOut struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    int       `json:"priority"`
	IsCompleted bool      `json:"isCompleted"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UserWithAddress struct {
	UserOut
	Address *AddressOut `json:"address"`
}

type AddressWithUser struct {
	AddressOut
	Resident *UserOut `json:"resident"`
}

type TokenOut struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func toUserOut(u *entity.User) UserOut {
	return UserOut{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsActive:    u.IsActive,
		IsAdmin:     u.IsAdmin,
		IsSuperuser: u.IsSuperuser,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toAddressOut(a *entity.Address) AddressOut {
	return AddressOut{
		ID:         a.ID,
		Address1:   a.Address1,
		Address2:   a.Address2,
		AptNum:     a.AptNum,
		City:       a.City,
		State:      a.State,
		Country:    a.Country,
		Zipcode:    a.Zipcode,
		ResidentID: a.ResidentID,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func toTodoOut(t *entity.Todo) TodoOut {
	return TodoOut{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		IsCompleted: t.IsCompleted,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTodoOuts(ts []*entity.Todo) []TodoOut {
	out := make([]TodoOut, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTodoOut(t))
	}
	return out
}

func toUserWithAddress(p application.Profile) UserWithAddress {
	out := UserWithAddress{UserOut: toUserOut(p.User)}
	if p.Address != nil {
		a := toAddressOut(p.Address)
		out.Address = &a
	}
	return out
}

func toAddressWithUser(r application.Residence) AddressWithUser {
	out := AddressWithUser{AddressOut: toAddressOut(r.Address)}
	if r.Resident != nil {
		u := toUserOut(r.Resident)
		out.Resident = &u
	}
	return out
}

// Requests

type signupRequest struct {
	Username    string  `json:"username" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    string  `json:"last_name" binding:"required"`
	Password    string  `json:"password" binding:"required"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,phone"`
}

type loginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type changePasswordRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type updateUserRequest struct {
	FirstName   optional.Value[string] `json:"first_name" binding:"omitempty,min=1"`
	LastName    optional.Value[string] `json:"last_name" binding:"omitempty,min=1"`
	PhoneNumber optional.Value[string] `json:"phone_number" binding:"omitempty,phone"`
}

type createTodoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Priority    int    `json:"priority" binding:"priority"`
	IsCompleted bool   `json:"isCompleted"`
}

type updateTodoRequest struct {
	Title       optional.Value[string] `json:"title"`
	Description optional.Value[string] `json:"description"`
	Priority    optional.Value[int]    `json:"priority" binding:"omitempty,priority"`
	IsCompleted optional.Value[bool]   `json:"isCompleted"`
}

func (r updateTodoRequest) patch() entity.TodoPatch {
	return entity.TodoPatch{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		IsCompleted: r.IsCompleted,
	}
}

type createAddressRequest struct {
	Address1 string  `json:"address1" binding:"required"`
	Address2 *string `json:"address2"`
	AptNum   *string `json:"apt_num"`
	City     string  `json:"city" binding:"required"`
	State    string  `json:"state" binding:"required"`
	Country  string  `json:"country" binding:"required"`
	Zipcode  string  `json:"zipcode" binding:"required"`
}

type updateAddressRequest struct {
	Address1 optional.Value[string] `json:"address1"`
	Address2 optional.Value[string] `json:"address2"`
	AptNum   optional.Value[string] `json:"apt_num"`
	City     optional.Value[string] `json:"city"`
	State    optional.Value[string] `json:"state"`
	Country  optional.Value[string] `json:"country"`
	Zipcode  optional.Value[string] `json:"zipcode"`
}

func (r updateAddressRequest) patch() entity.AddressPatch {
	return entity.AddressPatch{
		Address1: r.Address1,
		Address2: r.Address2,
		AptNum:   r.AptNum,
		City:     r.City,
		State:    r.State,
		Country:  r.Country,
		Zipcode:  r.Zipcode,
	}
}
