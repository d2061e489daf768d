package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todo-api/internal/domain/entity"
	"github.com/oksasatya/todo-api/internal/domain/repository"
	"github.com/oksasatya/todo-api/pkg/helpers"
	"github.com/oksasatya/todo-api/pkg/optional"
)

type AddressService struct {
	Store  repository.Store
	Logger *logrus.Logger
}

func NewAddressService(store repository.Store, logger *logrus.Logger) *AddressService {
	return &AddressService{Store: store, Logger: logger}
}

type AddressInput struct {
	Address1 string
	Address2 *string
	AptNum   *string
	City     string
	State    string
	Country  string
	Zipcode  string
}

// Residence is an address together with the user living there.
type Residence struct {
	Address  *entity.Address
	Resident *entity.User
}

// CreateForUser inserts the address and links it to u in one transaction.
func (s *AddressService) CreateForUser(ctx context.Context, in AddressInput, u *entity.User) (Residence, error) {
	var out Residence
	err := s.Store.WithinTx(ctx, func(tx repository.Store) error {
		current, err := tx.Users().Get(ctx, u.ID)
		if err != nil {
			return storageError(err, "User not found", "")
		}
		if current.HasAddress() {
			return newError(ErrConflict, "Address already exists")
		}
		// resident_id is the owning side; catch a row whose back link was lost
		if _, err := tx.Addresses().GetByResident(ctx, current.ID); err == nil {
			return newError(ErrConflict, "Address already exists")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		a, err := tx.Addresses().Create(ctx, &entity.Address{
			Address1:   in.Address1,
			Address2:   in.Address2,
			AptNum:     in.AptNum,
			City:       in.City,
			State:      in.State,
			Country:    in.Country,
			Zipcode:    in.Zipcode,
			ResidentID: current.ID,
		})
		if err != nil {
			return storageError(err, "User not found", "Address already exists")
		}
		linked, err := tx.Users().Update(ctx, current, entity.UserPatch{AddressID: optional.Of(a.ID)})
		if err != nil {
			return storageError(err, "User not found", "Address already linked")
		}
		out = Residence{Address: a, Resident: linked}
		return nil
	})
	if err != nil {
		return Residence{}, err
	}
	helpers.LogInfo(s.Logger, "address created", logrus.Fields{"address_id": out.Address.ID, "user_id": u.ID})
	return out, nil
}

// GetMine returns found=false when u has no address yet.
func (s *AddressService) GetMine(ctx context.Context, u *entity.User) (*entity.Address, bool, error) {
	if !u.HasAddress() {
		return nil, false, nil
	}
	a, err := s.Store.Addresses().Get(ctx, *u.AddressID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}

func (s *AddressService) GetByID(ctx context.Context, id int64, caller *entity.User) (Residence, error) {
	a, err := s.Store.Addresses().Get(ctx, id)
	if err != nil {
		return Residence{}, storageError(err, "Address not found", "")
	}
	if !MayAccess(a.ResidentID, caller) {
		return Residence{}, newError(ErrForbidden, "Not allowed to view this address")
	}
	resident, err := s.Store.Users().Get(ctx, a.ResidentID)
	if err != nil {
		return Residence{}, storageError(err, "Resident not found", "")
	}
	return Residence{Address: a, Resident: resident}, nil
}

// UpdateMine fails with ErrNoAddress when u has none.
func (s *AddressService) UpdateMine(ctx context.Context, u *entity.User, patch entity.AddressPatch) (Residence, error) {
	for field, v := range map[string]optional.Value[string]{
		"address1": patch.Address1,
		"city":     patch.City,
		"state":    patch.State,
		"country":  patch.Country,
		"zipcode":  patch.Zipcode,
	} {
		if v.Null {
			return Residence{}, invalid(field, "may not be null")
		}
	}
	var out Residence
	err := s.Store.WithinTx(ctx, func(tx repository.Store) error {
		current, err := tx.Users().Get(ctx, u.ID)
		if err != nil {
			return storageError(err, "User not found", "")
		}
		if !current.HasAddress() {
			return ErrNoAddress
		}
		a, err := tx.Addresses().Get(ctx, *current.AddressID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoAddress
		}
		if err != nil {
			return err
		}
		updated, err := tx.Addresses().Update(ctx, a, patch)
		if err != nil {
			return err
		}
		out = Residence{Address: updated, Resident: current}
		return nil
	})
	if err != nil {
		return Residence{}, err
	}
	return out, nil
}

// DeleteMine unlinks and deletes u's address, returning the refreshed user.
func (s *AddressService) DeleteMine(ctx context.Context, u *entity.User) (*entity.User, error) {
	var out *entity.User
	var addressID int64
	err := s.Store.WithinTx(ctx, func(tx repository.Store) error {
		current, err := tx.Users().Get(ctx, u.ID)
		if err != nil {
			return storageError(err, "User not found", "")
		}
		if !current.HasAddress() {
			return newError(ErrNotFound, "No address to delete.")
		}
		addressID = *current.AddressID
		if _, err := tx.Users().Update(ctx, current, entity.UserPatch{AddressID: optional.Null[int64]()}); err != nil {
			return err
		}
		if _, err := tx.Addresses().Remove(ctx, addressID); err != nil {
			return storageError(err, "No address to delete.", "")
		}
		out, err = tx.Users().Get(ctx, u.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	helpers.LogInfo(s.Logger, "address deleted", logrus.Fields{"address_id": addressID, "user_id": u.ID})
	return out, nil
}
