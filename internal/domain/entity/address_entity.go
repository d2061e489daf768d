package entity

import (
	"time"

	"github.com/oksasatya/todo-api/pkg/optional"
)

// Address is a postal address linked one-to-one with its resident.
// The link is kept on both rows: User.AddressID and Address.ResidentID.
type Address struct {
	ID         int64     `db:"id"`
	Address1   string    `db:"address1"`
	Address2   *string   `db:"address2"`
	AptNum     *string   `db:"apt_num"`
	City       string    `db:"city"`
	State      string    `db:"state"`
	Country    string    `db:"country"`
	Zipcode    string    `db:"zipcode"`
	ResidentID int64     `db:"resident_id"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (a Address) EntityID() int64 { return a.ID }

func (a Address) Fields() map[string]any {
	return map[string]any{
		"address1":    a.Address1,
		"address2":    a.Address2,
		"apt_num":     a.AptNum,
		"city":        a.City,
		"state":       a.State,
		"country":     a.Country,
		"zipcode":     a.Zipcode,
		"resident_id": a.ResidentID,
	}
}

type AddressPatch struct {
	Address1 optional.Value[string]
	Address2 optional.Value[string]
	AptNum   optional.Value[string]
	City     optional.Value[string]
	State    optional.Value[string]
	Country  optional.Value[string]
	Zipcode  optional.Value[string]
}

func (p AddressPatch) Columns() map[string]any {
	cols := map[string]any{}
	setValue(cols, "address1", p.Address1)
	setNullable(cols, "address2", p.Address2)
	setNullable(cols, "apt_num", p.AptNum)
	setValue(cols, "city", p.City)
	setValue(cols, "state", p.State)
	setValue(cols, "country", p.Country)
	setValue(cols, "zipcode", p.Zipcode)
	return cols
}

func (p AddressPatch) Apply(a *Address) {
	if v, ok := p.Address1.Get(); ok {
		a.Address1 = v
	}
	if p.Address2.Set {
		a.Address2 = p.Address2.Ptr()
	}
	if p.AptNum.Set {
		a.AptNum = p.AptNum.Ptr()
	}
	if v, ok := p.City.Get(); ok {
		a.City = v
	}
	if v, ok := p.State.Get(); ok {
		a.State = v
	}
	if v, ok := p.Country.Get(); ok {
		a.Country = v
	}
	if v, ok := p.Zipcode.Get(); ok {
		a.Zipcode = v
	}
}
