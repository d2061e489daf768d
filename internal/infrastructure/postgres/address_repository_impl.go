package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/oksasatya/todo-api/internal/domain/entity"
	"github.com/oksasatya/todo-api/internal/domain/repository"
)

var addressColumns = []string{
	"id", "address1", "address2", "apt_num", "city", "state", "country",
	"zipcode", "resident_id", "created_at", "updated_at",
}

type AddressRepository struct {
	*table[entity.Address, entity.AddressPatch]
}

func NewAddressRepository(q sqlx.ExtContext) *AddressRepository {
	return &AddressRepository{table: newTable[entity.Address, entity.AddressPatch](q, "addresses", addressColumns)}
}

func (r *AddressRepository) GetByResident(ctx context.Context, residentID int64) (*entity.Address, error) {
	return r.one(ctx, "get_by_resident", r.selectQuery().Where(sq.Eq{"resident_id": residentID}))
}

var _ repository.AddressRepository = (*AddressRepository)(nil)
