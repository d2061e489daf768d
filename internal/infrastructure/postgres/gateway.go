package postgres

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/oksasatya/todo-api/internal/domain/repository"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// table implements repository.Gateway for one table whose columns map onto
// T through db tags.
type table[T repository.Entity, P repository.Patch[T]] struct {
	q       sqlx.ExtContext
	name    string
	columns []string
}

func newTable[T repository.Entity, P repository.Patch[T]](q sqlx.ExtContext, name string, columns []string) *table[T, P] {
	return &table[T, P]{q: q, name: name, columns: columns}
}

func (t *table[T, P]) returning() string {
	return "RETURNING " + strings.Join(t.columns, ", ")
}

func (t *table[T, P]) selectQuery() sq.SelectBuilder {
	return psql.Select(t.columns...).From(t.name)
}

func (t *table[T, P]) one(ctx context.Context, op string, b sq.Sqlizer) (*T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, mapError(err, op, t.name)
	}
	var out T
	if err := sqlx.GetContext(ctx, t.q, &out, query, args...); err != nil {
		return nil, mapError(err, op, t.name)
	}
	return &out, nil
}

func (t *table[T, P]) many(ctx context.Context, op string, b sq.Sqlizer) ([]*T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, mapError(err, op, t.name)
	}
	out := []*T{}
	if err := sqlx.SelectContext(ctx, t.q, &out, query, args...); err != nil {
		return nil, mapError(err, op, t.name)
	}
	return out, nil
}

func (t *table[T, P]) Get(ctx context.Context, id int64) (*T, error) {
	return t.one(ctx, "get", t.selectQuery().Where(sq.Eq{"id": id}))
}

func (t *table[T, P]) GetMulti(ctx context.Context) ([]*T, error) {
	return t.many(ctx, "get_multi", t.selectQuery().OrderBy("id"))
}

func (t *table[T, P]) Create(ctx context.Context, in *T) (*T, error) {
	b := psql.Insert(t.name).SetMap((*in).Fields()).Suffix(t.returning())
	return t.one(ctx, "create", b)
}

// Update writes only the columns carried by patch. An empty patch re-reads
// the row.
func (t *table[T, P]) Update(ctx context.Context, existing *T, patch P) (*T, error) {
	id := (*existing).EntityID()
	cols := patch.Columns()
	if len(cols) == 0 {
		return t.Get(ctx, id)
	}
	cols["updated_at"] = sq.Expr("now()")
	b := psql.Update(t.name).SetMap(cols).Where(sq.Eq{"id": id}).Suffix(t.returning())
	return t.one(ctx, "update", b)
}

func (t *table[T, P]) Remove(ctx context.Context, id int64) (*T, error) {
	b := psql.Delete(t.name).Where(sq.Eq{"id": id}).Suffix(t.returning())
	return t.one(ctx, "remove", b)
}
