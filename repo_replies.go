package blog

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type Replies interface {
	GetByID(ctx context.Context, id int64) (*Reply, error)
	GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*Reply, error)
	Create(ctx context.Context, record *Reply) (*Reply, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Reply) (*Reply, error)
	Delete(ctx context.Context, id int64) error
	DeleteTx(ctx context.Context, tx bun.IDB, id int64) error
}

type replies struct {
	db *bun.DB
}

var _ Replies = (*replies)(nil)

func NewRepliesRepository(db *bun.DB) Replies {
	return &replies{db: db}
}

func (r *replies) GetByID(ctx context.Context, id int64) (*Reply, error) {
	return r.GetByIDTx(ctx, r.db, id)
}

func (r *replies) GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*Reply, error) {
	record := &Reply{}

	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		return nil, wrapSelectError(err, "reply")
	}

	return record, nil
}

func (r *replies) Create(ctx context.Context, record *Reply) (*Reply, error) {
	return r.CreateTx(ctx, r.db, record)
}

func (r *replies) CreateTx(ctx context.Context, tx bun.IDB, record *Reply) (*Reply, error) {
	_, err := tx.NewInsert().
		Model(record).
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "unable to insert reply")
	}

	return record, nil
}

func (r *replies) Delete(ctx context.Context, id int64) error {
	return r.DeleteTx(ctx, r.db, id)
}

func (r *replies) DeleteTx(ctx context.Context, tx bun.IDB, id int64) error {
	_, err := tx.NewDelete().
		Model((*Reply)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "unable to delete reply")
	}

	return nil
}
