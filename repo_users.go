package blog

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type Users interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error)
	Create(ctx context.Context, record *User) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
	Update(ctx context.Context, record *User, columns ...string) (*User, error)
	UpdateTx(ctx context.Context, tx bun.IDB, record *User, columns ...string) (*User, error)
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (r *users) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.GetByIDTx(ctx, r.db, id)
}

func (r *users) GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*User, error) {
	record := &User{}

	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		return nil, wrapSelectError(err, "user")
	}

	return record, nil
}

func (r *users) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.GetByUsernameTx(ctx, r.db, username)
}

func (r *users) GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error) {
	record := &User{}

	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)

	if err != nil {
		return nil, wrapSelectError(err, "user")
	}

	return record, nil
}

func (r *users) Create(ctx context.Context, record *User) (*User, error) {
	return r.CreateTx(ctx, r.db, record)
}

func (r *users) CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	prepareUserDefaults(record)

	_, err := tx.NewInsert().
		Model(record).
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "unable to insert user")
	}

	return record, nil
}

func (r *users) Update(ctx context.Context, record *User, columns ...string) (*User, error) {
	return r.UpdateTx(ctx, r.db, record, columns...)
}

func (r *users) UpdateTx(ctx context.Context, tx bun.IDB, record *User, columns ...string) (*User, error) {
	q := tx.NewUpdate().
		Model(record).
		WherePK().
		Returning("*")

	if len(columns) > 0 {
		q = q.Column(columns...)
	}

	if _, err := q.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "unable to update user")
	}

	return record, nil
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.Role == "" {
		record.Role = RoleUser
	}
}
